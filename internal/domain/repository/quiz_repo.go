package repository

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	// CreateWithQuestions создает викторину вместе с вопросами атомарно:
	// при любом сбое не остается ни викторины, ни вопросов.
	CreateWithQuestions(quiz *entity.Quiz, questions []entity.Question) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	GetByTitle(title string) (*entity.Quiz, error)
	List(limit, offset int) ([]entity.Quiz, error)
	ListByCreator(creatorID uint) ([]entity.Quiz, error)
	ListPopular(limit int) ([]entity.Quiz, error)
	CountByCreator(creatorID uint) (int64, error)
	Delete(id uint) error
}
