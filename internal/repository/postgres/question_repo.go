package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	err := r.db.Create(question).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: duplicate order_num %d in quiz #%d", apperrors.ErrConflict, question.OrderNum, question.QuizID)
	}
	return err
}

// CreateBatch создает вопросы одной вставкой в транзакции:
// либо все вопросы викторины записаны, либо ни одного.
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	err := r.db.Create(&questions).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: duplicate order_num in quiz #%d", apperrors.ErrConflict, questions[0].QuizID)
	}
	return err
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByQuizID возвращает вопросы викторины в порядке order_num
func (r *QuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("quiz_id = ?", quizID).Order("order_num").Find(&questions).Error
	return questions, err
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Question{}, id).Error
}
