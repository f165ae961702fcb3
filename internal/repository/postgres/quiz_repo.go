package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину. Нарушение уникальности заголовка
// возвращается как конфликт.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	err := r.db.Create(quiz).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: quiz title %q is already taken", apperrors.ErrConflict, quiz.Title)
	}
	return err
}

// CreateWithQuestions создает викторину вместе с вопросами одной транзакцией.
// Викторина без вопросов непроходима, поэтому сбой на любом шаге откатывает
// все: заголовок не резервируется, пустая викторина не появляется в базе.
func (r *QuizRepo) CreateWithQuestions(quiz *entity.Quiz, questions []entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: quiz title %q is already taken", apperrors.ErrConflict, quiz.Title)
			}
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		if err := tx.Create(&questions).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate question order_num in quiz #%d", apperrors.ErrConflict, quiz.ID)
			}
			return err
		}
		return nil
	})
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами в порядке показа
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetByTitle возвращает викторину по заголовку
func (r *QuizRepo) GetByTitle(title string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Where("title = ?", title).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает список викторин с пагинацией
func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Limit(limit).Offset(offset).Order("id DESC").Find(&quizzes).Error
	return quizzes, err
}

// ListByCreator возвращает викторины, созданные пользователем
func (r *QuizRepo) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("creator_id = ?", creatorID).Order("id DESC").Find(&quizzes).Error
	return quizzes, err
}

// ListPopular возвращает викторины, отсортированные по числу зачетных попыток
func (r *QuizRepo) ListPopular(limit int) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.
		Joins("LEFT JOIN quiz_attempts ON quiz_attempts.quiz_id = quizzes.id AND quiz_attempts.is_practice = false").
		Group("quizzes.id").
		Order("COUNT(quiz_attempts.id) DESC, quizzes.id DESC").
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

// CountByCreator возвращает число викторин, созданных пользователем
func (r *QuizRepo) CountByCreator(creatorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Quiz{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

// Delete удаляет викторину вместе с вопросами
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Quiz{}, id).Error
	})
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
