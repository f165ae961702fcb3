package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository.
// Журнал попыток append-only: записи вставляются при завершении прохождения
// и никогда не обновляются.
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Insert записывает завершенную попытку. Вставка одним запросом:
// попытка либо видна целиком, либо отсутствует.
func (r *AttemptRepo) Insert(attempt *entity.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(id uint) (*entity.QuizAttempt, error) {
	var attempt entity.QuizAttempt
	err := r.db.First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// ListByQuiz возвращает попытки викторины с фильтром по тренировочному флагу
func (r *AttemptRepo) ListByQuiz(quizID uint, practiceOnly bool) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.
		Where("quiz_id = ? AND is_practice = ?", quizID, practiceOnly).
		Order("date_taken DESC").
		Find(&attempts).Error
	return attempts, err
}

// ListByUser возвращает страницу попыток пользователя, свежие первыми
func (r *AttemptRepo) ListByUser(userID uint, limit, offset int) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.
		Where("user_id = ?", userID).
		Order("date_taken DESC").
		Limit(limit).Offset(offset).
		Find(&attempts).Error
	return attempts, err
}

// CountNonPractice возвращает число зачетных попыток пользователя
func (r *AttemptRepo) CountNonPractice(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizAttempt{}).
		Where("user_id = ? AND is_practice = false", userID).
		Count(&count).Error
	return count, err
}

// ListAllNonPractice возвращает все зачетные попытки для глобального лидерборда
func (r *AttemptRepo) ListAllNonPractice() ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.Where("is_practice = false").Find(&attempts).Error
	return attempts, err
}
