package repository

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// AttemptRepository определяет методы журнала завершенных прохождений.
// Вставка атомарна и долговечна: после возврата Insert без ошибки попытка
// обязана быть видима последующим чтениям (на этом строится проверка
// "я лучший" сразу после завершения).
type AttemptRepository interface {
	Insert(attempt *entity.QuizAttempt) error
	GetByID(id uint) (*entity.QuizAttempt, error)
	// ListByQuiz возвращает попытки для викторины. practiceOnly=false
	// возвращает только зачетные попытки, practiceOnly=true - только тренировочные.
	ListByQuiz(quizID uint, practiceOnly bool) ([]entity.QuizAttempt, error)
	ListByUser(userID uint, limit, offset int) ([]entity.QuizAttempt, error)
	CountNonPractice(userID uint) (int64, error)
	// ListAllNonPractice возвращает все зачетные попытки (для глобального лидерборда).
	ListAllNonPractice() ([]entity.QuizAttempt, error)
}
