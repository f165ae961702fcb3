package entity

import (
	"time"
)

// QuizAttempt представляет завершенное прохождение викторины.
// Запись создается ровно один раз при завершении и никогда не изменяется.
// TotalQuestions фиксируется на момент прохождения: викторина может
// измениться позже, результат - нет.
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	QuizID         uint      `gorm:"not null;index" json:"quiz_id"`
	Score          float64   `gorm:"not null;default:0" json:"score"` // 0-100
	CorrectAnswers int       `gorm:"not null;default:0" json:"correct_answers"`
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	TimeTakenSec   int       `gorm:"not null;default:0" json:"time_taken_sec"`
	DateTaken      time.Time `gorm:"not null;index" json:"date_taken"`
	IsPractice     bool      `gorm:"not null;default:false;index" json:"is_practice"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
