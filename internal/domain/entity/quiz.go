package entity

import (
	"time"
)

// Quiz представляет викторину, созданную пользователем
type Quiz struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null;uniqueIndex" json:"title"`
	Description string `gorm:"size:500;not null;default:''" json:"description"`
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"`

	// Настройки прохождения. RandomOrder перемешивает вопросы один раз при старте.
	// OnePage показывает все вопросы сразу (одна отправка со всеми ответами).
	// ImmediateCorrection показывает правильность после каждого вопроса и
	// несовместим с OnePage по построению.
	RandomOrder         bool `gorm:"not null;default:false" json:"random_order"`
	OnePage             bool `gorm:"not null;default:false" json:"one_page"`
	ImmediateCorrection bool `gorm:"not null;default:false" json:"immediate_correction"`
	PracticeMode        bool `gorm:"not null;default:false" json:"practice_mode"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// AllowsPractice проверяет, доступен ли тренировочный режим для викторины
func (q *Quiz) AllowsPractice() bool {
	return q.PracticeMode
}
