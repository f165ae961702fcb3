package entity

import (
	"time"
)

// Типы достижений. Каждый тип выдается пользователю не более одного раза;
// гарантию обеспечивает уникальный индекс (user_id, type).
const (
	AchievementPracticeMakesPerfect = "PRACTICE_MAKES_PERFECT"
	AchievementQuizMachine          = "QUIZ_MACHINE"
	AchievementIAmTheGreatest       = "I_AM_THE_GREATEST"
	AchievementAmateurAuthor        = "AMATEUR_AUTHOR"
	AchievementProlificAuthor       = "PROLIFIC_AUTHOR"
	AchievementProdigiousAuthor     = "PRODIGIOUS_AUTHOR"
)

// Achievement представляет выданное пользователю достижение
type Achievement struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	Type     string    `gorm:"size:50;not null;uniqueIndex:idx_user_achievement,priority:2" json:"type"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}

// TableName определяет имя таблицы для GORM
func (Achievement) TableName() string {
	return "achievements"
}
