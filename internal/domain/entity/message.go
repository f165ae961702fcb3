package entity

import (
	"time"
)

// Message представляет личное сообщение между пользователями
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Body        string    `gorm:"size:2000;not null" json:"body"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	SentAt      time.Time `gorm:"not null" json:"sent_at"`
}

// TableName определяет имя таблицы для GORM
func (Message) TableName() string {
	return "messages"
}
