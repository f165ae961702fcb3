package entity

import (
	"time"
)

// Announcement представляет объявление администрации на главной странице
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"size:2000;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Announcement) TableName() string {
	return "announcements"
}
