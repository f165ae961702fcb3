package entity

import (
	"time"
)

// Статусы дружбы
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship представляет запрос дружбы между двумя пользователями.
// Пара (requester_id, addressee_id) уникальна; обратная пара - отдельная запись,
// наличие любой из них означает существующую связь.
type Friendship struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;index;uniqueIndex:idx_friend_pair,priority:1" json:"requester_id"`
	AddresseeID uint      `gorm:"not null;index;uniqueIndex:idx_friend_pair,priority:2" json:"addressee_id"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Friendship) TableName() string {
	return "friendships"
}

// IsAccepted проверяет, подтверждена ли дружба
func (f *Friendship) IsAccepted() bool {
	return f.Status == FriendshipAccepted
}
