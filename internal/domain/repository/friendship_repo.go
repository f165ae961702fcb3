package repository

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// FriendshipRepository определяет методы для работы с дружбами
type FriendshipRepository interface {
	Create(friendship *entity.Friendship) error
	// GetBetween возвращает связь между двумя пользователями в любом направлении.
	GetBetween(userA, userB uint) (*entity.Friendship, error)
	UpdateStatus(id uint, status string) error
	ListFriends(userID uint) ([]entity.Friendship, error)
	ListPendingFor(userID uint) ([]entity.Friendship, error)
	Delete(id uint) error
}
