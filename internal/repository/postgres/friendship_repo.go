package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// FriendshipRepo реализует repository.FriendshipRepository
type FriendshipRepo struct {
	db *gorm.DB
}

// NewFriendshipRepo создает новый репозиторий дружб
func NewFriendshipRepo(db *gorm.DB) *FriendshipRepo {
	return &FriendshipRepo{db: db}
}

// Create создает запрос дружбы
func (r *FriendshipRepo) Create(friendship *entity.Friendship) error {
	err := r.db.Create(friendship).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: friend request already exists", apperrors.ErrConflict)
	}
	return err
}

// GetBetween возвращает связь между двумя пользователями в любом направлении
func (r *FriendshipRepo) GetBetween(userA, userB uint) (*entity.Friendship, error) {
	var friendship entity.Friendship
	err := r.db.
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// UpdateStatus обновляет статус дружбы
func (r *FriendshipRepo) UpdateStatus(id uint, status string) error {
	return r.db.Model(&entity.Friendship{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// ListFriends возвращает подтвержденные дружбы пользователя
func (r *FriendshipRepo) ListFriends(userID uint) ([]entity.Friendship, error) {
	var friendships []entity.Friendship
	err := r.db.
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			userID, userID, entity.FriendshipAccepted).
		Find(&friendships).Error
	return friendships, err
}

// ListPendingFor возвращает входящие неподтвержденные запросы
func (r *FriendshipRepo) ListPendingFor(userID uint) ([]entity.Friendship, error) {
	var friendships []entity.Friendship
	err := r.db.
		Where("addressee_id = ? AND status = ?", userID, entity.FriendshipPending).
		Order("created_at DESC").
		Find(&friendships).Error
	return friendships, err
}

// Delete удаляет дружбу
func (r *FriendshipRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Friendship{}, id).Error
}
