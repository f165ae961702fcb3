package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// MessageRepo реализует repository.MessageRepository
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo создает новый репозиторий сообщений
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create сохраняет новое сообщение
func (r *MessageRepo) Create(message *entity.Message) error {
	return r.db.Create(message).Error
}

// ListInbox возвращает страницу входящих сообщений, свежие первыми
func (r *MessageRepo) ListInbox(recipientID uint, limit, offset int) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.
		Where("recipient_id = ?", recipientID).
		Order("sent_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, err
}

// MarkRead помечает сообщение прочитанным. Условие по получателю не дает
// пометить чужое сообщение.
func (r *MessageRepo) MarkRead(id, recipientID uint) error {
	result := r.db.Model(&entity.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: message #%d", apperrors.ErrNotFound, id)
	}
	return nil
}

// CountUnread возвращает число непрочитанных сообщений
func (r *MessageRepo) CountUnread(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Message{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}
