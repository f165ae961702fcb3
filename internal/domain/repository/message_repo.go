package repository

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// MessageRepository определяет методы для работы с сообщениями
type MessageRepository interface {
	Create(message *entity.Message) error
	ListInbox(recipientID uint, limit, offset int) ([]entity.Message, error)
	MarkRead(id, recipientID uint) error
	CountUnread(recipientID uint) (int64, error)
}
