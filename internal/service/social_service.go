package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// SocialService отвечает за дружбы и личные сообщения
type SocialService struct {
	friendshipRepo repository.FriendshipRepository
	messageRepo    repository.MessageRepository
	userRepo       repository.UserRepository
}

// NewSocialService создает новый сервис социальных связей
func NewSocialService(
	friendshipRepo repository.FriendshipRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) *SocialService {
	return &SocialService{
		friendshipRepo: friendshipRepo,
		messageRepo:    messageRepo,
		userRepo:       userRepo,
	}
}

// SendFriendRequest создает запрос дружбы. Повторный запрос в любом
// направлении - конфликт.
func (s *SocialService) SendFriendRequest(requesterID, addresseeID uint) (*entity.Friendship, error) {
	if requesterID == addresseeID {
		return nil, fmt.Errorf("%w: cannot befriend yourself", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(addresseeID); err != nil {
		return nil, err
	}

	existing, err := s.friendshipRepo.GetBetween(requesterID, addresseeID)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: friendship already exists", apperrors.ErrConflict)
	}

	friendship := &entity.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      entity.FriendshipPending,
	}
	if err := s.friendshipRepo.Create(friendship); err != nil {
		log.Printf("[SocialService] Ошибка при создании запроса дружбы %d -> %d: %v", requesterID, addresseeID, err)
		return nil, err
	}
	log.Printf("[SocialService] Запрос дружбы %d -> %d создан", requesterID, addresseeID)
	return friendship, nil
}

// AcceptFriendRequest подтверждает запрос дружбы. Подтвердить может
// только адресат, поэтому запрос ищется среди его входящих.
func (s *SocialService) AcceptFriendRequest(friendshipID, userID uint) error {
	pending, err := s.friendshipRepo.ListPendingFor(userID)
	if err != nil {
		return err
	}
	for _, f := range pending {
		if f.ID == friendshipID {
			if err := s.friendshipRepo.UpdateStatus(friendshipID, entity.FriendshipAccepted); err != nil {
				log.Printf("[SocialService] Ошибка при подтверждении дружбы #%d: %v", friendshipID, err)
				return err
			}
			log.Printf("[SocialService] Дружба #%d подтверждена пользователем #%d", friendshipID, userID)
			return nil
		}
	}
	return fmt.Errorf("%w: pending friend request not found", apperrors.ErrNotFound)
}

// ListFriends возвращает подтвержденные дружбы пользователя
func (s *SocialService) ListFriends(userID uint) ([]entity.Friendship, error) {
	return s.friendshipRepo.ListFriends(userID)
}

// ListPendingRequests возвращает входящие неподтвержденные запросы
func (s *SocialService) ListPendingRequests(userID uint) ([]entity.Friendship, error) {
	return s.friendshipRepo.ListPendingFor(userID)
}

// RemoveFriend удаляет дружбу между пользователями
func (s *SocialService) RemoveFriend(userID, friendID uint) error {
	friendship, err := s.friendshipRepo.GetBetween(userID, friendID)
	if err != nil {
		return err
	}
	return s.friendshipRepo.Delete(friendship.ID)
}

// SendMessage отправляет личное сообщение. Отправка разрешена только
// между подтвержденными друзьями.
func (s *SocialService) SendMessage(senderID, recipientID uint, body string) (*entity.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", apperrors.ErrValidation)
	}

	friendship, err := s.friendshipRepo.GetBetween(senderID, recipientID)
	if err != nil || !friendship.IsAccepted() {
		return nil, fmt.Errorf("%w: messages are allowed between friends only", apperrors.ErrForbidden)
	}

	message := &entity.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		SentAt:      time.Now(),
	}
	if err := s.messageRepo.Create(message); err != nil {
		log.Printf("[SocialService] Ошибка при отправке сообщения %d -> %d: %v", senderID, recipientID, err)
		return nil, err
	}
	return message, nil
}

// Inbox возвращает страницу входящих сообщений
func (s *SocialService) Inbox(userID uint, limit, offset int) ([]entity.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.messageRepo.ListInbox(userID, limit, offset)
}

// MarkMessageRead помечает сообщение прочитанным. Пометить может только получатель.
func (s *SocialService) MarkMessageRead(messageID, userID uint) error {
	return s.messageRepo.MarkRead(messageID, userID)
}

// UnreadCount возвращает число непрочитанных сообщений
func (s *SocialService) UnreadCount(userID uint) (int64, error) {
	return s.messageRepo.CountUnread(userID)
}
