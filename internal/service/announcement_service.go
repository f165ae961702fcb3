package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// AnnouncementService управляет объявлениями на главной странице.
// Создавать и удалять объявления может только администратор.
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
}

// NewAnnouncementService создает новый сервис объявлений
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

// Create публикует объявление от имени администратора
func (s *AnnouncementService) Create(author *entity.User, title, body string) (*entity.Announcement, error) {
	if !author.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can post announcements", apperrors.ErrForbidden)
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, fmt.Errorf("%w: announcement title and body are required", apperrors.ErrValidation)
	}

	announcement := &entity.Announcement{
		AuthorID: author.ID,
		Title:    title,
		Body:     body,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		log.Printf("[AnnouncementService] Ошибка при создании объявления: %v", err)
		return nil, err
	}
	log.Printf("[AnnouncementService] Администратор #%d опубликовал объявление #%d", author.ID, announcement.ID)
	return announcement, nil
}

// List возвращает последние объявления
func (s *AnnouncementService) List(limit int) ([]entity.Announcement, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.announcementRepo.List(limit)
}

// Delete удаляет объявление
func (s *AnnouncementService) Delete(requester *entity.User, id uint) error {
	if !requester.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete announcements", apperrors.ErrForbidden)
	}
	return s.announcementRepo.Delete(id)
}
