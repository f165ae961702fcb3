package repository

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// AnnouncementRepository определяет методы для работы с объявлениями
type AnnouncementRepository interface {
	Create(announcement *entity.Announcement) error
	List(limit int) ([]entity.Announcement, error)
	Delete(id uint) error
}
