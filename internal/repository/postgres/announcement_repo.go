package postgres

import (
	"gorm.io/gorm"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// AnnouncementRepo реализует repository.AnnouncementRepository
type AnnouncementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo создает новый репозиторий объявлений
func NewAnnouncementRepo(db *gorm.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

// Create сохраняет новое объявление
func (r *AnnouncementRepo) Create(announcement *entity.Announcement) error {
	return r.db.Create(announcement).Error
}

// List возвращает последние объявления
func (r *AnnouncementRepo) List(limit int) ([]entity.Announcement, error) {
	var announcements []entity.Announcement
	err := r.db.Order("created_at DESC").Limit(limit).Find(&announcements).Error
	return announcements, err
}

// Delete удаляет объявление
func (r *AnnouncementRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Announcement{}, id).Error
}
