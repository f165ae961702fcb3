package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// AchievementRepo реализует repository.AchievementRepository
type AchievementRepo struct {
	db *gorm.DB
}

// NewAchievementRepo создает новый репозиторий достижений
func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Award выдает достижение пользователю. Идемпотентность обеспечивает
// уникальный индекс (user_id, type) с ON CONFLICT DO NOTHING: повторная
// выдача не ошибка, просто RowsAffected == 0.
func (r *AchievementRepo) Award(userID uint, achievementType string) (bool, error) {
	achievement := entity.Achievement{
		UserID:   userID,
		Type:     achievementType,
		EarnedAt: time.Now(),
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
		DoNothing: true,
	}).Create(&achievement)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser возвращает достижения пользователя в порядке получения
func (r *AchievementRepo) ListByUser(userID uint) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := r.db.Where("user_id = ?", userID).Order("earned_at").Find(&achievements).Error
	return achievements, err
}
