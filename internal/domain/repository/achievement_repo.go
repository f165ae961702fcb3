package repository

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// AchievementRepository определяет методы для работы с достижениями.
// Award идемпотентен: повторная выдача того же типа тому же пользователю -
// тихий no-op, возвращающий false.
type AchievementRepository interface {
	// Award выдает достижение. Возвращает true, если достижение выдано впервые,
	// false - если пользователь уже имел его.
	Award(userID uint, achievementType string) (bool, error)
	ListByUser(userID uint) ([]entity.Achievement, error)
}
