package service

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
)

// UserProfile - профиль пользователя с его историей и достижениями
type UserProfile struct {
	User         *entity.User         `json:"user"`
	Attempts     []entity.QuizAttempt `json:"attempts"`
	Achievements []entity.Achievement `json:"achievements"`
	Quizzes      []entity.Quiz        `json:"quizzes"`
}

// UserService собирает данные о пользователях для профилей
type UserService struct {
	userRepo        repository.UserRepository
	attemptRepo     repository.AttemptRepository
	achievementRepo repository.AchievementRepository
	quizRepo        repository.QuizRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	attemptRepo repository.AttemptRepository,
	achievementRepo repository.AchievementRepository,
	quizRepo repository.QuizRepository,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		attemptRepo:     attemptRepo,
		achievementRepo: achievementRepo,
		quizRepo:        quizRepo,
	}
}

// GetProfile возвращает профиль пользователя: последние попытки,
// достижения и созданные викторины.
func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.ListByUser(userID, 20, 0)
	if err != nil {
		return nil, err
	}
	achievements, err := s.achievementRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizRepo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		User:         user,
		Attempts:     attempts,
		Achievements: achievements,
		Quizzes:      quizzes,
	}, nil
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByUsername возвращает пользователя по имени
func (s *UserService) GetByUsername(username string) (*entity.User, error) {
	return s.userRepo.GetByUsername(username)
}

// ListAttempts возвращает страницу истории попыток пользователя
func (s *UserService) ListAttempts(userID uint, limit, offset int) ([]entity.QuizAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.attemptRepo.ListByUser(userID, limit, offset)
}
