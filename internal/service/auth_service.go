package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
	"github.com/Ibere22/Quiz-Website-sub001/pkg/auth"
)

// AuthService отвечает за регистрацию и вход пользователей.
// Хеширование пароля происходит в хуке сущности при сохранении.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя. Уникальность имени и почты
// обеспечивает база; нарушение возвращается как конфликт.
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entity.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Printf("[AuthService] Ошибка при регистрации пользователя %q: %v", username, err)
		return nil, err
	}
	log.Printf("[AuthService] Зарегистрирован пользователь #%d (%s)", user.ID, user.Username)
	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя с токеном доступа.
// Несуществующая почта и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("[AuthService] Неудачный вход: %s", email)
		return nil, "", apperrors.ErrUnauthorized
	}
	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для пользователя #%d", user.ID)
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[AuthService] Пользователь #%d вошел в систему", user.ID)
	return user, token, nil
}

// GetUserFromClaims загружает пользователя по данным проверенного токена
func (s *AuthService) GetUserFromClaims(claims *auth.JWTCustomClaims) (*entity.User, error) {
	return s.userRepo.GetByID(claims.UserID)
}
