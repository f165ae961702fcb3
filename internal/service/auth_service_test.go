package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
	"github.com/Ibere22/Quiz-Website-sub001/pkg/auth"
)

func newAuthService(t *testing.T, userRepo *MockUserRepo) *AuthService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	return NewAuthService(userRepo, jwtService)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(t, userRepo)

	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = 1
	}).Return(nil)

	user, err := svc.Register("alice", "Alice@Example.COM", "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email, "Почта должна приводиться к нижнему регистру")
	assert.Equal(t, entity.RoleUser, user.Role, "Новый пользователь получает роль user")
	userRepo.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"пустое имя пользователя", "  ", "a@b.com", "secret123"},
		{"пустая почта", "alice", "", "secret123"},
		{"слишком короткий пароль", "alice", "a@b.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepo)
			svc := newAuthService(t, userRepo)

			_, err := svc.Register(tt.username, tt.email, tt.password)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			userRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(t, userRepo)

	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(apperrors.ErrConflict)

	_, err := svc.Register("alice", "a@b.com", "secret123")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Конфликт уникальности должен дойти до клиента")
}

func TestLogin_Success(t *testing.T) {
	user := &entity.User{ID: 7, Username: "alice", Email: "a@b.com", Password: "secret123", Role: entity.RoleUser}
	require.NoError(t, user.BeforeSave(nil))

	userRepo := new(MockUserRepo)
	svc := newAuthService(t, userRepo)
	userRepo.On("GetByEmail", "a@b.com").Return(user, nil)

	got, token, err := svc.Login("A@B.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.NotEmpty(t, token, "Успешный вход должен выдавать токен")
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	user := &entity.User{ID: 7, Email: "a@b.com", Password: "secret123"}
	require.NoError(t, user.BeforeSave(nil))

	t.Run("неизвестная почта", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(t, userRepo)
		userRepo.On("GetByEmail", "nobody@b.com").Return(nil, apperrors.ErrNotFound)

		_, _, err := svc.Login("nobody@b.com", "secret123")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(t, userRepo)
		userRepo.On("GetByEmail", "a@b.com").Return(user, nil)

		_, _, err := svc.Login("a@b.com", "wrong-password")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "Ошибка должна совпадать с ошибкой неизвестной почты")
	})
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	user := &entity.User{ID: 7, Email: "a@b.com", Password: "secret123", Role: entity.RoleAdmin}
	require.NoError(t, user.BeforeSave(nil))

	userRepo := new(MockUserRepo)
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	svc := NewAuthService(userRepo, jwtService)
	userRepo.On("GetByEmail", "a@b.com").Return(user, nil)

	_, token, err := svc.Login("a@b.com", "secret123")
	require.NoError(t, err)

	claims, err := jwtService.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role, "Роль должна попадать в claims")
}
