package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// respondError переводит доменные ошибки в HTTP статусы.
// Текст доменной ошибки отдается клиенту, неожиданные ошибки скрываются.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		// Активной сессии нет: клиент должен начать прохождение заново.
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "invalid_state"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal"})
	}
}

// currentUserID возвращает ID пользователя, установленный middleware аутентификации
func currentUserID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}
