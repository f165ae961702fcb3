package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam создает middleware для числовых идентификаторов в URL:
// викторин, пользователей, заявок в друзья, сообщений и объявлений.
// paramName - имя параметра маршрута (обычно "id"), contextKey - ключ в
// контексте Gin, под которым обработчик заберет уже разобранное значение
// (например "quizID" или "friendshipID"). Нечисловой параметр отклоняется
// здесь с 400, до обращения к базе.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		// Обработчики ожидают uint, как в первичных ключах gorm
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
