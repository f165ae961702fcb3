package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Ibere22/Quiz-Website-sub001/internal/service"
)

// UserHandler обрабатывает запросы профилей, лидерборда и достижений
type UserHandler struct {
	userService        *service.UserService
	rankingService     *service.RankingService
	achievementService *service.AchievementService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(
	userService *service.UserService,
	rankingService *service.RankingService,
	achievementService *service.AchievementService,
) *UserHandler {
	return &UserHandler{
		userService:        userService,
		rankingService:     rankingService,
		achievementService: achievementService,
	}
}

// GetProfile возвращает публичный профиль пользователя
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListMyAttempts возвращает историю попыток текущего пользователя
func (h *UserHandler) ListMyAttempts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	attempts, err := h.userService.ListAttempts(currentUserID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

// ListMyAchievements возвращает достижения текущего пользователя
func (h *UserHandler) ListMyAchievements(c *gin.Context) {
	achievements, err := h.achievementService.ListByUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// GetLeaderboard возвращает глобальный лидерборд
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.rankingService.GetLeaderboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// ExportLeaderboard выгружает глобальный лидерборд в XLSX
func (h *UserHandler) ExportLeaderboard(c *gin.Context) {
	entries, err := h.rankingService.GetLeaderboard()
	if err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[UserHandler] Ошибка при закрытии XLSX файла: %v", err)
		}
	}()

	sheet := "Leaderboard"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Quiz", "Username", "Best Score"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, entry := range entries {
		values := []interface{}{entry.QuizTitle, entry.Username, entry.BestScore}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("leaderboard_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[UserHandler] Ошибка при записи XLSX в ответ: %v", err)
	}
}
