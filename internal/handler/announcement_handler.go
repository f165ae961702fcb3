package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ibere22/Quiz-Website-sub001/internal/handler/dto"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service"
)

// AnnouncementHandler обрабатывает запросы объявлений
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	userService         *service.UserService
}

// NewAnnouncementHandler создает новый обработчик объявлений
func NewAnnouncementHandler(
	announcementService *service.AnnouncementService,
	userService *service.UserService,
) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		userService:         userService,
	}
}

// List возвращает последние объявления (публичный маршрут)
func (h *AnnouncementHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	announcements, err := h.announcementService.List(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

// Create публикует объявление (только администратор)
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.userService.GetByID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	announcement, err := h.announcementService.Create(author, req.Title, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

// Delete удаляет объявление (только администратор)
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	announcementID := c.MustGet("announcementID").(uint)

	requester, err := h.userService.GetByID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.announcementService.Delete(requester, announcementID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
