package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ibere22/Quiz-Website-sub001/internal/handler/dto"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service"
)

// SocialHandler обрабатывает запросы дружб и личных сообщений
type SocialHandler struct {
	socialService *service.SocialService
}

// NewSocialHandler создает новый обработчик социальных связей
func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// SendFriendRequest создает запрос дружбы
func (h *SocialHandler) SendFriendRequest(c *gin.Context) {
	var req dto.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friendship, err := h.socialService.SendFriendRequest(currentUserID(c), req.AddresseeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, friendship)
}

// AcceptFriendRequest подтверждает входящий запрос дружбы
func (h *SocialHandler) AcceptFriendRequest(c *gin.Context) {
	friendshipID := c.MustGet("friendshipID").(uint)

	if err := h.socialService.AcceptFriendRequest(friendshipID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// ListFriends возвращает друзей текущего пользователя
func (h *SocialHandler) ListFriends(c *gin.Context) {
	friends, err := h.socialService.ListFriends(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListPendingRequests возвращает входящие запросы дружбы
func (h *SocialHandler) ListPendingRequests(c *gin.Context) {
	pending, err := h.socialService.ListPendingRequests(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// RemoveFriend удаляет дружбу
func (h *SocialHandler) RemoveFriend(c *gin.Context) {
	friendID := c.MustGet("friendID").(uint)

	if err := h.socialService.RemoveFriend(currentUserID(c), friendID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// SendMessage отправляет личное сообщение другу
func (h *SocialHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.socialService.SendMessage(currentUserID(c), req.RecipientID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// Inbox возвращает входящие сообщения
func (h *SocialHandler) Inbox(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.socialService.Inbox(currentUserID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkMessageRead помечает сообщение прочитанным
func (h *SocialHandler) MarkMessageRead(c *gin.Context) {
	messageID := c.MustGet("messageID").(uint)

	if err := h.socialService.MarkMessageRead(messageID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// UnreadCount возвращает число непрочитанных сообщений
func (h *SocialHandler) UnreadCount(c *gin.Context) {
	count, err := h.socialService.UnreadCount(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
