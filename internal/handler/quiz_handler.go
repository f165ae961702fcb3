package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ibere22/Quiz-Website-sub001/internal/handler/dto"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService    *service.QuizService
	rankingService *service.RankingService
	userService    *service.UserService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	quizService *service.QuizService,
	rankingService *service.RankingService,
	userService *service.UserService,
) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		rankingService: rankingService,
		userService:    userService,
	}
}

// CreateQuiz обрабатывает запрос на создание викторины.
// При ошибке валидации исходный ввод возвращается клиенту для исправления.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, questions := req.ToEntities()
	created, err := h.quizService.CreateQuiz(currentUserID(c), quiz, questions)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      err.Error(),
				"error_type": "validation",
				"submitted":  req,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetQuiz возвращает викторину с вопросами (без правильных ответов)
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuiz(quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes возвращает страницу списка викторин
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	quizzes, err := h.quizService.ListQuizzes(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// ListPopular возвращает викторины с наибольшим числом прохождений
func (h *QuizHandler) ListPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	quizzes, err := h.quizService.ListPopular(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// GetQuizSummary возвращает сводку викторины: топы и недавних участников
func (h *QuizHandler) GetQuizSummary(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	// Убеждаемся, что викторина существует, прежде чем считать сводку.
	if _, err := h.quizService.GetQuiz(quizID); err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.rankingService.GetQuizSummary(quizID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteQuiz удаляет викторину (автор или администратор)
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	requester, err := h.userService.GetByID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.quizService.DeleteQuiz(quizID, requester); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}
