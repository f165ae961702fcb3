package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ibere22/Quiz-Website-sub001/internal/handler/dto"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service/delivery"
)

// DeliveryHandler обрабатывает запросы прохождения викторин
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler создает новый обработчик прохождения
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// StartQuiz начинает прохождение викторины текущим пользователем
func (h *DeliveryHandler) StartQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req dto.StartQuizRequest
	// Тело опционально: пустое тело означает зачетный режим.
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	presentation, err := h.deliveryService.StartQuiz(currentUserID(c), quizID, req.Practice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentation)
}

// SubmitAnswer принимает ответ: один в пошаговом режиме либо все сразу
// в одностраничном.
func (h *DeliveryHandler) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var out *delivery.Output
	var err error
	if len(req.Answers) > 0 {
		out, err = h.deliveryService.SubmitAll(currentUserID(c), req.Answers)
	} else {
		out, err = h.deliveryService.SubmitAnswer(currentUserID(c), req.Answer)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondOutput(c, out)
}

// Advance переводит прохождение от обратной связи к следующему вопросу
func (h *DeliveryHandler) Advance(c *gin.Context) {
	out, err := h.deliveryService.Advance(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOutput(c, out)
}

// CurrentState возвращает текущий экран активного прохождения
func (h *DeliveryHandler) CurrentState(c *gin.Context) {
	presentation, err := h.deliveryService.CurrentState(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentation)
}

// respondOutput сериализует результат события: либо следующий экран,
// либо итог завершенного прохождения.
func respondOutput(c *gin.Context, out *delivery.Output) {
	if out.Result != nil {
		c.JSON(http.StatusOK, gin.H{"completed": true, "result": out.Result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": false, "presentation": out.Presentation})
}
