package dto

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// QuestionRequest представляет один вопрос в запросе на создание викторины.
// Позиция в списке определяет порядок показа.
type QuestionRequest struct {
	Type          string   `json:"type" binding:"required,oneof=question_response fill_in_blank multiple_choice picture_response"`
	Text          string   `json:"text" binding:"required,min=1,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,min=1,max=500"`
	Choices       []string `json:"choices" binding:"omitempty,max=10"`
	ImageURL      string   `json:"image_url" binding:"omitempty,max=255"`
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Title               string            `json:"title" binding:"required,min=3,max=100"`
	Description         string            `json:"description" binding:"omitempty,max=500"`
	RandomOrder         bool              `json:"random_order"`
	OnePage             bool              `json:"one_page"`
	ImmediateCorrection bool              `json:"immediate_correction"`
	PracticeMode        bool              `json:"practice_mode"`
	Questions           []QuestionRequest `json:"questions" binding:"required,min=1,max=100,dive"`
}

// ToEntities преобразует запрос в сущности викторины и вопросов
func (r *CreateQuizRequest) ToEntities() (*entity.Quiz, []entity.Question) {
	quiz := &entity.Quiz{
		Title:               r.Title,
		Description:         r.Description,
		RandomOrder:         r.RandomOrder,
		OnePage:             r.OnePage,
		ImmediateCorrection: r.ImmediateCorrection,
		PracticeMode:        r.PracticeMode,
	}
	questions := make([]entity.Question, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, entity.Question{
			Type:          entity.QuestionType(q.Type),
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Choices:       entity.StringArray(q.Choices),
			ImageURL:      q.ImageURL,
		})
	}
	return quiz, questions
}
