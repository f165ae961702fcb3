package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// QuestionType определяет тип вопроса. Набор типов закрытый: switch по типу
// обязан покрывать все варианты, чтобы компилятор/линтер ловил новые типы.
type QuestionType string

const (
	QuestionResponse QuestionType = "question_response"
	FillInBlank      QuestionType = "fill_in_blank"
	MultipleChoice   QuestionType = "multiple_choice"
	PictureResponse  QuestionType = "picture_response"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Question представляет вопрос викторины.
// CorrectAnswer хранит один или несколько допустимых ответов через запятую:
// совпадение с любым из них засчитывается как правильный ответ.
type Question struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	QuizID        uint         `gorm:"not null;index;uniqueIndex:idx_quiz_order,priority:1" json:"quiz_id"`
	Type          QuestionType `gorm:"size:30;not null" json:"type"`
	Text          string       `gorm:"size:500;not null" json:"text"`
	CorrectAnswer string       `gorm:"size:500;not null" json:"-"` // Скрыто от клиента
	Choices       StringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"choices,omitempty"`
	ImageURL      string       `gorm:"size:255;not null;default:''" json:"image_url,omitempty"`
	OrderNum      int          `gorm:"not null;uniqueIndex:idx_quiz_order,priority:2" json:"order_num"` // Позиция внутри викторины, с 1
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Alternatives возвращает список допустимых ответов (разделитель - запятая),
// каждый без окружающих пробелов.
func (q *Question) Alternatives() []string {
	parts := strings.Split(q.CorrectAnswer, ",")
	alts := make([]string, 0, len(parts))
	for _, p := range parts {
		alts = append(alts, strings.TrimSpace(p))
	}
	return alts
}

// CheckAnswer проверяет ответ пользователя: обрезает пробелы и сравнивает
// без учета регистра с каждым из допустимых вариантов. Правило едино для
// всех типов вопросов - тип ограничивает только форму ввода на клиенте.
func (q *Question) CheckAnswer(submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		// Пустой ответ никогда не засчитывается, даже если среди альтернатив
		// оказалась пустая строка (например, из-за висячей запятой).
		return false
	}
	for _, alt := range q.Alternatives() {
		if strings.EqualFold(submitted, alt) {
			return true
		}
	}
	return false
}

// Validate проверяет согласованность вопроса с его типом.
// Switch намеренно без default по известным типам: новый тип вопроса
// должен получить свою ветку валидации.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: question has no correct answer", apperrors.ErrValidation)
	}
	if q.OrderNum < 1 {
		return fmt.Errorf("%w: order_num must be 1-based, got %d", apperrors.ErrValidation, q.OrderNum)
	}

	switch q.Type {
	case QuestionResponse, FillInBlank:
		// Свободный ввод: достаточно текста и правильного ответа.
	case MultipleChoice:
		if len(q.Choices) < 2 {
			return fmt.Errorf("%w: multiple-choice question needs at least 2 choices", apperrors.ErrValidation)
		}
		// Каждый допустимый ответ обязан встречаться среди вариантов,
		// иначе вопрос невозможно пройти.
		for _, alt := range q.Alternatives() {
			if !containsFold(q.Choices, alt) {
				return fmt.Errorf("%w: correct answer %q is not among the listed choices", apperrors.ErrValidation, alt)
			}
		}
	case PictureResponse:
		if strings.TrimSpace(q.ImageURL) == "" {
			return fmt.Errorf("%w: picture-response question needs image_url", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, q.Type)
	}
	return nil
}

func containsFold(list []string, target string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), target) {
			return true
		}
	}
	return false
}
