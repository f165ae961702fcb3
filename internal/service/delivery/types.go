package delivery

import (
	"time"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// Фазы сессии прохождения викторины
const (
	PhasePresenting = "presenting"
	PhaseFeedback   = "feedback"
	PhaseCompleted  = "completed"
)

// Типы событий, которые может прислать клиент
const (
	EventSubmitAnswer = "submit_answer"
	EventAdvance      = "advance"
)

// Session - эфемерное состояние одного прохождения викторины.
// Создается при старте, мутируется каждой отправкой ответа и уничтожается
// в момент завершения или при старте другой викторины (брошенная сессия).
//
// Инварианты: Index всегда валидный индекс в Order либо равен
// len(Order) (завершено); len(Answers) == Index в каждом стабильном
// состоянии (в фазе feedback ответ текущего вопроса уже записан,
// поэтому там len(Answers) == Index+1).
type Session struct {
	ID        string    `json:"id"` // uuid
	UserID    uint      `json:"user_id"`
	QuizID    uint      `json:"quiz_id"`
	Order     []uint    `json:"order"` // ID вопросов в порядке показа
	Answers   []string  `json:"answers"`
	Index     int       `json:"index"`
	Phase     string    `json:"phase"`
	StartedAt time.Time `json:"started_at"`

	// Настройки, зафиксированные при старте
	Practice            bool `json:"practice"`
	OnePage             bool `json:"one_page"`
	ImmediateCorrection bool `json:"immediate_correction"`
}

// SessionRepository хранит состояние сессий между запросами.
// Ключ - пользователь: одновременно у пользователя не больше одной активной
// сессии, Save поверх существующей реализует семантику
// "начал другую викторину - предыдущая брошена".
type SessionRepository interface {
	Save(userID uint, session *Session) error
	// Get возвращает nil без ошибки, если активной сессии нет.
	Get(userID uint) (*Session, error)
	Delete(userID uint) error
}

// Event - одно событие от клиента: отправка ответа (одного или всех сразу
// для одностраничного режима) либо переход к следующему вопросу.
type Event struct {
	Type    string
	Answer  string   // для пошагового режима
	Answers []string // для одностраничного режима
}

// Feedback - результат немедленной проверки одного вопроса.
// CorrectAnswer заполняется только для неправильного ответа.
type Feedback struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// Presentation - что показать пользователю на текущем шаге
type Presentation struct {
	SessionID string            `json:"session_id"`
	QuizID    uint              `json:"quiz_id"`
	Index     int               `json:"index"` // с нуля
	Total     int               `json:"total"`
	Question  *entity.Question  `json:"question,omitempty"`  // пошаговый режим
	Questions []entity.Question `json:"questions,omitempty"` // одностраничный режим
	Feedback  *Feedback         `json:"feedback,omitempty"`
}

// Result - итог завершенного прохождения
type Result struct {
	QuizID         uint    `json:"quiz_id"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Score          float64 `json:"score"`
	TimeTakenSec   int     `json:"time_taken_sec"`
	IsPractice     bool    `json:"is_practice"`
}

// Output - результат применения события: либо следующий экран,
// либо итог (ровно одно из полей не nil).
type Output struct {
	Presentation *Presentation
	Result       *Result
}

// Completed проверяет, достигла ли сессия терминального состояния
func (s *Session) Completed() bool {
	return s.Phase == PhaseCompleted
}
