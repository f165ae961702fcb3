package delivery

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func stepwiseQuiz(immediateCorrection bool) *entity.Quiz {
	return &entity.Quiz{
		ID:                  7,
		Title:               "Test Quiz",
		ImmediateCorrection: immediateCorrection,
	}
}

// orderedQuestions восстанавливает порядок вопросов по сессии,
// как это делает сервис доставки.
func orderedQuestions(s *Session, questions []entity.Question) []entity.Question {
	byID := make(map[uint]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	out := make([]entity.Question, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, byID[id])
	}
	return out
}

func TestMachine_ImmediateCorrectionScenario(t *testing.T) {
	// Сценарий: 2 вопроса, immediate correction, пошаговый режим.
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.QuestionResponse, Text: "2+2?", CorrectAnswer: "4", OrderNum: 1},
		{ID: 2, QuizID: 7, Type: entity.QuestionResponse, Text: "capital of France?", CorrectAnswer: "Paris,paris", OrderNum: 2},
	}
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s, p := Start("sess-1", 10, stepwiseQuiz(true), questions, false, start, fixedRand())
	require.Equal(t, PhasePresenting, s.Phase)
	require.Equal(t, 0, p.Index)
	require.NotNil(t, p.Question)

	// Отправляем "4" -> правильный ответ, фаза feedback
	out, err := Apply(s, Event{Type: EventSubmitAnswer, Answer: "4"}, questions, start)
	require.NoError(t, err)
	require.NotNil(t, out.Presentation)
	require.NotNil(t, out.Presentation.Feedback)
	assert.True(t, out.Presentation.Feedback.IsCorrect, "ответ '4' должен быть правильным")
	assert.Empty(t, out.Presentation.Feedback.CorrectAnswer, "правильный ответ не раскрывается при верном ответе")
	assert.Equal(t, PhaseFeedback, s.Phase)

	// Переходим дальше
	out, err = Apply(s, Event{Type: EventAdvance}, questions, start)
	require.NoError(t, err)
	require.NotNil(t, out.Presentation)
	assert.Equal(t, 1, out.Presentation.Index)
	assert.Nil(t, out.Presentation.Feedback)

	// Отправляем "london" -> неправильный ответ, правильный показан
	out, err = Apply(s, Event{Type: EventSubmitAnswer, Answer: "london"}, questions, start)
	require.NoError(t, err)
	require.NotNil(t, out.Presentation.Feedback)
	assert.False(t, out.Presentation.Feedback.IsCorrect)
	assert.Equal(t, "Paris,paris", out.Presentation.Feedback.CorrectAnswer,
		"при неправильном ответе показывается исходный текст correct_answer")

	// Переходим дальше -> завершение с 50.0
	out, err = Apply(s, Event{Type: EventAdvance}, questions, start.Add(30*time.Second))
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, 1, out.Result.CorrectAnswers)
	assert.Equal(t, 2, out.Result.TotalQuestions)
	assert.Equal(t, 50.0, out.Result.Score)
	assert.Equal(t, 30, out.Result.TimeTakenSec)
	assert.True(t, s.Completed())
}

func TestMachine_FeedbackResubmitIsIdempotent(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.FillInBlank, Text: "q1", CorrectAnswer: "a", OrderNum: 1},
		{ID: 2, QuizID: 7, Type: entity.FillInBlank, Text: "q2", CorrectAnswer: "b", OrderNum: 2},
	}
	now := time.Now()
	s, _ := Start("sess-2", 10, stepwiseQuiz(true), questions, false, now, fixedRand())

	// Первая отправка неправильная
	out, err := Apply(s, Event{Type: EventSubmitAnswer, Answer: "wrong"}, questions, now)
	require.NoError(t, err)
	assert.False(t, out.Presentation.Feedback.IsCorrect)

	// Повторная отправка в фазе feedback перезаписывает слот и пересчитывает проверку
	out, err = Apply(s, Event{Type: EventSubmitAnswer, Answer: "a"}, questions, now)
	require.NoError(t, err)
	assert.True(t, out.Presentation.Feedback.IsCorrect)
	assert.Equal(t, []string{"a"}, s.Answers, "слот ответа должен быть перезаписан, а не добавлен")
	assert.Equal(t, 0, s.Index, "индекс не двигается до события advance")
}

func TestMachine_OnePageScenario(t *testing.T) {
	// Одностраничный режим: все ответы одной отправкой, без промежуточных состояний.
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.FillInBlank, Text: "q1", CorrectAnswer: "a", OrderNum: 1},
		{ID: 2, QuizID: 7, Type: entity.FillInBlank, Text: "q2", CorrectAnswer: "b", OrderNum: 2},
		{ID: 3, QuizID: 7, Type: entity.FillInBlank, Text: "q3", CorrectAnswer: "c", OrderNum: 3},
	}
	quiz := &entity.Quiz{ID: 7, Title: "One Page", OnePage: true, ImmediateCorrection: true}
	start := time.Now()

	s, p := Start("sess-3", 10, quiz, questions, false, start, fixedRand())
	assert.False(t, s.ImmediateCorrection,
		"одностраничный режим исключает немедленную проверку по построению")
	assert.Len(t, p.Questions, 3, "в одностраничном режиме показываются все вопросы сразу")

	out, err := Apply(s, Event{Type: EventSubmitAnswer, Answers: []string{"a", "", "c"}}, questions, start.Add(10*time.Second))
	require.NoError(t, err)
	require.NotNil(t, out.Result, "одностраничная отправка завершает прохождение одним переходом")
	assert.Equal(t, 2, out.Result.CorrectAnswers)
	assert.InDelta(t, 66.67, out.Result.Score, 0.01)
}

func TestMachine_UnknownEventIsSafeNoOp(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.FillInBlank, Text: "q1", CorrectAnswer: "a", OrderNum: 1},
		{ID: 2, QuizID: 7, Type: entity.FillInBlank, Text: "q2", CorrectAnswer: "b", OrderNum: 2},
	}
	now := time.Now()
	s, _ := Start("sess-4", 10, stepwiseQuiz(false), questions, false, now, fixedRand())

	before := *s
	out, err := Apply(s, Event{Type: "bogus_action"}, questions, now)
	require.NoError(t, err, "неопознанное событие - не ошибка")
	require.NotNil(t, out.Presentation)
	assert.Nil(t, out.Presentation.Feedback)
	assert.Equal(t, before.Index, s.Index, "состояние не должно измениться")
	assert.Equal(t, before.Phase, s.Phase)
	assert.Equal(t, len(before.Answers), len(s.Answers))
}

func TestMachine_NoImmediateCorrectionAdvancesDirectly(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.FillInBlank, Text: "q1", CorrectAnswer: "a", OrderNum: 1},
		{ID: 2, QuizID: 7, Type: entity.FillInBlank, Text: "q2", CorrectAnswer: "b", OrderNum: 2},
	}
	now := time.Now()
	s, _ := Start("sess-5", 10, stepwiseQuiz(false), questions, false, now, fixedRand())

	out, err := Apply(s, Event{Type: EventSubmitAnswer, Answer: "a"}, questions, now)
	require.NoError(t, err)
	require.NotNil(t, out.Presentation, "без immediate correction отправка сразу двигает к следующему вопросу")
	assert.Equal(t, 1, out.Presentation.Index)
	assert.Nil(t, out.Presentation.Feedback)

	out, err = Apply(s, Event{Type: EventSubmitAnswer, Answer: "b"}, questions, now.Add(5*time.Second))
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, 100.0, out.Result.Score)
}

func TestMachine_RandomOrderShufflesOnce(t *testing.T) {
	questions := make([]entity.Question, 10)
	for i := range questions {
		questions[i] = entity.Question{ID: uint(i + 1), QuizID: 7, Type: entity.FillInBlank, Text: "q", CorrectAnswer: "a", OrderNum: i + 1}
	}
	quiz := &entity.Quiz{ID: 7, Title: "Shuffled", RandomOrder: true}
	now := time.Now()

	s, _ := Start("sess-6", 10, quiz, questions, false, now, fixedRand())

	// Перестановка зафиксирована: порядок в сессии не меняется между событиями.
	orderBefore := append([]uint(nil), s.Order...)
	ordered := orderedQuestions(s, questions)
	_, err := Apply(s, Event{Type: EventSubmitAnswer, Answer: "a"}, ordered, now)
	require.NoError(t, err)
	assert.Equal(t, orderBefore, s.Order)

	// Все вопросы присутствуют ровно по одному разу.
	seen := make(map[uint]bool, len(s.Order))
	for _, id := range s.Order {
		assert.False(t, seen[id], "вопрос #%d встретился дважды", id)
		seen[id] = true
	}
	assert.Len(t, seen, len(questions))
}

func TestMachine_AnswersLengthInvariant(t *testing.T) {
	// Инвариант: в стабильном состоянии len(Answers) == Index.
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.FillInBlank, Text: "q1", CorrectAnswer: "a", OrderNum: 1},
		{ID: 2, QuizID: 7, Type: entity.FillInBlank, Text: "q2", CorrectAnswer: "b", OrderNum: 2},
		{ID: 3, QuizID: 7, Type: entity.FillInBlank, Text: "q3", CorrectAnswer: "c", OrderNum: 3},
	}
	now := time.Now()
	s, _ := Start("sess-7", 10, stepwiseQuiz(false), questions, false, now, fixedRand())
	require.Len(t, s.Answers, s.Index)

	for i := 0; i < 2; i++ {
		out, err := Apply(s, Event{Type: EventSubmitAnswer, Answer: "x"}, questions, now)
		require.NoError(t, err)
		require.NotNil(t, out.Presentation)
		assert.Len(t, s.Answers, s.Index)
	}
}

func TestMachine_CompletedSessionRejectsEvents(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, QuizID: 7, Type: entity.FillInBlank, Text: "q1", CorrectAnswer: "a", OrderNum: 1},
	}
	now := time.Now()
	s, _ := Start("sess-8", 10, stepwiseQuiz(false), questions, false, now, fixedRand())

	out, err := Apply(s, Event{Type: EventSubmitAnswer, Answer: "a"}, questions, now)
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	_, err = Apply(s, Event{Type: EventSubmitAnswer, Answer: "a"}, questions, now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState,
		"события после завершения должны отклоняться: сессия уже уничтожена")
}
