package delivery

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// Машина состояний прохождения викторины.
//
// Пошаговый режим: NotStarted -> Presenting(i) -> [Feedback(i) ->] Presenting(i+1) -> ... -> Completed.
// Одностраничный режим: NotStarted -> Completed одним переходом (все ответы в одной отправке);
// немедленная проверка в нем невозможна по построению - виден сразу весь список вопросов.
//
// Функции ниже чистые относительно хранилищ: вся долговечность -
// ответственность вызывающего сервиса.

// Start создает сессию и первый экран. questions должны быть отсортированы
// по order_num; при quiz.RandomOrder порядок перемешивается ровно один раз
// здесь и далее не меняется (повторное получение экрана не перетасовывает).
func Start(sessionID string, userID uint, quiz *entity.Quiz, questions []entity.Question, practice bool, now time.Time, rnd *rand.Rand) (*Session, *Presentation) {
	order := make([]uint, len(questions))
	for i := range questions {
		order[i] = questions[i].ID
	}
	if quiz.RandomOrder {
		rnd.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	s := &Session{
		ID:                  sessionID,
		UserID:              userID,
		QuizID:              quiz.ID,
		Order:               order,
		Answers:             make([]string, 0, len(order)),
		Index:               0,
		Phase:               PhasePresenting,
		StartedAt:           now,
		Practice:            practice,
		OnePage:             quiz.OnePage,
		ImmediateCorrection: quiz.ImmediateCorrection && !quiz.OnePage,
	}
	return s, present(s, questions, nil)
}

// Apply применяет одно событие к сессии. questions должны идти в порядке
// s.Order (вызывающий восстанавливает порядок по ID). Сессия мутируется;
// ровно одно из полей Output заполнено.
//
// Неопознанное событие - безопасный no-op: состояние не меняется,
// текущий экран возвращается без проверки ответа.
func Apply(s *Session, ev Event, questions []entity.Question, now time.Time) (*Output, error) {
	if s == nil || s.Completed() {
		return nil, apperrors.ErrInvalidState
	}
	if len(questions) != len(s.Order) {
		return nil, fmt.Errorf("%w: session has %d questions, got %d", apperrors.ErrInvalidState, len(s.Order), len(questions))
	}

	if s.OnePage {
		return applyOnePage(s, ev, questions, now)
	}
	return applyStepwise(s, ev, questions, now)
}

// applyOnePage обрабатывает одностраничный режим: единственный значимый
// переход - отправка всех ответов сразу.
func applyOnePage(s *Session, ev Event, questions []entity.Question, now time.Time) (*Output, error) {
	if ev.Type != EventSubmitAnswer {
		return &Output{Presentation: present(s, questions, nil)}, nil
	}

	answers := make([]string, len(questions))
	copy(answers, ev.Answers) // недостающие слоты остаются пустой строкой
	s.Answers = answers
	s.Index = len(questions)
	return &Output{Result: complete(s, questions, now)}, nil
}

func applyStepwise(s *Session, ev Event, questions []entity.Question, now time.Time) (*Output, error) {
	switch {
	case ev.Type == EventSubmitAnswer && s.Phase == PhasePresenting:
		recordAnswer(s, ev.Answer)
		if s.ImmediateCorrection {
			s.Phase = PhaseFeedback
			return &Output{Presentation: present(s, questions, feedbackFor(&questions[s.Index], ev.Answer))}, nil
		}
		return advanceOrComplete(s, questions, now)

	case ev.Type == EventSubmitAnswer && s.Phase == PhaseFeedback:
		// Повторная отправка на том же вопросе идемпотентна:
		// слот перезаписывается, проверка пересчитывается.
		recordAnswer(s, ev.Answer)
		return &Output{Presentation: present(s, questions, feedbackFor(&questions[s.Index], ev.Answer))}, nil

	case ev.Type == EventAdvance && s.Phase == PhaseFeedback:
		s.Phase = PhasePresenting
		return advanceOrComplete(s, questions, now)

	default:
		// Неопознанное действие посреди прохождения: перерисовываем
		// текущий вопрос без обратной связи.
		return &Output{Presentation: present(s, questions, nil)}, nil
	}
}

// recordAnswer записывает или перезаписывает ответ в слот текущего вопроса
func recordAnswer(s *Session, answer string) {
	if len(s.Answers) == s.Index {
		s.Answers = append(s.Answers, answer)
	} else {
		s.Answers[s.Index] = answer
	}
}

func advanceOrComplete(s *Session, questions []entity.Question, now time.Time) (*Output, error) {
	if s.Index+1 < len(s.Order) {
		s.Index++
		return &Output{Presentation: present(s, questions, nil)}, nil
	}
	s.Index = len(s.Order)
	return &Output{Result: complete(s, questions, now)}, nil
}

// complete переводит сессию в терминальное состояние и считает итог
func complete(s *Session, questions []entity.Question, now time.Time) *Result {
	s.Phase = PhaseCompleted
	correct, score := Grade(questions, s.Answers)
	timeTaken := int(now.Sub(s.StartedAt).Seconds()) // floor
	if timeTaken < 0 {
		timeTaken = 0
	}
	return &Result{
		QuizID:         s.QuizID,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		Score:          score,
		TimeTakenSec:   timeTaken,
		IsPractice:     s.Practice,
	}
}

// feedbackFor формирует немедленную обратную связь по одному вопросу.
// Текст правильного ответа раскрывается только при неправильном ответе.
func feedbackFor(q *entity.Question, answer string) *Feedback {
	if q.CheckAnswer(answer) {
		return &Feedback{IsCorrect: true}
	}
	return &Feedback{IsCorrect: false, CorrectAnswer: q.CorrectAnswer}
}

// present строит экран для текущего состояния сессии
func present(s *Session, questions []entity.Question, fb *Feedback) *Presentation {
	p := &Presentation{
		SessionID: s.ID,
		QuizID:    s.QuizID,
		Index:     s.Index,
		Total:     len(s.Order),
		Feedback:  fb,
	}
	if s.OnePage {
		p.Questions = questions
		return p
	}
	if s.Index < len(questions) {
		p.Question = &questions[s.Index]
	}
	return p
}
