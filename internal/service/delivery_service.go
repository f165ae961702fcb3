package service

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service/delivery"
)

// DeliveryService оркестрирует прохождение викторины: загружает данные,
// прогоняет события через машину состояний и отвечает за долговечность
// (сессии в Redis, попытки в Postgres). Сама машина состояний чистая и
// живет в пакете delivery.
type DeliveryService struct {
	quizRepo       repository.QuizRepository
	questionRepo   repository.QuestionRepository
	attemptRepo    repository.AttemptRepository
	sessionRepo    delivery.SessionRepository
	achievementSvc *AchievementService

	// Источник случайности для перемешивания вопросов.
	// rand.Rand не потокобезопасен, поэтому под мьютексом.
	rndMu sync.Mutex
	rnd   *rand.Rand

	// Подменяется в тестах
	now func() time.Time
}

// NewDeliveryService создает новый сервис прохождения викторин
func NewDeliveryService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	sessionRepo delivery.SessionRepository,
	achievementSvc *AchievementService,
) *DeliveryService {
	return &DeliveryService{
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		sessionRepo:    sessionRepo,
		achievementSvc: achievementSvc,
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
		now:            time.Now,
	}
}

// StartQuiz начинает прохождение викторины пользователем. Если у пользователя
// уже была активная сессия, она молча затирается: брошенное прохождение
// не оставляет следа в журнале попыток.
func (s *DeliveryService) StartQuiz(userID, quizID uint, practice bool) (*delivery.Presentation, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		// Викторина без вопросов непроходима, для клиента ее нет.
		return nil, fmt.Errorf("%w: quiz #%d has no questions", apperrors.ErrNotFound, quizID)
	}
	if practice && !quiz.AllowsPractice() {
		return nil, fmt.Errorf("%w: quiz #%d does not allow practice mode", apperrors.ErrValidation, quizID)
	}

	s.rndMu.Lock()
	session, presentation := delivery.Start(uuid.NewString(), userID, quiz, questions, practice, s.now(), s.rnd)
	s.rndMu.Unlock()

	if err := s.sessionRepo.Save(userID, session); err != nil {
		log.Printf("[DeliveryService] Ошибка при сохранении сессии пользователя #%d: %v", userID, err)
		return nil, err
	}
	log.Printf("[DeliveryService] Пользователь #%d начал викторину #%d (practice=%v)", userID, quizID, practice)
	return presentation, nil
}

// SubmitAnswer обрабатывает ответ на текущий вопрос в пошаговом режиме
func (s *DeliveryService) SubmitAnswer(userID uint, answer string) (*delivery.Output, error) {
	return s.applyEvent(userID, delivery.Event{Type: delivery.EventSubmitAnswer, Answer: answer})
}

// SubmitAll обрабатывает одностраничную отправку всех ответов сразу
func (s *DeliveryService) SubmitAll(userID uint, answers []string) (*delivery.Output, error) {
	return s.applyEvent(userID, delivery.Event{Type: delivery.EventSubmitAnswer, Answers: answers})
}

// Advance переводит сессию от обратной связи к следующему вопросу
func (s *DeliveryService) Advance(userID uint) (*delivery.Output, error) {
	return s.applyEvent(userID, delivery.Event{Type: delivery.EventAdvance})
}

// CurrentState возвращает текущий экран активной сессии без изменения
// состояния (перезагрузка страницы клиентом).
func (s *DeliveryService) CurrentState(userID uint) (*delivery.Presentation, error) {
	session, questions, err := s.loadSession(userID)
	if err != nil {
		return nil, err
	}
	out, err := delivery.Apply(session, delivery.Event{Type: "refresh"}, questions, s.now())
	if err != nil {
		return nil, err
	}
	return out.Presentation, nil
}

// applyEvent - общий путь всех событий: загрузить сессию, применить событие,
// сохранить либо завершить.
func (s *DeliveryService) applyEvent(userID uint, ev delivery.Event) (*delivery.Output, error) {
	session, questions, err := s.loadSession(userID)
	if err != nil {
		return nil, err
	}

	out, err := delivery.Apply(session, ev, questions, s.now())
	if err != nil {
		return nil, err
	}

	if out.Result != nil {
		return out, s.finish(userID, session, out.Result)
	}

	if err := s.sessionRepo.Save(userID, session); err != nil {
		log.Printf("[DeliveryService] Ошибка при сохранении сессии пользователя #%d: %v", userID, err)
		return nil, err
	}
	return out, nil
}

// loadSession восстанавливает активную сессию и ее вопросы в порядке показа
func (s *DeliveryService) loadSession(userID uint) (*delivery.Session, []entity.Question, error) {
	session, err := s.sessionRepo.Get(userID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, apperrors.ErrInvalidState
	}

	questions, err := s.questionRepo.GetByQuizID(session.QuizID)
	if err != nil {
		return nil, nil, err
	}

	ordered, err := reorder(session.Order, questions)
	if err != nil {
		// Викторина изменилась под активной сессией. Сессию уже не применить,
		// пользователь начинает заново.
		if delErr := s.sessionRepo.Delete(userID); delErr != nil {
			log.Printf("[DeliveryService] Ошибка при удалении устаревшей сессии пользователя #%d: %v", userID, delErr)
		}
		return nil, nil, err
	}
	return session, ordered, nil
}

// finish записывает попытку в журнал, запускает проверку достижений и
// уничтожает сессию. Вставка попытки фатальна для запроса: при ошибке
// сессия остается нетронутой в хранилище и событие можно повторить.
// Достижения и удаление сессии не фатальны.
func (s *DeliveryService) finish(userID uint, session *delivery.Session, result *delivery.Result) error {
	attempt := &entity.QuizAttempt{
		UserID:         userID,
		QuizID:         result.QuizID,
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		TimeTakenSec:   result.TimeTakenSec,
		DateTaken:      s.now(),
		IsPractice:     result.IsPractice,
	}
	if err := s.attemptRepo.Insert(attempt); err != nil {
		log.Printf("[DeliveryService] Ошибка при записи попытки пользователя #%d (викторина #%d): %v", userID, result.QuizID, err)
		return err
	}
	log.Printf("[DeliveryService] Пользователь #%d завершил викторину #%d: score=%.2f (%d/%d), время %dс",
		userID, result.QuizID, result.Score, result.CorrectAnswers, result.TotalQuestions, result.TimeTakenSec)

	s.achievementSvc.EvaluateAttempt(attempt)

	if err := s.sessionRepo.Delete(userID); err != nil {
		log.Printf("[DeliveryService] Ошибка при удалении завершенной сессии пользователя #%d: %v", userID, err)
	}
	return nil
}

// reorder восстанавливает порядок показа вопросов по списку ID из сессии
func reorder(order []uint, questions []entity.Question) ([]entity.Question, error) {
	byID := make(map[uint]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	out := make([]entity.Question, 0, len(order))
	for _, id := range order {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: question #%d is gone from the quiz", apperrors.ErrInvalidState, id)
		}
		out = append(out, q)
	}
	if len(out) != len(questions) {
		return nil, fmt.Errorf("%w: quiz question set changed during the session", apperrors.ErrInvalidState)
	}
	return out, nil
}
