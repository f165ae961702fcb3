package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
	apperrors "github.com/Ibere22/Quiz-Website-sub001/internal/pkg/errors"
)

// QuizService отвечает за авторинг викторин: создание с валидацией вопросов,
// чтение и удаление. Прохождением занимается DeliveryService.
type QuizService struct {
	quizRepo       repository.QuizRepository
	achievementSvc *AchievementService
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	achievementSvc *AchievementService,
) *QuizService {
	return &QuizService{
		quizRepo:       quizRepo,
		achievementSvc: achievementSvc,
	}
}

// CreateQuiz создает викторину вместе с вопросами. Вопросы валидируются до
// записи: при любой ошибке валидации ничего не сохраняется и клиент получает
// исходный ввод обратно для исправления. Нумерация вопросов назначается
// по позиции в запросе, с единицы.
func (s *QuizService) CreateQuiz(creatorID uint, quiz *entity.Quiz, questions []entity.Question) (*entity.Quiz, error) {
	quiz.Title = strings.TrimSpace(quiz.Title)
	if quiz.Title == "" {
		return nil, fmt.Errorf("%w: quiz title is empty", apperrors.ErrValidation)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz needs at least one question", apperrors.ErrValidation)
	}
	if quiz.OnePage && quiz.ImmediateCorrection {
		// Несовместимые режимы: одностраничная викторина показывает все
		// вопросы сразу, немедленная проверка там не имеет смысла.
		return nil, fmt.Errorf("%w: one_page and immediate_correction are mutually exclusive", apperrors.ErrValidation)
	}

	quiz.CreatorID = creatorID
	for i := range questions {
		questions[i].OrderNum = i + 1
		if err := questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	// Викторина и вопросы пишутся одной транзакцией: сбой на полпути
	// не оставляет викторину без вопросов с занятым заголовком.
	if err := s.quizRepo.CreateWithQuestions(quiz, questions); err != nil {
		log.Printf("[QuizService] Ошибка при создании викторины %q: %v", quiz.Title, err)
		return nil, err
	}
	quiz.Questions = questions
	log.Printf("[QuizService] Пользователь #%d создал викторину #%d %q (%d вопросов)",
		creatorID, quiz.ID, quiz.Title, len(questions))

	// Авторские достижения не фатальны для создания.
	s.achievementSvc.EvaluateAuthoring(creatorID)
	return quiz, nil
}

// GetQuiz возвращает викторину с вопросами. Правильные ответы не попадают
// в сериализацию на уровне сущности.
func (s *QuizService) GetQuiz(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(id)
}

// ListQuizzes возвращает страницу списка викторин
func (s *QuizService) ListQuizzes(limit, offset int) ([]entity.Quiz, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.quizRepo.List(limit, offset)
}

// ListPopular возвращает викторины с наибольшим числом зачетных попыток
func (s *QuizService) ListPopular(limit int) ([]entity.Quiz, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.quizRepo.ListPopular(limit)
}

// ListByCreator возвращает викторины, созданные пользователем
func (s *QuizService) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	return s.quizRepo.ListByCreator(creatorID)
}

// DeleteQuiz удаляет викторину. Разрешено автору и администратору.
func (s *QuizService) DeleteQuiz(id uint, requester *entity.User) error {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return err
	}
	if quiz.CreatorID != requester.ID && !requester.IsAdmin() {
		return fmt.Errorf("%w: only the author or an admin can delete a quiz", apperrors.ErrForbidden)
	}
	if err := s.quizRepo.Delete(id); err != nil {
		log.Printf("[QuizService] Ошибка при удалении викторины #%d: %v", id, err)
		return err
	}
	log.Printf("[QuizService] Викторина #%d удалена пользователем #%d", id, requester.ID)
	return nil
}
