package service

import (
	"log"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
)

// AchievementService вычисляет условия выдачи достижений.
// Сервис только запрашивает выдачу: идемпотентность (не более одной выдачи
// типа на пользователя) обеспечивает репозиторий. Ошибка выдачи не фатальна
// для вызывающего потока: результат прохождения показывается в любом случае.
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	attemptRepo     repository.AttemptRepository
	quizRepo        repository.QuizRepository
	ranking         *RankingService
}

// NewAchievementService создает новый сервис достижений
func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	ranking *RankingService,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		attemptRepo:     attemptRepo,
		quizRepo:        quizRepo,
		ranking:         ranking,
	}
}

// EvaluateAttempt проверяет правила, срабатывающие при завершении прохождения.
// Попытка к этому моменту уже записана в журнал: правило "я лучший" считает
// топ по журналу, включающему свежую попытку. Правила независимы, проверяются
// по порядку; отказ одного не мешает остальным.
func (s *AchievementService) EvaluateAttempt(attempt *entity.QuizAttempt) {
	if attempt.IsPractice {
		s.award(attempt.UserID, entity.AchievementPracticeMakesPerfect)
		return
	}

	count, err := s.attemptRepo.CountNonPractice(attempt.UserID)
	if err != nil {
		log.Printf("[AchievementService] Ошибка при подсчете попыток пользователя #%d: %v", attempt.UserID, err)
	} else if count >= 10 {
		s.award(attempt.UserID, entity.AchievementQuizMachine)
	}

	top, err := s.ranking.TopAttempt(attempt.QuizID)
	if err != nil {
		log.Printf("[AchievementService] Ошибка при поиске лучшей попытки викторины #%d: %v", attempt.QuizID, err)
	} else if top != nil && top.UserID == attempt.UserID {
		s.award(attempt.UserID, entity.AchievementIAmTheGreatest)
	}
}

// EvaluateAuthoring проверяет авторские правила после создания викторины:
// пороги 1, 5 и 10 созданных викторин.
func (s *AchievementService) EvaluateAuthoring(creatorID uint) {
	count, err := s.quizRepo.CountByCreator(creatorID)
	if err != nil {
		log.Printf("[AchievementService] Ошибка при подсчете викторин автора #%d: %v", creatorID, err)
		return
	}
	if count >= 1 {
		s.award(creatorID, entity.AchievementAmateurAuthor)
	}
	if count >= 5 {
		s.award(creatorID, entity.AchievementProlificAuthor)
	}
	if count >= 10 {
		s.award(creatorID, entity.AchievementProdigiousAuthor)
	}
}

// ListByUser возвращает достижения пользователя
func (s *AchievementService) ListByUser(userID uint) ([]entity.Achievement, error) {
	return s.achievementRepo.ListByUser(userID)
}

func (s *AchievementService) award(userID uint, achievementType string) {
	granted, err := s.achievementRepo.Award(userID, achievementType)
	if err != nil {
		log.Printf("[AchievementService] Ошибка при выдаче достижения %s пользователю #%d: %v", achievementType, userID, err)
		return
	}
	if granted {
		log.Printf("[AchievementService] Пользователь #%d получил достижение %s", userID, achievementType)
	}
}
