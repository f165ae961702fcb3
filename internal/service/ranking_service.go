package service

import (
	"log"
	"sort"
	"time"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/repository"
)

// Лимит строк в производных представлениях (топ викторины, недавние участники)
const topLimit = 10

// Кеш глобального лидерборда: пересборка по всему журналу недешева,
// а результат меняется только с появлением новых попыток.
const (
	leaderboardCacheKey = "ranking:leaderboard"
	leaderboardCacheTTL = time.Minute
)

// compositeLess - единый составной порядок для всех ранжирований.
// Ключи: score по убыванию, totalQuestions по убыванию, timeTaken по
// возрастанию, dateTaken по убыванию. Одна именованная функция вместо
// дублирования четырехключевой сортировки по месту вызова.
func compositeLess(a, b *entity.QuizAttempt) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.TotalQuestions != b.TotalQuestions {
		return a.TotalQuestions > b.TotalQuestions
	}
	if a.TimeTakenSec != b.TimeTakenSec {
		return a.TimeTakenSec < b.TimeTakenSec
	}
	return a.DateTaken.After(b.DateTaken)
}

// bestPerUser оставляет для каждого пользователя одну попытку - минимальную
// (лучшую) в составном порядке. Пользователи без попыток во входе отсутствуют
// и в результате; единственная попытка пользователя никогда не отбрасывается.
func bestPerUser(attempts []entity.QuizAttempt) []entity.QuizAttempt {
	best := make(map[uint]entity.QuizAttempt)
	for _, a := range attempts {
		current, ok := best[a.UserID]
		if !ok || compositeLess(&a, &current) {
			best[a.UserID] = a
		}
	}
	out := make([]entity.QuizAttempt, 0, len(best))
	for _, a := range best {
		out = append(out, a)
	}
	return out
}

// sortComposite сортирует попытки в составном порядке.
// Стабильная сортировка: попытки с полностью совпадающими ключами
// сохраняют взаимный порядок входа.
func sortComposite(attempts []entity.QuizAttempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		return compositeLess(&attempts[i], &attempts[j])
	})
}

// TopEntry - строка в топе викторины
type TopEntry struct {
	UserID         uint      `json:"user_id"`
	Username       string    `json:"username"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTakenSec   int       `json:"time_taken_sec"`
	DateTaken      time.Time `json:"date_taken"`
}

// QuizSummary - сводка по викторине для ее страницы
type QuizSummary struct {
	QuizID           uint       `json:"quiz_id"`
	AllTimeTop       []TopEntry `json:"all_time_top"`
	LastDayTop       []TopEntry `json:"last_day_top"`
	RecentTestTakers []TopEntry `json:"recent_test_takers"`
}

// LeaderboardEntry - строка глобального лидерборда.
// Производное представление: вычисляется, никогда не хранится.
type LeaderboardEntry struct {
	QuizID    uint    `json:"quiz_id"`
	QuizTitle string  `json:"quiz_title"`
	UserID    uint    `json:"user_id"`
	Username  string  `json:"username"`
	BestScore float64 `json:"best_score"`
}

// RankingService строит детерминированные ранжирования поверх журнала попыток.
// Все представления считаются только по зачетным (не тренировочным) попыткам.
type RankingService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
	userRepo    repository.UserRepository

	// Опциональный кеш лидерборда. Nil означает "считать каждый раз".
	cache repository.CacheRepository
}

// NewRankingService создает новый сервис ранжирования
func NewRankingService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
) *RankingService {
	return &RankingService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		userRepo:    userRepo,
	}
}

// SetCache включает кеширование глобального лидерборда
func (s *RankingService) SetCache(cache repository.CacheRepository) {
	s.cache = cache
}

// TopAttempt возвращает лучшую зачетную попытку викторины в составном порядке
// или nil, если зачетных попыток нет.
func (s *RankingService) TopAttempt(quizID uint) (*entity.QuizAttempt, error) {
	attempts, err := s.attemptRepo.ListByQuiz(quizID, false)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, nil
	}
	best := attempts[0]
	for _, a := range attempts[1:] {
		if compositeLess(&a, &best) {
			best = a
		}
	}
	return &best, nil
}

// GetQuizSummary строит сводку по викторине: топ за все время, топ за
// последние сутки (скользящие 24 часа, не календарный день) и недавние
// участники. Все три представления - редукция "лучшая попытка на
// пользователя", различается только фильтр и порядок.
func (s *RankingService) GetQuizSummary(quizID uint, now time.Time) (*QuizSummary, error) {
	attempts, err := s.attemptRepo.ListByQuiz(quizID, false)
	if err != nil {
		log.Printf("[RankingService] Ошибка при получении попыток викторины #%d: %v", quizID, err)
		return nil, err
	}

	summary := &QuizSummary{QuizID: quizID}

	// Топ за все время: best-per-user, составной порядок, top 10.
	allTime := bestPerUser(attempts)
	sortComposite(allTime)
	summary.AllTimeTop, err = s.toEntries(limitAttempts(allTime, topLimit))
	if err != nil {
		return nil, err
	}

	// Топ за сутки: сначала фильтр по дате, затем та же редукция.
	cutoff := now.Add(-24 * time.Hour)
	var lastDay []entity.QuizAttempt
	for _, a := range attempts {
		if a.DateTaken.After(cutoff) {
			lastDay = append(lastDay, a)
		}
	}
	lastDay = bestPerUser(lastDay)
	sortComposite(lastDay)
	summary.LastDayTop, err = s.toEntries(limitAttempts(lastDay, topLimit))
	if err != nil {
		return nil, err
	}

	// Недавние участники: best-per-user, но порядок только по дате.
	recent := bestPerUser(attempts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].DateTaken.After(recent[j].DateTaken)
	})
	summary.RecentTestTakers, err = s.toEntries(limitAttempts(recent, topLimit))
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// GetLeaderboard строит глобальный лидерборд: для каждой пары
// (викторина, пользователь) лучшая зачетная попытка, записи упорядочены
// в едином составном порядке по всем викторинам.
func (s *RankingService) GetLeaderboard() ([]LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []LeaderboardEntry
		if err := s.cache.GetJSON(leaderboardCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	attempts, err := s.attemptRepo.ListAllNonPractice()
	if err != nil {
		log.Printf("[RankingService] Ошибка при получении попыток для лидерборда: %v", err)
		return nil, err
	}

	// Лучшая попытка на пару (викторина, пользователь)
	type pair struct{ quizID, userID uint }
	best := make(map[pair]entity.QuizAttempt)
	for _, a := range attempts {
		k := pair{a.QuizID, a.UserID}
		current, ok := best[k]
		if !ok || compositeLess(&a, &current) {
			best[k] = a
		}
	}

	flat := make([]entity.QuizAttempt, 0, len(best))
	for _, a := range best {
		flat = append(flat, a)
	}
	sortComposite(flat)

	usernames, err := s.usernamesFor(flat)
	if err != nil {
		return nil, err
	}

	// Названия викторин для отображения
	titles := make(map[uint]string)
	entries := make([]LeaderboardEntry, 0, len(flat))
	for _, a := range flat {
		title, ok := titles[a.QuizID]
		if !ok {
			quiz, qErr := s.quizRepo.GetByID(a.QuizID)
			if qErr != nil {
				log.Printf("[RankingService] WARNING: Не удалось загрузить викторину #%d для лидерборда: %v", a.QuizID, qErr)
				titles[a.QuizID] = ""
			} else {
				titles[a.QuizID] = quiz.Title
			}
			title = titles[a.QuizID]
		}
		entries = append(entries, LeaderboardEntry{
			QuizID:    a.QuizID,
			QuizTitle: title,
			UserID:    a.UserID,
			Username:  usernames[a.UserID],
			BestScore: a.Score,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
			log.Printf("[RankingService] Ошибка при кешировании лидерборда: %v", err)
		}
	}
	return entries, nil
}

func limitAttempts(attempts []entity.QuizAttempt, limit int) []entity.QuizAttempt {
	if len(attempts) > limit {
		return attempts[:limit]
	}
	return attempts
}

func (s *RankingService) toEntries(attempts []entity.QuizAttempt) ([]TopEntry, error) {
	usernames, err := s.usernamesFor(attempts)
	if err != nil {
		return nil, err
	}
	entries := make([]TopEntry, 0, len(attempts))
	for _, a := range attempts {
		entries = append(entries, TopEntry{
			UserID:         a.UserID,
			Username:       usernames[a.UserID],
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			TimeTakenSec:   a.TimeTakenSec,
			DateTaken:      a.DateTaken,
		})
	}
	return entries, nil
}

func (s *RankingService) usernamesFor(attempts []entity.QuizAttempt) (map[uint]string, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(attempts))
	for _, a := range attempts {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	return s.userRepo.GetUsernames(ids)
}
