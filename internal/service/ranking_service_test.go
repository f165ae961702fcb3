package service

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Моки репозиториев ---

type MockAttemptRepo struct {
	mock.Mock
}

func (m *MockAttemptRepo) Insert(attempt *entity.QuizAttempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetByID(id uint) (*entity.QuizAttempt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepo) ListByQuiz(quizID uint, practiceOnly bool) ([]entity.QuizAttempt, error) {
	args := m.Called(quizID, practiceOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepo) ListByUser(userID uint, limit, offset int) ([]entity.QuizAttempt, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepo) CountNonPractice(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepo) ListAllNonPractice() ([]entity.QuizAttempt, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) CreateWithQuestions(quiz *entity.Quiz, questions []entity.Question) error {
	args := m.Called(quiz, questions)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetByTitle(title string) (*entity.Quiz, error) {
	args := m.Called(title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) List(limit, offset int) ([]entity.Quiz, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListPopular(limit int) ([]entity.Quiz, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) CountByCreator(creatorID uint) (int64, error) {
	args := m.Called(creatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetUsernames(ids []uint) (map[uint]string, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]string), args.Error(1)
}

// --- Тесты составного порядка ---

func attempt(userID, quizID uint, score float64, total, timeTaken int, taken time.Time) entity.QuizAttempt {
	return entity.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		CorrectAnswers: int(score * float64(total) / 100),
		TotalQuestions: total,
		TimeTakenSec:   timeTaken,
		DateTaken:      taken,
	}
}

func TestCompositeLess_KeyOrder(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("score решает первым", func(t *testing.T) {
		a := attempt(1, 1, 90, 5, 100, base)
		b := attempt(2, 1, 80, 20, 10, base.Add(time.Hour))
		assert.True(t, compositeLess(&a, &b), "больший score выигрывает независимо от остальных ключей")
	})

	t.Run("при равном score выигрывает больший размер викторины", func(t *testing.T) {
		a := attempt(1, 1, 80, 20, 100, base)
		b := attempt(2, 1, 80, 10, 10, base)
		assert.True(t, compositeLess(&a, &b))
	})

	t.Run("при равных score и размере выигрывает меньшее время", func(t *testing.T) {
		a := attempt(1, 1, 80, 10, 30, base)
		b := attempt(2, 1, 80, 10, 60, base.Add(time.Hour))
		assert.True(t, compositeLess(&a, &b))
	})

	t.Run("полная ничья решается более свежей датой", func(t *testing.T) {
		a := attempt(1, 1, 80, 10, 30, base.Add(time.Hour))
		b := attempt(2, 1, 80, 10, 30, base)
		assert.True(t, compositeLess(&a, &b))
	})
}

/// Свойство: compositeLess задает строгий слабый порядок, сортировка им
// детерминирована на случайных входах.
func TestCompositeLess_Antisymmetry(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		a := attempt(1, 1, float64(rnd.Intn(5)*25), rnd.Intn(3)+1, rnd.Intn(3), base.Add(time.Duration(rnd.Intn(3))*time.Hour))
		b := attempt(2, 1, float64(rnd.Intn(5)*25), rnd.Intn(3)+1, rnd.Intn(3), base.Add(time.Duration(rnd.Intn(3))*time.Hour))
		if compositeLess(&a, &b) {
			assert.False(t, compositeLess(&b, &a), "порядок не может быть взаимным")
		}
	}
}

// Свойство: порядок транзитивен. Узкие дискретные диапазоны значений дают
// много совпадений по старшим ключам, так что сравнение регулярно доходит
// до младших ключей цепочки.
func TestCompositeLess_Transitivity(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		a := attempt(1, 1, float64(rnd.Intn(5)*25), rnd.Intn(3)+1, rnd.Intn(3), base.Add(time.Duration(rnd.Intn(3))*time.Hour))
		b := attempt(2, 1, float64(rnd.Intn(5)*25), rnd.Intn(3)+1, rnd.Intn(3), base.Add(time.Duration(rnd.Intn(3))*time.Hour))
		c := attempt(3, 1, float64(rnd.Intn(5)*25), rnd.Intn(3)+1, rnd.Intn(3), base.Add(time.Duration(rnd.Intn(3))*time.Hour))
		if compositeLess(&a, &b) && compositeLess(&b, &c) {
			assert.True(t, compositeLess(&a, &c),
				"a<b и b<c требуют a<c: a=%+v b=%+v c=%+v", a, b, c)
		}
	}
}

func TestBestPerUser(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	attempts := []entity.QuizAttempt{
		attempt(1, 1, 50, 10, 60, base),
		attempt(1, 1, 90, 10, 60, base.Add(time.Hour)), // лучшая попытка пользователя 1
		attempt(2, 1, 70, 10, 60, base),
	}

	best := bestPerUser(attempts)
	require.Len(t, best, 2, "по одной строке на пользователя")

	byUser := make(map[uint]entity.QuizAttempt)
	for _, a := range best {
		byUser[a.UserID] = a
	}
	assert.Equal(t, 90.0, byUser[1].Score, "для пользователя 1 должна остаться лучшая попытка")
	assert.Equal(t, 70.0, byUser[2].Score, "единственная попытка пользователя 2 не отбрасывается")
}

func TestGetQuizSummary(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	attempts := []entity.QuizAttempt{
		attempt(1, 5, 100, 10, 120, now.Add(-48*time.Hour)), // лидер за все время, вне суток
		attempt(1, 5, 60, 10, 60, now.Add(-time.Hour)),
		attempt(2, 5, 80, 10, 90, now.Add(-2*time.Hour)),
		attempt(3, 5, 80, 10, 30, now.Add(-30*time.Minute)), // быстрее пользователя 2
	}

	attemptRepo := new(MockAttemptRepo)
	quizRepo := new(MockQuizRepo)
	userRepo := new(MockUserRepo)
	attemptRepo.On("ListByQuiz", uint(5), false).Return(attempts, nil)
	userRepo.On("GetUsernames", mock.Anything).Return(map[uint]string{1: "alice", 2: "bob", 3: "carol"}, nil)

	svc := NewRankingService(attemptRepo, quizRepo, userRepo)
	summary, err := svc.GetQuizSummary(5, now)
	require.NoError(t, err)

	// За все время: лучшая попытка пользователя 1 (100) первая,
	// затем 3 (80, быстрее), затем 2 (80).
	require.Len(t, summary.AllTimeTop, 3)
	assert.Equal(t, "alice", summary.AllTimeTop[0].Username)
	assert.Equal(t, 100.0, summary.AllTimeTop[0].Score)
	assert.Equal(t, "carol", summary.AllTimeTop[1].Username)
	assert.Equal(t, "bob", summary.AllTimeTop[2].Username)

	// За сутки: попытка со score 100 вне окна, у пользователя 1 остается 60.
	require.Len(t, summary.LastDayTop, 3)
	assert.Equal(t, "carol", summary.LastDayTop[0].Username)
	assert.Equal(t, 60.0, summary.LastDayTop[2].Score, "вчерашний рекорд не попадает в суточный топ")

	// Недавние участники: только по дате, свежие первыми.
	require.Len(t, summary.RecentTestTakers, 3)
	assert.Equal(t, "carol", summary.RecentTestTakers[0].Username)
	assert.Equal(t, "alice", summary.RecentTestTakers[1].Username)
	assert.Equal(t, "bob", summary.RecentTestTakers[2].Username)
}

func TestGetQuizSummary_TopLimit(t *testing.T) {
	now := time.Now()
	var attempts []entity.QuizAttempt
	for i := 1; i <= 15; i++ {
		attempts = append(attempts, attempt(uint(i), 5, float64(i), 10, 60, now.Add(-time.Minute)))
	}

	usernames := make(map[uint]string)
	for i := 1; i <= 15; i++ {
		usernames[uint(i)] = "user"
	}

	attemptRepo := new(MockAttemptRepo)
	quizRepo := new(MockQuizRepo)
	userRepo := new(MockUserRepo)
	attemptRepo.On("ListByQuiz", uint(5), false).Return(attempts, nil)
	userRepo.On("GetUsernames", mock.Anything).Return(usernames, nil)

	svc := NewRankingService(attemptRepo, quizRepo, userRepo)
	summary, err := svc.GetQuizSummary(5, now)
	require.NoError(t, err)

	assert.Len(t, summary.AllTimeTop, 10, "топ ограничен десятью строками")
	assert.Len(t, summary.LastDayTop, 10)
	assert.Len(t, summary.RecentTestTakers, 10)
	assert.Equal(t, 15.0, summary.AllTimeTop[0].Score)
}

func TestGetLeaderboard_BestPerQuizUserPair(t *testing.T) {
	now := time.Now()
	attempts := []entity.QuizAttempt{
		attempt(1, 5, 50, 10, 60, now),
		attempt(1, 5, 90, 10, 60, now), // лучшая для пары (5, 1)
		attempt(1, 6, 70, 10, 60, now), // другая викторина - отдельная строка
		attempt(2, 5, 95, 10, 60, now),
	}

	attemptRepo := new(MockAttemptRepo)
	quizRepo := new(MockQuizRepo)
	userRepo := new(MockUserRepo)
	attemptRepo.On("ListAllNonPractice").Return(attempts, nil)
	userRepo.On("GetUsernames", mock.Anything).Return(map[uint]string{1: "alice", 2: "bob"}, nil)
	quizRepo.On("GetByID", uint(5)).Return(&entity.Quiz{ID: 5, Title: "Geography"}, nil)
	quizRepo.On("GetByID", uint(6)).Return(&entity.Quiz{ID: 6, Title: "History"}, nil)

	svc := NewRankingService(attemptRepo, quizRepo, userRepo)
	entries, err := svc.GetLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 3, "одна строка на пару (викторина, пользователь)")

	// Единый составной порядок для всех викторин сразу.
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].BestScore > entries[j].BestScore
	}))
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, 95.0, entries[0].BestScore)
	assert.Equal(t, "Geography", entries[0].QuizTitle)
	assert.Equal(t, 90.0, entries[1].BestScore)
	assert.Equal(t, "History", entries[2].QuizTitle)
}

func TestTopAttempt(t *testing.T) {
	now := time.Now()

	t.Run("без попыток возвращается nil без ошибки", func(t *testing.T) {
		attemptRepo := new(MockAttemptRepo)
		attemptRepo.On("ListByQuiz", uint(5), false).Return([]entity.QuizAttempt{}, nil)

		svc := NewRankingService(attemptRepo, new(MockQuizRepo), new(MockUserRepo))
		top, err := svc.TopAttempt(5)
		require.NoError(t, err)
		assert.Nil(t, top)
	})

	t.Run("возвращается лучшая в составном порядке", func(t *testing.T) {
		attempts := []entity.QuizAttempt{
			attempt(1, 5, 80, 10, 60, now),
			attempt(2, 5, 80, 10, 30, now),
			attempt(3, 5, 70, 10, 10, now),
		}
		attemptRepo := new(MockAttemptRepo)
		attemptRepo.On("ListByQuiz", uint(5), false).Return(attempts, nil)

		svc := NewRankingService(attemptRepo, new(MockQuizRepo), new(MockUserRepo))
		top, err := svc.TopAttempt(5)
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, uint(2), top.UserID, "при равном score выигрывает меньшее время")
	})
}
