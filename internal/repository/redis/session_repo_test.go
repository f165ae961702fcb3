package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibere22/Quiz-Website-sub001/internal/service/delivery"
)

func newTestSessionRepo(t *testing.T, ttl time.Duration) (*SessionRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "miniredis должен запускаться")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo, err := NewSessionRepo(client, ttl)
	require.NoError(t, err)
	return repo, mr
}

func testSession(userID uint) *delivery.Session {
	return &delivery.Session{
		ID:        "session-1",
		UserID:    userID,
		QuizID:    7,
		Order:     []uint{3, 1, 2},
		Answers:   []string{"", "", ""},
		Index:     0,
		Phase:     "presenting",
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestSessionRepo_SaveAndGet(t *testing.T) {
	repo, mr := newTestSessionRepo(t, time.Minute)

	// Act
	require.NoError(t, repo.Save(42, testSession(42)))

	// Assert: ключ привязан к пользователю и несет TTL
	assert.True(t, mr.Exists("delivery:session:user:42"), "Ключ сессии должен появиться в Redis")

	got, err := repo.Get(42)
	require.NoError(t, err)
	require.NotNil(t, got, "Сохраненная сессия должна читаться обратно")
	assert.Equal(t, "session-1", got.ID)
	assert.Equal(t, []uint{3, 1, 2}, got.Order, "Порядок вопросов должен пережить сериализацию")
}

func TestSessionRepo_GetMissingReturnsNil(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Minute)

	// Act
	got, err := repo.Get(99)

	// Assert: отсутствие сессии - не ошибка
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepo_SaveOverwritesPrevious(t *testing.T) {
	repo, _ := newTestSessionRepo(t, time.Minute)

	first := testSession(42)
	require.NoError(t, repo.Save(42, first))

	// Act: новое прохождение затирает брошенное
	second := testSession(42)
	second.ID = "session-2"
	second.QuizID = 8
	require.NoError(t, repo.Save(42, second))

	// Assert
	got, err := repo.Get(42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "session-2", got.ID)
	assert.Equal(t, uint(8), got.QuizID)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo, mr := newTestSessionRepo(t, time.Minute)

	require.NoError(t, repo.Save(42, testSession(42)))
	require.NoError(t, repo.Delete(42))

	assert.False(t, mr.Exists("delivery:session:user:42"), "Ключ должен удаляться")

	got, err := repo.Get(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepo_TTLExpiry(t *testing.T) {
	repo, mr := newTestSessionRepo(t, time.Minute)

	require.NoError(t, repo.Save(42, testSession(42)))

	// Act: продвигаем часы miniredis за TTL
	mr.FastForward(2 * time.Minute)

	// Assert: истекшая сессия неотличима от отсутствующей
	got, err := repo.Get(42)
	require.NoError(t, err)
	assert.Nil(t, got, "Истекшая сессия должна читаться как отсутствующая")
}
