package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Ibere22/Quiz-Website-sub001/internal/service/delivery"
)

// Ключ сессии строится от пользователя: одна активная сессия на пользователя,
// запись поверх существующего ключа реализует семантику брошенной викторины.
const sessionKeyFormat = "delivery:session:user:%d"

// SessionRepo реализует delivery.SessionRepository поверх Redis.
// Сессии эфемерны: TTL защищает от вечно висящих прохождений.
type SessionRepo struct {
	client redis.UniversalClient
	ctx    context.Context
	ttl    time.Duration
}

// NewSessionRepo создает новое хранилище сессий прохождения
func NewSessionRepo(client redis.UniversalClient, ttl time.Duration) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SessionRepo")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionRepo{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}, nil
}

// Save сохраняет сессию пользователя, затирая предыдущую
func (r *SessionRepo) Save(userID uint, session *delivery.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, sessionKey(userID), data, r.ttl).Err()
}

// Get возвращает активную сессию пользователя или nil, если ее нет
// (сессии не было либо TTL истек).
func (r *SessionRepo) Get(userID uint) (*delivery.Session, error) {
	data, err := r.client.Get(r.ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session delivery.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete уничтожает сессию пользователя
func (r *SessionRepo) Delete(userID uint) error {
	return r.client.Del(r.ctx, sessionKey(userID)).Err()
}

func sessionKey(userID uint) string {
	return fmt.Sprintf(sessionKeyFormat, userID)
}
