package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// Redisバックエンドのセッションストア。
// 複数プロセスで共有できる。TTLはRedis側の期限に任せる。
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (st *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return st.Delete(ctx, s.ID)
	}

	return st.client.Set(ctx, redisKeyPrefix+s.ID, data, ttl).Err()
}

func (st *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := st.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

// 読み→fn→書き。リクエスト単位のlast-write-winsで適用する。
func (st *RedisStore) Update(ctx context.Context, sessionID string, fn func(s *Session) error) error {
	s, err := st.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := fn(s); err != nil {
		return err
	}

	return st.Save(ctx, s)
}

func (st *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return st.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}
