// Package redis keeps chat sessions in Redis. Keys expire on their own after
// the configured ttl, so there is nothing to sweep.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

// SessionStore implements the session store on a Redis client.
type SessionStore struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewClient parses a redis:// URL and checks the server answers.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// NewSessionStore creates a store writing keys "<prefix>session:<chat id>".
// A zero ttl keeps keys forever.
func NewSessionStore(rdb *goredis.Client, prefix string, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) key(chatID int64) string {
	return s.prefix + "session:" + strconv.FormatInt(chatID, 10)
}

func (s *SessionStore) Get(ctx context.Context, chatID int64) (*session.Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return session.Unmarshal(raw)
}

// Save writes the session and refreshes its ttl.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	raw, err := session.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(sess.ChatID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, chatID int64) error {
	if err := s.rdb.Del(ctx, s.key(chatID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// DeleteIdle is a no-op: Redis expires idle sessions itself.
func (s *SessionStore) DeleteIdle(context.Context, time.Time) ([]int64, error) {
	return nil, nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *SessionStore) Close() error {
	return s.rdb.Close()
}
