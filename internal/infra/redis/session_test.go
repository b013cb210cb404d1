package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Key(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(nil, "maktabati:", time.Hour)
	assert.Equal(t, "maktabati:session:42", s.key(42))
	assert.Equal(t, "maktabati:session:-1001234", s.key(-1001234))
}

func TestSessionStore_DeleteIdleIsNoop(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(nil, "", time.Hour)
	ids, err := s.DeleteIdle(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewClient_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestSessionStore_UnreachableServer(t *testing.T) {
	t.Parallel()

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewSessionStore(rdb, "test:", time.Minute)
	_, err := s.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get session")
}
