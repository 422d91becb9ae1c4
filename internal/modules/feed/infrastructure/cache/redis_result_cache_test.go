package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisResultCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisResultCache(client), srv
}

func TestGetOrPopulateMissThenHit(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()
	var calls int32
	populate := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`["x"]`), nil
	}

	got, err := c.GetOrPopulate(ctx, "k", time.Minute, populate)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["x"]`), got)
	assert.EqualValues(t, 1, calls)

	got, err = c.GetOrPopulate(ctx, "k", time.Minute, populate)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["x"]`), got)
	assert.EqualValues(t, 1, calls, "hit must not repopulate")

	assert.Greater(t, srv.TTL("k"), time.Duration(0))
}

func TestGetOrPopulateConcurrentMissesPopulateOnce(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int32
	populate := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return []byte("v"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.GetOrPopulate(context.Background(), "k", time.Minute, populate)
			assert.NoError(t, err)
			assert.Equal(t, []byte("v"), got)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, calls)
}

func TestGetOrPopulatePropagatesPopulateError(t *testing.T) {
	c, srv := newTestCache(t)
	boom := errors.New("index unavailable")

	_, err := c.GetOrPopulate(context.Background(), "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, srv.Exists("k"), "failed population must not be cached")
}

func TestGetOrPopulateFailsOpenWhenRedisDown(t *testing.T) {
	c, srv := newTestCache(t)
	srv.Close()
	var calls int32
	populate := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("v"), nil
	}

	for i := 0; i < 2; i++ {
		got, err := c.GetOrPopulate(context.Background(), "k", time.Minute, populate)
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	}
	assert.EqualValues(t, 2, calls, "every call queries when the backend is down")
}

func TestGetOrPopulateNilClient(t *testing.T) {
	c := NewRedisResultCache(nil)

	got, err := c.GetOrPopulate(context.Background(), "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("v"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
