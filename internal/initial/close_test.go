package initial

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCloseWithNothingConfigured(t *testing.T) {
	assert.NotPanics(t, Close)
}

func TestCloseReleasesRedisClient(t *testing.T) {
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	RedisClient = client

	Close()

	assert.Nil(t, RedisClient)
	assert.Error(t, client.Ping(context.Background()).Err(), "closed client must refuse commands")
}
