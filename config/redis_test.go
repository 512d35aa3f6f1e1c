package config

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestConnectRedisDisabledByDefault(t *testing.T) {
	ResetRedisClientForTest()
	t.Cleanup(ResetRedisClientForTest)
	t.Setenv("APPENV", "")
	t.Setenv("REDIS_ENABLED", "")

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedisSkippedInTestEnv(t *testing.T) {
	ResetRedisClientForTest()
	t.Cleanup(ResetRedisClientForTest)
	t.Setenv("APPENV", "test")
	t.Setenv("REDIS_ENABLED", "true")

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedisConcurrentCallsShareResult(t *testing.T) {
	ResetRedisClientForTest()
	t.Cleanup(ResetRedisClientForTest)
	t.Setenv("REDIS_ENABLED", "false")

	done := make(chan error, 5)
	for i := 0; i < 5; i++ {
		go func() {
			_, err := ConnectRedis()
			done <- err
		}()
	}
	for i := 0; i < 5; i++ {
		assert.NoError(t, <-done)
	}
	assert.Nil(t, GetRedisClient())
}

func TestRedisTestHelpers(t *testing.T) {
	t.Cleanup(ResetRedisClientForTest)

	rdb, _ := redismock.NewClientMock()
	SetRedisClientForTest(rdb)
	assert.Same(t, rdb, GetRedisClient())

	ResetRedisClientForTest()
	assert.Nil(t, GetRedisClient())
}
