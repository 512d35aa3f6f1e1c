package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest injects a client, typically a redismock one.
func SetRedisClientForTest(client *redis.Client) {
	redisClient = client
}

// ResetRedisClientForTest clears the client and allows ConnectRedis to run again.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
