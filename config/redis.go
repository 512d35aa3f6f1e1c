package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// ConnectRedis initializes the singleton Redis client used for session
// caching and rate limiting. Redis is opt-in through REDIS_ENABLED=true; a nil
// client means callers fall back to the database.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		if os.Getenv("APPENV") == "test" || os.Getenv("REDIS_ENABLED") != "true" {
			return
		}

		addr := getEnv("REDIS_ADDR", "localhost:6379")
		dbNum := 0
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			if v, e := strconv.Atoi(dbStr); e == nil {
				dbNum = v
			}
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       dbNum,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err = rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			err = fmt.Errorf("redis ping failed: %w", err)
			return
		}

		redisClient = rdb
		log.Info().Str("addr", addr).Msg("connected to redis")
	})
	return redisClient, err
}

// GetRedisClient returns the Redis client, or nil when Redis is not in use.
func GetRedisClient() *redis.Client {
	return redisClient
}
