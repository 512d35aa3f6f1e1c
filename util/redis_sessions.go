package util

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotCached is returned when Redis holds no usable entry for a token.
var ErrSessionNotCached = errors.New("session not cached")

// SessionKey is the Redis key holding "userID:roleID" for a login token.
func SessionKey(token string) string {
	return "session:" + token
}

func userSetKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// CacheSession stores the session for ttl and tracks the token in the
// per-user set so all sessions of a user can be revoked at once. A nil Redis
// client makes this a no-op.
func CacheSession(ctx context.Context, token string, userID uint, roleID uint32, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Set(ctx, SessionKey(token), fmt.Sprintf("%d:%d", userID, roleID), ttl).Err(); err != nil {
		return err
	}
	return AddSessionToUserSet(ctx, userID, token, ttl)
}

// LookupCachedSession resolves a token from Redis. Malformed entries are
// reported as ErrSessionNotCached so callers fall back to the database.
func LookupCachedSession(ctx context.Context, token string) (uint, uint32, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, 0, ErrSessionNotCached
	}
	val, err := rdb.Get(ctx, SessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, ErrSessionNotCached
	}
	if err != nil {
		return 0, 0, err
	}
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrSessionNotCached
	}
	uid, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || uid == 0 {
		return 0, 0, ErrSessionNotCached
	}
	rid, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, ErrSessionNotCached
	}
	return uint(uid), uint32(rid), nil
}

// DropCachedSession removes a single token from Redis.
func DropCachedSession(ctx context.Context, userID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Del(ctx, SessionKey(token)).Err(); err != nil {
		return err
	}
	return RemoveSessionTokenFromUserSet(ctx, userID, token)
}

// AddSessionToUserSet adds token to the user's set and extends the set's TTL
// to cover the newest session.
func AddSessionToUserSet(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSetKey(userID)
	if err := rdb.SAdd(ctx, key, token).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, key, ttl).Err()
}

const removeTokenScript = `
local removed = redis.call('SREM', KEYS[1], ARGV[1])
if removed > 0 and redis.call('SCARD', KEYS[1]) == 0 then
	redis.call('DEL', KEYS[1])
end
return removed
`

// RemoveSessionTokenFromUserSet removes one token and deletes the set once empty.
func RemoveSessionTokenFromUserSet(ctx context.Context, userID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Eval(ctx, removeTokenScript, []string{userSetKey(userID)}, token).Err()
}

// InvalidateUserSessions deletes every cached session of the user.
func InvalidateUserSessions(ctx context.Context, userID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSetKey(userID)
	members, err := rdb.SMembers(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	for _, tok := range members {
		if err := rdb.Del(ctx, SessionKey(tok)).Err(); err != nil {
			return err
		}
	}
	return rdb.Del(ctx, key).Err()
}
