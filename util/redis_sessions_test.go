package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(config.ResetRedisClientForTest)
	return mock
}

func TestCacheSession(t *testing.T) {
	mock := useRedisMock(t)
	ctx := context.Background()

	mock.ExpectSet("session:tok", "7:2", time.Hour).SetVal("OK")
	mock.ExpectSAdd("user_sessions:7", "tok").SetVal(1)
	mock.ExpectExpire("user_sessions:7", time.Hour).SetVal(true)

	require.NoError(t, CacheSession(ctx, "tok", 7, 2, time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheSessionStopsOnSetError(t *testing.T) {
	mock := useRedisMock(t)

	mock.ExpectSet("session:tok", "7:2", time.Hour).SetErr(errors.New("down"))

	assert.Error(t, CacheSession(context.Background(), "tok", 7, 2, time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupCachedSession(t *testing.T) {
	mock := useRedisMock(t)
	ctx := context.Background()

	mock.ExpectGet("session:good").SetVal("9:5")
	uid, rid, err := LookupCachedSession(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, uint(9), uid)
	assert.Equal(t, uint32(5), rid)

	mock.ExpectGet("session:missing").RedisNil()
	_, _, err = LookupCachedSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotCached)

	mock.ExpectGet("session:junk").SetVal("not-a-pair")
	_, _, err = LookupCachedSession(ctx, "junk")
	assert.ErrorIs(t, err, ErrSessionNotCached)

	mock.ExpectGet("session:zero").SetVal("0:2")
	_, _, err = LookupCachedSession(ctx, "zero")
	assert.ErrorIs(t, err, ErrSessionNotCached)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropCachedSession(t *testing.T) {
	mock := useRedisMock(t)

	mock.ExpectDel("session:tok").SetVal(1)
	mock.ExpectEval(removeTokenScript, []string{"user_sessions:7"}, "tok").SetVal(int64(1))

	require.NoError(t, DropCachedSession(context.Background(), 7, "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateUserSessions(t *testing.T) {
	mock := useRedisMock(t)

	mock.ExpectSMembers("user_sessions:3").SetVal([]string{"a", "b"})
	mock.ExpectDel("session:a").SetVal(1)
	mock.ExpectDel("session:b").SetVal(1)
	mock.ExpectDel("user_sessions:3").SetVal(1)

	require.NoError(t, InvalidateUserSessions(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateUserSessionsSMembersError(t *testing.T) {
	mock := useRedisMock(t)

	mock.ExpectSMembers("user_sessions:3").SetErr(errors.New("boom"))

	assert.Error(t, InvalidateUserSessions(context.Background(), 3))
}

func TestSessionHelpersWithoutRedis(t *testing.T) {
	config.ResetRedisClientForTest()
	ctx := context.Background()

	assert.NoError(t, CacheSession(ctx, "t", 1, 2, time.Minute))
	assert.NoError(t, DropCachedSession(ctx, 1, "t"))
	assert.NoError(t, InvalidateUserSessions(ctx, 1))
	_, _, err := LookupCachedSession(ctx, "t")
	assert.ErrorIs(t, err, ErrSessionNotCached)
}
