package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/marketbase/catalog-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow pins the limiter clock so window boundaries are deterministic.
const fixedNow = int64(1700000100)

func setupRateLimiter(t *testing.T) (*redisRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.Config{
		RateConfig: config.RateConfig{
			MaxAttempts: 5,
			WindowSize:  15 * time.Second,
		},
	}

	repo := &redisRepository{
		client: client,
		cfg:    cfg,
		now:    func() time.Time { return time.Unix(fixedNow, 0) },
	}

	return repo, mock
}

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	key := "login_attempts:user@example.com"

	t.Run("Success - Under The Limit", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimiter(t)

		mock.ExpectZRemRangeByScore(key, "0", "1700000085").SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(fixedNow), Member: fixedNow}).SetVal(1)
		mock.ExpectZCard(key).SetVal(3)
		mock.ExpectExpire(key, 15*time.Second).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "user@example.com")

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining, "remaining should count the attempt just recorded")
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Limit Reached", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimiter(t)

		mock.ExpectZRemRangeByScore(key, "0", "1700000085").SetVal(1)
		mock.ExpectZAdd(key, redis.Z{Score: float64(fixedNow), Member: fixedNow}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, 15*time.Second).SetVal(true)

		// oldest surviving attempt was 10 seconds ago, so the caller can retry
		// once the remaining 5 seconds of the window have passed
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(fixedNow - 10), Member: "1700000090"}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "user@example.com")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 5, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Pipeline Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimiter(t)
		redisErr := errors.New("connection refused")

		mock.ExpectZRemRangeByScore(key, "0", "1700000085").SetErr(redisErr)

		// Act
		allowed, _, _, err := repo.CheckLoginRateLimit(ctx, "user@example.com")

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
		assert.ErrorIs(t, err, redisErr)
	})
}
