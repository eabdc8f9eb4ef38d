package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// incrWithTTLScript counts one attempt and starts the window on the first one.
var incrWithTTLScript = redis.NewScript(`
	local attempts = redis.call('INCR', KEYS[1])
	if attempts == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return attempts
`)

const otpAttemptsKeyPrefix = "otp_attempts:"

// OTPAttemptLimiter counts verification attempts against the current password-reset code.
type OTPAttemptLimiter interface {
	// Hit records one attempt and returns the number made so far.
	Hit(ctx context.Context, userID uuid.UUID) (int64, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}

type redisOTPAttemptLimiter struct {
	redis  *redis.Client
	window time.Duration
}

// NewOTPAttemptLimiter keeps counters for window, which should match the code lifetime.
func NewOTPAttemptLimiter(client *redis.Client, window time.Duration) OTPAttemptLimiter {
	return &redisOTPAttemptLimiter{redis: client, window: window}
}

func (l *redisOTPAttemptLimiter) Hit(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := otpAttemptsKeyPrefix + userID.String()
	attempts, err := incrWithTTLScript.Run(ctx, l.redis, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("count otp attempt: %w", err)
	}
	return attempts, nil
}

func (l *redisOTPAttemptLimiter) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := l.redis.Del(ctx, otpAttemptsKeyPrefix+userID.String()).Err(); err != nil {
		return fmt.Errorf("reset otp attempts: %w", err)
	}
	return nil
}
