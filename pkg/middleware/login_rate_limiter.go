package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter throttles login attempts per username using a Redis
// counter with a rolling one-minute window. Fails open when Redis is down so
// an outage never locks everyone out.
type LoginRateLimiter struct {
	client      *redis.Client
	maxAttempts int
}

func NewLoginRateLimiter(client *redis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{
		client:      client,
		maxAttempts: 10,
	}
}

// Allow reports whether another login attempt for username may proceed and
// counts the attempt.
func (l *LoginRateLimiter) Allow(username string) bool {
	if l.client == nil {
		return true
	}

	key := fmt.Sprintf("login_rate:%s", username)

	val, err := l.client.Get(context.Background(), key).Result()
	if err != nil && err != redis.Nil {
		return true // Allow if Redis error
	}

	var currentCount int
	if err != redis.Nil {
		currentCount, _ = strconv.Atoi(val)
	}

	if currentCount >= l.maxAttempts {
		return false
	}

	pipe := l.client.Pipeline()
	pipe.Incr(context.Background(), key)
	pipe.Expire(context.Background(), key, time.Minute)
	if _, err := pipe.Exec(context.Background()); err != nil {
		fmt.Printf("Login rate limiter error: %v\n", err)
	}

	return true
}
