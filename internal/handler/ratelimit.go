package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// The first hit in a window sets its expiry, so the counter resets on its own.
const signInLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// SignInLimiter counts sign-in attempts per key in a fixed redis window.
type SignInLimiter struct {
	client  *redis.Client
	script  *redis.Script
	limit   int
	window  time.Duration
	timeout time.Duration
}

func NewSignInLimiter(client *redis.Client, limit int, window, timeout time.Duration) *SignInLimiter {
	if client == nil {
		return nil
	}
	return &SignInLimiter{
		client:  client,
		script:  redis.NewScript(signInLimitScript),
		limit:   limit,
		window:  window,
		timeout: timeout,
	}
}

// Allow reports whether another attempt for key fits in the current window. It
// fails open: a redis outage must not lock everyone out of sign-in.
func (l *SignInLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || l.limit <= 0 || l.window <= 0 {
		return true
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, l.limit).Int64()
	if err != nil {
		slog.Warn("sign-in limiter unavailable", "error", err)
		return true
	}
	return allowed == 1
}
