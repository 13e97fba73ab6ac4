package telegram

import (
	"crypto/subtle"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// secretTokenHeader carries the secret_token registered with setWebhook.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// securityValidator checks the webhook secret and limits requests per chat.
type securityValidator struct {
	secret      string
	rateLimiter *rateLimiter
}

func newSecurityValidator(secret string, requestsPerMin int) *securityValidator {
	v := &securityValidator{secret: secret}
	if requestsPerMin > 0 {
		v.rateLimiter = newRateLimiter(requestsPerMin)
	}
	return v
}

// ValidateSecretToken verifies the header Telegram attaches to every update.
func (v *securityValidator) ValidateSecretToken(token string) error {
	if v.secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.secret)) != 1 {
		return fmt.Errorf("invalid secret token")
	}
	return nil
}

// CheckRateLimit enforces the per-chat limit.
func (v *securityValidator) CheckRateLimit(chatID int64) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(strconv.FormatInt(chatID, 10))
}

// rateLimiter keeps one token bucket per key and forgets idle keys.
type rateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 chats
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	if !rl.limiterFor(key).Allow() {
		return fmt.Errorf("rate limit exceeded for chat %s", key)
	}
	return nil
}

// limiterFor returns the bucket of key, creating it at most once.
func (rl *rateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}
