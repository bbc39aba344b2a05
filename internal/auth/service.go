package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PlazzaA/entrename/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "entrename-session||"
	sessionTokenLen  = 35
)

// Service stores login sessions as opaque random tokens mapped to user IDs
// in redis, with the session TTL applied natively by redis.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login creates a new session for the given user and returns the session token
func (as *Service) Login(ctx context.Context, userID int) (string, error) {
	token, err := as.RandStringFunc(sessionTokenLen)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Set(ctx, sessionKey, userID, as.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Logout removes the session; returns false when no such session existed
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	removed, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

// LoggedUserID resolves a session token to the owning user ID.
// Returns (0, false, nil) for an unknown or expired token.
func (as *Service) LoggedUserID(ctx context.Context, token string) (int, bool, error) {
	sessionKey := sessionKeyPrefix + token
	val, err := as.redisClient.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("malformed session value [%s]: %w", val, err)
	}

	return userID, true, nil
}
