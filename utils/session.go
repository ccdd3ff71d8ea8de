package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/urocare/clinic-booking/redis"
)

// Sessions live in Redis so they survive restarts and are visible to every
// server instance.

const sessionTTL = 24 * time.Hour

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

// CreateSession stores a fresh session id for the user and returns it.
func CreateSession(userID uint) (string, error) {
	sessionID := uuid.NewString()
	err := redis.Client.Set(redis.Ctx, sessionKey(userID), sessionID, sessionTTL).Err()
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// GetSession returns the stored session id for the user, or "" if none.
func GetSession(userID uint) (string, error) {
	sessionID, err := redis.Client.Get(redis.Ctx, sessionKey(userID)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// DeleteSession removes the user's session (logout).
func DeleteSession(userID uint) error {
	return redis.Client.Del(redis.Ctx, sessionKey(userID)).Err()
}
