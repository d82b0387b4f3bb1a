package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"depositor/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds keys such as "user:id:7".
func GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// cachedUser keeps the fields the auth gate needs; the password hash never reaches Redis.
type cachedUser struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	TokenVersion int       `json:"token_version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, GenerateKey("user", "id", user.ID), cachedUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
}

func (s *CacheService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var cu cachedUser
	found, err := s.Get(ctx, GenerateKey("user", "id", userID), &cu)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}

	user := &models.User{
		Email:        cu.Email,
		Name:         cu.Name,
		Role:         cu.Role,
		TokenVersion: cu.TokenVersion,
	}
	user.ID = cu.ID
	user.CreatedAt = cu.CreatedAt
	user.UpdatedAt = cu.UpdatedAt
	return user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, GenerateKey("user", "id", userID))
}

// Unread notification counters. Every invalidation bumps a version key; a
// read-through only stores its count if the version it read before counting is
// still current.

// UnreadCountTTL bounds how long a counter can be served without being recomputed.
const UnreadCountTTL = 5 * time.Minute

var ErrStaleUnreadCount = errors.New("unread count is stale")

func unreadKey(userID uint) string {
	return GenerateKey("notifications", "unread", userID)
}

func unreadVersionKey(userID uint) string {
	return GenerateKey("notifications", "unread_version", userID)
}

func (s *CacheService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	val, err := s.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// UnreadVersion returns the current invalidation version, 0 if none was recorded.
func (s *CacheService) UnreadVersion(ctx context.Context, userID uint) (int64, error) {
	v, err := s.client.Get(ctx, unreadVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetUnreadCount stores count unless the counter was invalidated after version was read.
func (s *CacheService) SetUnreadCount(ctx context.Context, userID uint, count, version int64) error {
	versionKey := unreadVersionKey(userID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return ErrStaleUnreadCount
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, unreadKey(userID), count, UnreadCountTTL)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleUnreadCount
	}
	return err
}

func (s *CacheService) InvalidateUnreadCount(ctx context.Context, userID uint) error {
	versionKey := unreadVersionKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, s.ttl)
		pipe.Del(ctx, unreadKey(userID))
		return nil
	})
	return err
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
