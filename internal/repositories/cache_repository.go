package repositories

import (
	"context"
	"time"

	"depositor/internal/models"
)

// UserCache is the slice of the Redis cache the user repository relies on.
type UserCache interface {
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	CacheUser(ctx context.Context, user *models.User) error
	InvalidateUser(ctx context.Context, userID uint) error
}

// Default cache expiration time
const DefaultExpiration = 24 * time.Hour
