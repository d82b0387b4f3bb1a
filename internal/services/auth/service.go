package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "depositor/internal/errors"
	"depositor/internal/models"
	"depositor/internal/repositories"
	"depositor/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service is the authentication gate: it issues tokens and turns a bearer
// token back into a typed user.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
	secret   string
	ttl      time.Duration
	logger   *zap.Logger
}

func NewService(userRepo repositories.UserRepository, secret string, ttl time.Duration, logger *zap.Logger) Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		userRepo: userRepo,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.logger.Info("login failed: unknown email")
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login failed: wrong password", zap.Uint("user_id", user.ID))
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Authenticate validates the token signature and expiry, then checks the
// token version against the stored user so revoked sessions are refused.
func (s *service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, err := utils.ParseToken(token, s.secret)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	if user.TokenVersion != claims.TokenVersion {
		s.logger.Info("token version mismatch",
			zap.Uint("user_id", user.ID),
			zap.Int("token_version", claims.TokenVersion),
			zap.Int("current_version", user.TokenVersion),
		)
		return nil, apperrors.ErrUnauthenticated
	}

	return user, nil
}
