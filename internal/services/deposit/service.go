// Package deposit records user deposits and fires the DepositSuccessful notification.
package deposit

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "depositor/internal/errors"
	"depositor/internal/metrics"
	"depositor/internal/models"
	"depositor/internal/repositories"
	"depositor/internal/services/notification"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultWriteTimeout = 5 * time.Second
	// MaxScale is the number of fractional digits a deposit may carry.
	MaxScale = 2
	// MaxIntegerDigits is what the numeric(12,2) amount column can hold left of the point.
	MaxIntegerDigits = 10
	// Exponents outside this window are refused before any arithmetic; rescaling
	// costs time and memory proportional to the exponent.
	maxExponent = 18
	// 128 bits cover ten integer digits plus maxExponent fractional ones.
	maxCoefficientBits = 128
)

var (
	DefaultMaxAmount = decimal.NewFromInt(1_000_000)
	// ColumnMaxAmount is the largest value the amount column stores.
	ColumnMaxAmount = decimal.RequireFromString("9999999999.99")
)

type Service interface {
	RecordDeposit(ctx context.Context, user *models.User, amount decimal.Decimal) (*models.Deposit, error)
	ListDeposits(ctx context.Context, userID uint, limit, offset int) ([]models.Deposit, int64, error)
}

type Config struct {
	WriteTimeout time.Duration
	MaxAmount    decimal.Decimal
}

type service struct {
	repo     repositories.DepositRepository
	notifier notification.Service
	config   Config
	logger   *zap.Logger
	metrics  metrics.Collector
}

func NewService(
	repo repositories.DepositRepository,
	notifier notification.Service,
	config Config,
	logger *zap.Logger,
	m metrics.Collector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}

	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultWriteTimeout
	}
	if !config.MaxAmount.IsPositive() {
		config.MaxAmount = DefaultMaxAmount
	}
	if config.MaxAmount.GreaterThan(ColumnMaxAmount) {
		config.MaxAmount = ColumnMaxAmount
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NoopCollector{}
	}

	return &service{
		repo:     repo,
		notifier: notifier,
		config:   config,
		logger:   logger,
		metrics:  m,
	}
}

// RecordDeposit stores one deposit for user and then notifies them. The
// notification is best effort: once the row is committed the deposit succeeds.
func (s *service) RecordDeposit(ctx context.Context, user *models.User, amount decimal.Decimal) (*models.Deposit, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("record_deposit", time.Since(start)) }()

	if user == nil || user.ID == 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	if err := s.ValidateAmount(amount); err != nil {
		s.metrics.RecordDeposit(metrics.ResultInvalid)
		return nil, err
	}
	// 42.500 is stored and reported as 42.50
	if amount.Exponent() < -MaxScale {
		amount = amount.Truncate(MaxScale)
	}

	deposit := &models.Deposit{
		UserID: user.ID,
		Amount: amount,
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.config.WriteTimeout)
	defer cancel()

	if err := s.repo.Create(writeCtx, deposit); err != nil {
		s.metrics.RecordDeposit(metrics.ResultFailure)
		s.logger.Error("failed to record deposit",
			zap.Uint("user_id", user.ID),
			zap.String("amount", amount.String()),
			zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}

	s.metrics.RecordDeposit(metrics.ResultSuccess)
	s.logger.Info("deposit recorded",
		zap.Uint("deposit_id", deposit.ID),
		zap.Uint("user_id", user.ID),
		zap.String("amount", notification.FormatAmount(amount)),
	)

	// The deposit is committed; a cancelled request must not stop the notification.
	s.notifier.NotifyDeposit(context.WithoutCancel(ctx), user, deposit.Amount)

	return deposit, nil
}

// ValidateAmount rejects zero, negative, over-precise and over-limit amounts.
func (s *service) ValidateAmount(amount decimal.Decimal) error {
	switch {
	case amount.Exponent() < -maxExponent || amount.Exponent() > maxExponent,
		amount.Coefficient().BitLen() > maxCoefficientBits:
		return fmt.Errorf("%w: out of range", apperrors.ErrInvalidAmount)
	case !amount.IsPositive():
		return fmt.Errorf("%w: must be greater than zero", apperrors.ErrInvalidAmount)
	case amount.NumDigits()+int(amount.Exponent()) > MaxIntegerDigits:
		return fmt.Errorf("%w: must not exceed %s", apperrors.ErrInvalidAmount, s.config.MaxAmount.String())
	case amount.Exponent() < -MaxScale && !amount.Equal(amount.Truncate(MaxScale)):
		return fmt.Errorf("%w: at most %d decimal places are allowed", apperrors.ErrInvalidAmount, MaxScale)
	case amount.GreaterThan(s.config.MaxAmount):
		return fmt.Errorf("%w: must not exceed %s", apperrors.ErrInvalidAmount, s.config.MaxAmount.String())
	}
	return nil
}

func (s *service) ListDeposits(ctx context.Context, userID uint, limit, offset int) ([]models.Deposit, int64, error) {
	deposits, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, total, nil
}
