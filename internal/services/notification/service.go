package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "depositor/internal/errors"
	"depositor/internal/metrics"
	"depositor/internal/models"
	"depositor/internal/queue"
	"depositor/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ChannelFunc delivers n to recipient over one channel.
type ChannelFunc func(ctx context.Context, recipient *models.User, n Notification) error

// Service sends notifications and manages the in-app notification inbox.
type Service interface {
	Send(ctx context.Context, recipient *models.User, n Notification)
	NotifyDeposit(ctx context.Context, recipient *models.User, amount decimal.Decimal)
	MarkNotificationsRead(ctx context.Context, userID uint) (int64, error)
	ListNotifications(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// UnreadCache caches per-user unread counts. SetUnreadCount must refuse to
// store a count when the counter was invalidated after version was read.
type UnreadCache interface {
	GetUnreadCount(ctx context.Context, userID uint) (int64, error)
	UnreadVersion(ctx context.Context, userID uint) (int64, error)
	SetUnreadCount(ctx context.Context, userID uint, count, version int64) error
	InvalidateUnreadCount(ctx context.Context, userID uint) error
}

type Config struct {
	AppName string
	AppURL  string
}

type service struct {
	repo     repositories.NotificationRepository
	mailq    queue.Queue
	cache    UnreadCache
	channels map[string]ChannelFunc
	config   Config
	logger   *zap.Logger
	metrics  metrics.Collector
	now      func() time.Time
}

// NewService wires the mail and database channels. cache may be nil.
func NewService(
	repo repositories.NotificationRepository,
	mailq queue.Queue,
	cache UnreadCache,
	config Config,
	logger *zap.Logger,
	m metrics.Collector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if mailq == nil {
		panic("mail queue is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NoopCollector{}
	}

	s := &service{
		repo:    repo,
		mailq:   mailq,
		cache:   cache,
		config:  config,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
	s.channels = map[string]ChannelFunc{
		ChannelMail:     s.sendMail,
		ChannelDatabase: s.sendDatabase,
	}
	return s
}

// Send runs every channel the notification asks for. Channel failures are
// logged and counted; they never reach the caller.
func (s *service) Send(ctx context.Context, recipient *models.User, n Notification) {
	if recipient == nil {
		s.logger.Error("notification without recipient", zap.String("type", n.Type()))
		return
	}

	for _, channel := range n.Via(recipient) {
		send, ok := s.channels[channel]
		if !ok {
			s.metrics.RecordNotification(channel, metrics.ResultFailure)
			s.logger.Error("unknown notification channel",
				zap.String("channel", channel),
				zap.String("type", n.Type()),
				zap.Uint("user_id", recipient.ID),
			)
			continue
		}

		if err := send(ctx, recipient, n); err != nil {
			s.metrics.RecordNotification(channel, metrics.ResultFailure)
			s.logger.Error("notification delivery failed",
				zap.String("channel", channel),
				zap.String("type", n.Type()),
				zap.Uint("user_id", recipient.ID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.RecordNotification(channel, metrics.ResultSuccess)
	}
}

func (s *service) NotifyDeposit(ctx context.Context, recipient *models.User, amount decimal.Decimal) {
	s.Send(ctx, recipient, DepositSuccessful{
		Amount:  amount,
		AppName: s.config.AppName,
		AppURL:  s.config.AppURL,
	})
}

// sendMail only enqueues; delivery happens in the queue workers.
func (s *service) sendMail(ctx context.Context, recipient *models.User, n Notification) error {
	if recipient.Email == "" {
		return errors.New("recipient has no email address")
	}
	job := queue.NewJob(n.Type(), recipient.Email, n.ToMail(recipient))
	return s.mailq.Enqueue(ctx, job)
}

func (s *service) sendDatabase(ctx context.Context, recipient *models.User, n Notification) error {
	record := &models.Notification{
		Type:           n.Type(),
		NotifiableType: models.NotifiableUser,
		NotifiableID:   recipient.ID,
		Data:           n.ToDatabase(recipient),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	s.invalidateUnread(ctx, recipient.ID)
	return nil
}

func (s *service) MarkNotificationsRead(ctx context.Context, userID uint) (int64, error) {
	start := s.now()
	defer func() { s.metrics.RecordOperationDuration("mark_notifications_read", time.Since(start)) }()

	updated, err := s.repo.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrNotificationStore, err)
	}
	if updated > 0 {
		s.invalidateUnread(ctx, userID)
	}
	return updated, nil
}

func (s *service) ListNotifications(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNotificationStore, err)
	}
	return notifications, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	cacheable := false
	var version int64
	if s.cache != nil {
		if count, err := s.cache.GetUnreadCount(ctx, userID); err == nil {
			return count, nil
		}
		// The version is read before counting so an insert racing the count
		// makes the store below a no-op.
		v, err := s.cache.UnreadVersion(ctx, userID)
		if err == nil {
			version, cacheable = v, true
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrNotificationStore, err)
	}

	if cacheable {
		if err := s.cache.SetUnreadCount(ctx, userID, count, version); err != nil {
			s.logger.Debug("unread count not cached", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	return count, nil
}

func (s *service) invalidateUnread(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUnreadCount(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate unread count", zap.Uint("user_id", userID), zap.Error(err))
	}
}
