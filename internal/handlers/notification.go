package handlers

import (
	"strconv"

	"depositor/internal/middleware"
	"depositor/internal/services/notification"
	"depositor/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notifier notification.Service
	logger   *zap.Logger
}

func NewNotificationHandler(notifier notification.Service, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// MarkAsRead marks every unread notification of the authenticated user as read.
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	updated, err := h.notifier.MarkNotificationsRead(c.UserContext(), user.ID)
	if err != nil {
		h.logger.Error("failed to mark notifications read", zap.Uint("user_id", user.ID), zap.Error(err))
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"status":  "Notifications marked as read",
		"updated": updated,
	})
}

// List returns the newest notifications of the authenticated user along with
// the unread count. ?unread=true restricts the list to unread ones.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread", "false"))
	limit := c.QueryInt("limit", 0)

	items, err := h.notifier.ListNotifications(c.UserContext(), user.ID, unreadOnly, limit)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Uint("user_id", user.ID), zap.Error(err))
		return utils.InternalError(c, "Failed to fetch notifications")
	}

	unread, err := h.notifier.UnreadCount(c.UserContext(), user.ID)
	if err != nil {
		h.logger.Error("failed to count unread notifications", zap.Uint("user_id", user.ID), zap.Error(err))
		return utils.InternalError(c, "Failed to fetch notifications")
	}

	return utils.Success(c, fiber.Map{
		"data":         items,
		"unread_count": unread,
	})
}
