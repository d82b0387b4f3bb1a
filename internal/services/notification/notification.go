package notification

import (
	"depositor/internal/mail"
	"depositor/internal/models"
)

// Channel names understood by the Notifier.
const (
	ChannelMail     = "mail"
	ChannelDatabase = "database"
)

// Notification describes a message and the channels it travels through.
type Notification interface {
	Type() string
	Via(recipient *models.User) []string
	ToMail(recipient *models.User) *mail.Message
	ToDatabase(recipient *models.User) map[string]any
}
