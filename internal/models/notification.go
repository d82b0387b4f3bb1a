package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const NotifiableUser = "users"

// Notification is the persisted form of a notification sent over the database channel.
type Notification struct {
	ID             string            `gorm:"type:uuid;primaryKey" json:"id"`
	Type           string            `gorm:"not null" json:"type"`
	NotifiableType string            `gorm:"not null;default:'users'" json:"notifiable_type"`
	NotifiableID   uint              `gorm:"not null;index" json:"notifiable_id"`
	Data           datatypes.JSONMap `gorm:"type:jsonb;not null" json:"data"`
	ReadAt         *time.Time        `gorm:"index" json:"read_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.NotifiableType == "" {
		n.NotifiableType = NotifiableUser
	}
	return nil
}

// Unread reports whether the notification has not been marked read yet.
func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}
