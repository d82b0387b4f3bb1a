package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is a credit event attributed to one user. Rows are only ever inserted.
type Deposit struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
