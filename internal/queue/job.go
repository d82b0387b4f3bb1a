// Package queue moves mail jobs out of the request path onto a Redis list
// and drains them with a pool of workers.
package queue

import (
	"time"

	"depositor/internal/mail"

	"github.com/google/uuid"
)

// Job is one pending email.
type Job struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	To         string        `json:"to"`
	Message    *mail.Message `json:"message"`
	Attempts   int           `json:"attempts"`
	LastError  string        `json:"last_error,omitempty"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
}

func NewJob(notificationType, to string, msg *mail.Message) *Job {
	return &Job{
		ID:         uuid.NewString(),
		Type:       notificationType,
		To:         to,
		Message:    msg,
		EnqueuedAt: time.Now().UTC(),
	}
}
