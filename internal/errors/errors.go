// Package errors holds the domain errors that cross the service/HTTP boundary.
package errors

import "github.com/gofiber/fiber/v2"

// DomainError carries a stable code and the HTTP status a handler should answer with.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrUnauthenticated = &DomainError{
		Code:    "UNAUTHENTICATED",
		Message: "authentication required",
		Status:  fiber.StatusUnauthorized,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid credentials",
		Status:  fiber.StatusUnauthorized,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
		Status:  fiber.StatusBadRequest,
	}
	ErrPersistence = &DomainError{
		Code:    "PERSISTENCE_FAILURE",
		Message: "failed to record deposit",
		Status:  fiber.StatusInternalServerError,
	}
	ErrNotificationStore = &DomainError{
		Code:    "NOTIFICATION_STORE_FAILURE",
		Message: "failed to update notifications",
		Status:  fiber.StatusInternalServerError,
	}
)
