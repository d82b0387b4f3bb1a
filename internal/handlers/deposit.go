package handlers

import (
	"time"

	"depositor/internal/middleware"
	"depositor/internal/models"
	"depositor/internal/services/deposit"
	"depositor/internal/services/notification"
	"depositor/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DepositSuccessStatus = "Your deposit was successful!"

type DepositHandler struct {
	depositService deposit.Service
	logger         *zap.Logger
}

func NewDepositHandler(depositService deposit.Service, logger *zap.Logger) *DepositHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepositHandler{
		depositService: depositService,
		logger:         logger,
	}
}

// amount accepts both a JSON number and a numeric string.
type depositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type depositResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func toDepositResponse(d models.Deposit) depositResponse {
	return depositResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Amount:    notification.FormatAmount(d.Amount),
		CreatedAt: d.CreatedAt,
	}
}

// Deposit records a deposit for the authenticated user.
func (h *DepositHandler) Deposit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	var input depositRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "amount must be a number")
	}
	if input.Amount == nil {
		return utils.BadRequest(c, "amount is required")
	}

	dep, err := h.depositService.RecordDeposit(c.UserContext(), user, *input.Amount)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"status":  DepositSuccessStatus,
		"deposit": toDepositResponse(*dep),
	})
}

// List returns the authenticated user's deposits, newest first.
func (h *DepositHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.DomainError(c, err)
	}

	pagination := utils.GetPagination(c, 1, 20)
	deposits, total, err := h.depositService.ListDeposits(c.UserContext(), user.ID, pagination.Limit, pagination.Offset)
	if err != nil {
		h.logger.Error("failed to list deposits", zap.Uint("user_id", user.ID), zap.Error(err))
		return utils.InternalError(c, "Failed to fetch deposits")
	}
	pagination.SetTotal(total)

	out := make([]depositResponse, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, toDepositResponse(d))
	}
	return utils.Success(c, utils.NewPaginatedResponse(out, pagination))
}
