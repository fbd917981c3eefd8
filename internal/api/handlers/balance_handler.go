package handlers

import (
	"context"

	"lumina/internal/dto"
	"lumina/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BalanceHandler struct {
	balanceService *service.BalanceService
	logger         *zap.Logger
}

func NewBalanceHandler(balanceService *service.BalanceService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		logger:         logger,
	}
}

// Get godoc
// @Summary Current balance
// @Description Returns the authenticated user's balance
// @Tags balance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BalanceResponse
// @Router /api/v1/balance [get]
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.balanceService.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(resp)
}

// Set godoc
// @Summary Set balance
// @Description Replaces the authenticated user's balance
// @Tags balance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetBalanceRequest true "New balance"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/balance [put]
func (h *BalanceHandler) Set(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req dto.SetBalanceRequest
	if err := c.BodyParser(&req); err != nil || req.Balance == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Balance is required",
		})
	}

	resp, err := h.balanceService.Set(c.Context(), userID, *req.Balance)
	if err != nil {
		if err == service.ErrInvalidAmount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Balance must not be negative",
			})
		}
		h.logger.Error("Balance update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update balance",
		})
	}

	return c.JSON(resp)
}

// Add godoc
// @Summary Add to balance
// @Description Adds a positive amount to the authenticated user's balance
// @Tags balance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BalanceAmountRequest true "Amount"
// @Success 200 {object} dto.BalanceAdjustResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/balance/add [post]
func (h *BalanceHandler) Add(c *fiber.Ctx) error {
	return h.adjust(c, h.balanceService.Add)
}

// Subtract godoc
// @Summary Subtract from balance
// @Description Subtracts a positive amount from the authenticated user's balance
// @Tags balance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BalanceAmountRequest true "Amount"
// @Success 200 {object} dto.BalanceAdjustResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/balance/subtract [post]
func (h *BalanceHandler) Subtract(c *fiber.Ctx) error {
	return h.adjust(c, h.balanceService.Subtract)
}

func (h *BalanceHandler) adjust(c *fiber.Ctx, op func(ctx context.Context, userID uuid.UUID, amount float64) (*dto.BalanceAdjustResponse, error)) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req dto.BalanceAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := op(c.Context(), userID, req.Amount)
	if err != nil {
		if err == service.ErrInvalidAmount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Amount must be positive",
			})
		}
		h.logger.Error("Balance adjustment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to adjust balance",
		})
	}

	return c.JSON(resp)
}
