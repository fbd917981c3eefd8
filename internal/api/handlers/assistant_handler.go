package handlers

import (
	"strings"

	"lumina/internal/dto"
	"lumina/internal/llm"
	"lumina/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	assistantService *service.AssistantService
	logger           *zap.Logger
}

func NewAssistantHandler(assistantService *service.AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		logger:           logger,
	}
}

// ClassifyExpense godoc
// @Summary Classify a free-text expense
// @Description Classifies an expense description into amount, category and icon
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClassifyExpenseRequest true "Expense description"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/ai/classify-expense [post]
func (h *AssistantHandler) ClassifyExpense(c *fiber.Ctx) error {
	var req dto.ClassifyExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Descrição do gasto é obrigatória",
		})
	}

	resp, err := h.assistantService.ClassifyExpense(c.Context(), req.Description)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": llm.FriendlyMessage(err),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// GoalsTips godoc
// @Summary Generate savings tips for goals
// @Description Generates personalized tips based on the user's goals
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GoalsTipsRequest true "Goals snapshot"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/ai/goals-tips [post]
func (h *AssistantHandler) GoalsTips(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req dto.GoalsTipsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if len(req.Goals) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Lista de metas é obrigatória",
		})
	}

	userName := req.UserName
	if userName == "" {
		if name, ok := c.Locals("userName").(string); ok {
			userName = name
		}
	}

	resp, err := h.assistantService.GenerateGoalsTips(c.Context(), userID, userName, req.Goals)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": llm.FriendlyMessage(err),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// Chat godoc
// @Summary Converse with the financial assistant
// @Description Sends one chat message with optional history
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/ai/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Mensagem é obrigatória",
		})
	}

	message, err := h.assistantService.Chat(c.Context(), req.Message, req.History)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": llm.FriendlyMessage(err),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.ChatResponse{Message: message},
	})
}
