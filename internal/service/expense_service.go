package service

import (
	"context"
	"errors"
	"time"

	"lumina/internal/dto"
	"lumina/internal/models"
	"lumina/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidExpense  = errors.New("invalid expense")
)

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidExpense
	}
	if req.Category == "" {
		return nil, ErrInvalidExpense
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				return nil, ErrInvalidExpense
			}
		}
		date = parsed
	}

	category := models.Category(req.Category)
	if !category.Valid() {
		category = models.CategoryOutros
	}

	now := time.Now()
	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      req.Amount,
		Category:    category,
		Description: req.Description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense created",
		zap.String("user_id", userID.String()),
		zap.String("category", string(category)),
		zap.Float64("amount", req.Amount),
	)

	resp := expenseResponse(expense)
	return &resp, nil
}

// ExpenseRecorder is an ExpenseService bound to one user, so callers
// that never see user IDs (the chat session) can still persist
// classified expenses.
type ExpenseRecorder struct {
	svc    *ExpenseService
	userID uuid.UUID
}

func (s *ExpenseService) RecorderFor(userID uuid.UUID) *ExpenseRecorder {
	return &ExpenseRecorder{svc: s, userID: userID}
}

func (r *ExpenseRecorder) RecordExpense(ctx context.Context, amount float64, category, description string, date time.Time) error {
	_, err := r.svc.Create(ctx, r.userID, &dto.CreateExpenseRequest{
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date.Format(time.RFC3339),
	})
	return err
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, expenseResponse(e))
	}
	return responses, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return ErrExpenseNotFound
	}
	if expense.UserID != userID {
		return ErrExpenseNotFound
	}

	return s.expenseRepo.Delete(ctx, expenseID)
}

func (s *ExpenseService) Summary(ctx context.Context, userID uuid.UUID) ([]dto.CategorySummary, error) {
	totals, err := s.expenseRepo.SummaryByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := make([]dto.CategorySummary, 0, len(totals))
	for _, t := range totals {
		summary = append(summary, dto.CategorySummary{
			Category: string(t.Category),
			Total:    t.Total,
		})
	}
	return summary, nil
}

func expenseResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount,
		Category:    string(e.Category),
		Description: e.Description,
		Date:        e.Date.Format(time.RFC3339),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
