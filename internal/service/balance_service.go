package service

import (
	"context"
	"errors"

	"lumina/internal/dto"
	"lumina/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidAmount = errors.New("invalid amount")

// BalanceService keeps the user's stored balance. Arithmetic goes
// through decimal to avoid float drift on repeated adjustments.
type BalanceService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewBalanceService(userRepo *repository.UserRepository, logger *zap.Logger) *BalanceService {
	return &BalanceService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *BalanceService) Get(ctx context.Context, userID uuid.UUID) (*dto.BalanceResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &dto.BalanceResponse{Balance: user.Balance}, nil
}

func (s *BalanceService) Set(ctx context.Context, userID uuid.UUID, balance float64) (*dto.BalanceResponse, error) {
	if balance < 0 {
		return nil, ErrInvalidAmount
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}

	rounded, _ := decimal.NewFromFloat(balance).Round(2).Float64()
	if err := s.userRepo.UpdateBalance(ctx, userID, rounded); err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{Balance: rounded}, nil
}

func (s *BalanceService) Add(ctx context.Context, userID uuid.UUID, amount float64) (*dto.BalanceAdjustResponse, error) {
	return s.adjust(ctx, userID, amount, false)
}

func (s *BalanceService) Subtract(ctx context.Context, userID uuid.UUID, amount float64) (*dto.BalanceAdjustResponse, error) {
	return s.adjust(ctx, userID, amount, true)
}

func (s *BalanceService) adjust(ctx context.Context, userID uuid.UUID, amount float64, subtract bool) (*dto.BalanceAdjustResponse, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	previous := decimal.NewFromFloat(user.Balance)
	delta := decimal.NewFromFloat(amount)
	next := previous.Add(delta)
	if subtract {
		next = previous.Sub(delta)
	}

	balance, _ := next.Round(2).Float64()
	if err := s.userRepo.UpdateBalance(ctx, userID, balance); err != nil {
		return nil, err
	}

	prevFloat, _ := previous.Round(2).Float64()
	s.logger.Info("Balance adjusted",
		zap.String("user_id", userID.String()),
		zap.Bool("subtract", subtract),
		zap.Float64("amount", amount),
	)

	return &dto.BalanceAdjustResponse{
		Balance:         balance,
		PreviousBalance: prevFloat,
		Amount:          amount,
	}, nil
}
