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
	ErrGoalNotFound = errors.New("goal not found")
	ErrInvalidGoal  = errors.New("invalid goal")
)

type GoalService struct {
	goalRepo *repository.GoalRepository
	logger   *zap.Logger
}

func NewGoalService(goalRepo *repository.GoalRepository, logger *zap.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		logger:   logger,
	}
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if req.Title == "" || req.TargetAmount <= 0 {
		return nil, ErrInvalidGoal
	}

	var deadline *time.Time
	if req.Deadline != "" {
		parsed, err := parseDeadline(req.Deadline)
		if err != nil {
			return nil, ErrInvalidGoal
		}
		deadline = &parsed
	}

	status := models.GoalStatusActive
	if req.Status != "" {
		status = models.GoalStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidGoal
		}
	}

	now := time.Now()
	goal := &models.Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("Goal created",
		zap.String("user_id", userID.String()),
		zap.String("goal_id", goal.ID.String()),
	)

	resp := goalResponse(goal)
	return &resp, nil
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]dto.GoalResponse, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, goalResponse(g))
	}
	return responses, nil
}

func (s *GoalService) Update(ctx context.Context, userID, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, ErrGoalNotFound
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrInvalidGoal
		}
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount <= 0 {
			return nil, ErrInvalidGoal
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if *req.CurrentAmount < 0 {
			return nil, ErrInvalidGoal
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			goal.Deadline = nil
		} else {
			parsed, err := parseDeadline(*req.Deadline)
			if err != nil {
				return nil, ErrInvalidGoal
			}
			goal.Deadline = &parsed
		}
	}
	if req.Status != nil {
		status := models.GoalStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidGoal
		}
		goal.Status = status
	}

	// Reaching the target completes an active goal automatically.
	if goal.Status == models.GoalStatusActive && goal.CurrentAmount >= goal.TargetAmount {
		goal.Status = models.GoalStatusCompleted
	}

	goal.UpdatedAt = time.Now()
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	resp := goalResponse(goal)
	return &resp, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return ErrGoalNotFound
	}
	if goal.UserID != userID {
		return ErrGoalNotFound
	}

	return s.goalRepo.Delete(ctx, goalID)
}

func parseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func goalResponse(g *models.Goal) dto.GoalResponse {
	resp := dto.GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Status:        string(g.Status),
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
	if g.Deadline != nil {
		resp.Deadline = g.Deadline.Format("2006-01-02")
	}
	return resp
}
