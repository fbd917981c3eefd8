package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"lumina/internal/models"
	"lumina/internal/repository"
	"lumina/pkg/config"
	"lumina/pkg/logger"
	"lumina/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo user with sample expenses and goals for local
// development. Safe to run only against an empty database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		appLogger.Fatal("Failed to hash demo password", zap.Error(err))
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     "demo@lumina.app",
		Name:      "Demo",
		Password:  string(hashed),
		Balance:   2500,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	expenses := []struct {
		amount      float64
		category    models.Category
		description string
		daysAgo     int
	}{
		{230.50, models.CategoryMercado, "Compras da semana", 1},
		{45.90, models.CategoryAlimentacao, "Almoço no restaurante", 2},
		{19.80, models.CategoryTransporte, "Corrida de aplicativo", 3},
		{1200.00, models.CategoryMoradia, "Aluguel", 5},
		{89.90, models.CategoryLazer, "Assinatura de streaming e cinema", 7},
		{150.00, models.CategorySaude, "Consulta médica", 10},
		{35.00, models.CategoryVestuario, "Camiseta", 14},
	}
	for _, e := range expenses {
		expense := &models.Expense{
			ID:          uuid.New(),
			UserID:      user.ID,
			Amount:      e.amount,
			Category:    e.category,
			Description: e.description,
			Date:        now.AddDate(0, 0, -e.daysAgo),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := expenseRepo.Create(ctx, expense); err != nil {
			appLogger.Fatal("Failed to create demo expense", zap.Error(err))
		}
	}

	vacationDeadline := now.AddDate(0, 6, 0)
	goals := []*models.Goal{
		{
			ID:            uuid.New(),
			UserID:        user.ID,
			Title:         "Reserva de emergência",
			Description:   "Seis meses de despesas",
			TargetAmount:  10000,
			CurrentAmount: 3500,
			Status:        models.GoalStatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			UserID:        user.ID,
			Title:         "Viagem de férias",
			TargetAmount:  4000,
			CurrentAmount: 1200,
			Deadline:      &vacationDeadline,
			Status:        models.GoalStatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	for _, g := range goals {
		if err := goalRepo.Create(ctx, g); err != nil {
			appLogger.Fatal("Failed to create demo goal", zap.Error(err))
		}
	}

	appLogger.Info("Seed complete",
		zap.String("email", user.Email),
		zap.Int("expenses", len(expenses)),
		zap.Int("goals", len(goals)),
	)
}
