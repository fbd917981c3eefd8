package api

import (
	"testing"
	"time"

	"lumina/internal/api/handlers"
	"lumina/pkg/auth"
	"lumina/pkg/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetupRouterAppliesServerTimeouts(t *testing.T) {
	cfg := &config.ServerConfig{
		Port:         "8080",
		ReadTimeout:  12 * time.Second,
		WriteTimeout: 34 * time.Second,
	}
	logger := zap.NewNop()
	jwtManager := auth.NewJWTManager("secret", time.Hour, 24*time.Hour)

	app := SetupRouter(
		cfg,
		handlers.NewAuthHandler(nil, logger),
		handlers.NewAssistantHandler(nil, logger),
		handlers.NewExpenseHandler(nil, logger),
		handlers.NewGoalHandler(nil, logger),
		handlers.NewBalanceHandler(nil, logger),
		jwtManager,
		logger,
	)

	assert.Equal(t, 12*time.Second, app.Config().ReadTimeout)
	assert.Equal(t, 34*time.Second, app.Config().WriteTimeout)

	methods := make(map[string]bool)
	for _, route := range app.GetRoutes() {
		methods[route.Method+" "+route.Path] = true
	}
	assert.True(t, methods["POST /user/auth/login"])
	assert.True(t, methods["POST /api/v1/ai/classify-expense"])
	assert.True(t, methods["GET /api/v1/expenses/summary"])
	assert.True(t, methods["POST /api/v1/balance/subtract"])
}
