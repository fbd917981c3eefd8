package api

import (
	"lumina/docs"
	"lumina/internal/api/handlers"
	"lumina/pkg/auth"
	"lumina/pkg/config"
	"lumina/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	cfg *config.ServerConfig,
	authHandler *handlers.AuthHandler,
	assistantHandler *handlers.AssistantHandler,
	expenseHandler *handlers.ExpenseHandler,
	goalHandler *handlers.GoalHandler,
	balanceHandler *handlers.BalanceHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	userGroup := app.Group("/user")
	authGroup := userGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/auth/me", authHandler.Me)

	ai := protected.Group("/ai")
	ai.Post("/classify-expense", assistantHandler.ClassifyExpense)
	ai.Post("/goals-tips", assistantHandler.GoalsTips)
	ai.Post("/chat", assistantHandler.Chat)

	expenses := protected.Group("/expenses")
	expenses.Post("", expenseHandler.Create)
	expenses.Get("", expenseHandler.List)
	expenses.Get("/summary", expenseHandler.Summary)
	expenses.Delete("/:id", expenseHandler.Delete)

	goals := protected.Group("/goals")
	goals.Post("", goalHandler.Create)
	goals.Get("", goalHandler.List)
	goals.Put("/:id", goalHandler.Update)
	goals.Delete("/:id", goalHandler.Delete)

	balance := protected.Group("/balance")
	balance.Get("", balanceHandler.Get)
	balance.Put("", balanceHandler.Set)
	balance.Post("/add", balanceHandler.Add)
	balance.Post("/subtract", balanceHandler.Subtract)

	return app
}
