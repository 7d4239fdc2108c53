package main

import (
	"context"

	config "workforce-analyzer-backend/config"
	"workforce-analyzer-backend/middleware"
	"workforce-analyzer-backend/utils"

	analysis_repositories "workforce-analyzer-backend/analysis/repositories"
	analysis_routes "workforce-analyzer-backend/analysis/routes"
	analysis_services "workforce-analyzer-backend/analysis/services"

	"workforce-analyzer-backend/rules"
	"workforce-analyzer-backend/tasks"
	"workforce-analyzer-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // workforce exports can run large
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisAddr := config.GetEnv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default for development
		config.Logger.Warn("REDIS_ADDRESS not set, using default: localhost:6379")
	}
	redisClient := config.InitRedisServer(ctx)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Rule configuration is immutable for the process lifetime; swapping
	// rules means restarting with a different file.
	rulesPath := config.GetEnvOrDefault("RULES_CONFIG_PATH", "rules.json")
	ruleConfig, err := rules.LoadFile(rulesPath)
	if err != nil {
		config.Logger.Fatal("Cannot load rules config", zap.String("path", rulesPath), zap.Error(err))
	}
	config.Logger.Info("Rules config loaded",
		zap.String("path", rulesPath),
		zap.Int("shift_limits", len(ruleConfig.ShiftLimits)),
		zap.Int("allowed_combinations", len(ruleConfig.AllowedCombinations)),
	)

	// Initialize the mailer
	utils.InitializeMailer()

	// ------ WebSocket Hub for analysis progress events ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve generated report files
	app.Static("/public", "./public")

	// Repositories
	analysisRepo := analysis_repositories.NewAnalysisRepository(db)

	// Services
	analyzer := analysis_services.NewAnalyzer(config.Logger)

	// Background worker for report emails
	asynqServer := tasks.StartWorker(redisAddr, config.Logger, analysisRepo)
	defer asynqServer.Shutdown()

	// Routes
	analysis_routes.AnalysisRouterInit(app, db, analysisRepo, redisClient, asynqClient, wsHub, ruleConfig, analyzer)

	// WebSocket route for progress events
	wsHandler := websocket.NewWsHandler(wsHub)
	app.Get("/ws/progress", wsHandler.HandleWebSocket)

	// Background cleanup of generated reports and stale cache
	go utils.RunScheduledCleanup(redisClient)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
