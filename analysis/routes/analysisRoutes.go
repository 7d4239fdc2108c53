package routes

import (
	"workforce-analyzer-backend/analysis/controllers"
	"workforce-analyzer-backend/analysis/repositories"
	"workforce-analyzer-backend/analysis/services"
	"workforce-analyzer-backend/rules"
	"workforce-analyzer-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func AnalysisRouterInit(
	app *fiber.App,
	db *gorm.DB,
	analysisRepository repositories.AnalysisRepository,
	redisClient *redis.Client,
	asynqClient *asynq.Client,
	hub *websocket.Hub,
	ruleConfig rules.Config,
	analyzer *services.Analyzer,
) {
	analysisController := controllers.NewAnalysisController(
		analysisRepository,
		db,
		redisClient,
		asynqClient,
		hub,
		ruleConfig,
		analyzer,
	)

	analysisRoutes := app.Group("/analysis")
	analysisRoutes.Post("/upload", analysisController.AnalyzeUpload)
	analysisRoutes.Get("/history", analysisController.GetAnalysisTimestamps)
	analysisRoutes.Get("/history/:timestamp", analysisController.GetAnalysisByTimestamp)
	analysisRoutes.Delete("/history/:timestamp", analysisController.DeleteAnalysis)
	analysisRoutes.Get("/export/:timestamp", analysisController.ExportAnalysis)
}
