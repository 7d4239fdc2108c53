package controllers

import (
	"time"

	"workforce-analyzer-backend/analysis/repositories"
	"workforce-analyzer-backend/analysis/services"
	"workforce-analyzer-backend/rules"
	"workforce-analyzer-backend/websocket"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// AnalysisController wires the rule engine to the HTTP surface.
type AnalysisController struct {
	Repo        repositories.AnalysisRepository
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	Hub         *websocket.Hub
	Rules       rules.Config
	Analyzer    *services.Analyzer

	// Analysis runs are memory-heavy; cap the intake rate per process.
	limiter *rate.Limiter
}

func NewAnalysisController(
	repo repositories.AnalysisRepository,
	db *gorm.DB,
	redisClient *redis.Client,
	asynqClient *asynq.Client,
	hub *websocket.Hub,
	ruleConfig rules.Config,
	analyzer *services.Analyzer,
) *AnalysisController {
	return &AnalysisController{
		Repo:        repo,
		DB:          db,
		RedisClient: redisClient,
		AsynqClient: asynqClient,
		Hub:         hub,
		Rules:       ruleConfig,
		Analyzer:    analyzer,
		limiter:     rate.NewLimiter(rate.Every(30*time.Second), 4),
	}
}
