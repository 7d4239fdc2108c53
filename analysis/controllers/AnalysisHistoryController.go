package controllers

import (
	"encoding/json"

	"workforce-analyzer-backend/config"
	"workforce-analyzer-backend/utils"
	"workforce-analyzer-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetAnalysisTimestamps lists the distinct run timestamps, newest first.
func (ac *AnalysisController) GetAnalysisTimestamps(c *fiber.Ctx) error {
	timestamps, err := ac.Repo.GetAnalysisTimestamps()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analysis history", "error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Analysis history retrieved",
		"data":    timestamps,
	})
}

// GetAnalysisByTimestamp returns one run: its cached summary when present,
// its issues (paginated) and its error rows.
func (ac *AnalysisController) GetAnalysisByTimestamp(c *fiber.Ctx) error {
	analysisTimestamp := c.Params("timestamp")
	if analysisTimestamp == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing timestamp parameter"})
	}

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	offset := (params.Page - 1) * params.PageSize

	issues, total, err := ac.Repo.GetIssuesByTimestamp(analysisTimestamp, params.PageSize, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analysis issues", "error": err.Error()})
	}
	errorRows, err := ac.Repo.GetErrorRowsByTimestamp(analysisTimestamp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analysis error rows", "error": err.Error()})
	}

	var summary interface{}
	if cached, ok, err := utils.GetCachedAnalysisSummary(c.Context(), ac.RedisClient, analysisTimestamp); err != nil {
		config.Logger.Warn("Summary cache read failed", zap.Error(err))
	} else if ok {
		var decoded map[string]interface{}
		if err := json.Unmarshal(cached, &decoded); err == nil {
			summary = decoded
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Analysis retrieved",
		"summary":    summary,
		"issues":     pagination.NewPaginatedResponse(c, issues, total, params),
		"error_rows": errorRows,
	})
}

// DeleteAnalysis removes a run's persisted rows and invalidates its cache.
func (ac *AnalysisController) DeleteAnalysis(c *fiber.Ctx) error {
	analysisTimestamp := c.Params("timestamp")
	if analysisTimestamp == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing timestamp parameter"})
	}

	deleted, err := ac.Repo.DeleteAnalysis(analysisTimestamp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete analysis", "error": err.Error()})
	}
	if deleted == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No analysis found for that timestamp"})
	}

	utils.InvalidateAnalysisCacheAsync(ac.RedisClient, analysisTimestamp)
	config.Logger.Info("Analysis deleted",
		zap.String("analysis_timestamp", analysisTimestamp),
		zap.Int64("records", deleted),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":         "Analysis deleted",
		"deleted_records": deleted,
	})
}
