package controllers

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"workforce-analyzer-backend/analysis/services"
	"workforce-analyzer-backend/config"
	"workforce-analyzer-backend/tasks"
	"workforce-analyzer-backend/utils"
	"workforce-analyzer-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errorReportHeaders matches the columns of the original error sheet.
var errorReportHeaders = []string{"Row Number", "Employee Name", "Start Date", "End Date", "Shift Type", "Errors"}

// AnalyzeUpload handles the workforce export upload: ingest, rule
// evaluation, persistence, error-report generation and the report email.
func (ac *AnalysisController) AnalyzeUpload(c *fiber.Ctx) error {
	if !ac.limiter.Allow() {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many analysis requests, try again shortly"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get file"})
	}
	tempFilePath := fmt.Sprintf("./tmp/%s", file.Filename)
	if err := utils.EnsureDirectoryExists(tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to prepare temp directory"})
	}
	if err := c.SaveFile(file, tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save file"})
	}
	defer os.Remove(tempFilePath)

	userEmail := c.FormValue("created_by")
	if userEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'created_by' field in FormData"})
	}

	uploadID := uuid.New().String()

	f, err := os.Open(tempFilePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to open uploaded file"})
	}
	defer f.Close()

	records, err := services.ReadShiftRecords(f, func(read, total int) {
		ac.Hub.BroadcastProgress(uploadID, read, total)
	})
	if err != nil {
		config.Logger.Error("Failed to read workforce export", zap.String("upload_id", uploadID), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to read Excel file",
			"error":   err.Error(),
		})
	}

	result := ac.Analyzer.Run(records, ac.Rules)
	analysisTimestamp := time.Now().Format("2006-01-02 15:04:05")

	savedCount, err := ac.Repo.SaveResults(analysisTimestamp, userEmail, result)
	if err != nil {
		config.Logger.Error("Failed to persist analysis results", zap.String("analysis_timestamp", analysisTimestamp), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save analysis results", "error": err.Error()})
	}

	summary := fiber.Map{
		"analysis_timestamp":     analysisTimestamp,
		"upload_id":              uploadID,
		"duplicate_allocations":  len(result.DuplicateAllocations),
		"over_allocations":       len(result.OverAllocations),
		"unallowed_combinations": len(result.UnallowedCombinations),
		"rate_mismatches":        len(result.RateMismatches),
		"duplicate_shift_types":  len(result.DuplicateShiftTypes),
		"total_issues":           result.TotalIssues,
		"total_errors":           result.TotalErrors,
		"total_valid_rows":       result.TotalValidRows,
		"total_rows":             result.TotalRows,
		"saved_records":          savedCount,
	}

	if summaryJSON, err := json.Marshal(summary); err == nil {
		if err := utils.CacheAnalysisSummary(c.Context(), ac.RedisClient, analysisTimestamp, summaryJSON); err != nil {
			config.Logger.Warn("Failed to cache analysis summary", zap.Error(err))
		}
	}

	var downloadLink string
	if len(result.ErrorRows) > 0 {
		rows := make([][]interface{}, 0, len(result.ErrorRows))
		for _, errorRow := range result.ErrorRows {
			rowNumber := "N/A"
			if errorRow.RowNumber != nil {
				rowNumber = strconv.Itoa(*errorRow.RowNumber)
			}
			rows = append(rows, []interface{}{
				rowNumber,
				errorRow.EmployeeName,
				errorRow.StartRaw,
				errorRow.EndRaw,
				errorRow.ShiftType,
				strings.Join(errorRow.Reasons, ", "),
			})
		}

		filePath, err := utils.GenerateExcel("allocation_errors", errorReportHeaders, rows)
		if err != nil {
			config.Logger.Warn("Failed to generate error report workbook", zap.Error(err))
		} else {
			downloadLink = utils.GetDownloadURL(c, filePath)
			ac.enqueueReportEmail(userEmail, analysisTimestamp, downloadLink, result.TotalErrors)
		}
	}

	summary["message"] = "Analysis completed"
	summary["download_link"] = downloadLink
	ac.Hub.Broadcast(completeMessage(uploadID, analysisTimestamp))

	return c.Status(fiber.StatusOK).JSON(summary)
}

func completeMessage(uploadID, analysisTimestamp string) websocket.WebSocketMessage {
	return websocket.WebSocketMessage{
		Type: websocket.MessageTypeComplete,
		Payload: fiber.Map{
			"uploadId":          uploadID,
			"analysisTimestamp": analysisTimestamp,
		},
		Timestamp: time.Now(),
	}
}

func (ac *AnalysisController) enqueueReportEmail(userEmail, analysisTimestamp, downloadLink string, errorCount int) {
	task, err := tasks.NewReportEmailTask(tasks.ReportEmailPayload{
		Recipient:         userEmail,
		Subject:           "Workforce Allocation Errors - " + analysisTimestamp,
		Message:           fmt.Sprintf("Your analysis found %d error rows. Please find the attached report with quarantined records.", errorCount),
		DownloadLink:      downloadLink,
		AnalysisTimestamp: analysisTimestamp,
	})
	if err != nil {
		config.Logger.Warn("Failed to build report email task", zap.Error(err))
		return
	}
	if _, err := ac.AsynqClient.Enqueue(task); err != nil {
		config.Logger.Warn("Failed to enqueue report email task", zap.Error(err))
	}
}
