package controllers

import (
	"encoding/json"
	"strconv"
	"strings"

	"workforce-analyzer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

var issueReportHeaders = []string{"Issue Type", "Employee Name", "Date", "Week", "Shift Type", "Details", "Row Numbers"}

// ExportAnalysis regenerates an issue workbook for a past run and returns
// its download link.
func (ac *AnalysisController) ExportAnalysis(c *fiber.Ctx) error {
	analysisTimestamp := c.Params("timestamp")
	if analysisTimestamp == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing timestamp parameter"})
	}

	// Exports always cover the full run, so page through everything.
	const exportPageSize = 1000
	var rows [][]interface{}
	offset := 0
	for {
		issues, total, err := ac.Repo.GetIssuesByTimestamp(analysisTimestamp, exportPageSize, offset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analysis issues", "error": err.Error()})
		}
		for _, issue := range issues {
			date := ""
			if issue.IssueDate != nil {
				date = issue.IssueDate.Format("2006-01-02")
			}
			week := ""
			if issue.Week != nil {
				week = *issue.Week
			}
			var rowNumbers []int
			_ = json.Unmarshal(issue.RowNumbers, &rowNumbers)
			rows = append(rows, []interface{}{
				string(issue.IssueType),
				issue.EmployeeName,
				date,
				week,
				issue.ShiftType,
				issue.Details,
				joinInts(rowNumbers),
			})
		}
		offset += len(issues)
		if int64(offset) >= total || len(issues) == 0 {
			break
		}
	}

	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No issues found for that timestamp"})
	}

	filePath, err := utils.GenerateExcel("analysis_issues", issueReportHeaders, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate issue workbook", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Export generated",
		"download_link": utils.GetDownloadURL(c, filePath),
	})
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
