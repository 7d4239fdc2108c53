package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workforce-analyzer-backend/config"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportDir = "./public/files"

// EnsureDirectoryExists ensures the specified directory exists before file saving
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}
	return nil
}

// GenerateExcel writes a report workbook under ./public/files and returns
// its public path. Rows must already be in header order; the caller owns
// the mapping from its records to cell values.
func GenerateExcel(taskName string, headers []string, rows [][]interface{}) (string, error) {
	if err := EnsureDirectoryExists(reportDir + "/placeholder"); err != nil {
		return "", fmt.Errorf("failed to ensure directory exists: %v", err)
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("error resolving header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("error resolving cell: %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("error setting value at %s: %v", cell, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("%s_%s.xlsx", sanitizeFileName(taskName), time.Now().Format("2006-01-02_15-04-05"))
	relativeFilePath := fmt.Sprintf("%s/%s", reportDir, fileName)

	if err := f.SaveAs(relativeFilePath); err != nil {
		config.Logger.Error("Failed to save report workbook", zap.String("path", relativeFilePath), zap.Error(err))
		return "", err
	}
	config.Logger.Info("Report workbook saved", zap.String("path", relativeFilePath))

	return fmt.Sprintf("/public/files/%s", fileName), nil
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
