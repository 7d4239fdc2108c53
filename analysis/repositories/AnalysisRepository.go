package repositories

import (
	"encoding/json"
	"fmt"

	"workforce-analyzer-backend/analysis/services"
	"workforce-analyzer-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalysisRepository interface {
	SaveResults(analysisTimestamp, createdBy string, result services.Result) (int, error)
	GetAnalysisTimestamps() ([]string, error)
	GetIssuesByTimestamp(analysisTimestamp string, pageSize int, offset int) ([]models.AnalysisIssue, int64, error)
	GetErrorRowsByTimestamp(analysisTimestamp string) ([]models.AnalysisErrorRow, error)
	DeleteAnalysis(analysisTimestamp string) (int64, error)
	LogEmailSent(emailLog *models.EmailLog) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{
		db: db,
	}
}

// SaveResults flattens a run into issue and error rows under one analysis
// timestamp, inside a single transaction. Returns the number of records
// written.
func (r *analysisRepository) SaveResults(analysisTimestamp, createdBy string, result services.Result) (int, error) {
	issues := result.Issues()
	issueRows := make([]models.AnalysisIssue, 0, len(issues))
	for _, issue := range issues {
		rowNumbers, err := json.Marshal(issue.RowNumbers)
		if err != nil {
			return 0, fmt.Errorf("encoding row numbers: %w", err)
		}
		issueRows = append(issueRows, models.AnalysisIssue{
			ID:                uuid.New(),
			AnalysisTimestamp: analysisTimestamp,
			IssueType:         issue.Type,
			EmployeeName:      issue.EmployeeName,
			IssueDate:         issue.Date,
			Week:              issue.Week,
			ShiftType:         issue.ShiftType,
			Details:           issue.Details,
			RowNumbers:        datatypes.JSON(rowNumbers),
			CreatedBy:         createdBy,
		})
	}

	errorRows := make([]models.AnalysisErrorRow, 0, len(result.ErrorRows))
	for _, errorRow := range result.ErrorRows {
		reasons, err := json.Marshal(errorRow.Reasons)
		if err != nil {
			return 0, fmt.Errorf("encoding error reasons: %w", err)
		}
		errorRows = append(errorRows, models.AnalysisErrorRow{
			ID:                uuid.New(),
			AnalysisTimestamp: analysisTimestamp,
			RowNumber:         errorRow.RowNumber,
			EmployeeName:      errorRow.EmployeeName,
			StartRaw:          errorRow.StartRaw,
			EndRaw:            errorRow.EndRaw,
			ShiftType:         errorRow.ShiftType,
			Reasons:           string(reasons),
			CreatedBy:         createdBy,
		})
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(issueRows) > 0 {
			if err := tx.Create(&issueRows).Error; err != nil {
				return err
			}
		}
		if len(errorRows) > 0 {
			if err := tx.Create(&errorRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(issueRows) + len(errorRows), nil
}

func (r *analysisRepository) GetAnalysisTimestamps() ([]string, error) {
	var timestamps []string
	err := r.db.Model(&models.AnalysisIssue{}).
		Distinct("analysis_timestamp").
		Order("analysis_timestamp DESC").
		Pluck("analysis_timestamp", &timestamps).Error
	return timestamps, err
}

func (r *analysisRepository) GetIssuesByTimestamp(analysisTimestamp string, pageSize int, offset int) ([]models.AnalysisIssue, int64, error) {
	var issues []models.AnalysisIssue
	var total int64

	db := r.db.Model(&models.AnalysisIssue{}).Where("analysis_timestamp = ?", analysisTimestamp)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("issue_type, employee_name").
		Limit(pageSize).
		Offset(offset).
		Find(&issues).Error
	return issues, total, err
}

func (r *analysisRepository) GetErrorRowsByTimestamp(analysisTimestamp string) ([]models.AnalysisErrorRow, error) {
	var errorRows []models.AnalysisErrorRow
	err := r.db.Where("analysis_timestamp = ?", analysisTimestamp).
		Order("row_number").
		Find(&errorRows).Error
	return errorRows, err
}

// DeleteAnalysis removes every persisted row of a run and reports how many
// records were deleted.
func (r *analysisRepository) DeleteAnalysis(analysisTimestamp string) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("analysis_timestamp = ?", analysisTimestamp).Delete(&models.AnalysisIssue{})
		if res.Error != nil {
			return res.Error
		}
		deleted += res.RowsAffected

		res = tx.Where("analysis_timestamp = ?", analysisTimestamp).Delete(&models.AnalysisErrorRow{})
		if res.Error != nil {
			return res.Error
		}
		deleted += res.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *analysisRepository) LogEmailSent(emailLog *models.EmailLog) error {
	return r.db.Create(emailLog).Error
}
