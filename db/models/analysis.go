package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IssueType identifies which checker produced an AnalysisIssue.
type IssueType string

const (
	DuplicateAllocationIssue       IssueType = "Duplicate Allocation"
	ShiftTypeOverAllocationIssue   IssueType = "Shift Type Over-allocation"
	WeeklyHoursOverAllocationIssue IssueType = "Weekly Hours Over-allocation"
	DailyHoursOverAllocationIssue  IssueType = "Daily Hours Over-allocation"
	UnallowedCombinationIssue      IssueType = "Unallowed Combination"
	RateMismatchIssue              IssueType = "Rate Mismatch"
	DuplicateShiftTypeIssue        IssueType = "Duplicate Shift Type"
)

// AnalysisIssue is one flattened rule violation persisted for a run.
// Rows are grouped by AnalysisTimestamp, matching the run they came from.
type AnalysisIssue struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	AnalysisTimestamp string         `gorm:"not null;index" json:"analysis_timestamp"`
	IssueType         IssueType      `gorm:"not null;index" json:"issue_type"`
	EmployeeName      string         `json:"employee_name"`
	IssueDate         *time.Time     `json:"issue_date"`
	Week              *string        `json:"week"`
	ShiftType         string         `json:"shift_type"`
	Details           string         `gorm:"type:text" json:"details"`
	RowNumbers        datatypes.JSON `json:"row_numbers"`
	CreatedBy         string         `gorm:"not null" json:"created_by"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnalysisErrorRow is a quarantined source row (or a checker fault entry)
// persisted alongside the issues of its run.
type AnalysisErrorRow struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	AnalysisTimestamp string         `gorm:"not null;index" json:"analysis_timestamp"`
	RowNumber         *int           `json:"row_number"`
	EmployeeName      string         `json:"employee_name"`
	StartRaw          string         `json:"start_raw"`
	EndRaw            string         `json:"end_raw"`
	ShiftType         string         `json:"shift_type"`
	Reasons           string         `gorm:"type:text" json:"reasons"`
	CreatedBy         string         `gorm:"not null" json:"created_by"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// EmailLog records report emails sent to uploaders.
type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Recipient      string    `gorm:"not null" json:"recipient"`
	Subject        string    `json:"subject"`
	Message        string    `gorm:"type:text" json:"message"`
	SentAt         time.Time `json:"sent_at"`
	Active         *bool     `gorm:"default:true" json:"active"`
	AttachmentPath string    `json:"attachment_path"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
