package services

import (
	"time"

	"workforce-analyzer-backend/db/models"

	"github.com/shopspring/decimal"
)

// ShiftRecord is one row of the workforce export after ingestion. Start and
// End stay nil when the raw strings are empty or unparseable; the raw
// strings are kept for error reporting.
type ShiftRecord struct {
	EmployeeName         string
	StartRaw             string
	EndRaw               string
	Start                *time.Time
	End                  *time.Time
	Location             string
	ServiceType          string
	RateType             string
	RequirementType      string
	ActualRate           *decimal.Decimal
	RateSheetDescription string
	// RowNumber is the 1-based row in the source file, header included,
	// so the first data row is 2.
	RowNumber int
}

// Issue is one rule violation. Issues are immutable once emitted.
type Issue struct {
	Type         models.IssueType
	EmployeeName string
	Date         *time.Time
	Week         *string
	ShiftType    string
	Details      string
	RowNumbers   []int
}

// ErrorRow is a quarantined source row, or a synthetic checker-fault entry
// (RowNumber nil, EmployeeName "ANALYSIS ERROR").
type ErrorRow struct {
	RowNumber    *int
	EmployeeName string
	StartRaw     string
	EndRaw       string
	ShiftType    string
	Reasons      []string
}

// Result is the aggregate output of one analysis run.
type Result struct {
	DuplicateAllocations  []Issue
	OverAllocations       []Issue
	UnallowedCombinations []Issue
	RateMismatches        []Issue
	DuplicateShiftTypes   []Issue
	ErrorRows             []ErrorRow
	TotalIssues           int
	TotalErrors           int
	TotalValidRows        int
	TotalRows             int
}

// Issues returns every issue across categories, in category order.
func (r Result) Issues() []Issue {
	out := make([]Issue, 0, r.TotalIssues)
	out = append(out, r.DuplicateAllocations...)
	out = append(out, r.OverAllocations...)
	out = append(out, r.UnallowedCombinations...)
	out = append(out, r.RateMismatches...)
	out = append(out, r.DuplicateShiftTypes...)
	return out
}
