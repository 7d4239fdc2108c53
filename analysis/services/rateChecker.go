package services

import (
	"fmt"
	"time"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"

	"github.com/shopspring/decimal"
)

// rateTolerance absorbs rounding differences between the export and the
// rate card.
var rateTolerance = decimal.NewFromFloat(0.01)

// CheckRateMismatches compares each row's recorded pay rate against the
// rate card, looking up by pay-rate-sheet description first and falling
// back to the (service type, rate type) combination. Rows without a parsed
// rate, and combinations absent from the card, are skipped.
func CheckRateMismatches(records []ShiftRecord, cfg rules.Config) []Issue {
	var issues []Issue

	for _, record := range records {
		if record.ActualRate == nil {
			continue
		}
		expected, ok := cfg.ExpectedRate(record.RateSheetDescription, record.ServiceType, record.RateType)
		if !ok {
			continue
		}
		if record.ActualRate.Sub(expected).Abs().LessThanOrEqual(rateTolerance) {
			continue
		}

		var date *time.Time
		if record.Start != nil {
			day := record.Start.Truncate(24 * time.Hour)
			date = &day
		}
		issues = append(issues, Issue{
			Type:         models.RateMismatchIssue,
			EmployeeName: record.EmployeeName,
			Date:         date,
			ShiftType:    record.ServiceType,
			Details:      fmt.Sprintf("Actual rate %s does not match expected rate %s", record.ActualRate.StringFixed(2), expected.StringFixed(2)),
			RowNumbers:   []int{record.RowNumber},
		})
	}

	return issues
}
