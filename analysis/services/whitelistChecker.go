package services

import (
	"fmt"
	"time"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"
)

// CheckUnallowedCombinations flags rows whose (service type, requirement
// type) pairing is absent from the whitelist. Rows with either field empty
// are skipped; absence of data is a row-validation concern, not a policy
// violation.
func CheckUnallowedCombinations(records []ShiftRecord, cfg rules.Config) []Issue {
	var issues []Issue

	for _, record := range records {
		if record.ServiceType == "" || record.RequirementType == "" {
			continue
		}
		if cfg.CombinationAllowed(record.ServiceType, record.RequirementType) {
			continue
		}

		var date *time.Time
		if record.Start != nil {
			day := record.Start.Truncate(24 * time.Hour)
			date = &day
		}
		issues = append(issues, Issue{
			Type:         models.UnallowedCombinationIssue,
			EmployeeName: record.EmployeeName,
			Date:         date,
			ShiftType:    record.ServiceType,
			Details:      fmt.Sprintf("Invalid: '%s' + '%s'", record.ServiceType, record.RequirementType),
			RowNumbers:   []int{record.RowNumber},
		})
	}

	return issues
}
