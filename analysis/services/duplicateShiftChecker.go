package services

import (
	"fmt"
	"sort"
	"time"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"
)

// CheckDuplicateShiftTypes flags a second same-day occurrence of a shift
// type that is configured as single-per-day. It answers a different
// question from overlap detection (type count per day vs actual time
// intersection) and only runs when the multiple-shift table is configured;
// unlisted shift types are never checked.
func CheckDuplicateShiftTypes(records []ShiftRecord, cfg rules.Config) []Issue {
	if len(cfg.MultipleShiftAllowed) == 0 {
		return nil
	}

	type dayTypeKey struct {
		Employee    string
		Day         string
		ServiceType string
	}
	type dayTypeAgg struct {
		date       time.Time
		rowNumbers []int
	}

	groups := make(map[dayTypeKey]*dayTypeAgg)
	for _, record := range records {
		if record.Start == nil {
			continue
		}
		allowed, listed := cfg.MultipleShiftAllowed[record.ServiceType]
		if !listed || allowed {
			continue
		}
		day := record.Start.Truncate(24 * time.Hour)
		key := dayTypeKey{
			Employee:    record.EmployeeName,
			Day:         day.Format("2006-01-02"),
			ServiceType: record.ServiceType,
		}
		agg, ok := groups[key]
		if !ok {
			agg = &dayTypeAgg{date: day}
			groups[key] = agg
		}
		agg.rowNumbers = append(agg.rowNumbers, record.RowNumber)
	}

	keys := make([]dayTypeKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Employee != b.Employee {
			return a.Employee < b.Employee
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.ServiceType < b.ServiceType
	})

	var issues []Issue
	for _, key := range keys {
		agg := groups[key]
		if len(agg.rowNumbers) < 2 {
			continue
		}
		date := agg.date
		issues = append(issues, Issue{
			Type:         models.DuplicateShiftTypeIssue,
			EmployeeName: key.Employee,
			Date:         &date,
			ShiftType:    key.ServiceType,
			Details:      fmt.Sprintf("%d occurrences of '%s' on %s - only one allowed per day", len(agg.rowNumbers), key.ServiceType, key.Day),
			RowNumbers:   append([]int(nil), agg.rowNumbers...),
		})
	}
	return issues
}
