package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"
)

// CheckDuplicateAllocations flags pairs of shifts for the same employee
// whose time windows intersect by more than the configured tolerance.
// Only rows whose service type mentions "shift" take part; support and
// training allocations are excluded from overlap analysis entirely.
func CheckDuplicateAllocations(records []ShiftRecord, cfg rules.Config) []Issue {
	var issues []Issue

	byEmployee := make(map[string][]ShiftRecord)
	for _, record := range records {
		if !strings.Contains(strings.ToLower(record.ServiceType), "shift") {
			continue
		}
		byEmployee[record.EmployeeName] = append(byEmployee[record.EmployeeName], record)
	}

	employees := make([]string, 0, len(byEmployee))
	for emp := range byEmployee {
		employees = append(employees, emp)
	}
	sort.Strings(employees)

	for _, emp := range employees {
		group := byEmployee[emp]
		if len(group) < 2 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.Start == nil || b.Start == nil {
				return a.Start != nil
			}
			if a.Start.Equal(*b.Start) {
				return a.RowNumber < b.RowNumber
			}
			return a.Start.Before(*b.Start)
		})

		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if issue, ok := overlapIssue(group[i], group[j], cfg); ok {
					issues = append(issues, issue)
				}
			}
		}
	}

	return issues
}

func overlapIssue(first, second ShiftRecord, cfg rules.Config) (Issue, bool) {
	if first.Start == nil || first.End == nil || second.Start == nil || second.End == nil {
		return Issue{}, false
	}
	if !first.Start.Before(*second.End) || !second.Start.Before(*first.End) {
		return Issue{}, false
	}

	overlapMinutes := overlapDuration(first, second).Minutes()
	// Boundary slack: an overlap of exactly the tolerance is permitted.
	if overlapMinutes <= float64(cfg.OverlapToleranceMinutes) {
		return Issue{}, false
	}

	sameLocation := first.Location != "" && first.Location == second.Location
	if sameLocation && cfg.SameLocationOverlapAllowed(first.ServiceType, second.ServiceType) {
		return Issue{}, false
	}

	reasons := []string{"Time overlap"}
	if first.Location != "" && second.Location != "" && first.Location != second.Location {
		reasons = append(reasons, "different locations")
	}
	if first.ServiceType != "" && second.ServiceType != "" && first.ServiceType != second.ServiceType {
		reasons = append(reasons, "different shift types")
	}

	issueDate := first.Start.Truncate(24 * time.Hour)
	return Issue{
		Type:         models.DuplicateAllocationIssue,
		EmployeeName: first.EmployeeName,
		Date:         &issueDate,
		ShiftType:    fmt.Sprintf("%s | %s", shiftSummary(first), shiftSummary(second)),
		Details:      fmt.Sprintf("Overlapping shifts (%.0f min): %s", overlapMinutes, strings.Join(reasons, ", ")),
		RowNumbers:   []int{first.RowNumber, second.RowNumber},
	}, true
}

func overlapDuration(first, second ShiftRecord) time.Duration {
	start := *first.Start
	if second.Start.After(start) {
		start = *second.Start
	}
	end := *first.End
	if second.End.Before(end) {
		end = *second.End
	}
	return end.Sub(start)
}

func shiftSummary(record ShiftRecord) string {
	return fmt.Sprintf("%s at %s (%s-%s)",
		record.ServiceType,
		record.Location,
		record.Start.Format("15:04"),
		record.End.Format("15:04"),
	)
}
