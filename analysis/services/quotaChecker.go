package services

import (
	"fmt"
	"sort"
	"time"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"
)

type bucketKey struct {
	Employee string
	Label    string
}

type bucket struct {
	date    *time.Time
	week    *string
	records []ShiftRecord
}

// CheckOverAllocations evaluates the configured quota rules per
// (employee, time bucket): shift-type/rate-type combination limits and the
// aggregate hour cap. The bucket is the ISO week or the calendar date,
// per cfg.BucketGranularity; combination thresholds measure occurrence
// counts or summed hours, per cfg.ComboLimitBasis.
func CheckOverAllocations(records []ShiftRecord, cfg rules.Config) []Issue {
	buckets := make(map[bucketKey]*bucket)

	for _, record := range records {
		if record.Start == nil {
			continue
		}

		key := bucketKey{Employee: record.EmployeeName}
		b := bucket{}
		switch cfg.BucketGranularity {
		case rules.BucketDay:
			day := record.Start.Truncate(24 * time.Hour)
			key.Label = day.Format("2006-01-02")
			b.date = &day
		default:
			week, isoYear, _ := ISOWeek(record.Start)
			label := fmt.Sprintf("%d-W%02d", isoYear, week)
			key.Label = label
			b.week = &label
		}

		existing, ok := buckets[key]
		if !ok {
			existing = &b
			buckets[key] = existing
		}
		existing.records = append(existing.records, record)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Employee != keys[j].Employee {
			return keys[i].Employee < keys[j].Employee
		}
		return keys[i].Label < keys[j].Label
	})

	var issues []Issue
	for _, key := range keys {
		b := buckets[key]
		issues = append(issues, checkComboLimits(key.Employee, b, cfg)...)
		if issue, ok := checkHourLimit(key.Employee, b, cfg); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// checkComboLimits applies the rule table to each (service type, rate type)
// combination present in the bucket. Combinations without a configured
// limit are never checked.
func checkComboLimits(employee string, b *bucket, cfg rules.Config) []Issue {
	type comboAgg struct {
		count      int
		hours      float64
		rowNumbers []int
	}
	combos := make(map[rules.ComboKey]*comboAgg)
	for _, record := range b.records {
		key := rules.ComboKey{ServiceType: record.ServiceType, RateType: record.RateType}
		agg, ok := combos[key]
		if !ok {
			agg = &comboAgg{}
			combos[key] = agg
		}
		agg.count++
		agg.hours += DurationHours(record.Start, record.End)
		agg.rowNumbers = append(agg.rowNumbers, record.RowNumber)
	}

	comboKeys := make([]rules.ComboKey, 0, len(combos))
	for key := range combos {
		comboKeys = append(comboKeys, key)
	}
	sort.Slice(comboKeys, func(i, j int) bool {
		if comboKeys[i].ServiceType != comboKeys[j].ServiceType {
			return comboKeys[i].ServiceType < comboKeys[j].ServiceType
		}
		return comboKeys[i].RateType < comboKeys[j].RateType
	})

	var issues []Issue
	for _, key := range comboKeys {
		limit, configured := cfg.ShiftLimits[key]
		if !configured {
			continue
		}
		agg := combos[key]

		var measured float64
		var measuredText string
		if cfg.ComboLimitBasis == rules.BasisHours {
			measured = agg.hours
			measuredText = fmt.Sprintf("%.1f hours", agg.hours)
		} else {
			measured = float64(agg.count)
			measuredText = fmt.Sprintf("%d shifts", agg.count)
		}

		violated, msg := limit.Op.Violates(measured, limit.Value)
		if !violated {
			continue
		}
		issues = append(issues, Issue{
			Type:         models.ShiftTypeOverAllocationIssue,
			EmployeeName: employee,
			Date:         b.date,
			Week:         b.week,
			ShiftType:    fmt.Sprintf("%s (%s)", key.ServiceType, key.RateType),
			Details:      fmt.Sprintf("%s of '%s' with '%s' rate - %s", measuredText, key.ServiceType, key.RateType, msg),
			RowNumbers:   append([]int(nil), agg.rowNumbers...),
		})
	}
	return issues
}

// checkHourLimit compares the bucket's summed hours against the employee's
// effective cap. Unbounded employees (negative or null limits) are skipped.
func checkHourLimit(employee string, b *bucket, cfg rules.Config) (Issue, bool) {
	limit, bounded := cfg.EffectiveHourLimit(employee)
	if !bounded {
		return Issue{}, false
	}

	var totalHours float64
	rowNumbers := make([]int, 0, len(b.records))
	for _, record := range b.records {
		totalHours += DurationHours(record.Start, record.End)
		rowNumbers = append(rowNumbers, record.RowNumber)
	}
	if totalHours <= limit {
		return Issue{}, false
	}

	issueType := models.WeeklyHoursOverAllocationIssue
	if b.date != nil {
		issueType = models.DailyHoursOverAllocationIssue
	}
	return Issue{
		Type:         issueType,
		EmployeeName: employee,
		Date:         b.date,
		Week:         b.week,
		ShiftType:    "All shifts",
		Details:      fmt.Sprintf("%.1f hours (limit: %g)", totalHours, limit),
		RowNumbers:   rowNumbers,
	}, true
}
