package services

import (
	"fmt"

	"workforce-analyzer-backend/rules"

	"go.uber.org/zap"
)

// Analyzer runs the full rule engine over one dataset. Checkers are
// isolated from each other: a fault inside one produces a synthetic error
// row and an empty issue list for that checker, never an aborted run.
type Analyzer struct {
	logger *zap.Logger
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// checkerResult is the explicit success-or-failure value of one checker
// invocation.
type checkerResult struct {
	issues []Issue
	err    error
}

// Run validates the rows once, then evaluates each checker independently
// over the valid subset and aggregates the outcome.
func (a *Analyzer) Run(records []ShiftRecord, cfg rules.Config) Result {
	valid, errorRows := ValidateRows(records)

	duplicates := a.runChecker("Duplicate Check", valid, cfg, CheckDuplicateAllocations)
	overAllocs := a.runChecker("Over-allocation Check", valid, cfg, CheckOverAllocations)
	unallowed := a.runChecker("Unallowed Combinations Check", valid, cfg, CheckUnallowedCombinations)
	rateMismatches := a.runChecker("Rate Check", valid, cfg, CheckRateMismatches)
	duplicateTypes := a.runChecker("Duplicate Shift Type Check", valid, cfg, CheckDuplicateShiftTypes)

	for _, r := range []struct {
		name   string
		result checkerResult
	}{
		{"Duplicate Check", duplicates},
		{"Over-allocation Check", overAllocs},
		{"Unallowed Combinations Check", unallowed},
		{"Rate Check", rateMismatches},
		{"Duplicate Shift Type Check", duplicateTypes},
	} {
		if r.result.err == nil {
			continue
		}
		a.logger.Error("checker failed", zap.String("checker", r.name), zap.Error(r.result.err))
		errorRows = append(errorRows, ErrorRow{
			EmployeeName: "ANALYSIS ERROR",
			ShiftType:    r.name,
			Reasons:      []string{fmt.Sprintf("Error in %s: %v", r.name, r.result.err)},
		})
	}

	result := Result{
		DuplicateAllocations:  duplicates.issues,
		OverAllocations:       overAllocs.issues,
		UnallowedCombinations: unallowed.issues,
		RateMismatches:        rateMismatches.issues,
		DuplicateShiftTypes:   duplicateTypes.issues,
		ErrorRows:             errorRows,
		TotalValidRows:        len(valid),
		TotalRows:             len(records),
	}
	result.TotalIssues = len(duplicates.issues) + len(overAllocs.issues) +
		len(unallowed.issues) + len(rateMismatches.issues) + len(duplicateTypes.issues)
	result.TotalErrors = len(errorRows)

	a.logger.Info("analysis run complete",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("valid_rows", result.TotalValidRows),
		zap.Int("issues", result.TotalIssues),
		zap.Int("errors", result.TotalErrors),
	)

	return result
}

// runChecker invokes one checker over its own copy of the valid rows,
// converting panics into checker-level errors so the other checkers keep
// their results.
func (a *Analyzer) runChecker(
	name string,
	valid []ShiftRecord,
	cfg rules.Config,
	check func([]ShiftRecord, rules.Config) []Issue,
) (result checkerResult) {
	defer func() {
		if r := recover(); r != nil {
			result = checkerResult{err: fmt.Errorf("%v", r)}
		}
	}()

	rows := append([]ShiftRecord(nil), valid...)
	return checkerResult{issues: check(rows, cfg)}
}
