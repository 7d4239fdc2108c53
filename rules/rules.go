package rules

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Operator is the comparison applied to a quota measurement. The measured
// value must satisfy the operator against the configured threshold; the
// checker fires when it does not.
type Operator string

const (
	OpLessOrEqual    Operator = "<="
	OpGreaterOrEqual Operator = ">="
	OpLessThan       Operator = "<"
	OpGreaterThan    Operator = ">"
	OpEqual          Operator = "=="
)

// Violates reports whether the measured value breaks the rule, along with
// the message fragment describing which comparison failed.
func (op Operator) Violates(measured, threshold float64) (bool, string) {
	limit := formatThreshold(threshold)
	switch op {
	case OpLessOrEqual:
		return measured > threshold, fmt.Sprintf("exceeds maximum of %s", limit)
	case OpGreaterOrEqual:
		return measured < threshold, fmt.Sprintf("below minimum of %s", limit)
	case OpLessThan:
		return measured >= threshold, fmt.Sprintf("must be less than %s", limit)
	case OpGreaterThan:
		return measured <= threshold, fmt.Sprintf("must be greater than %s", limit)
	case OpEqual:
		return measured != threshold, fmt.Sprintf("must be exactly %s", limit)
	}
	return false, ""
}

func (op Operator) Valid() bool {
	switch op {
	case OpLessOrEqual, OpGreaterOrEqual, OpLessThan, OpGreaterThan, OpEqual:
		return true
	}
	return false
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BucketGranularity selects the quota grouping window.
type BucketGranularity string

const (
	BucketWeek BucketGranularity = "week"
	BucketDay  BucketGranularity = "day"
)

// ComboLimitBasis selects what a shift-limit threshold measures.
type ComboLimitBasis string

const (
	BasisCount ComboLimitBasis = "count"
	BasisHours ComboLimitBasis = "hours"
)

// ComboKey identifies a (service type, pay rate type) combination.
type ComboKey struct {
	ServiceType string
	RateType    string
}

// PairKey identifies an ordered (service type, requirement type) pairing.
type PairKey struct {
	ServiceType     string
	RequirementType string
}

// OverlapPair identifies an ordered (shift type, shift type) pairing
// tolerated when both shifts share a location.
type OverlapPair struct {
	First  string
	Second string
}

// Limit is one quota rule: operator plus threshold.
type Limit struct {
	Op    Operator
	Value float64
}

// Config is the full rule set for one analysis run. It is built once by the
// loader and treated as an immutable value from then on; checkers only read
// from it.
type Config struct {
	ShiftLimits                 map[ComboKey]Limit
	EmployeeHourLimits          map[string]*float64
	DefaultHourLimit            float64
	AllowedCombinations         map[PairKey]struct{}
	MultipleShiftAllowed        map[string]bool
	AllowedSameLocationOverlaps map[OverlapPair]struct{}
	RateCardBySheet             map[string]decimal.Decimal
	RateCardByCombo             map[ComboKey]decimal.Decimal
	OverlapToleranceMinutes     int
	BucketGranularity           BucketGranularity
	ComboLimitBasis             ComboLimitBasis
}

// EffectiveHourLimit resolves the aggregate hour cap for an employee.
// The second return is false when the employee is unbounded, either through
// an explicit null entry or a negative sentinel.
func (c Config) EffectiveHourLimit(employee string) (float64, bool) {
	if limit, listed := c.EmployeeHourLimits[employee]; listed {
		if limit == nil || *limit < 0 {
			return 0, false
		}
		return *limit, true
	}
	if c.DefaultHourLimit < 0 {
		return 0, false
	}
	return c.DefaultHourLimit, true
}

// CombinationAllowed reports whether the pairing is whitelisted.
func (c Config) CombinationAllowed(serviceType, requirementType string) bool {
	_, ok := c.AllowedCombinations[PairKey{ServiceType: serviceType, RequirementType: requirementType}]
	return ok
}

// SameLocationOverlapAllowed reports whether the ordered shift-type pair is
// tolerated for overlapping shifts at one location.
func (c Config) SameLocationOverlapAllowed(first, second string) bool {
	_, ok := c.AllowedSameLocationOverlaps[OverlapPair{First: first, Second: second}]
	return ok
}

// ExpectedRate looks up the rate card, preferring the pay-rate-sheet
// description over the (service type, rate type) combination.
func (c Config) ExpectedRate(sheetDescription, serviceType, rateType string) (decimal.Decimal, bool) {
	if sheetDescription != "" {
		if rate, ok := c.RateCardBySheet[sheetDescription]; ok {
			return rate, true
		}
	}
	rate, ok := c.RateCardByCombo[ComboKey{ServiceType: serviceType, RateType: rateType}]
	return rate, ok
}
