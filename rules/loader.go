package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// configFile is the on-disk JSON shape. Composite keys are flattened into
// entry lists because JSON objects cannot carry tuple keys.
type configFile struct {
	ShiftLimits []struct {
		ServiceType string  `json:"service_type"`
		RateType    string  `json:"rate_type"`
		Operator    string  `json:"operator"`
		Value       float64 `json:"value"`
	} `json:"shift_limits"`
	EmployeeHourLimits  map[string]*float64 `json:"employee_hour_limits"`
	DefaultHourLimit    *float64            `json:"default_hour_limit"`
	AllowedCombinations []struct {
		ServiceType     string `json:"service_type"`
		RequirementType string `json:"requirement_type"`
	} `json:"allowed_combinations"`
	MultipleShiftAllowed        map[string]bool `json:"multiple_shift_allowed"`
	AllowedSameLocationOverlaps []struct {
		First  string `json:"first"`
		Second string `json:"second"`
	} `json:"allowed_same_location_overlaps"`
	RateCard []struct {
		SheetDescription string          `json:"sheet_description,omitempty"`
		ServiceType      string          `json:"service_type,omitempty"`
		RateType         string          `json:"rate_type,omitempty"`
		Rate             decimal.Decimal `json:"rate"`
	} `json:"rate_card"`
	OverlapToleranceMinutes int    `json:"overlap_tolerance_minutes"`
	BucketGranularity       string `json:"bucket_granularity"`
	ComboLimitBasis         string `json:"combo_limit_basis"`
}

// LoadFile reads and validates a rule configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading rules config: %w", err)
	}
	return Parse(data)
}

// Parse builds a validated Config from raw JSON.
func Parse(data []byte) (Config, error) {
	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing rules config: %w", err)
	}

	cfg := Config{
		ShiftLimits:                 make(map[ComboKey]Limit, len(file.ShiftLimits)),
		EmployeeHourLimits:          make(map[string]*float64, len(file.EmployeeHourLimits)),
		DefaultHourLimit:            -1,
		AllowedCombinations:         make(map[PairKey]struct{}, len(file.AllowedCombinations)),
		MultipleShiftAllowed:        make(map[string]bool, len(file.MultipleShiftAllowed)),
		AllowedSameLocationOverlaps: make(map[OverlapPair]struct{}, len(file.AllowedSameLocationOverlaps)),
		RateCardBySheet:             make(map[string]decimal.Decimal),
		RateCardByCombo:             make(map[ComboKey]decimal.Decimal),
		OverlapToleranceMinutes:     file.OverlapToleranceMinutes,
		BucketGranularity:           BucketWeek,
		ComboLimitBasis:             BasisCount,
	}

	for _, entry := range file.ShiftLimits {
		op := Operator(entry.Operator)
		if !op.Valid() {
			return Config{}, fmt.Errorf("shift limit for (%q, %q): unknown operator %q", entry.ServiceType, entry.RateType, entry.Operator)
		}
		key := ComboKey{ServiceType: entry.ServiceType, RateType: entry.RateType}
		if _, dup := cfg.ShiftLimits[key]; dup {
			return Config{}, fmt.Errorf("duplicate shift limit for (%q, %q)", entry.ServiceType, entry.RateType)
		}
		cfg.ShiftLimits[key] = Limit{Op: op, Value: entry.Value}
	}

	for name, limit := range file.EmployeeHourLimits {
		cfg.EmployeeHourLimits[name] = limit
	}
	if file.DefaultHourLimit != nil {
		cfg.DefaultHourLimit = *file.DefaultHourLimit
	}

	for _, entry := range file.AllowedCombinations {
		cfg.AllowedCombinations[PairKey{ServiceType: entry.ServiceType, RequirementType: entry.RequirementType}] = struct{}{}
	}
	for name, allowed := range file.MultipleShiftAllowed {
		cfg.MultipleShiftAllowed[name] = allowed
	}
	for _, entry := range file.AllowedSameLocationOverlaps {
		cfg.AllowedSameLocationOverlaps[OverlapPair{First: entry.First, Second: entry.Second}] = struct{}{}
	}

	for _, entry := range file.RateCard {
		switch {
		case entry.SheetDescription != "":
			cfg.RateCardBySheet[entry.SheetDescription] = entry.Rate
		case entry.ServiceType != "" && entry.RateType != "":
			cfg.RateCardByCombo[ComboKey{ServiceType: entry.ServiceType, RateType: entry.RateType}] = entry.Rate
		default:
			return Config{}, fmt.Errorf("rate card entry needs a sheet description or a (service type, rate type) pair")
		}
	}

	if cfg.OverlapToleranceMinutes < 0 {
		return Config{}, fmt.Errorf("overlap tolerance must not be negative, got %d", cfg.OverlapToleranceMinutes)
	}

	if file.BucketGranularity != "" {
		switch BucketGranularity(file.BucketGranularity) {
		case BucketWeek, BucketDay:
			cfg.BucketGranularity = BucketGranularity(file.BucketGranularity)
		default:
			return Config{}, fmt.Errorf("unknown bucket granularity %q", file.BucketGranularity)
		}
	}
	if file.ComboLimitBasis != "" {
		switch ComboLimitBasis(file.ComboLimitBasis) {
		case BasisCount, BasisHours:
			cfg.ComboLimitBasis = ComboLimitBasis(file.ComboLimitBasis)
		default:
			return Config{}, fmt.Errorf("unknown combo limit basis %q", file.ComboLimitBasis)
		}
	}

	return cfg, nil
}
