package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	data := []byte(`{
		"bucket_granularity": "week",
		"combo_limit_basis": "count",
		"overlap_tolerance_minutes": 15,
		"default_hour_limit": -1,
		"shift_limits": [
			{"service_type": "Day Shift", "rate_type": "Hourly", "operator": "<=", "value": 15},
			{"service_type": "Ad hoc Shift", "rate_type": "Fixed", "operator": ">=", "value": 6}
		],
		"employee_hour_limits": {"J. Smith": 48, "Opted Out": null},
		"allowed_combinations": [
			{"service_type": "Day Shift", "requirement_type": "Long Day"}
		],
		"multiple_shift_allowed": {"Day Shift": false, "Floating Shift": true},
		"allowed_same_location_overlaps": [
			{"first": "Day Shift", "second": "Shadow"}
		],
		"rate_card": [
			{"sheet_description": "Zero Hour Pay Rates (SL)", "rate": "13.85"},
			{"service_type": "Home Care", "rate_type": "Hourly", "rate": "16.35"}
		]
	}`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	limit, ok := cfg.ShiftLimits[ComboKey{ServiceType: "Day Shift", RateType: "Hourly"}]
	require.True(t, ok)
	assert.Equal(t, OpLessOrEqual, limit.Op)
	assert.Equal(t, 15.0, limit.Value)

	assert.Equal(t, -1.0, cfg.DefaultHourLimit)
	assert.True(t, cfg.CombinationAllowed("Day Shift", "Long Day"))
	assert.False(t, cfg.CombinationAllowed("Day Shift", "Cover"))
	assert.True(t, cfg.SameLocationOverlapAllowed("Day Shift", "Shadow"))
	assert.False(t, cfg.SameLocationOverlapAllowed("Shadow", "Day Shift"))
	assert.Equal(t, 15, cfg.OverlapToleranceMinutes)
	assert.Equal(t, BucketWeek, cfg.BucketGranularity)
	assert.Equal(t, BasisCount, cfg.ComboLimitBasis)

	rate, ok := cfg.ExpectedRate("", "Home Care", "Hourly")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("16.35")))

	_, bounded := cfg.EffectiveHourLimit("Opted Out")
	assert.False(t, bounded)
}

func TestParseRejectsUnknownOperator(t *testing.T) {
	data := []byte(`{
		"shift_limits": [
			{"service_type": "Day Shift", "rate_type": "Hourly", "operator": "~", "value": 15}
		]
	}`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestParseRejectsDuplicateLimit(t *testing.T) {
	data := []byte(`{
		"shift_limits": [
			{"service_type": "Day Shift", "rate_type": "Hourly", "operator": "<=", "value": 15},
			{"service_type": "Day Shift", "rate_type": "Hourly", "operator": "<", "value": 10}
		]
	}`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate shift limit")
}

func TestParseRejectsBadGranularityAndBasis(t *testing.T) {
	_, err := Parse([]byte(`{"bucket_granularity": "month"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown bucket granularity")

	_, err = Parse([]byte(`{"combo_limit_basis": "minutes"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown combo limit basis")
}

func TestParseRejectsNegativeTolerance(t *testing.T) {
	_, err := Parse([]byte(`{"overlap_tolerance_minutes": -5}`))
	require.Error(t, err)
}

func TestParseRejectsAmbiguousRateCardEntry(t *testing.T) {
	_, err := Parse([]byte(`{"rate_card": [{"rate": "10.00"}]}`))
	require.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, BucketWeek, cfg.BucketGranularity)
	assert.Equal(t, BasisCount, cfg.ComboLimitBasis)
	assert.Equal(t, -1.0, cfg.DefaultHourLimit)
	assert.Equal(t, 0, cfg.OverlapToleranceMinutes)
}
