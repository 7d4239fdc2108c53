package services

import (
	"testing"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateCardCfg() rules.Config {
	return rules.Config{
		RateCardBySheet: map[string]decimal.Decimal{
			"Zero Hour Pay Rates (SL)": decimal.RequireFromString("13.85"),
		},
		RateCardByCombo: map[rules.ComboKey]decimal.Decimal{
			{ServiceType: "Day Shift", RateType: "Hourly"}: decimal.RequireFromString("16.35"),
		},
	}
}

func withRate(record ShiftRecord, rate string) ShiftRecord {
	d := decimal.RequireFromString(rate)
	record.ActualRate = &d
	return record
}

func TestRateMismatchFlagged(t *testing.T) {
	record := withRate(shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"), "15.00")

	issues := CheckRateMismatches([]ShiftRecord{record}, rateCardCfg())
	require.Len(t, issues, 1)
	assert.Equal(t, models.RateMismatchIssue, issues[0].Type)
	assert.Equal(t, "Actual rate 15.00 does not match expected rate 16.35", issues[0].Details)
	assert.Equal(t, []int{2}, issues[0].RowNumbers)
}

func TestRateSheetDescriptionTakesPriority(t *testing.T) {
	record := withRate(shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"), "13.85")
	record.RateSheetDescription = "Zero Hour Pay Rates (SL)"

	// 13.85 matches the sheet rate even though the combo expects 16.35.
	assert.Empty(t, CheckRateMismatches([]ShiftRecord{record}, rateCardCfg()))
}

func TestRateUnknownSheetFallsBackToCombo(t *testing.T) {
	record := withRate(shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"), "16.35")
	record.RateSheetDescription = "Unlisted Sheet"

	assert.Empty(t, CheckRateMismatches([]ShiftRecord{record}, rateCardCfg()))
}

func TestRateToleranceBoundary(t *testing.T) {
	within := withRate(shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"), "16.36")
	beyond := withRate(shift(3, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"), "16.37")

	issues := CheckRateMismatches([]ShiftRecord{within, beyond}, rateCardCfg())
	require.Len(t, issues, 1)
	assert.Equal(t, []int{3}, issues[0].RowNumbers)
}

func TestRateSkipsRowsWithoutRateOrCardEntry(t *testing.T) {
	noRate := shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day")
	noCard := withRate(shift(3, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Night Shift", "Fixed", "Waking Night"), "99.99")

	assert.Empty(t, CheckRateMismatches([]ShiftRecord{noRate, noCard}, rateCardCfg()))
}
