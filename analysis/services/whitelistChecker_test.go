package services

import (
	"testing"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnallowedCombinationFlagged(t *testing.T) {
	cfg := rules.Config{
		AllowedCombinations: map[rules.PairKey]struct{}{
			{ServiceType: "Day Shift", RequirementType: "Long Day"}: {},
		},
	}
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"),
		shift(3, "A. Jones", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Waking Night"),
	}

	issues := CheckUnallowedCombinations(records, cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, models.UnallowedCombinationIssue, issues[0].Type)
	assert.Equal(t, "A. Jones", issues[0].EmployeeName)
	assert.Equal(t, "Invalid: 'Day Shift' + 'Waking Night'", issues[0].Details)
	assert.Equal(t, []int{3}, issues[0].RowNumbers)
	require.NotNil(t, issues[0].Date)
	assert.Equal(t, "2026-01-09", issues[0].Date.Format("2006-01-02"))
}

func TestUnallowedCombinationSkipsEmptyFields(t *testing.T) {
	cfg := rules.Config{
		AllowedCombinations: map[rules.PairKey]struct{}{
			{ServiceType: "Day Shift", RequirementType: "Long Day"}: {},
		},
	}
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "", "Hourly", "Long Day"),
		shift(3, "A. Jones", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", ""),
	}

	assert.Empty(t, CheckUnallowedCombinations(records, cfg))
}

func TestUnallowedCombinationEmptyWhitelistFlagsEverything(t *testing.T) {
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day"),
	}

	issues := CheckUnallowedCombinations(records, rules.Config{})
	assert.Len(t, issues, 1)
}
