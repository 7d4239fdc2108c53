package services

import (
	"testing"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateShiftTypeFlaggedSameDay(t *testing.T) {
	cfg := rules.Config{
		MultipleShiftAllowed: map[string]bool{
			"Sleep In Shift": false,
			"Floating Shift": true,
		},
	}
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 20:00", "10/01/2026 08:00", "Oak House", "Sleep In Shift", "Fixed", "Sleep In"),
		shift(3, "J. Smith", "09/01/2026 08:00", "09/01/2026 12:00", "Elm Lodge", "Sleep In Shift", "Fixed", "Sleep In"),
		shift(4, "J. Smith", "09/01/2026 09:00", "09/01/2026 11:00", "Oak House", "Floating Shift", "Hourly", "Float"),
		shift(5, "J. Smith", "09/01/2026 13:00", "09/01/2026 15:00", "Oak House", "Floating Shift", "Hourly", "Float"),
	}

	issues := CheckDuplicateShiftTypes(records, cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, models.DuplicateShiftTypeIssue, issues[0].Type)
	assert.Equal(t, "Sleep In Shift", issues[0].ShiftType)
	assert.Equal(t, "2 occurrences of 'Sleep In Shift' on 2026-01-09 - only one allowed per day", issues[0].Details)
	assert.ElementsMatch(t, []int{2, 3}, issues[0].RowNumbers)
}

func TestDuplicateShiftTypeSeparateDaysAllowed(t *testing.T) {
	cfg := rules.Config{MultipleShiftAllowed: map[string]bool{"Sleep In Shift": false}}
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 20:00", "10/01/2026 08:00", "Oak House", "Sleep In Shift", "Fixed", "Sleep In"),
		shift(3, "J. Smith", "10/01/2026 20:00", "11/01/2026 08:00", "Oak House", "Sleep In Shift", "Fixed", "Sleep In"),
	}

	assert.Empty(t, CheckDuplicateShiftTypes(records, cfg))
}

func TestDuplicateShiftTypeUnlistedTypesIgnored(t *testing.T) {
	cfg := rules.Config{MultipleShiftAllowed: map[string]bool{"Sleep In Shift": false}}
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 13:00", "Oak House", "Day Shift", "Hourly", "Long Day"),
		shift(3, "J. Smith", "09/01/2026 14:00", "09/01/2026 18:00", "Oak House", "Day Shift", "Hourly", "Long Day"),
	}

	assert.Empty(t, CheckDuplicateShiftTypes(records, cfg))
}

func TestDuplicateShiftTypeDisabledWithoutTable(t *testing.T) {
	records := []ShiftRecord{
		shift(2, "J. Smith", "09/01/2026 09:00", "09/01/2026 13:00", "Oak House", "Sleep In Shift", "Fixed", "Sleep In"),
		shift(3, "J. Smith", "09/01/2026 14:00", "09/01/2026 18:00", "Oak House", "Sleep In Shift", "Fixed", "Sleep In"),
	}

	assert.Nil(t, CheckDuplicateShiftTypes(records, rules.Config{}))
}
