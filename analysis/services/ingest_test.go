package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWorkbook writes a single-sheet export with the raw (typo-laden)
// headers the upstream system produces.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []interface{}{
		"Actual Employee Name",
		"Actual Start Date and Time",
		"Actual End Date and Time",
		"Service Location Name",
		"Actual Service Type Desciption",
		"Actual Pay Rate Type",
		"Actual Service Requirement Type Desciption",
		"Actual Pay Rate",
		"Actual Pay Rate Sheet Desciption",
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "Actual Service Type Description", NormalizeHeader("Actual  Service Type Desciption"))
	assert.Equal(t, "Actual Start Date And Time", NormalizeHeader(" Actual Start Date and Time "))
	assert.Equal(t, "Actual Employee Name", NormalizeHeader("Actual Employee Name"))
}

func TestReadShiftRecords(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day", "16.35", "Zero Hour Pay Rates (SL)"},
		{"A. Jones", "not a date", "", "Elm Lodge", "Sleep In Shift", "Fixed", "Sleep In", "abc", ""},
	})

	records, err := ReadShiftRecords(buf, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 2, first.RowNumber)
	assert.Equal(t, "J. Smith", first.EmployeeName)
	assert.Equal(t, "Day Shift", first.ServiceType)
	assert.Equal(t, "Long Day", first.RequirementType)
	assert.Equal(t, "Zero Hour Pay Rates (SL)", first.RateSheetDescription)
	require.NotNil(t, first.Start)
	assert.Equal(t, time.January, first.Start.Month())
	assert.Equal(t, 9, first.Start.Day())
	require.NotNil(t, first.ActualRate)
	assert.Equal(t, "16.35", first.ActualRate.StringFixed(2))

	second := records[1]
	assert.Equal(t, 3, second.RowNumber)
	assert.Equal(t, "not a date", second.StartRaw)
	assert.Nil(t, second.Start)
	assert.Nil(t, second.End)
	// Non-numeric rate cells are dropped, not errors.
	assert.Nil(t, second.ActualRate)
}

func TestReadShiftRecordsMissingEmployeeColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	headers := []interface{}{"Unrelated", "Columns"}
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &headers))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ReadShiftRecords(buf, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestReadShiftRecordsReportsProgress(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"J. Smith", "09/01/2026 09:00", "09/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day", "", ""},
		{"A. Jones", "10/01/2026 09:00", "10/01/2026 17:00", "Oak House", "Day Shift", "Hourly", "Long Day", "", ""},
	})

	type call struct{ read, total int }
	var calls []call
	_, err := ReadShiftRecords(buf, func(read, total int) {
		calls = append(calls, call{read, total})
	})
	require.NoError(t, err)

	// Below the chunk size only the final completion call fires.
	require.Len(t, calls, 1)
	assert.Equal(t, call{2, 2}, calls[0])
}
