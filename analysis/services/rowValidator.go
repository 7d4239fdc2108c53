package services

import "fmt"

// criticalColumns are the fields a row must carry to be analyzable.
var criticalColumns = []struct {
	name  string
	value func(ShiftRecord) string
}{
	{colEmployeeName, func(r ShiftRecord) string { return r.EmployeeName }},
	{colStartDateTime, func(r ShiftRecord) string { return r.StartRaw }},
	{colEndDateTime, func(r ShiftRecord) string { return r.EndRaw }},
	{colServiceType, func(r ShiftRecord) string { return r.ServiceType }},
}

// ValidateRows partitions records into the analyzable set and quarantined
// error rows. A row collects every applicable reason before being dropped;
// quarantined rows are excluded from all downstream checks.
func ValidateRows(records []ShiftRecord) ([]ShiftRecord, []ErrorRow) {
	valid := make([]ShiftRecord, 0, len(records))
	var errorRows []ErrorRow

	for _, record := range records {
		var reasons []string

		for _, col := range criticalColumns {
			if col.value(record) == "" {
				reasons = append(reasons, fmt.Sprintf("Missing %s", col.name))
			}
		}
		if record.StartRaw != "" && record.Start == nil {
			reasons = append(reasons, fmt.Sprintf("Invalid start date format: %s", record.StartRaw))
		}
		if record.EndRaw != "" && record.End == nil {
			reasons = append(reasons, fmt.Sprintf("Invalid end date format: %s", record.EndRaw))
		}

		if len(reasons) > 0 {
			rowNumber := record.RowNumber
			errorRows = append(errorRows, ErrorRow{
				RowNumber:    &rowNumber,
				EmployeeName: record.EmployeeName,
				StartRaw:     record.StartRaw,
				EndRaw:       record.EndRaw,
				ShiftType:    record.ServiceType,
				Reasons:      reasons,
			})
			continue
		}
		valid = append(valid, record)
	}

	return valid, errorRows
}
