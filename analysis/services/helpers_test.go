package services

import (
	"time"
)

// shift builds a valid record for checker tests. start/end use the export's
// day-first convention so the tests exercise the same parse path as ingest.
func shift(rowNumber int, employee, startRaw, endRaw, location, serviceType, rateType, requirementType string) ShiftRecord {
	record := ShiftRecord{
		EmployeeName:    employee,
		StartRaw:        startRaw,
		EndRaw:          endRaw,
		Location:        location,
		ServiceType:     serviceType,
		RateType:        rateType,
		RequirementType: requirementType,
		RowNumber:       rowNumber,
	}
	record.Start = ParseTimestamp(startRaw)
	record.End = ParseTimestamp(endRaw)
	return record
}

func dayOf(ts time.Time) time.Time {
	return ts.Truncate(24 * time.Hour)
}
