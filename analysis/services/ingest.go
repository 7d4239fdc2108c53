package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column names after header normalization.
const (
	colEmployeeName     = "Actual Employee Name"
	colStartDateTime    = "Actual Start Date And Time"
	colEndDateTime      = "Actual End Date And Time"
	colLocation         = "Service Location Name"
	colServiceType      = "Actual Service Type Description"
	colRateType         = "Actual Pay Rate Type"
	colRequirementType  = "Actual Service Requirement Type Description"
	colActualRate       = "Actual Pay Rate"
	colSheetDescription = "Actual Pay Rate Sheet Description"
)

// DefaultChunkSize is how many rows are read per ingest chunk. Chunks only
// bound reads and drive progress reporting; grouping checks always run over
// the merged row set.
const DefaultChunkSize = 500

// ProgressFunc receives the cumulative number of data rows read after each
// chunk. total is -1 while streaming, since the row count is not known
// until the sheet is exhausted.
type ProgressFunc func(read, total int)

// headerReplacer corrects known export typos before column matching.
var headerReplacer = strings.NewReplacer(
	"Desciption", "Description",
	"and Time", "And Time",
)

// NormalizeHeader trims, collapses internal whitespace and corrects the
// known typos of the workforce export's header cells.
func NormalizeHeader(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	return headerReplacer.Replace(collapsed)
}

// ReadShiftRecords streams the first sheet of a workforce export into
// ShiftRecords, assigning each row its 1-based source row number (first
// data row = 2). onProgress may be nil.
func ReadShiftRecords(r io.Reader, onProgress ProgressFunc) ([]ShiftRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	defer rows.Close()

	var (
		columns map[string]int
		records []ShiftRecord
		read    int
	)

	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		if columns == nil {
			columns = make(map[string]int, len(cells))
			for i, cell := range cells {
				columns[NormalizeHeader(cell)] = i
			}
			if _, ok := columns[colEmployeeName]; !ok {
				return nil, fmt.Errorf("missing required column %q", colEmployeeName)
			}
			continue
		}

		records = append(records, buildShiftRecord(cells, columns, len(records)+2))
		read++
		if onProgress != nil && read%DefaultChunkSize == 0 {
			onProgress(read, -1)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	if onProgress != nil {
		onProgress(read, read)
	}

	return records, nil
}

func buildShiftRecord(cells []string, columns map[string]int, rowNumber int) ShiftRecord {
	get := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	record := ShiftRecord{
		EmployeeName:         get(colEmployeeName),
		StartRaw:             get(colStartDateTime),
		EndRaw:               get(colEndDateTime),
		Location:             get(colLocation),
		ServiceType:          get(colServiceType),
		RateType:             get(colRateType),
		RequirementType:      get(colRequirementType),
		RateSheetDescription: get(colSheetDescription),
		RowNumber:            rowNumber,
	}
	record.Start = ParseTimestamp(record.StartRaw)
	record.End = ParseTimestamp(record.EndRaw)

	// Non-numeric rates are dropped silently; the rate checker only deals
	// in values that parsed.
	if raw := get(colActualRate); raw != "" {
		if rate, err := decimal.NewFromString(raw); err == nil {
			record.ActualRate = &rate
		}
	}

	return record
}
