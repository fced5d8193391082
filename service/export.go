package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xlittlerag/groups-assigner/types"
)

// csvHeader is the column layout of exported assignments.
var csvHeader = []string{"Group ID", "Position", "Competitor Name", "Country"}

// ExportCSV renders assignment rows as CSV, one seat per line, preserving the
// (group, seat) order of the rows.
//
// Parameters:
//   - rows: Seat-ordered assignment rows
//
// Returns:
//   - []byte: CSV document including the header line
//   - error: Encoding failure
func ExportCSV(rows []types.SeatAssignment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.GroupID, row.Seat, row.Name, row.Country}); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
