package queueexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var bom = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV renders the review queue as BOM-prefixed CSV with the same
// column layout as the workbook export.
func WriteCSV(w io.Writer, rows []Row, criterionIDs []string) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header(criterionIDs)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range rows {
		if err := cw.Write(csvRow(&rows[i], criterionIDs)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(row *Row, criterionIDs []string) []string {
	cells := []string{
		row.CommuneName,
		row.CommuneCode,
		row.District,
		string(row.Status),
		string(row.Registration),
		strconv.FormatFloat(row.Progress, 'f', 1, 64),
		strconv.Itoa(row.AchievedCriteria),
		strconv.Itoa(row.TotalCriteria),
		formatDate(row.SubmissionDate),
		formatDate(row.ApprovalDate),
	}
	for _, id := range criterionIDs {
		cells = append(cells, string(row.CriterionStatuses[id]))
	}
	return cells
}
