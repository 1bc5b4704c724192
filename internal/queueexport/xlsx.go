package queueexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Review Queue"

// WriteXLSX renders the review queue as an xlsx workbook. criterionIDs
// fixes the order of the per-criterion columns appended after the fixed
// header.
func WriteXLSX(w io.Writer, rows []Row, criterionIDs []string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerCells := make([]any, 0, len(columns)+len(criterionIDs))
	for _, h := range header(criterionIDs) {
		headerCells = append(headerCells, h)
	}
	if err := setRow(f, 1, headerCells); err != nil {
		return err
	}

	for i, row := range rows {
		cells := []any{
			row.CommuneName,
			row.CommuneCode,
			row.District,
			string(row.Status),
			string(row.Registration),
			row.Progress,
			row.AchievedCriteria,
			row.TotalCriteria,
			formatDate(row.SubmissionDate),
			formatDate(row.ApprovalDate),
		}
		for _, id := range criterionIDs {
			cells = append(cells, string(row.CriterionStatuses[id]))
		}
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolving cell for row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}
