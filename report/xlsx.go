package report

import (
	"fmt"

	"github.com/elC0mpa/budget-doctor/model"
	"github.com/xuri/excelize/v2"
)

// Sheet is one tier group of report rows; groups without rows are omitted
// from the workbook
type Sheet struct {
	Name string
	Rows []model.ReportRow
}

// WriteWorkbook writes one sheet per non-empty group, header row first.
// When every group is empty the workbook still carries excelize's default
// sheet so the file remains valid.
func WriteWorkbook(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	created := false
	for _, sheet := range sheets {
		if len(sheet.Rows) == 0 {
			continue
		}

		if !created {
			// rename the default sheet instead of leaving it dangling
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
			}
			created = true
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
			}
		}

		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(model.ReportColumns))
	for i, name := range model.ReportColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet.Name, err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %s: %w", i+2, sheet.Name, err)
		}
		cells := row.Cells()
		if err := f.SetSheetRow(sheet.Name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet.Name, err)
		}
	}
	return nil
}
