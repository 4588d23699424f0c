package employee

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ExportSheet = "Employees"

var exportHeaders = []string{"ID", "First Name", "Last Name", "Email", "Age", "Hire Date", "Status"}

func ExportHeaders() []string {
	return append([]string(nil), exportHeaders...)
}

// WriteWorkbook writes a single sheet xlsx with one row per employee.
func WriteWorkbook(w io.Writer, employees []*Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ExportSheet, cell, header); err != nil {
			return fmt.Errorf("error writing header %s: %w", header, err)
		}
	}

	for i, e := range employees {
		row := []interface{}{e.ID, e.FirstName, e.LastName, e.Email, e.Age, e.HireDate.Format(DateLayout), e.StatusLabel()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row for employee %d: %w", e.ID, err)
		}
	}

	if err := f.SetPanes(ExportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("error freezing header row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
