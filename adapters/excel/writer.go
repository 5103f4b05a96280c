package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"datacheck/domain/report"
)

// ReportWriter renders reports as workbooks, one worksheet per section.
type ReportWriter struct{}

// NewReportWriter creates a report writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteReport saves the report to path. Section names become sheet names,
// truncated to the 31-character workbook limit.
func (w *ReportWriter) WriteReport(path string, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, section := range rep.Sections() {
		name := sheetName(section.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("failed to add sheet %q: %w", name, err)
			}
		}
		if err := writeGrid(f, name, section.Grid); err != nil {
			return err
		}
	}

	if rep.Len() == 0 {
		if err := f.SetCellValue("Sheet1", "A1", "No issues found."); err != nil {
			return fmt.Errorf("failed to write notice: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeGrid(f *excelize.File, sheet string, g report.Grid) error {
	if err := setRow(f, sheet, 1, g.Header); err != nil {
		return err
	}
	for i, row := range g.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}

func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
