// Package excel reads datasets and data dictionaries from Excel workbooks and
// CSV files, and writes reports back as workbooks.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"datacheck/domain/core"
	"datacheck/domain/dictionary"
	"datacheck/domain/table"
)

// Sheet names fixed by the data dictionary workbook convention.
const (
	SheetVariables  = "Variables"
	SheetCategories = "Categories"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a data reader for the given path, dispatching on the
// file extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadDataset loads a dataset from the file's first sheet (or the CSV body).
// idColumn may be empty when the dataset declares no row identifier.
func (r *DataReader) ReadDataset(idColumn string) (*table.Dataset, error) {
	rows, err := r.readRows("")
	if err != nil {
		return nil, err
	}
	t, err := fromRaw(rows)
	if err != nil {
		return nil, err
	}
	return table.NewDataset(t, idColumn)
}

// ReadDataDict loads a data dictionary from the Variables and Categories
// sheets of a workbook. CSV input carries Variables only.
func (r *DataReader) ReadDataDict() (*dictionary.DataDict, error) {
	if r.fileType == "csv" {
		rows, err := r.readRows("")
		if err != nil {
			return nil, err
		}
		variables, err := fromRaw(rows)
		if err != nil {
			return nil, err
		}
		return dictionary.New(variables, nil)
	}

	varRows, err := r.readRows(SheetVariables)
	if err != nil {
		return nil, err
	}
	variables, err := fromRaw(varRows)
	if err != nil {
		return nil, err
	}
	var categories *table.Table
	if catRows, err := r.readRows(SheetCategories); err == nil {
		categories, err = fromRaw(catRows)
		if err != nil {
			return nil, err
		}
	}
	return dictionary.New(variables, categories)
}

// readRows loads raw rows from the file. For workbooks, an empty sheet name
// selects the first sheet.
func (r *DataReader) readRows(sheet string) ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", r.filePath)
	}
	switch r.fileType {
	case "csv":
		return r.readCSVRows()
	case "xlsx":
		return r.readExcelRows(sheet)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, r.fileType)
	}
}

func (r *DataReader) readExcelRows(sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrEmptyInput)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// fromRaw converts raw header+data rows into a table.
func fromRaw(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, core.ErrEmptyInput
	}
	return table.FromRows(rows[0], rows[1:])
}
