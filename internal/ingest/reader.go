package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"collections/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Table is a header row plus the data rows keyed by header.
type Table struct {
	Columns []string
	Rows    []models.RawRow
}

// RangeReader reads a rectangular range of cells, such as a Google Sheets
// worksheet.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// ReadFile reads a CSV or XLSX file. For workbooks, sheet selects the
// worksheet; an empty sheet reads the first one.
func ReadFile(path, sheet string) (*Table, error) {
	const op = "ReadFile"

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, NewIngestError(op, err, path)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return readWorkbook(path, sheet)
	default:
		return nil, NewIngestError(op, ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads a comma-separated table whose first record is the header.
// Cells are kept as strings; the normalizer parses them.
func ReadCSV(r io.Reader) (*Table, error) {
	const op = "ReadCSV"

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewIngestError(op, err, "malformed CSV")
	}

	values := make([][]interface{}, len(records))
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		values[i] = row
	}
	return TableFromValues(values)
}

// ReadSheet reads a whole worksheet through reader.
func ReadSheet(ctx context.Context, reader RangeReader, sheetName string) (*Table, error) {
	const op = "ReadSheet"

	values, err := reader.ReadRange(ctx, sheetName)
	if err != nil {
		return nil, NewIngestError(op, err, sheetName)
	}
	return TableFromValues(values)
}

func readWorkbook(path, sheet string) (*Table, error) {
	const op = "readWorkbook"

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewIngestError(op, err, path)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, NewIngestError(op, err, fmt.Sprintf("sheet %q", sheet))
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			if i == 0 {
				cells[j] = cell
				continue
			}
			cells[j] = workbookCell(cell)
		}
		values[i] = cells
	}
	return TableFromValues(values)
}

// workbookCell turns raw numeric cells into numbers so date cells are read as
// serial dates. Values with a leading zero stay text to keep codes intact.
func workbookCell(raw string) interface{} {
	s := strings.TrimSpace(raw)
	if s == "" || (len(s) > 1 && s[0] == '0' && s[1] != '.') {
		return raw
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return raw
}

// TableFromValues converts a header-first cell grid into a Table. Blank
// header cells are named by position and fully empty rows are dropped.
func TableFromValues(values [][]interface{}) (*Table, error) {
	const op = "TableFromValues"

	if len(values) == 0 || len(values[0]) == 0 {
		return nil, NewIngestError(op, ErrEmptyTable, "")
	}

	columns := make([]string, len(values[0]))
	for i := range values[0] {
		name := getString(values[0], i)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		columns[i] = name
	}

	table := &Table{Columns: columns}
	for _, row := range values[1:] {
		raw := make(models.RawRow, len(columns))
		empty := true
		for i, col := range columns {
			if i >= len(row) || row[i] == nil {
				continue
			}
			raw[col] = row[i]
			if getString(row, i) != "" {
				empty = false
			}
		}
		if !empty {
			table.Rows = append(table.Rows, raw)
		}
	}
	return table, nil
}

// getString safely extracts a trimmed string value from a row slice
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
}
