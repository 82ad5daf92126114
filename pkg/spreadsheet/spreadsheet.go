package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupported is returned by Read for unknown file extensions.
var ErrUnsupported = errors.New("spreadsheet: unsupported file type")

// SampleHeaders are the columns written by WriteSample.
var SampleHeaders = []string{"收款人", "金額", "日期", "備註"}

// Read dispatches on the extension of name.
func Read(name string, r io.Reader) ([]map[string]any, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".csv":
		return ReadCSV(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

// ReadXLSX reads the first sheet of a workbook. Numeric cells come back as
// float64, everything else as string.
func ReadXLSX(r io.Reader) ([]map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	var out []map[string]any
	for r, row := range rows[1:] {
		record := make(map[string]any)
		for c, raw := range row {
			if c >= len(headers) || strings.TrimSpace(headers[c]) == "" || raw == "" {
				continue
			}
			record[strings.TrimSpace(headers[c])] = cellValue(f, sheet, c+1, r+2, raw)
		}
		if len(record) > 0 {
			out = append(out, record)
		}
	}
	return out, nil
}

func cellValue(f *excelize.File, sheet string, col, row int, raw string) any {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	kind, err := f.GetCellType(sheet, cell)
	if err != nil || (kind != excelize.CellTypeNumber && kind != excelize.CellTypeUnset) {
		return raw
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// ReadCSV reads comma separated rows. Values stay strings.
func ReadCSV(r io.Reader) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	headers := rows[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	var out []map[string]any
	for _, row := range rows[1:] {
		record := make(map[string]any)
		for c, raw := range row {
			if c >= len(headers) || strings.TrimSpace(headers[c]) == "" || strings.TrimSpace(raw) == "" {
				continue
			}
			record[strings.TrimSpace(headers[c])] = raw
		}
		if len(record) > 0 {
			out = append(out, record)
		}
	}
	return out, nil
}

// WriteSample writes a workbook with the batch headers and one example row.
func WriteSample(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	example := []any{"陳大文", 1000, "2024-01-01", "租金"}
	for i, h := range SampleHeaders {
		head, _ := excelize.CoordinatesToCellName(i+1, 1)
		value, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, head, h); err != nil {
			return fmt.Errorf("spreadsheet: write header: %w", err)
		}
		if err := f.SetCellValue(sheet, value, example[i]); err != nil {
			return fmt.Errorf("spreadsheet: write sample: %w", err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet: write workbook: %w", err)
	}
	return nil
}
