package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]any{
		"A1": "收款人", "B1": "金額", "C1": "日期",
		"A2": "陳大文", "B2": 1000, "C2": "2024-01-01",
		"A4": "Alice", "B4": 12.5,
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read("rows.xlsx", &buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []map[string]any{
		{"收款人": "陳大文", "金額": 1000.0, "日期": "2024-01-01"},
		{"收款人": "Alice", "金額": 12.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV(t *testing.T) {
	in := "\ufeffpayee,amount,memo\nBob,250,\n,,\nCarol,9.99,rent\n"
	got, err := Read("rows.CSV", strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []map[string]any{
		{"payee": "Bob", "amount": "250"},
		{"payee": "Carol", "amount": "9.99", "memo": "rent"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadUnsupported(t *testing.T) {
	if _, err := Read("rows.ods", strings.NewReader("")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestWriteSampleRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSample(&buf); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	rows, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	want := []map[string]any{{"收款人": "陳大文", "金額": 1000.0, "日期": "2024-01-01", "備註": "租金"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("sample mismatch (-want +got):\n%s", diff)
	}
}
