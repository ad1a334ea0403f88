package export

import (
	"bytes"
	"testing"
	"time"

	"dumptrac/internal/dashboard"

	"github.com/xuri/excelize/v2"
)

var generated = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleRows() []dashboard.Row {
	return []dashboard.Row{
		{ID: 2, BinID: 10, Location: "Oke-Ira Market", Latitude: "6.6018", Longitude: "3.3515", Status: "full", CreatedAt: "2024-05-01 09:30:00", Clearable: true},
		{ID: 1, BinID: 99, Location: "-", Latitude: "-", Longitude: "-", Status: "done", CreatedAt: "2024-04-30 08:00:00"},
	}
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleRows(), generated)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "dumpTrac reports",
		"B3": "1",
		"C5": "Location",
		"C6": "Oke-Ira Market",
		"F6": "full",
		"A7": "1",
		"D7": "-",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestPDF(t *testing.T) {
	for _, rows := range [][]dashboard.Row{sampleRows(), nil} {
		data, err := PDF(rows, generated)
		if err != nil {
			t.Fatalf("PDF: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("output does not look like a PDF: %q", data[:8])
		}
	}
}
