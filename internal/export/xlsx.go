package export

import (
	"fmt"
	"time"

	"dumptrac/internal/dashboard"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Reports"

// XLSX writes the dashboard table to a single-sheet workbook.
func XLSX(rows []dashboard.Row, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheetName, cell, value)
	}

	set("A1", "dumpTrac reports")
	set("A2", "Generated")
	set("B2", generatedAt.Format(dashboard.TimeLayout))
	set("A3", "Open reports")
	set("B3", openCount(rows))

	headerRow := 5
	for i, header := range dashboard.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		set(cell, header)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(dashboard.Headers), headerRow)
		_ = file.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), last, bold)
		_ = file.SetCellStyle(sheetName, "A1", "A1", bold)
	}

	for i, row := range rows {
		r := headerRow + 1 + i
		set(fmt.Sprintf("A%d", r), row.ID)
		set(fmt.Sprintf("B%d", r), row.BinID)
		set(fmt.Sprintf("C%d", r), row.Location)
		set(fmt.Sprintf("D%d", r), row.Latitude)
		set(fmt.Sprintf("E%d", r), row.Longitude)
		set(fmt.Sprintf("F%d", r), row.Status)
		set(fmt.Sprintf("G%d", r), row.CreatedAt)
	}

	_ = file.SetColWidth(sheetName, "A", "B", 10)
	_ = file.SetColWidth(sheetName, "C", "C", 40)
	_ = file.SetColWidth(sheetName, "D", "E", 14)
	_ = file.SetColWidth(sheetName, "F", "F", 12)
	_ = file.SetColWidth(sheetName, "G", "G", 22)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func openCount(rows []dashboard.Row) int {
	n := 0
	for _, row := range rows {
		if row.Clearable {
			n++
		}
	}
	return n
}
