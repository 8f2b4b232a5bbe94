package export

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes sheet as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(sheet.Title)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	for i, header := range sheet.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
	}
	for r, cells := range sheet.Rows {
		for i, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}

	if n := len(sheet.Headers); n > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(n, 1)
		if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// sheetName fits title to Excel's sheet name rules.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, title)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Sheet1"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
