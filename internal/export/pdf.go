package export

import (
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin = 10.0
	pdfLineH  = 5.0
)

// WritePDF renders sheet as a landscape A4 table with wrapped cells.
func WritePDF(w io.Writer, sheet Sheet) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(sheet, pageW-2*pdfMargin)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(sheet.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		row(pdf, tr, widths, sheet.Headers, true)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()
	for _, cells := range sheet.Rows {
		if pdf.GetY()+rowHeight(pdf, tr, widths, cells) > pageH-pdfMargin {
			pdf.AddPage()
			header()
		}
		row(pdf, tr, widths, cells, false)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// columnWidths splits the usable width proportionally to the longest text in
// each column, with a floor so short columns stay legible.
func columnWidths(sheet Sheet, total float64) []float64 {
	n := len(sheet.Headers)
	if n == 0 {
		return nil
	}
	weights := make([]float64, n)
	for i, h := range sheet.Headers {
		weights[i] = float64(len(h))
	}
	for _, r := range sheet.Rows {
		for i := 0; i < n && i < len(r); i++ {
			l := float64(len(r[i]))
			if l > 60 {
				l = 60
			}
			if l > weights[i] {
				weights[i] = l
			}
		}
	}
	var sum float64
	for i := range weights {
		if weights[i] < 4 {
			weights[i] = 4
		}
		sum += weights[i]
	}
	out := make([]float64, n)
	for i, wgt := range weights {
		out[i] = total * wgt / sum
	}
	return out
}

func rowHeight(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, cells []string) float64 {
	lines := 1
	for i, wd := range widths {
		if i >= len(cells) {
			break
		}
		if n := len(pdf.SplitText(tr(cells[i]), wd-2)); n > lines {
			lines = n
		}
	}
	return float64(lines)*pdfLineH + 2
}

func row(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, cells []string, fill bool) {
	h := rowHeight(pdf, tr, widths, cells)
	x0, y0 := pdf.GetXY()
	x := x0
	for i, wd := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		style := "D"
		if fill {
			style = "FD"
		}
		pdf.Rect(x, y0, wd, h, style)
		pdf.SetXY(x+1, y0+1)
		pdf.MultiCell(wd-2, pdfLineH, tr(text), "", "L", false)
		x += wd
	}
	pdf.SetXY(x0, y0+h)
}
