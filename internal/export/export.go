// Package export writes the rows a screen is showing to PDF or XLSX files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format is an output file type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// ParseFormat accepts a format name or a file name with a known extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(filepath.Ext(s), "."))
	if s == "" {
		return "", ErrUnknownFormat
	}
	return parseName(s)
}

func parseName(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatXLSX:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatByName parses "pdf" or "xlsx".
func FormatByName(s string) (Format, error) {
	return parseName(strings.ToLower(strings.TrimSpace(s)))
}

// Sheet is a rendered table: a title, a header row and text cells.
type Sheet struct {
	Table   string
	Title   string
	Headers []string
	Rows    [][]string
}

// Write renders sheet in format to w.
func Write(w io.Writer, sheet Sheet, format Format) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, sheet)
	case FormatXLSX:
		return WriteXLSX(w, sheet)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Exporter writes sheets into a directory with unique file names.
type Exporter struct {
	Dir string
	now func() time.Time
}

func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir, now: time.Now}
}

// Export writes sheet to a new file under Dir and returns its path.
func (e *Exporter) Export(sheet Sheet, format Format) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.Dir, e.fileName(sheet.Table, format))
	if err := WriteFile(path, sheet, format); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) fileName(table string, format Format) string {
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	if table == "" {
		table = "export"
	}
	short := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%s-%s.%s", table, now().Format("20060102-150405"), short, format)
}

// WriteFile renders sheet into path, removing the partial file on failure.
func WriteFile(path string, sheet Sheet, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, sheet, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", format, err)
	}
	return f.Close()
}
