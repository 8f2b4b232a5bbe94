package diag

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/jask/teachdesk/internal/config"
)

func TestErrorWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	r := New(log.New(&buf, "", 0), config.LogConfig{}, "test")
	r.Error("update teachers", errors.New("boom"), map[string]any{"table": "teachers", "id": 2})

	got := buf.String()
	if !strings.Contains(got, "ERROR update teachers: boom id=2 table=teachers") {
		t.Fatalf("unexpected log line: %q", got)
	}
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *Reporter
	r.Error("x", errors.New("y"), nil)
	r.Info("x", nil)
	r.Close()
}
