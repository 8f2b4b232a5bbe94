// Package diag is the diagnostic channel: store failures are logged once and,
// when a Rollbar token is configured, reported upstream.
package diag

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"

	"github.com/jask/teachdesk/internal/config"
)

// Reporter writes diagnostics to a std logger and optionally to Rollbar.
type Reporter struct {
	std     *log.Logger
	rollbar bool
}

// New builds a Reporter. A nil logger falls back to log.Default().
func New(std *log.Logger, cfg config.LogConfig, version string) *Reporter {
	if std == nil {
		std = log.Default()
	}
	enabled := strings.TrimSpace(cfg.RollbarToken) != ""
	if enabled {
		rollbar.SetToken(cfg.RollbarToken)
		rollbar.SetEnvironment(cfg.Environment)
		rollbar.SetCodeVersion(version)
	}
	rollbar.SetEnabled(enabled)
	return &Reporter{std: std, rollbar: enabled}
}

// Discard returns a Reporter that drops everything; used in tests.
func Discard() *Reporter {
	return &Reporter{std: log.New(nopWriter{}, "", 0)}
}

// Error records a failed operation.
func (r *Reporter) Error(msg string, err error, fields map[string]any) {
	if r == nil {
		return
	}
	r.std.Printf("ERROR %s: %v%s", msg, err, formatFields(fields))
	if r.rollbar && err != nil {
		rollbar.Error(fmt.Errorf("%s: %w", msg, err), fields)
	}
}

// Info records a notable event.
func (r *Reporter) Info(msg string, fields map[string]any) {
	if r == nil {
		return
	}
	r.std.Printf("INFO %s%s", msg, formatFields(fields))
}

// Close flushes pending Rollbar items.
func (r *Reporter) Close() {
	if r != nil && r.rollbar {
		rollbar.Close()
	}
}

func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
