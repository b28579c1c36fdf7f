// package shared defines shared helpers
package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// NewFileLogger creates a [log.Logger] writing to the file at path, creating parent directories as needed.
//
// Used when the terminal is owned by the TUI and stderr logging would corrupt the display.
func NewFileLogger(path string) (*log.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewLogger(f), nil
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// NormalizeTitle canonicalizes a game title into the key used for deduplication:
// lower-cased, trimmed, with internal whitespace runs collapsed to a single space.
//
// Two titles identify the same game iff their normalized forms are identical.
// Matching is exact: a false merge is worse than a missed one.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// FormatPlayerRange formats an optional min/max player count as "2-4", "2+", or "?".
func FormatPlayerRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		if *min == *max {
			return fmt.Sprintf("%d", *min)
		}
		return fmt.Sprintf("%d-%d", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d+", *min)
	case max != nil:
		return fmt.Sprintf("up to %d", *max)
	default:
		return "?"
	}
}

// FormatPlayTime formats an optional play time range in minutes as "30-60 min".
func FormatPlayTime(min, max *int) string {
	switch {
	case min != nil && max != nil:
		if *min == *max {
			return fmt.Sprintf("%d min", *min)
		}
		return fmt.Sprintf("%d-%d min", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d+ min", *min)
	case max != nil:
		return fmt.Sprintf("up to %d min", *max)
	default:
		return "?"
	}
}

// MarshalJSON marshals v to JSON, optionally indented for human consumption.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
