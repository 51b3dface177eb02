// Package output provides output formatters for journal events.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/staxbar/internal/journal"
)

// Formatter formats journal events for output.
type Formatter interface {
	// Format writes formatted events to the writer.
	Format(w io.Writer, events []journal.Event) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	ShowIndex bool // Show 1-based index prefix (plain only)
	ShowTime  bool // Show relative time (plain only)
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: true,
		ShowTime:  true,
	}
}
