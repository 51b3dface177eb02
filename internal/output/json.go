package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/staxbar/internal/journal"
)

// JSONFormatter formats journal events as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes events as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, events []journal.Event) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(events)
}
