package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/staxbar/internal/journal"
)

// YAMLFormatter formats journal events as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes events as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, events []journal.Event) error {
	data, err := yaml.Marshal(events)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
