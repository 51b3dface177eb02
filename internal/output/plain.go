package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/staxbar/internal/journal"
)

// PlainFormatter formats journal events as human-readable text lines.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes events as plain text, one per line.
func (f *PlainFormatter) Format(w io.Writer, events []journal.Event) error {
	for i, e := range events {
		if err := f.formatEvent(w, i+1, &e); err != nil {
			return err
		}
	}
	return nil
}

// formatEvent formats a single event.
func (f *PlainFormatter) formatEvent(w io.Writer, index int, e *journal.Event) error {
	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	switch e.Kind {
	case journal.KindPushed:
		sb.WriteString(fmt.Sprintf("pushed ctx=%d id=%d %q", e.ContextID, e.MessageID, e.Text))
	case journal.KindPopped:
		if e.ContextID == 0 && e.Text == "" {
			sb.WriteString("popped (stack empty)")
		} else {
			sb.WriteString(fmt.Sprintf("popped, top now ctx=%d %q", e.ContextID, e.Text))
		}
	default:
		sb.WriteString(fmt.Sprintf("%s ctx=%d %q", e.Kind, e.ContextID, e.Text))
	}

	if f.opts.ShowTime && e.Timestamp > 0 {
		sb.WriteString(fmt.Sprintf(" (%s)", humanize.Time(time.Unix(e.Timestamp, 0))))
	}

	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
