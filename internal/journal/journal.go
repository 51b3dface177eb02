// Package journal persists status bar message events to a JSONL file.
package journal

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SchemaVersion is the current journal schema version.
const SchemaVersion = 1

// EventKind identifies a stack transition.
type EventKind string

const (
	// KindPushed records a message being pushed onto the stack.
	KindPushed EventKind = "pushed"
	// KindPopped records the displayed top changing after a pop or remove.
	KindPopped EventKind = "popped"
)

// Event is a single journal entry.
type Event struct {
	EventID   string    `json:"event_id"`
	Kind      EventKind `json:"kind"`
	ContextID uint32    `json:"context_id"`
	MessageID uint32    `json:"message_id,omitempty"`
	Text      string    `json:"text"`
	Timestamp int64     `json:"timestamp"`
}

// NewEvent creates an Event with a fresh ULID and the current time.
func NewEvent(kind EventKind, contextID, messageID uint32, text string) (Event, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return Event{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return Event{
		EventID:   id.String(),
		Kind:      kind,
		ContextID: contextID,
		MessageID: messageID,
		Text:      text,
		Timestamp: time.Now().Unix(),
	}, nil
}

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	StaxbarSchemaVersion int   `json:"staxbar_schema_version"`
	CreatedAt            int64 `json:"created_at"`
}

// ErrJournalClosed is returned when operations are attempted on a closed journal.
var ErrJournalClosed = errors.New("journal is closed")

// Journal appends message events to a JSONL file, one event per line, with a
// schema version header on the first line.
type Journal struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

// Open opens (or creates) the journal file at path.
func Open(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	j := &Journal{
		path: path,
		file: file,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.Size() == 0 {
		if err := j.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return j, nil
}

// writeHeader writes the schema version header to the file.
func (j *Journal) writeHeader() error {
	header := schemaHeader{
		StaxbarSchemaVersion: SchemaVersion,
		CreatedAt:            time.Now().Unix(),
	}

	data, err := json.Marshal(header)
	if err != nil {
		return err
	}

	_, err = j.file.Write(append(data, '\n'))
	return err
}

// Append adds an event to the journal.
func (j *Journal) Append(e Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.file == nil {
		return ErrJournalClosed
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return err
	}

	return j.file.Sync()
}

// Load reads all events from the journal, oldest first.
func (j *Journal) Load() ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.file == nil {
		return nil, ErrJournalClosed
	}

	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", j.path, err)
	}

	var events []Event
	scanner := bufio.NewScanner(j.file)

	// Message texts can be long
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err != nil {
				continue
			}
			if header.StaxbarSchemaVersion > SchemaVersion {
				return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
					header.StaxbarSchemaVersion, SchemaVersion)
			}
			continue
		}

		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			// Skip malformed lines
			continue
		}

		if e.EventID != "" {
			events = append(events, e)
		}
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading file: %w", err)
	}

	// Seek back to end for appending
	if _, err := j.file.Seek(0, io.SeekEnd); err != nil {
		return events, err
	}

	return events, nil
}

// Clear removes all events, leaving only a fresh header.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.file == nil {
		return ErrJournalClosed
	}

	if err := j.file.Truncate(0); err != nil {
		return err
	}
	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return j.writeHeader()
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Close releases the file handle.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	if j.file != nil {
		return j.file.Close()
	}
	return nil
}
