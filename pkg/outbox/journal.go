package outbox

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Journal is an append-only JSONL file of undelivered events. One line per
// event; delivered events are compacted out with an atomic rewrite.
type Journal struct {
	path   string
	events []Event
}

// OpenJournal loads the journal at path, creating the parent directory if
// needed. A missing file is an empty journal; a corrupt trailing line
// (torn write) is dropped.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("outbox: create journal dir: %w", err)
	}

	j := &Journal{path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("outbox: open journal: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			// A torn final line from a crash mid-append. Nothing
			// after it can be valid either way.
			break
		}
		j.events = append(j.events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("outbox: read journal: %w", err)
	}

	return j, nil
}

// Events returns the journaled events in append order.
func (j *Journal) Events() []Event {
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// Append writes one event line and fsyncs before returning.
func (j *Journal) Append(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("outbox: encode event: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("outbox: open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("outbox: append: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("outbox: sync: %w", err)
	}

	j.events = append(j.events, ev)
	return nil
}

// Rewrite replaces the journal contents with the given events, atomically
// via a temp file and rename.
func (j *Journal) Rewrite(events []Event) error {
	tmp, err := os.CreateTemp(filepath.Dir(j.path), ".journal-*")
	if err != nil {
		return fmt.Errorf("outbox: temp journal: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("outbox: encode event: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			tmp.Close()
			return fmt.Errorf("outbox: write: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("outbox: flush: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("outbox: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("outbox: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("outbox: replace journal: %w", err)
	}

	j.events = make([]Event, len(events))
	copy(j.events, events)
	return nil
}
