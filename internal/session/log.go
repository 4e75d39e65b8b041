// Package session tracks the intervals completed during the current run.
// The log is in-memory only and dies with the process; tomatone keeps no
// history across runs.
package session

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"tomatone/internal/timer"
)

// Entry records one completed interval.
type Entry struct {
	ID          string    `yaml:"id"`
	Mode        string    `yaml:"mode"`
	CompletedAt time.Time `yaml:"completed_at"`
}

// RelativeTime returns a human-readable relative completion time,
// e.g. "5 minutes ago".
func (e Entry) RelativeTime() string {
	return humanize.Time(e.CompletedAt)
}

// Log is an append-only record of completed intervals.
type Log struct {
	entropy io.Reader
	entries []Entry
}

// NewLog creates an empty session log.
func NewLog() *Log {
	return NewLogWithEntropy(rand.Reader)
}

// NewLogWithEntropy creates an empty session log drawing ULID entropy from
// r instead of crypto/rand.
func NewLogWithEntropy(r io.Reader) *Log {
	return &Log{entropy: r}
}

// Add appends a completed interval for the given mode, stamped now.
func (l *Log) Add(mode timer.Mode) (Entry, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), l.entropy)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	entry := Entry{
		ID:          id.String(),
		Mode:        mode.String(),
		CompletedAt: time.Now(),
	}
	l.entries = append(l.entries, entry)
	return entry, nil
}

// All returns the completed intervals in completion order.
func (l *Log) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Count returns the number of completed intervals.
func (l *Log) Count() int {
	return len(l.entries)
}

// CountMode returns the number of completed intervals for one mode.
func (l *Log) CountMode(mode timer.Mode) int {
	n := 0
	for _, e := range l.entries {
		if e.Mode == mode.String() {
			n++
		}
	}
	return n
}

// Last returns the most recently completed interval, or nil if none.
func (l *Log) Last() *Entry {
	if len(l.entries) == 0 {
		return nil
	}
	e := l.entries[len(l.entries)-1]
	return &e
}

// MarshalYAML renders the log as a YAML document for export.
func (l *Log) MarshalYAML() ([]byte, error) {
	type summary struct {
		Completed int     `yaml:"completed"`
		Entries   []Entry `yaml:"entries"`
	}
	return yaml.Marshal(summary{
		Completed: len(l.entries),
		Entries:   l.entries,
	})
}
