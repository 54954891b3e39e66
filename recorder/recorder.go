// Package recorder persists the replay's audit trail: one entry per failed
// record and one per successful mutation.
package recorder

import (
	"fmt"
	"os"
	"time"
)

// Recorder receives replay events and failures. Implementations never
// propagate a write failure into the batch; at worst they log and move on.
type Recorder interface {
	Event(msg string)
	Failure(msg string)
	Close() error
}

// Log appends human-readable lines to a text file. This is the error log a
// person reads after the batch ran.
type Log struct {
	f *os.File
}

// NewLog opens (or creates) the log file in append mode.
func NewLog(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}
	return &Log{f: f}, nil
}

func (l *Log) Event(msg string)   { l.write("EVENT", msg) }
func (l *Log) Failure(msg string) { l.write("FAIL", msg) }

func (l *Log) write(kind, msg string) {
	// A failed write must not fail the batch.
	fmt.Fprintf(l.f, "%s %-5s %s\n", time.Now().Format(time.RFC3339), kind, msg)
}

func (l *Log) Close() error { return l.f.Close() }
