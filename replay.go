package storefront

import (
	"bufio"
	"fmt"
	"io"
	"log"
)

// ErrorSink receives a human-readable description of every record that
// failed, fatal or constraint. Implementations never return the failure to
// the caller; the batch always continues.
type ErrorSink interface {
	Failure(msg string)
}

// Notifier receives an event after each successful mutation. The persister
// and audit log consume these instead of hooking entity methods.
type Notifier interface {
	Event(msg string)
}

// ReplayStats summarizes one batch run.
type ReplayStats struct {
	Applied int // records that mutated state
	Failed  int // records skipped on a parse or constraint error
	Skipped int // records ignored because no session was active
}

// Replay processes records line by line, in order, against the registry and
// session. Malformed records and constraint violations are reported to the
// sink and skipped; they never abort the batch. Records other than login are
// skipped silently while no session is active.
//
// Replay is deterministic: the outcome of each record depends only on the
// starting registry and the records before it.
func Replay(reg *Registry, sess *Session, r io.Reader, sink ErrorSink, notify Notifier) (ReplayStats, error) {
	var stats ReplayStats
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		tx, err := ParseRecord(line)
		if err != nil {
			stats.Failed++
			report(sink, fmt.Sprintf("ERROR: %v", err))
			continue
		}

		// Before anyone logs in, only a login record means anything.
		if tx.What() != CmdLogin && !sess.Active() {
			stats.Skipped++
			continue
		}

		if err := tx.Apply(reg, sess); err != nil {
			stats.Failed++
			report(sink, fmt.Sprintf("ERROR: transaction %s: %v", tx.What(), err))
			continue
		}
		stats.Applied++
		if notify != nil {
			notify.Event(tx.String())
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("could not read transaction records: %w", err)
	}
	return stats, nil
}

func report(sink ErrorSink, msg string) {
	log.Print(msg)
	if sink != nil {
		sink.Failure(msg)
	}
}
