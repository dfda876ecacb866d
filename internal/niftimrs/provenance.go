package niftimrs

import (
	"time"

	"github.com/google/uuid"
)

// Program identifies this toolkit in provenance records.
const Program = "mrs-tools"

// ProgramVersion is stamped into provenance records and journal entries.
const ProgramVersion = "0.2.0"

// Record describes one transformation applied to a dataset.
type Record struct {
	ID      string
	Time    time.Time
	Program string
	Version string
	Method  string
	Details string
}

// Log is an append-only ordered sequence of provenance records. Extending a
// log always copies; records are never removed or reordered.
type Log []Record

// Clone returns an independent copy of the log.
func (l Log) Clone() Log {
	if len(l) == 0 {
		return nil
	}
	out := make(Log, len(l))
	copy(out, l)
	return out
}

// Extend returns a copy of the log with a new record appended.
func (l Log) Extend(method, details string) Log {
	out := make(Log, len(l), len(l)+1)
	copy(out, l)
	return append(out, Record{
		ID:      uuid.NewString(),
		Time:    time.Now().UTC(),
		Program: Program,
		Version: ProgramVersion,
		Method:  method,
		Details: details,
	})
}

// Concat joins several logs in input order into one new log.
func Concat(logs ...Log) Log {
	total := 0
	for _, l := range logs {
		total += len(l)
	}
	if total == 0 {
		return nil
	}
	out := make(Log, 0, total)
	for _, l := range logs {
		out = append(out, l...)
	}
	return out
}
