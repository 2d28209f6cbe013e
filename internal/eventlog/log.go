// Package eventlog keeps the human-readable simulation log shown next to the
// cluster diagram.
package eventlog

import "sync"

// InitialMessage is the only line of a freshly cleared log.
const InitialMessage = "Simulation initialized. Ready."

// Log is an append-only, ordered list of messages.
type Log struct {
	entries []string
	mu      sync.RWMutex
}

// New creates a log holding InitialMessage.
func New() *Log {
	return &Log{entries: []string{InitialMessage}}
}

// Append adds message to the end of the log.
func (l *Log) Append(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, message)
}

// Clear drops every entry and leaves InitialMessage as the only line.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = []string{InitialMessage}
}

// Entries returns a copy of all entries in order.
func (l *Log) Entries() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns a copy of the entries from index i on, together with the
// total number of entries. An index past the end yields an empty slice.
func (l *Log) Since(i int) ([]string, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := len(l.entries)
	i = max(i, 0)
	if i >= total {
		return []string{}, total
	}
	out := make([]string, total-i)
	copy(out, l.entries[i:])
	return out, total
}
