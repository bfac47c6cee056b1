// Package audit holds the mutation audit & rollback core: the ordered
// mutation log, the revocation authorization matrix, snapshot capture,
// and the rollback engine that reverses applied operations.
package audit

import (
	"fmt"
	"sync"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
)

// Log is the ordered, append-only sequence of mutation log entries.
// New entries go to the head, so traversal order is most-recent-first.
// Entries are never reordered or deleted.
type Log struct {
	mu      sync.Mutex
	entries []*model.MutationLogEntry
}

// NewLog builds a log over the given entries, already ordered
// most-recent-first.
func NewLog(entries []*model.MutationLogEntry) *Log {
	return &Log{entries: entries}
}

// Append inserts the entry at the head of the sequence.
func (l *Log) Append(entry *model.MutationLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]*model.MutationLogEntry{entry}, l.entries...)
}

// Find returns the entry with the given id.
func (l *Log) Find(id uuid.UUID) (*model.MutationLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("log entry %s: %w", id, apperr.ErrNotFound)
}

// MarkRevoked flips the entry's revoked flag. The transition is one-way:
// a second call fails with ErrAlreadyRevoked.
func (l *Log) MarkRevoked(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.ID != id {
			continue
		}
		if e.Revoked {
			return fmt.Errorf("log entry %s: %w", id, apperr.ErrAlreadyRevoked)
		}
		e.Revoked = true
		return nil
	}
	return fmt.Errorf("log entry %s: %w", id, apperr.ErrNotFound)
}

// Entries returns the sequence, most recent first.
func (l *Log) Entries() []*model.MutationLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.MutationLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
