package reconciler

import (
	"fmt"
	"sync"
	"time"

	"figdash/pkg/log"
)

// defaultSyncLogSize keeps the log small; the UI only surfaces recent
// activity.
const defaultSyncLogSize = 5

// SyncLog is a bounded, in-memory log of background sync activity. Oldest
// entries fall off once the bound is reached.
type SyncLog struct {
	mu      sync.Mutex
	max     int
	entries []string
}

// NewSyncLog creates a log bounded at max entries.
func NewSyncLog(max int) *SyncLog {
	if max <= 0 {
		max = defaultSyncLogSize
	}
	return &SyncLog{max: max}
}

// Appendf records a timestamped, human-readable entry.
func (l *SyncLog) Appendf(format string, args ...any) {
	entry := time.Now().Format("15:04:05") + " " + fmt.Sprintf(format, args...)

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
	l.mu.Unlock()

	log.Debug().Str("entry", entry).Msg("Sync log")
}

// Entries returns a copy of the current log, oldest first.
func (l *SyncLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
