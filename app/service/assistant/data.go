package assistant

import (
	"sync"
	"time"

	"dashmate/app/service/classify"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one turn in the in-memory conversation transcript.
// Assistant entries carry the classified result for rendering.
type Entry struct {
	Role         string
	Content      string
	Result       *classify.Result
	ActionsTaken []string
	Timestamp    time.Time
}

const transcriptSize = 50

// transcript is the bounded, mutex-guarded conversation log for the
// current run. Oldest entries fall off the front.
type transcript struct {
	mu      sync.RWMutex
	entries []Entry
}

func (t *transcript) add(entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= transcriptSize {
		t.entries = append(t.entries[1:], entry)
	} else {
		t.entries = append(t.entries, entry)
	}
}

func (t *transcript) snapshot() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Entry, len(t.entries))
	copy(result, t.entries)

	return result
}
