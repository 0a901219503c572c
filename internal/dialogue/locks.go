package dialogue

import "sync"

// conversationLocks serializes handlers per conversation id. Entries are
// reference counted and removed once the last holder releases, so the table
// stays bounded by the number of in-flight conversations.
type conversationLocks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newConversationLocks() *conversationLocks {
	return &conversationLocks{entries: map[int64]*lockEntry{}}
}

func (l *conversationLocks) lock(conversationID int64) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[conversationID]
	if !ok {
		e = &lockEntry{}
		l.entries[conversationID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, conversationID)
		}
		l.mu.Unlock()
	}
}
