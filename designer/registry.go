package designer

import (
	"sync"

	"keepsake/utils"
)

// Draft is one open editing session bound to a single entry field.
type Draft struct {
	ID      string
	EntryID string
	Field   string
	Session *Session
}

// Registry holds the process-local draft sessions. Opening a new draft
// for an entry field replaces any previous one: there is exactly one live
// copy per field at a time.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

func (r *Registry) OpenDraft(entryID, field, committed string, commit CommitFunc) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, d := range r.drafts {
		if d.EntryID == entryID && d.Field == field {
			delete(r.drafts, id)
		}
	}

	d := &Draft{
		ID:      utils.GetUUID(),
		EntryID: entryID,
		Field:   field,
		Session: Open(committed, commit),
	}
	r.drafts[d.ID] = d
	return d
}

func (r *Registry) Get(id string) (*Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	return d, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
}
