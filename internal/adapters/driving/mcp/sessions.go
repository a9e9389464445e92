package mcp

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
)

// sessions holds the editors opened through the server, keyed by
// session ID. Opening a saved draft uses its key as the session ID;
// unsaved drafts get a random one.
type sessions struct {
	mu      sync.Mutex
	editors map[string]driving.DraftEditor
}

func newSessions() *sessions {
	return &sessions{editors: make(map[string]driving.DraftEditor)}
}

func (s *sessions) open(key string, editor driving.DraftEditor) string {
	id := key
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editors[id] = editor
	return id
}

func (s *sessions) get(id string) (driving.DraftEditor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.editors[id]
	return e, ok
}

// byKey finds the session editing the saved draft key.
func (s *sessions) byKey(key string) (driving.DraftEditor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.editors[key]; ok {
		return e, true
	}
	for _, e := range s.editors {
		if e.Meta().Key == key {
			return e, true
		}
	}
	return nil, false
}

func (s *sessions) close(id string) (driving.DraftEditor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.editors[id]
	delete(s.editors, id)
	return e, ok
}

func (s *sessions) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.editors))
	for id := range s.editors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *sessions) drain() []driving.DraftEditor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]driving.DraftEditor, 0, len(s.editors))
	for id, e := range s.editors {
		out = append(out, e)
		delete(s.editors, id)
	}
	return out
}
