package memory

import (
	"sync"
	"time"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Save and Load are no-ops.
// It backs the settings service in tests.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get returns the raw value under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string under key.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetBool returns the bool under key.
func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.Get(key)
	b, _ := v.(bool)
	return b
}

// GetInt returns the number under key, truncated to an int.
func (s *ConfigStore) GetInt(key string) int {
	f, _ := s.number(key)
	return int(f)
}

// GetFloat returns the number under key.
func (s *ConfigStore) GetFloat(key string) float64 {
	f, _ := s.number(key)
	return f
}

// GetDuration returns the duration under key. Strings are parsed with
// time.ParseDuration and plain numbers are milliseconds.
func (s *ConfigStore) GetDuration(key string) time.Duration {
	v, _ := s.Get(key)
	switch d := v.(type) {
	case time.Duration:
		return d
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0
		}
		return parsed
	}
	if ms, ok := s.number(key); ok {
		return time.Duration(ms) * time.Millisecond
	}
	return 0
}

func (s *ConfigStore) number(key string) (float64, bool) {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
