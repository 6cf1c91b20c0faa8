// Package storage is the persistence collaborator: a synchronous,
// capacity-bounded key/value store. The production implementation sits on
// sqlite under the user config dir; an in-memory one backs tests.
package storage

// KV stores string values under string keys. Get reports absence via the
// second return rather than an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Memory is an in-process KV used by tests and as a degraded fallback when
// the sqlite store cannot be opened.
type Memory struct {
	values map[string]string

	// SetErr, when non-nil, is returned by every Set. Lets tests exercise
	// swallowed persistence failures.
	SetErr error
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}
