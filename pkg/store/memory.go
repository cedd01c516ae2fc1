package store

import (
	"sync"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu   sync.RWMutex
	runs []*Run
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{runs: make([]*Run, 0)}
}

// SaveRun stores a copy of run.
func (m *Memory) SaveRun(run *Run) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := clone(run)
	c.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, c)

	return c.ID, nil
}

// GetRun retrieves a run by ID.
func (m *Memory) GetRun(id int64) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 1 || id > int64(len(m.runs)) {
		return nil, nil
	}
	return clone(m.runs[id-1]), nil
}

// LastRun retrieves the most recent run of source.
func (m *Memory) LastRun(source string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].Source == source {
			return clone(m.runs[i]), nil
		}
	}
	return nil, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

func clone(run *Run) *Run {
	c := *run
	c.Bindings = append([]Binding(nil), run.Bindings...)
	c.Diagnostics = append([]Diagnostic(nil), run.Diagnostics...)
	return &c
}
