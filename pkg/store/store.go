// Package store persists the results of program runs.
package store

import "time"

// Binding is one depth 0 variable of a finished run.
type Binding struct {
	Name  string
	Value uint32
}

// Diagnostic is a runtime error recorded during a run.
type Diagnostic struct {
	Kind    string
	Line    int
	Name    string
	Message string
}

// Run is the persisted outcome of executing one source file.
type Run struct {
	ID          int64
	Source      string
	Timestamp   time.Time
	Bindings    []Binding
	Diagnostics []Diagnostic
}

// Store is the interface for run persistence.
type Store interface {
	// SaveRun stores a run and returns its assigned ID.
	SaveRun(run *Run) (int64, error)
	// GetRun retrieves a run by ID. Returns nil if not found.
	GetRun(id int64) (*Run, error)
	// LastRun retrieves the most recent run of a source. Returns nil if there is none.
	LastRun(source string) (*Run, error)
	// Close releases resources.
	Close() error
}
