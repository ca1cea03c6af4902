package exporter

import "fmt"

// Category classifies a failure.
type Category string

const (
	CategoryConfig      Category = "ConfigError"
	CategoryDiscovery   Category = "DiscoveryError"
	CategoryEntry       Category = "EntryError"
	CategoryPersistence Category = "PersistenceError"
)

// StageError aborts a run before any application is processed.
type StageError struct {
	// Stage is the last state reached before the failure.
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category(), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Category is ConfigError for configuration failures and DiscoveryError for
// failures locating the Steam library or account.
func (e *StageError) Category() Category {
	if e.Stage == StateInit {
		return CategoryConfig
	}
	return CategoryDiscovery
}

// Status is the result of processing one application.
type Status int

const (
	StatusFailed Status = iota
	StatusAdded
	StatusExists
)

func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusExists:
		return "exists"
	default:
		return "failed"
	}
}

// Outcome describes what happened to one application.
type Outcome struct {
	App    string
	Name   string
	Status Status
	// ID is the slot id of an added shortcut.
	ID       int
	Category Category
	Err      error
}

// Result summarizes the Processing stage.
type Result struct {
	Total     int
	Succeeded int
	// Added and Existing hold display names, Failed holds application keys.
	Added    []string
	Existing []string
	Failed   []string
	Outcomes []Outcome
}

// OK reports whether every configured application succeeded.
func (r Result) OK() bool {
	return r.Succeeded == r.Total
}

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusAdded:
		r.Succeeded++
		r.Added = append(r.Added, o.Name)
	case StatusExists:
		r.Succeeded++
		r.Existing = append(r.Existing, o.Name)
	default:
		r.Failed = append(r.Failed, o.App)
	}
}
