package modules

import "errors"

// Sentinel errors for lifecycle preconditions; wrap with fmt.Errorf and %w
// so callers can test with errors.Is.
var (
	ErrAlreadyExists = errors.New("module already exists")
	ErrNotFound      = errors.New("module not found")
)
