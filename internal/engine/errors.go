package engine

import "fmt"

// InstantiationError is returned when a required value could not be created
// by any constructor nor allocated.
type InstantiationError struct {
	Signature string
	Path      string
	Err       error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %s at %s: %v", e.Signature, e.Path, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// AssignmentError is returned when a value does not fit the slot it is
// assigned to, and the assignment policy is to fail.
type AssignmentError struct {
	Signature string
	Path      string
	Err       error
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("cannot assign %s at %s: %v", e.Signature, e.Path, e.Err)
}

func (e *AssignmentError) Unwrap() error {
	return e.Err
}

// MaxAttemptsExceededError is returned when a filter rejected every
// candidate of a node.
type MaxAttemptsExceededError struct {
	Signature string
	Path      string
	Selector  string
	Attempts  int
}

func (e *MaxAttemptsExceededError) Error() string {
	return fmt.Sprintf("%s at %s: filter %s rejected %d candidates", e.Signature, e.Path, e.Selector, e.Attempts)
}
