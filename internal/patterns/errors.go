package patterns

import "fmt"

// LoadError represents an error loading or compiling a pattern library
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pattern library error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pattern library error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
