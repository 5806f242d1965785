package ingestion

import "fmt"

// FileReadError represents a failure to read an input document
type FileReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
