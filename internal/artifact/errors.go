package artifact

import (
	"errors"
	"fmt"
)

// Kind classifies artifact load failures. The taxonomy is closed: every load
// failure maps to exactly one kind.
type Kind string

const (
	// KindNotFound indicates the artifact file does not exist.
	KindNotFound Kind = "not_found"
	// KindCorrupt indicates the artifact file exists but cannot be parsed
	// or fails structural validation.
	KindCorrupt Kind = "corrupt"
	// KindVersionMismatch indicates the artifact declares an unsupported
	// format version.
	KindVersionMismatch Kind = "version_mismatch"
	// KindUnsupported indicates the artifact declares an unknown model type.
	KindUnsupported Kind = "unsupported"
)

// LoadError is returned when the artifact cannot be loaded. A load failure is
// fatal to readiness but never to the process.
type LoadError struct {
	// Kind is the failure classification.
	Kind Kind
	// Path is the artifact path that failed to load.
	Path string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load artifact %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load artifact %s: %s", e.Path, e.Kind)
}

// Unwrap implements errors.Unwrap.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// KindOf returns the load failure kind of err, or empty when err is not a
// LoadError.
func KindOf(err error) Kind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}
