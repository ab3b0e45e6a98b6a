package classifier

import (
	"errors"
	"fmt"
)

// Failure kinds of the model path. None of them reach callers of Classify;
// they only select the fallback and feed logs and metrics.
var (
	ErrCredentialUnavailable = errors.New("model credential unavailable")
	ErrTransport             = errors.New("model backend call failed")
	ErrSchemaViolation       = errors.New("model response violates analysis schema")
)

// ClassificationError pairs a failure kind with its cause.
type ClassificationError struct {
	Kind error
	Err  error
}

func (e *ClassificationError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ClassificationError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Reason labels why a result came from the fallback.
type Reason string

const (
	ReasonNone                  Reason = "none"
	ReasonCredentialUnavailable Reason = "credential_unavailable"
	ReasonTransport             Reason = "transport_failure"
	ReasonSchemaViolation       Reason = "schema_violation"
)

// ReasonFor maps an error from the model path to its label.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrCredentialUnavailable):
		return ReasonCredentialUnavailable
	case errors.Is(err, ErrSchemaViolation):
		return ReasonSchemaViolation
	default:
		return ReasonTransport
	}
}
