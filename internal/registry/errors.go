package registry

import (
	"errors"
	"fmt"
)

// ErrGenerationExhausted is returned when the identifier generation loop
// hits its attempt cap without finding an unused short ID. At the default
// token entropy this indicates a misconfigured generator or a store fault,
// not genuine identifier-space exhaustion.
var ErrGenerationExhausted = errors.New("exhausted short id generation attempts")

// ValidationError reports a rejected phone or message input. Callers must
// fix the input; these are never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps an underlying persistence failure surfaced to the
// caller. The registry performs no automatic retry on store outages.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
