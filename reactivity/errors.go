package reactivity

import (
	"fmt"
)

// PanicError wraps a panic recovered while draining a batch. Other queued
// subscribers still run; the first failure is returned from EndBatch.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("reactivity: panic in triggered subscriber: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
