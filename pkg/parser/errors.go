package parser

import "fmt"

// InvariantError signals a contract breach by the driver or a bug within the
// core itself: a node map invariant (I1-I7) would be violated by the
// requested operation. It is the only error kind the core surfaces and is
// never recoverable at this layer.
type InvariantError struct {
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

func newInvariantError(message string, details map[string]any) *InvariantError {
	return &InvariantError{Message: message, Details: details}
}

func newMissingIdError(op string, id NodeId) *InvariantError {
	return newInvariantError(op+": id not found", map[string]any{"id": id})
}
