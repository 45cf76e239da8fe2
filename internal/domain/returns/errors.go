package returns

import "fmt"

// InvalidTransitionError signals a status change the workflow graph does
// not allow, including no-op same-status transitions.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition return from %s to %s", e.From, e.To)
}

// NewInvalidTransitionError creates an InvalidTransitionError
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// ItemResolutionError names the submitted item whose attribute selection
// did not resolve to a real variation. Index is the item's zero-based
// position in the submission.
type ItemResolutionError struct {
	Index int
	Cause error
}

// Error implements the error interface
func (e *ItemResolutionError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying resolver error
func (e *ItemResolutionError) Unwrap() error {
	return e.Cause
}

// NewItemResolutionError creates an ItemResolutionError
func NewItemResolutionError(index int, cause error) *ItemResolutionError {
	return &ItemResolutionError{Index: index, Cause: cause}
}
