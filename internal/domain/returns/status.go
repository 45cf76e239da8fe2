package returns

import "github.com/returnhub/backend/internal/domain/shared"

// Status represents the workflow status of a return
type Status string

const (
	StatusPending      Status = "pending"       // Submitted, waiting for review
	StatusApproved     Status = "approved"      // Approved, customer may ship the items back
	StatusRejected     Status = "rejected"      // Rejected by an administrator
	StatusReceived     Status = "received"      // Returned goods arrived at the warehouse
	StatusInspecting   Status = "inspecting"    // Items under inspection
	StatusRefundIssued Status = "refund_issued" // Refund or credit issued
	StatusCompleted    Status = "completed"     // Return fully settled
	StatusCancelled    Status = "cancelled"
)

// AllStatuses lists every status in workflow order
var AllStatuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusReceived,
	StatusInspecting,
	StatusRefundIssued,
	StatusCompleted,
	StatusCancelled,
}

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReceived,
		StatusInspecting, StatusRefundIssued, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outbound transitions
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// Same-status transitions are never legal. Every non-terminal status may
// move to cancelled.
func (s Status) CanTransitionTo(target Status) bool {
	if target == s {
		return false
	}
	if !s.IsTerminal() && target == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusReceived
	case StatusReceived:
		return target == StatusInspecting
	case StatusInspecting:
		return target == StatusRefundIssued || target == StatusRejected
	case StatusRefundIssued:
		return target == StatusCompleted
	}
	return false
}

// ParseStatus parses a status string, rejecting unknown values
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown return status: "+value)
	}
	return s, nil
}
