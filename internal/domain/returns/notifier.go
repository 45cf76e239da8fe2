package returns

import (
	"context"

	"github.com/google/uuid"
)

// Notifier delivers customer- and admin-facing emails keyed off state
// changes. Every send is best-effort: a failure is reported to the caller
// but never rolls back the mutation that triggered it, and the pipeline
// never retries automatically. Implementations must bound each send with
// their own timeout so a slow provider cannot stall the request path.
type Notifier interface {
	SendConfirmation(ctx context.Context, email, displayNumber, orderReference string) error
	SendStatusUpdate(ctx context.Context, email, displayNumber string, status Status, note string) error
	SendAdminNotice(ctx context.Context, displayNumber string, status Status, returnID uuid.UUID) error
}

// DispatchReport records the outcome of the independent notification sends
// attempted for one mutation. Errors here are informational only.
type DispatchReport struct {
	CustomerAttempted bool
	CustomerErr       error
	AdminAttempted    bool
	AdminErr          error
}

// Delivered reports whether every attempted send succeeded
func (r DispatchReport) Delivered() bool {
	if r.CustomerAttempted && r.CustomerErr != nil {
		return false
	}
	if r.AdminAttempted && r.AdminErr != nil {
		return false
	}
	return true
}
