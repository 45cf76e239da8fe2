package returns

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows admin listing queries. Zero values mean "no constraint".
type Filter struct {
	Status        *Status
	CustomerEmail string
	From          *time.Time
	To            *time.Time
	Page          int
	PageSize      int
}

// Repository defines the persistence operations for returns.
//
// NextNumber must be backed by a storage-level atomic sequence: no two
// concurrent callers may ever receive the same value. Create persists the
// aggregate with its items, initial history and images in one transaction.
// RecordTransition updates the status field and inserts the history entry
// in one transaction so a concurrent transition can never drop an entry.
type Repository interface {
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, r *Return) error
	FindByID(ctx context.Context, id uuid.UUID) (*Return, error)
	FindByNumber(ctx context.Context, number int64) (*Return, error)
	FindAll(ctx context.Context, filter Filter) ([]*Return, int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	RecordTransition(ctx context.Context, returnID uuid.UUID, status Status, entry StatusHistoryEntry) error
	AddNote(ctx context.Context, note InternalNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasItemsForProduct reports whether any return item references the
	// product, blocking catalog deletion while referenced.
	HasItemsForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}
