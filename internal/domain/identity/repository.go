package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// Repository defines the persistence operations for admin users
type Repository interface {
	shared.Repository[AdminUser]
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Actor is the authenticated identity attached to every admin-mutating
// call. It becomes the author of history entries and audit log rows.
type Actor struct {
	ID    uuid.UUID
	Email string
	Name  string
}
