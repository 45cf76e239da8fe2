package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action identifies what kind of administrative mutation was performed
type Action string

const (
	ActionUpdateReturnStatus Action = "UPDATE_RETURN_STATUS"
	ActionAddInternalNote    Action = "ADD_INTERNAL_NOTE"
	ActionDeleteReturn       Action = "DELETE_RETURN"
	ActionResendNotification Action = "RESEND_NOTIFICATION"
	ActionCreateProduct      Action = "CREATE_PRODUCT"
	ActionUpdateProduct      Action = "UPDATE_PRODUCT"
	ActionDeleteProduct      Action = "DELETE_PRODUCT"
	ActionCreateAttribute    Action = "CREATE_ATTRIBUTE"
	ActionUpdateAttribute    Action = "UPDATE_ATTRIBUTE"
	ActionDeleteAttribute    Action = "DELETE_ATTRIBUTE"
	ActionCreateVariation    Action = "CREATE_VARIATION"
	ActionUpdateVariation    Action = "UPDATE_VARIATION"
	ActionDeleteVariation    Action = "DELETE_VARIATION"
)

// Entry is one immutable audit record of an administrative action
type Entry struct {
	ID         uuid.UUID
	Action     Action
	TargetType string
	TargetID   uuid.UUID
	ActorID    uuid.UUID
	ActorEmail string
	ActorName  string
	Detail     string
	CreatedAt  time.Time
}

// NewEntry creates an audit entry stamped with the current time
func NewEntry(action Action, targetType string, targetID uuid.UUID, actorID uuid.UUID, actorEmail, actorName, detail string) Entry {
	return Entry{
		ID:         uuid.New(),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		ActorID:    actorID,
		ActorEmail: actorEmail,
		ActorName:  actorName,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
}

// Logger appends audit entries. The log is append-only; a failed append is
// logged by the caller but never rolls back the audited mutation.
type Logger interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, page, pageSize int) ([]Entry, int64, error)
}
