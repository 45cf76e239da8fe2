package returns

import (
	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// AggregateTypeReturn is the aggregate type for return events
const AggregateTypeReturn = "Return"

// Event type constants
const (
	EventTypeReturnSubmitted     = "ReturnSubmitted"
	EventTypeReturnStatusChanged = "ReturnStatusChanged"
	EventTypeReturnNoteAdded     = "ReturnNoteAdded"
	EventTypeReturnDeleted       = "ReturnDeleted"
)

// ReturnSubmittedEvent is published when a customer submission is accepted
type ReturnSubmittedEvent struct {
	shared.BaseDomainEvent
	ReturnID      uuid.UUID `json:"return_id"`
	Number        int64     `json:"number"`
	DisplayNumber string    `json:"display_number"`
	CustomerEmail string    `json:"customer_email"`
	ItemCount     int       `json:"item_count"`
}

// NewReturnSubmittedEvent creates a new ReturnSubmittedEvent
func NewReturnSubmittedEvent(r *Return) *ReturnSubmittedEvent {
	return &ReturnSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnSubmitted, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		Number:          r.Number,
		DisplayNumber:   r.DisplayNumber(),
		CustomerEmail:   r.CustomerEmail,
		ItemCount:       len(r.Items),
	}
}

// ReturnStatusChangedEvent is published on every successful transition
type ReturnStatusChangedEvent struct {
	shared.BaseDomainEvent
	ReturnID      uuid.UUID `json:"return_id"`
	DisplayNumber string    `json:"display_number"`
	From          Status    `json:"from"`
	To            Status    `json:"to"`
	Note          string    `json:"note"`
	Author        string    `json:"author"`
}

// NewReturnStatusChangedEvent creates a new ReturnStatusChangedEvent
func NewReturnStatusChangedEvent(r *Return, from Status, entry StatusHistoryEntry) *ReturnStatusChangedEvent {
	return &ReturnStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnStatusChanged, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		DisplayNumber:   r.DisplayNumber(),
		From:            from,
		To:              entry.Status,
		Note:            entry.Note,
		Author:          entry.Author,
	}
}

// ReturnNoteAddedEvent is published when an internal note is appended
type ReturnNoteAddedEvent struct {
	shared.BaseDomainEvent
	ReturnID uuid.UUID `json:"return_id"`
	NoteID   uuid.UUID `json:"note_id"`
	Author   string    `json:"author"`
}

// NewReturnNoteAddedEvent creates a new ReturnNoteAddedEvent
func NewReturnNoteAddedEvent(r *Return, note *InternalNote) *ReturnNoteAddedEvent {
	return &ReturnNoteAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnNoteAdded, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		NoteID:          note.ID,
		Author:          note.Author,
	}
}

// ReturnDeletedEvent is published when a return is deleted with its children
type ReturnDeletedEvent struct {
	shared.BaseDomainEvent
	ReturnID      uuid.UUID `json:"return_id"`
	DisplayNumber string    `json:"display_number"`
}

// NewReturnDeletedEvent creates a new ReturnDeletedEvent
func NewReturnDeletedEvent(r *Return) *ReturnDeletedEvent {
	return &ReturnDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnDeleted, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		DisplayNumber:   r.DisplayNumber(),
	}
}
