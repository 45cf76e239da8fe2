package returns

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// Reason is the per-item reason code for returning an item
type Reason string

const (
	ReasonDefective      Reason = "DEFECTIVE"
	ReasonWrongItem      Reason = "WRONG_ITEM"
	ReasonChangedMind    Reason = "CHANGED_MIND"
	ReasonNotAsDescribed Reason = "NOT_AS_DESCRIBED"
	ReasonOther          Reason = "OTHER"
)

// IsValid checks if the reason is a recognized value
func (r Reason) IsValid() bool {
	switch r {
	case ReasonDefective, ReasonWrongItem, ReasonChangedMind, ReasonNotAsDescribed, ReasonOther:
		return true
	}
	return false
}

// Resolution is the customer's preferred way of settling the return
type Resolution string

const (
	ResolutionRefund      Resolution = "REFUND"
	ResolutionExchange    Resolution = "EXCHANGE"
	ResolutionStoreCredit Resolution = "STORE_CREDIT"
)

// IsValid checks if the resolution is a recognized value
func (r Resolution) IsValid() bool {
	switch r {
	case ResolutionRefund, ResolutionExchange, ResolutionStoreCredit:
		return true
	}
	return false
}

// SystemActor is the history author recorded for the customer submission
const SystemActor = "system"

// InitialHistoryNote is the note on the first history entry of every return
const InitialHistoryNote = "Return request submitted by customer"

// MinDescriptionLength is the minimum length of the free-text description
const MinDescriptionLength = 10

// ReturnItem is one line of a return. It references a product and, when the
// product has variations, the resolved variation. Immutable after creation.
type ReturnItem struct {
	ID          uuid.UUID
	ReturnID    uuid.UUID
	ProductID   uuid.UUID
	VariationID *uuid.UUID
	ProductName string
	SKU         string
	Quantity    int
	Reason      Reason
	Condition   string
	CreatedAt   time.Time
}

// NewReturnItem creates a return item. VariationID is nil for products
// without variation attributes.
func NewReturnItem(productID uuid.UUID, variationID *uuid.UUID, productName, sku string, quantity int, reason Reason, condition string) (*ReturnItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Item SKU cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown return reason: "+string(reason))
	}

	return &ReturnItem{
		ID:          uuid.New(),
		ProductID:   productID,
		VariationID: variationID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		Reason:      reason,
		Condition:   strings.TrimSpace(condition),
		CreatedAt:   time.Now(),
	}, nil
}

// StatusHistoryEntry is one immutable record of a status the return held
type StatusHistoryEntry struct {
	ID        uuid.UUID
	ReturnID  uuid.UUID
	Status    Status
	Note      string
	Author    string
	CreatedAt time.Time
}

// InternalNote is an admin-only note on a return, never shown to the customer
type InternalNote struct {
	ID        uuid.UUID
	ReturnID  uuid.UUID
	Author    string
	Body      string
	CreatedAt time.Time
}

// ReturnImage is an uploaded photo attached at submission time
type ReturnImage struct {
	ID        uuid.UUID
	ReturnID  uuid.UUID
	URL       string
	Filename  string
	CreatedAt time.Time
}

// Return is the aggregate root for a customer return request. It owns its
// items, status history, internal notes and images. History is append-only
// and its newest entry always carries the aggregate's current status.
type Return struct {
	shared.BaseAggregateRoot
	Number         int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	OrderReference string
	Description    string
	Resolution     Resolution
	Status         Status
	Items          []ReturnItem
	History        []StatusHistoryEntry
	Notes          []InternalNote
	Images         []ReturnImage
}

// NewReturn creates a return in status pending with its initial history
// entry. The number must already be allocated; it is immutable afterwards.
func NewReturn(number int64, customerName, customerEmail, customerPhone, orderReference, description string, resolution Resolution, items []ReturnItem) (*Return, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Return number must be positive")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customerEmail) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer email cannot be empty")
	}
	if len(strings.TrimSpace(description)) < MinDescriptionLength {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is too short")
	}
	if !resolution.IsValid() {
		return nil, shared.NewDomainError("INVALID_RESOLUTION", "Unknown preferred resolution: "+string(resolution))
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Return must have at least one item")
	}

	r := &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerName:      strings.TrimSpace(customerName),
		CustomerEmail:     strings.TrimSpace(customerEmail),
		CustomerPhone:     strings.TrimSpace(customerPhone),
		OrderReference:    strings.TrimSpace(orderReference),
		Description:       strings.TrimSpace(description),
		Resolution:        resolution,
		Status:            StatusPending,
		Items:             make([]ReturnItem, 0, len(items)),
		History:           make([]StatusHistoryEntry, 0, 1),
		Notes:             make([]InternalNote, 0),
		Images:            make([]ReturnImage, 0),
	}

	for _, item := range items {
		item.ReturnID = r.ID
		r.Items = append(r.Items, item)
	}

	r.History = append(r.History, StatusHistoryEntry{
		ID:        uuid.New(),
		ReturnID:  r.ID,
		Status:    StatusPending,
		Note:      InitialHistoryNote,
		Author:    SystemActor,
		CreatedAt: r.CreatedAt,
	})

	r.AddDomainEvent(NewReturnSubmittedEvent(r))

	return r, nil
}

// DisplayNumber returns the formatted external identifier
func (r *Return) DisplayNumber() string {
	return FormatNumber(r.Number)
}

// Transition moves the return to the target status, appending a history
// entry. It fails if the status graph does not allow the move; same-status
// transitions are always rejected.
func (r *Return) Transition(target Status, note, actor string) (*StatusHistoryEntry, error) {
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown return status: "+string(target))
	}
	if actor == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Transition requires an actor")
	}
	if !r.Status.CanTransitionTo(target) {
		return nil, NewInvalidTransitionError(r.Status, target)
	}

	entry := StatusHistoryEntry{
		ID:        uuid.New(),
		ReturnID:  r.ID,
		Status:    target,
		Note:      strings.TrimSpace(note),
		Author:    actor,
		CreatedAt: time.Now(),
	}

	previous := r.Status
	r.Status = target
	r.History = append(r.History, entry)
	r.UpdatedAt = entry.CreatedAt
	r.IncrementVersion()

	r.AddDomainEvent(NewReturnStatusChangedEvent(r, previous, entry))

	return &entry, nil
}

// AddNote appends an internal admin note
func (r *Return) AddNote(author, body string) (*InternalNote, error) {
	if author == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Note requires an author")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note body cannot be empty")
	}

	note := InternalNote{
		ID:        uuid.New(),
		ReturnID:  r.ID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
	r.Notes = append(r.Notes, note)
	r.UpdatedAt = note.CreatedAt

	r.AddDomainEvent(NewReturnNoteAddedEvent(r, &note))

	return &note, nil
}

// AttachImage records an already-uploaded image URL on the return
func (r *Return) AttachImage(url, filename string) (*ReturnImage, error) {
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}

	image := ReturnImage{
		ID:        uuid.New(),
		ReturnID:  r.ID,
		URL:       strings.TrimSpace(url),
		Filename:  strings.TrimSpace(filename),
		CreatedAt: time.Now(),
	}
	r.Images = append(r.Images, image)

	return &image, nil
}

// LatestHistory returns the most recent history entry. A return always has
// at least one entry, so this is nil only on a zero value.
func (r *Return) LatestHistory() *StatusHistoryEntry {
	if len(r.History) == 0 {
		return nil
	}
	return &r.History[len(r.History)-1]
}
