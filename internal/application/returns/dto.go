package returns

import (
	"time"

	"github.com/google/uuid"

	"github.com/returnhub/backend/internal/domain/returns"
)

// SubmitItemRequest is one item of a customer submission. Selection maps
// attribute names to chosen values and may be empty for products without
// attributes.
type SubmitItemRequest struct {
	ProductID uuid.UUID         `json:"product_id" binding:"required"`
	Selection map[string]string `json:"selection"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
	Reason    string            `json:"reason" binding:"required"`
	Condition string            `json:"condition" binding:"max=200"`
}

// ImageRef references an already-uploaded image by its public URL
type ImageRef struct {
	URL      string `json:"url" binding:"required,url"`
	Filename string `json:"filename"`
}

// SubmitReturnRequest is the customer-facing submission payload
type SubmitReturnRequest struct {
	CustomerName   string              `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail  string              `json:"customer_email" binding:"required,email"`
	CustomerPhone  string              `json:"customer_phone" binding:"max=50"`
	OrderReference string              `json:"order_reference" binding:"max=100"`
	Description    string              `json:"description" binding:"required"`
	Resolution     string              `json:"resolution" binding:"required"`
	Items          []SubmitItemRequest `json:"items" binding:"required,min=1,dive"`
	Images         []ImageRef          `json:"images" binding:"dive"`
}

// SubmitReturnResponse carries the allocated display number
type SubmitReturnResponse struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

// ItemResponse is one return item in API responses
type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	VariationID *uuid.UUID `json:"variation_id,omitempty"`
	ProductName string     `json:"product_name"`
	SKU         string     `json:"sku"`
	Quantity    int        `json:"quantity"`
	Reason      string     `json:"reason"`
	Condition   string     `json:"condition,omitempty"`
}

// HistoryResponse is one status history entry
type HistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteResponse is one internal admin note
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageResponse is one attached image reference
type ImageResponse struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Filename string    `json:"filename,omitempty"`
}

// TrackResponse is the customer-facing read view of a return. It omits
// internal notes.
type TrackResponse struct {
	Number         string            `json:"number"`
	Status         string            `json:"status"`
	CustomerName   string            `json:"customer_name"`
	OrderReference string            `json:"order_reference,omitempty"`
	Description    string            `json:"description"`
	Resolution     string            `json:"resolution"`
	Items          []ItemResponse    `json:"items"`
	History        []HistoryResponse `json:"history"`
	Images         []ImageResponse   `json:"images"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ReturnResponse is the full admin view of a return
type ReturnResponse struct {
	ID             uuid.UUID         `json:"id"`
	Number         string            `json:"number"`
	Status         string            `json:"status"`
	CustomerName   string            `json:"customer_name"`
	CustomerEmail  string            `json:"customer_email"`
	CustomerPhone  string            `json:"customer_phone,omitempty"`
	OrderReference string            `json:"order_reference,omitempty"`
	Description    string            `json:"description"`
	Resolution     string            `json:"resolution"`
	Items          []ItemResponse    `json:"items"`
	History        []HistoryResponse `json:"history"`
	Notes          []NoteResponse    `json:"notes"`
	Images         []ImageResponse   `json:"images"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ListReturnsQuery narrows the admin listing
type ListReturnsQuery struct {
	Status        string     `form:"status"`
	CustomerEmail string     `form:"customer_email"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

// ListReturnsResponse is one page of the admin listing
type ListReturnsResponse struct {
	Items      []ReturnResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// StatusSummaryResponse carries per-status counts for the dashboard
type StatusSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

// UpdateStatusRequest moves a return to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=1000"`
}

// AddNoteRequest attaches an internal note
type AddNoteRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// NotificationResponse reports the outcome of best-effort sends attached
// to a mutation. Failures here never indicate the mutation failed.
type NotificationResponse struct {
	CustomerSent bool   `json:"customer_sent"`
	CustomerErr  string `json:"customer_error,omitempty"`
	AdminSent    bool   `json:"admin_sent"`
	AdminErr     string `json:"admin_error,omitempty"`
}

// UpdateStatusResponse is the transition result together with the
// notification outcome
type UpdateStatusResponse struct {
	Return       *ReturnResponse       `json:"return"`
	Notification *NotificationResponse `json:"notification"`
}

// ToNotificationResponse flattens a dispatch report
func ToNotificationResponse(report returns.DispatchReport) *NotificationResponse {
	resp := &NotificationResponse{
		CustomerSent: report.CustomerAttempted && report.CustomerErr == nil,
		AdminSent:    report.AdminAttempted && report.AdminErr == nil,
	}
	if report.CustomerErr != nil {
		resp.CustomerErr = report.CustomerErr.Error()
	}
	if report.AdminErr != nil {
		resp.AdminErr = report.AdminErr.Error()
	}
	return resp
}

func toItemResponses(items []returns.ReturnItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Reason:      string(item.Reason),
			Condition:   item.Condition,
		}
	}
	return out
}

// toHistoryResponses emits history newest-first; the aggregate keeps
// entries in append order.
func toHistoryResponses(entries []returns.StatusHistoryEntry) []HistoryResponse {
	out := make([]HistoryResponse, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = HistoryResponse{
			ID:        entry.ID,
			Status:    entry.Status.String(),
			Note:      entry.Note,
			Author:    entry.Author,
			CreatedAt: entry.CreatedAt,
		}
	}
	return out
}

func toNoteResponses(notes []returns.InternalNote) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i, note := range notes {
		out[i] = NoteResponse{
			ID:        note.ID,
			Author:    note.Author,
			Body:      note.Body,
			CreatedAt: note.CreatedAt,
		}
	}
	return out
}

func toImageResponses(images []returns.ReturnImage) []ImageResponse {
	out := make([]ImageResponse, len(images))
	for i, img := range images {
		out[i] = ImageResponse{
			ID:       img.ID,
			URL:      img.URL,
			Filename: img.Filename,
		}
	}
	return out
}

// ToTrackResponse builds the customer-facing read view
func ToTrackResponse(r *returns.Return) *TrackResponse {
	return &TrackResponse{
		Number:         r.DisplayNumber(),
		Status:         r.Status.String(),
		CustomerName:   r.CustomerName,
		OrderReference: r.OrderReference,
		Description:    r.Description,
		Resolution:     string(r.Resolution),
		Items:          toItemResponses(r.Items),
		History:        toHistoryResponses(r.History),
		Images:         toImageResponses(r.Images),
		CreatedAt:      r.CreatedAt,
	}
}

// ToReturnResponse builds the full admin view
func ToReturnResponse(r *returns.Return) *ReturnResponse {
	return &ReturnResponse{
		ID:             r.ID,
		Number:         r.DisplayNumber(),
		Status:         r.Status.String(),
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		OrderReference: r.OrderReference,
		Description:    r.Description,
		Resolution:     string(r.Resolution),
		Items:          toItemResponses(r.Items),
		History:        toHistoryResponses(r.History),
		Notes:          toNoteResponses(r.Notes),
		Images:         toImageResponses(r.Images),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
