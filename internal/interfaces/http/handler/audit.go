package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/returnhub/backend/internal/domain/audit"
)

// AuditHandler exposes the audit trail to administrators
type AuditHandler struct {
	BaseHandler
	auditLog audit.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditLog audit.Logger) *AuditHandler {
	return &AuditHandler{auditLog: auditLog}
}

// AuditEntryResponse is one audit record in API responses
type AuditEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	ActorName  string    `json:"actor_name"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type auditListQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List returns one page of audit entries, newest first
func (h *AuditHandler) List(c *gin.Context) {
	query := auditListQuery{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	entries, total, err := h.auditLog.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		items[i] = AuditEntryResponse{
			ID:         entry.ID,
			Action:     string(entry.Action),
			TargetType: entry.TargetType,
			TargetID:   entry.TargetID,
			ActorID:    entry.ActorID,
			ActorEmail: entry.ActorEmail,
			ActorName:  entry.ActorName,
			Detail:     entry.Detail,
			CreatedAt:  entry.CreatedAt,
		}
	}
	h.SuccessWithMeta(c, items, total, query.Page, query.PageSize)
}
