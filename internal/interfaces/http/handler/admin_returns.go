package handler

import (
	"github.com/gin-gonic/gin"

	returnsapp "github.com/returnhub/backend/internal/application/returns"
)

// AdminReturnHandler handles the authenticated return management endpoints
type AdminReturnHandler struct {
	BaseHandler
	adminService *returnsapp.AdminService
}

// NewAdminReturnHandler creates a new AdminReturnHandler
func NewAdminReturnHandler(adminService *returnsapp.AdminService) *AdminReturnHandler {
	return &AdminReturnHandler{adminService: adminService}
}

// List returns one page of returns, filterable by status, customer email,
// and submission date range
func (h *AdminReturnHandler) List(c *gin.Context) {
	var query returnsapp.ListReturnsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.adminService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Summary returns per-status counts for the dashboard
func (h *AdminReturnHandler) Summary(c *gin.Context) {
	resp, err := h.adminService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a single return with items, history, notes, and images
func (h *AdminReturnHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.adminService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus moves a return along the workflow and reports the
// notification outcome alongside the updated return
func (h *AdminReturnHandler) UpdateStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req returnsapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.adminService.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddNote appends an internal note to a return
func (h *AdminReturnHandler) AddNote(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req returnsapp.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.adminService.AddNote(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ResendNotification re-sends the customer and admin emails for the
// current status
func (h *AdminReturnHandler) ResendNotification(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.adminService.ResendNotification(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a return and all of its children
func (h *AdminReturnHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
