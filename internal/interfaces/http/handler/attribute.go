package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/returnhub/backend/internal/application/catalog"
	"github.com/returnhub/backend/internal/interfaces/http/dto"
)

// AttributeHandler handles variation attribute endpoints
type AttributeHandler struct {
	BaseHandler
	attributeService *catalogapp.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributeService *catalogapp.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

// Create defines a new variation attribute
func (h *AttributeHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req catalogapp.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	attribute, err := h.attributeService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attribute)
}

// List returns one page of attributes
func (h *AttributeHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.attributeService.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns an attribute by ID
func (h *AttributeHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	attribute, err := h.attributeService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attribute)
}

// AddOption adds an allowed value to an attribute
func (h *AttributeHandler) AddOption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.AddOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	attribute, err := h.attributeService.AddOption(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attribute)
}

// RemoveOption removes an allowed value unless a variation uses it
func (h *AttributeHandler) RemoveOption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	optionID, ok := h.parseUUIDParam(c, "option_id")
	if !ok {
		return
	}

	attribute, err := h.attributeService.RemoveOption(c.Request.Context(), actor, id, optionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attribute)
}

// Delete removes an attribute unless a product references it
func (h *AttributeHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attributeService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
