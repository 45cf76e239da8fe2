package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/returnhub/backend/internal/application/catalog"
)

// VariationHandler handles product variation endpoints
type VariationHandler struct {
	BaseHandler
	variationService *catalogapp.VariationService
}

// NewVariationHandler creates a new VariationHandler
func NewVariationHandler(variationService *catalogapp.VariationService) *VariationHandler {
	return &VariationHandler{variationService: variationService}
}

// Create adds a variation to a product
func (h *VariationHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.CreateVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variation, err := h.variationService.Create(c.Request.Context(), actor, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, variation)
}

// ListByProduct returns all variations of a product
func (h *VariationHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	variations, err := h.variationService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variations)
}

// Update replaces a variation's attribute assignment
func (h *VariationHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	variationID, ok := h.parseUUIDParam(c, "variation_id")
	if !ok {
		return
	}

	var req catalogapp.UpdateVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variation, err := h.variationService.Update(c.Request.Context(), actor, variationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variation)
}

// Delete removes a variation
func (h *VariationHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	variationID, ok := h.parseUUIDParam(c, "variation_id")
	if !ok {
		return
	}

	if err := h.variationService.Delete(c.Request.Context(), actor, variationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
