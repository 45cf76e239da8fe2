package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/returnhub/backend/internal/application/catalog"
	returnsapp "github.com/returnhub/backend/internal/application/returns"
	"github.com/returnhub/backend/internal/application/uploads"
)

// PublicHandler handles the unauthenticated customer-facing endpoints:
// return submission, tracking by return number, variation selection
// helpers, and image upload.
type PublicHandler struct {
	BaseHandler
	submissionService *returnsapp.SubmissionService
	trackingService   *returnsapp.TrackingService
	variationService  *catalogapp.VariationService
	uploadService     *uploads.Service
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(
	submissionService *returnsapp.SubmissionService,
	trackingService *returnsapp.TrackingService,
	variationService *catalogapp.VariationService,
	uploadService *uploads.Service,
) *PublicHandler {
	return &PublicHandler{
		submissionService: submissionService,
		trackingService:   trackingService,
		variationService:  variationService,
		uploadService:     uploadService,
	}
}

// SubmitReturn registers a new return request
func (h *PublicHandler) SubmitReturn(c *gin.Context) {
	var req returnsapp.SubmitReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.submissionService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Track looks up a return by its display number. Malformed and unknown
// numbers both answer 404 so numbers cannot be probed.
func (h *PublicHandler) Track(c *gin.Context) {
	number := c.Param("number")

	resp, err := h.trackingService.Track(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AvailableOptions lists the values an attribute can still take given a
// partial selection
func (h *PublicHandler) AvailableOptions(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.AvailableOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.variationService.AvailableOptions(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ResolveVariation maps a complete attribute selection to its variation
func (h *PublicHandler) ResolveVariation(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.variationService.Resolve(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UploadImage stores a return image and returns its public URL. The URL is
// meant to be included in a subsequent submission.
func (h *PublicHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file form field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	resp, err := h.uploadService.Upload(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
