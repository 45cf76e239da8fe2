package returns

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SubmissionService runs the customer submission pipeline: validate,
// resolve items, allocate a number, persist atomically, then attempt the
// confirmation email.
type SubmissionService struct {
	returnRepo    returns.Repository
	productRepo   catalog.ProductRepository
	variationRepo catalog.ProductVariationRepository
	notifier      returns.Notifier
	sendTimeout   time.Duration
	logger        *zap.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	returnRepo returns.Repository,
	productRepo catalog.ProductRepository,
	variationRepo catalog.ProductVariationRepository,
	notifier returns.Notifier,
	sendTimeout time.Duration,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		returnRepo:    returnRepo,
		productRepo:   productRepo,
		variationRepo: variationRepo,
		notifier:      notifier,
		sendTimeout:   sendTimeout,
		logger:        logger,
	}
}

// Submit processes a customer return request. Nothing is persisted until
// every field validates and every item resolves to a concrete SKU. The
// confirmation email is best-effort: its failure is logged and reported
// via the return value's side but never fails the submission.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitReturnRequest) (*SubmitReturnResponse, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.returnRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	ret, err := returns.NewReturn(
		number,
		req.CustomerName,
		req.CustomerEmail,
		req.CustomerPhone,
		req.OrderReference,
		req.Description,
		returns.Resolution(req.Resolution),
		items,
	)
	if err != nil {
		return nil, err
	}

	for _, img := range req.Images {
		if _, err := ret.AttachImage(img.URL, img.Filename); err != nil {
			return nil, err
		}
	}

	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, ret)

	s.logger.Info("Return submitted",
		zap.String("return_id", ret.ID.String()),
		zap.String("number", ret.DisplayNumber()),
		zap.Int("items", len(ret.Items)))

	return &SubmitReturnResponse{ID: ret.ID, Number: ret.DisplayNumber()}, nil
}

// validateSubmission collects all field-level problems into one
// ValidationError so the client can correct them in a single pass.
func validateSubmission(req SubmitReturnRequest) error {
	fields := make(map[string]string)

	if strings.TrimSpace(req.CustomerName) == "" {
		fields["customer_name"] = "Name is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.CustomerEmail)) {
		fields["customer_email"] = "A valid email address is required"
	}
	if len(strings.TrimSpace(req.Description)) < returns.MinDescriptionLength {
		fields["description"] = fmt.Sprintf("Description must be at least %d characters", returns.MinDescriptionLength)
	}
	if !returns.Resolution(req.Resolution).IsValid() {
		fields["resolution"] = "Unknown preferred resolution"
	}
	if len(req.Items) == 0 {
		fields["items"] = "At least one item is required"
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "Quantity must be at least 1"
		}
		if !returns.Reason(item.Reason).IsValid() {
			fields[fmt.Sprintf("items[%d].reason", i)] = "Unknown return reason"
		}
	}

	if len(fields) > 0 {
		return &shared.ValidationError{Fields: fields}
	}
	return nil
}

// resolveItems maps every requested item onto a concrete SKU snapshot.
// Products with attributes go through the variation resolver; a failure
// names the offending item by index.
func (s *SubmissionService) resolveItems(ctx context.Context, reqItems []SubmitItemRequest) ([]returns.ReturnItem, error) {
	items := make([]returns.ReturnItem, 0, len(reqItems))
	for i, reqItem := range reqItems {
		product, err := s.productRepo.FindByID(ctx, reqItem.ProductID)
		if err != nil {
			return nil, returns.NewItemResolutionError(i, err)
		}

		sku := product.SKU
		var variationID *uuid.UUID
		if product.HasVariations() {
			stored, err := s.variationRepo.FindByProduct(ctx, product.ID)
			if err != nil {
				return nil, err
			}
			variations := make([]catalog.ProductVariation, len(stored))
			for j := range stored {
				variations[j] = *stored[j]
			}
			variation, err := catalog.Resolve(product, variations, catalog.Selection(reqItem.Selection))
			if err != nil {
				return nil, returns.NewItemResolutionError(i, err)
			}
			sku = variation.SKU
			variationID = &variation.ID
		}

		item, err := returns.NewReturnItem(
			product.ID,
			variationID,
			product.Name,
			sku,
			reqItem.Quantity,
			returns.Reason(reqItem.Reason),
			reqItem.Condition,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// sendConfirmation attempts the customer confirmation email under a
// bounded timeout. The submission has already committed at this point.
func (s *SubmissionService) sendConfirmation(ctx context.Context, ret *returns.Return) {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.notifier.SendConfirmation(sendCtx, ret.CustomerEmail, ret.DisplayNumber(), ret.OrderReference); err != nil {
		s.logger.Warn("Confirmation email failed",
			zap.String("return_id", ret.ID.String()),
			zap.String("number", ret.DisplayNumber()),
			zap.Error(err))
	}
}
