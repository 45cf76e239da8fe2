package returns

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

// TrackingService serves the customer-facing lookup by display number.
type TrackingService struct {
	returnRepo returns.Repository
	logger     *zap.Logger
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(returnRepo returns.Repository, logger *zap.Logger) *TrackingService {
	return &TrackingService{returnRepo: returnRepo, logger: logger}
}

// Track parses the display number and loads the composite read view.
// Malformed and nonexistent numbers both surface as NotFound so the
// response never reveals which numbers are syntactically valid.
func (s *TrackingService) Track(ctx context.Context, displayNumber string) (*TrackResponse, error) {
	number, err := returns.ParseNumber(displayNumber)
	if err != nil {
		if errors.Is(err, returns.ErrInvalidNumber) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	ret, err := s.returnRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	return ToTrackResponse(ret), nil
}
