package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/returns"
)

// NoopNotifier satisfies the notifier contract without sending anything.
// Used when outbound notifications are disabled in configuration, and in
// local development where no SMTP relay is available.
type NoopNotifier struct {
	logger *zap.Logger
}

// NewNoopNotifier creates a notifier that logs instead of sending
func NewNoopNotifier(logger *zap.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

var _ returns.Notifier = (*NoopNotifier)(nil)

func (n *NoopNotifier) SendConfirmation(_ context.Context, email, displayNumber, _ string) error {
	n.logger.Debug("notifications disabled, skipping confirmation",
		zap.String("to", email),
		zap.String("number", displayNumber))
	return nil
}

func (n *NoopNotifier) SendStatusUpdate(_ context.Context, email, displayNumber string, status returns.Status, _ string) error {
	n.logger.Debug("notifications disabled, skipping status update",
		zap.String("to", email),
		zap.String("number", displayNumber),
		zap.String("status", status.String()))
	return nil
}

func (n *NoopNotifier) SendAdminNotice(_ context.Context, displayNumber string, status returns.Status, _ uuid.UUID) error {
	n.logger.Debug("notifications disabled, skipping admin notice",
		zap.String("number", displayNumber),
		zap.String("status", status.String()))
	return nil
}
