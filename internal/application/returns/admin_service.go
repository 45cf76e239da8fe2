package returns

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/returns"
)

// AdminService handles the back-office return operations: listing,
// status transitions, internal notes, notification resends and deletion.
type AdminService struct {
	returnRepo  returns.Repository
	notifier    returns.Notifier
	auditLog    audit.Logger
	sendTimeout time.Duration
	logger      *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	returnRepo returns.Repository,
	notifier returns.Notifier,
	auditLog audit.Logger,
	sendTimeout time.Duration,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		returnRepo:  returnRepo,
		notifier:    notifier,
		auditLog:    auditLog,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// List returns one page of returns matching the query
func (s *AdminService) List(ctx context.Context, query ListReturnsQuery) (*ListReturnsResponse, error) {
	filter := returns.Filter{
		CustomerEmail: query.CustomerEmail,
		From:          query.From,
		To:            query.To,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}
	if query.Status != "" {
		status, err := returns.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	items, total, err := s.returnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &ListReturnsResponse{
		Items:    make([]ReturnResponse, len(items)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for i, ret := range items {
		resp.Items[i] = *ToReturnResponse(ret)
	}
	resp.TotalPages = int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		resp.TotalPages++
	}
	return resp, nil
}

// Summary returns per-status counts for the dashboard
func (s *AdminService) Summary(ctx context.Context) (*StatusSummaryResponse, error) {
	counts, err := s.returnRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatusSummaryResponse{Counts: make(map[string]int64, len(returns.AllStatuses))}
	for _, status := range returns.AllStatuses {
		resp.Counts[status.String()] = counts[status]
		resp.Total += counts[status]
	}
	return resp, nil
}

// Get loads a return with all its children
func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToReturnResponse(ret), nil
}

// UpdateStatus transitions a return and persists the transition together
// with its history entry. The customer status email fires after the
// commit and its failure never rolls the transition back.
func (s *AdminService) UpdateStatus(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := returns.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	entry, err := ret.Transition(target, req.Note, actor.Name)
	if err != nil {
		return nil, err
	}

	if err := s.returnRepo.RecordTransition(ctx, ret.ID, ret.Status, *entry); err != nil {
		return nil, err
	}

	report := returns.DispatchReport{CustomerAttempted: true}
	report.CustomerErr = s.send(ctx, func(sendCtx context.Context) error {
		return s.notifier.SendStatusUpdate(sendCtx, ret.CustomerEmail, ret.DisplayNumber(), ret.Status, req.Note)
	})
	if report.CustomerErr != nil {
		s.logger.Warn("Status update email failed",
			zap.String("return_id", ret.ID.String()),
			zap.String("status", ret.Status.String()),
			zap.Error(report.CustomerErr))
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateReturnStatus, ret.ID,
		"changed status of "+ret.DisplayNumber()+" to "+ret.Status.String())

	return &UpdateStatusResponse{
		Return:       ToReturnResponse(ret),
		Notification: ToNotificationResponse(report),
	}, nil
}

// AddNote attaches an internal note authored by the acting admin
func (s *AdminService) AddNote(ctx context.Context, actor identity.Actor, id uuid.UUID, req AddNoteRequest) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note, err := ret.AddNote(actor.Name, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.returnRepo.AddNote(ctx, *note); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionAddInternalNote, ret.ID,
		"added internal note to "+ret.DisplayNumber())

	return ToReturnResponse(ret), nil
}

// ResendNotification re-attempts the customer status email and the admin
// notice for the return's current state. Sends are independent: one
// failing never prevents the other from being attempted.
func (s *AdminService) ResendNotification(ctx context.Context, actor identity.Actor, id uuid.UUID) (*NotificationResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note := ""
	if latest := ret.LatestHistory(); latest != nil {
		note = latest.Note
	}

	report := returns.DispatchReport{CustomerAttempted: true, AdminAttempted: true}
	report.CustomerErr = s.send(ctx, func(sendCtx context.Context) error {
		return s.notifier.SendStatusUpdate(sendCtx, ret.CustomerEmail, ret.DisplayNumber(), ret.Status, note)
	})
	report.AdminErr = s.send(ctx, func(sendCtx context.Context) error {
		return s.notifier.SendAdminNotice(sendCtx, ret.DisplayNumber(), ret.Status, ret.ID)
	})

	if !report.Delivered() {
		s.logger.Warn("Notification resend partially failed",
			zap.String("return_id", ret.ID.String()),
			zap.NamedError("customer_error", report.CustomerErr),
			zap.NamedError("admin_error", report.AdminErr))
	}

	s.recordAudit(ctx, actor, audit.ActionResendNotification, ret.ID,
		"resent notifications for "+ret.DisplayNumber())

	return ToNotificationResponse(report), nil
}

// Delete removes a return and all its children
func (s *AdminService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.returnRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, audit.ActionDeleteReturn, id,
		"deleted return "+ret.DisplayNumber())
	return nil
}

// send runs one notification attempt under the configured timeout
func (s *AdminService) send(ctx context.Context, fn func(context.Context) error) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	return fn(sendCtx)
}

func (s *AdminService) recordAudit(ctx context.Context, actor identity.Actor, action audit.Action, targetID uuid.UUID, detail string) {
	entry := audit.NewEntry(action, "Return", targetID, actor.ID, actor.Email, actor.Name, detail)
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("target_id", targetID.String()),
			zap.Error(err))
	}
}
