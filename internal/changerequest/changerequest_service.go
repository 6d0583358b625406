package changerequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	changerequesterrors "go-hrcore/internal/changerequest/errors"
	"go-hrcore/internal/employeeprofile"
	profileerrors "go-hrcore/internal/employeeprofile/errors"
	"go-hrcore/internal/events"
	"go-hrcore/internal/messaging/kafka"
	"go-hrcore/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DisputePropagation is the extension point for re-applying the
// contested edit once a dispute is upheld. The engine itself never
// propagates: upholding a dispute decides the dispute record only.
type DisputePropagation interface {
	OnDisputeUpheld(ctx context.Context, original *ChangeRequest) error
}

//go:generate mockgen -source=changerequest_service.go -destination=mock/changerequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeProfileID string, req CreateChangeRequest) (ChangeRequestResponse, error)
	Approve(ctx context.Context, id string) (ChangeRequestResponse, error)
	Reject(ctx context.Context, id, reason string) (ChangeRequestResponse, error)
	Withdraw(ctx context.Context, id string) (WithdrawResponse, error)
	ListByEmployee(ctx context.Context, employeeProfileID string) ([]ChangeRequestResponse, error)
	ListAll(ctx context.Context) ([]ChangeRequestResponse, error)
	FindByRequestID(ctx context.Context, requestID string) (ChangeRequestResponse, error)
	SubmitDispute(ctx context.Context, originalID string, req CreateDisputeRequest) (ChangeRequestResponse, error)
	ResolveDispute(ctx context.Context, id, resolution string) (ChangeRequestResponse, error)
	ApproveDispute(ctx context.Context, id, resolution string) (ChangeRequestResponse, error)
	UseDisputePropagation(p DisputePropagation)
}

type service struct {
	db          *sql.DB
	repo        Repository
	profileRepo employeeprofile.Repository
	outbox      kafka.OutboxRepository
	propagation DisputePropagation
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profileRepo employeeprofile.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, profileRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	profileRepo employeeprofile.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("changerequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("changerequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		profileRepo: profileRepo,
		outbox:      outboxRepo,
		logger:      l,
	}
}

// UseDisputePropagation installs the upheld-dispute hook. No hook is
// installed by default.
func (s *service) UseDisputePropagation(p DisputePropagation) {
	s.propagation = p
}

func (s *service) Submit(ctx context.Context, employeeProfileID string, req CreateChangeRequest) (ChangeRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit change request",
		zap.String("request_id", rid),
		zap.String("employee_profile_id", employeeProfileID),
		zap.String("field", req.Field),
	)

	if _, err := uuid.Parse(employeeProfileID); err != nil {
		return ChangeRequestResponse{}, profileerrors.ErrInvalidProfileID
	}
	if !employeeprofile.EditableField(req.Field) {
		return ChangeRequestResponse{}, changerequesterrors.ErrUnknownField
	}

	// No record is created when the owner does not resolve
	if _, err := s.profileRepo.FindByID(ctx, employeeProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, profileerrors.ErrProfileNotFound
		}
		return ChangeRequestResponse{}, err
	}

	payload, err := EncodeFieldEditPayload(FieldEditPayload{
		Field:    req.Field,
		NewValue: req.NewValue,
		Reason:   req.Reason,
	})
	if err != nil {
		return ChangeRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit change request begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cr := &ChangeRequest{
		ID:                uuid.New(),
		RequestID:         uuid.New(),
		EmployeeProfileID: uuid.MustParse(employeeProfileID),
		Kind:              KindFieldEdit,
		Reason:            req.Reason,
		Payload:           payload,
		Status:            StatusPending,
		SubmittedAt:       time.Now().UTC(),
	}

	if err := qtx.Create(ctx, cr); err != nil {
		s.logger.Error("submit change request persist failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit change request commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.logger.Info("submit change request success",
		zap.String("request_id", rid),
		zap.String("change_request_id", cr.ID.String()),
		zap.String("correlation_id", cr.RequestID.String()),
		zap.String("field", req.Field),
	)

	return s.mapToResponse(*cr), nil
}

func (s *service) Approve(ctx context.Context, id string) (ChangeRequestResponse, error) {
	s.logger.Debug("approve change request", zap.String("change_request_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve change request begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, changerequesterrors.ErrRequestNotFound
		}
		return ChangeRequestResponse{}, err
	}
	if cr.Kind != KindFieldEdit {
		return ChangeRequestResponse{}, changerequesterrors.ErrNotFieldEdit
	}

	payload, err := DecodePayload(cr.Payload)
	if err != nil {
		s.logger.Error("approve change request payload decode failed",
			zap.String("change_request_id", id),
			zap.Error(err),
		)
		return ChangeRequestResponse{}, changerequesterrors.ErrCorruptPayload
	}
	edit := payload.FieldEdit

	// Validate before any write so a bad value leaves both the request
	// and the profile untouched
	if edit.Field == "nationalId" && !employeeprofile.ValidNationalID(edit.NewValue) {
		s.logger.Warn("approve change request national id rejected",
			zap.String("change_request_id", id),
		)
		return ChangeRequestResponse{}, changerequesterrors.ErrNationalIDFormat
	}

	now := time.Now().UTC()

	// Claim the request first; a concurrent decision loses the swap
	ok, err := qtx.TransitionFromPending(ctx, id, StatusApproved, cr.Reason, now)
	if err != nil {
		s.logger.Error("approve change request transition failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if !ok {
		return ChangeRequestResponse{}, changerequesterrors.ErrAlreadyProcessed
	}

	if err := s.profileRepo.WithTx(tx).ApplyFieldUpdate(ctx, cr.EmployeeProfileID.String(), edit.Field, edit.NewValue); err != nil {
		s.logger.Error("approve change request apply edit failed",
			zap.String("change_request_id", id),
			zap.String("field", edit.Field),
			zap.Error(err),
		)
		return ChangeRequestResponse{}, err
	}

	cr.Status = StatusApproved
	cr.ProcessedAt = &now

	if err := s.queueDecisionEvent(ctx, tx, cr, "change_request_approved"); err != nil {
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve change request commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.logger.Info("approve change request success",
		zap.String("change_request_id", id),
		zap.String("field", edit.Field),
	)

	return s.mapToResponse(*cr), nil
}

func (s *service) Reject(ctx context.Context, id, reason string) (ChangeRequestResponse, error) {
	s.logger.Debug("reject change request", zap.String("change_request_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject change request begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, changerequesterrors.ErrRequestNotFound
		}
		return ChangeRequestResponse{}, err
	}

	now := time.Now().UTC()

	ok, err := qtx.TransitionFromPending(ctx, id, StatusRejected, reason, now)
	if err != nil {
		s.logger.Error("reject change request transition failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if !ok {
		return ChangeRequestResponse{}, changerequesterrors.ErrAlreadyProcessed
	}

	cr.Status = StatusRejected
	cr.Reason = reason
	cr.ProcessedAt = &now

	if err := s.queueDecisionEvent(ctx, tx, cr, "change_request_rejected"); err != nil {
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject change request commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.logger.Info("reject change request success", zap.String("change_request_id", id))

	return s.mapToResponse(*cr), nil
}

func (s *service) Withdraw(ctx context.Context, id string) (WithdrawResponse, error) {
	s.logger.Debug("withdraw change request", zap.String("change_request_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("withdraw change request begin tx failed", zap.Error(err))
		return WithdrawResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WithdrawResponse{}, changerequesterrors.ErrRequestNotFound
		}
		return WithdrawResponse{}, err
	}
	if cr.Status != StatusPending {
		return WithdrawResponse{}, changerequesterrors.ErrOnlyPendingWithdraw
	}

	now := time.Now().UTC()

	ok, err := qtx.TransitionFromPending(ctx, id, StatusRejected, WithdrawnReason, now)
	if err != nil {
		s.logger.Error("withdraw change request transition failed", zap.Error(err))
		return WithdrawResponse{}, err
	}
	if !ok {
		// Lost the race between the read above and the swap
		return WithdrawResponse{}, changerequesterrors.ErrOnlyPendingWithdraw
	}

	cr.Status = StatusRejected
	cr.Reason = WithdrawnReason
	cr.ProcessedAt = &now

	if err := s.queueDecisionEvent(ctx, tx, cr, "change_request_withdrawn"); err != nil {
		return WithdrawResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("withdraw change request commit failed", zap.Error(err))
		return WithdrawResponse{}, err
	}

	s.logger.Info("withdraw change request success",
		zap.String("change_request_id", id),
		zap.String("correlation_id", cr.RequestID.String()),
	)

	return WithdrawResponse{
		Message:   "Change request withdrawn successfully",
		RequestID: cr.RequestID.String(),
		Status:    cr.Status,
	}, nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeProfileID string) ([]ChangeRequestResponse, error) {
	requests, err := s.repo.FindAllByEmployee(ctx, employeeProfileID)
	if err != nil {
		s.logger.Error("list change requests by employee failed",
			zap.String("employee_profile_id", employeeProfileID),
			zap.Error(err),
		)
		return nil, err
	}
	return s.mapToListResponse(requests), nil
}

func (s *service) ListAll(ctx context.Context) ([]ChangeRequestResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list all change requests failed", zap.Error(err))
		return nil, err
	}
	return s.mapToListResponse(requests), nil
}

func (s *service) FindByRequestID(ctx context.Context, requestID string) (ChangeRequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return ChangeRequestResponse{}, changerequesterrors.ErrInvalidRequestID
	}

	cr, err := s.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, changerequesterrors.ErrRequestNotFound
		}
		return ChangeRequestResponse{}, err
	}
	return s.mapToResponse(*cr), nil
}

func (s *service) SubmitDispute(ctx context.Context, originalID string, req CreateDisputeRequest) (ChangeRequestResponse, error) {
	s.logger.Debug("submit dispute",
		zap.String("original_change_request_id", originalID),
		zap.String("employee_profile_id", req.EmployeeProfileID),
	)

	original, err := s.repo.FindByID(ctx, originalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, changerequesterrors.ErrOriginalRequestNotFound
		}
		return ChangeRequestResponse{}, err
	}
	// A dispute contests a decision; there is nothing to contest while
	// the original is still pending
	if !original.Terminal() {
		return ChangeRequestResponse{}, changerequesterrors.ErrOriginalNotDecided
	}

	if _, err := s.profileRepo.FindByID(ctx, req.EmployeeProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, profileerrors.ErrProfileNotFound
		}
		return ChangeRequestResponse{}, err
	}

	payload, err := EncodeDisputePayload(DisputePayload{
		OriginalRequestID: original.RequestID.String(),
	})
	if err != nil {
		return ChangeRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit dispute begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dispute := &ChangeRequest{
		ID:                uuid.New(),
		RequestID:         uuid.New(),
		EmployeeProfileID: uuid.MustParse(req.EmployeeProfileID),
		Kind:              KindDispute,
		Reason:            req.Dispute,
		Payload:           payload,
		Status:            StatusPending,
		SubmittedAt:       time.Now().UTC(),
	}

	if err := qtx.Create(ctx, dispute); err != nil {
		s.logger.Error("submit dispute persist failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit dispute commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.logger.Info("submit dispute success",
		zap.String("dispute_id", dispute.ID.String()),
		zap.String("original_correlation_id", original.RequestID.String()),
	)

	return s.mapToResponse(*dispute), nil
}

// ResolveDispute denies the dispute: the original decision stands.
func (s *service) ResolveDispute(ctx context.Context, id, resolution string) (ChangeRequestResponse, error) {
	return s.decideDispute(ctx, id, resolution, StatusRejected)
}

// ApproveDispute upholds the dispute. The contested edit is NOT
// re-applied here; install a DisputePropagation hook for that.
func (s *service) ApproveDispute(ctx context.Context, id, resolution string) (ChangeRequestResponse, error) {
	return s.decideDispute(ctx, id, resolution, StatusApproved)
}

func (s *service) decideDispute(ctx context.Context, id, resolution, target string) (ChangeRequestResponse, error) {
	s.logger.Debug("decide dispute",
		zap.String("dispute_id", id),
		zap.String("target_status", target),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide dispute begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dispute, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, changerequesterrors.ErrRequestNotFound
		}
		return ChangeRequestResponse{}, err
	}
	if dispute.Kind != KindDispute {
		return ChangeRequestResponse{}, changerequesterrors.ErrNotDispute
	}

	now := time.Now().UTC()

	ok, err := qtx.TransitionFromPending(ctx, id, target, resolution, now)
	if err != nil {
		s.logger.Error("decide dispute transition failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if !ok {
		// A repeat of the identical decision is a no-op; anything else
		// on an already-terminal dispute is an invalid transition
		if dispute.Status == target && dispute.Reason == resolution {
			return s.mapToResponse(*dispute), nil
		}
		return ChangeRequestResponse{}, changerequesterrors.ErrAlreadyProcessed
	}

	dispute.Status = target
	dispute.Reason = resolution
	dispute.ProcessedAt = &now

	eventType := "dispute_rejected"
	if target == StatusApproved {
		eventType = "dispute_approved"
	}
	if err := s.queueDecisionEvent(ctx, tx, dispute, eventType); err != nil {
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide dispute commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	if target == StatusApproved && s.propagation != nil {
		if err := s.propagateUpheldDispute(ctx, dispute); err != nil {
			s.logger.Error("dispute propagation failed",
				zap.String("dispute_id", id),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("decide dispute success",
		zap.String("dispute_id", id),
		zap.String("status", target),
	)

	return s.mapToResponse(*dispute), nil
}

func (s *service) propagateUpheldDispute(ctx context.Context, dispute *ChangeRequest) error {
	payload, err := DecodePayload(dispute.Payload)
	if err != nil {
		return err
	}

	original, err := s.repo.FindByRequestID(ctx, payload.Dispute.OriginalRequestID)
	if err != nil {
		return err
	}

	return s.propagation.OnDisputeUpheld(ctx, original)
}

func (s *service) queueDecisionEvent(ctx context.Context, tx *sql.Tx, cr *ChangeRequest, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.ChangeRequestDecidedEvent{
		EventType:         eventType,
		RequestID:         rid,
		CorrelationID:     cr.RequestID.String(),
		EmployeeProfileID: cr.EmployeeProfileID.String(),
		Kind:              cr.Kind,
		Decision:          cr.Status,
		Reason:            cr.Reason,
		OccurredAt:        time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal decision event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "change_request",
		AggregateID:   cr.ID.String(),
		EventType:     eventType,
		Topic:         events.ChangeRequestDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue decision event failed",
			zap.String("change_request_id", cr.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) mapToResponse(cr ChangeRequest) ChangeRequestResponse {
	resp := ChangeRequestResponse{
		ID:                cr.ID.String(),
		RequestID:         cr.RequestID.String(),
		EmployeeProfileID: cr.EmployeeProfileID.String(),
		Kind:              cr.Kind,
		Reason:            cr.Reason,
		Status:            cr.Status,
		SubmittedAt:       cr.SubmittedAt.Format(time.RFC3339),
	}
	if cr.ProcessedAt != nil {
		v := cr.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}

	payload, err := DecodePayload(cr.Payload)
	if err != nil {
		s.logger.Error("serialize change request payload decode failed",
			zap.String("change_request_id", cr.ID.String()),
			zap.Error(err),
		)
		return resp
	}

	switch payload.Kind {
	case KindFieldEdit:
		resp.Field = payload.FieldEdit.Field
		resp.NewValue = payload.FieldEdit.NewValue
	case KindDispute:
		resp.OriginalRequestID = payload.Dispute.OriginalRequestID
	}

	return resp
}

func (s *service) mapToListResponse(requests []ChangeRequest) []ChangeRequestResponse {
	resp := make([]ChangeRequestResponse, len(requests))
	for i, cr := range requests {
		resp[i] = s.mapToResponse(cr)
	}
	return resp
}
