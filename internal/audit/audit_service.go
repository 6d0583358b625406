package audit

import (
	"context"

	"go-hrcore/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	RecordDecision(ctx context.Context, event events.ChangeRequestDecidedEvent) error
	TrailForEmployee(ctx context.Context, employeeProfileID string) ([]AuditRecord, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RecordDecision(ctx context.Context, event events.ChangeRequestDecidedEvent) error {
	correlationID, err := uuid.Parse(event.CorrelationID)
	if err != nil {
		return err
	}
	employeeID, err := uuid.Parse(event.EmployeeProfileID)
	if err != nil {
		return err
	}

	record := &AuditRecord{
		ID:                uuid.New(),
		RequestID:         event.RequestID,
		CorrelationID:     correlationID,
		EventType:         event.EventType,
		EmployeeProfileID: employeeID,
		Kind:              event.Kind,
		Decision:          event.Decision,
		Reason:            event.Reason,
		OccurredAt:        event.OccurredAt,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}

	s.logger.Info("decision recorded",
		zap.String("correlation_id", event.CorrelationID),
		zap.String("event_type", event.EventType),
		zap.String("decision", event.Decision),
	)
	return nil
}

func (s *service) TrailForEmployee(ctx context.Context, employeeProfileID string) ([]AuditRecord, error) {
	return s.repo.FindAllByEmployee(ctx, employeeProfileID)
}
