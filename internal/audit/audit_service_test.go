package audit_test

import (
	"context"
	"testing"
	"time"

	"go-hrcore/internal/audit"
	"go-hrcore/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuditRepository struct {
	createFn            func(ctx context.Context, record *audit.AuditRecord) error
	findAllByEmployeeFn func(ctx context.Context, employeeProfileID string) ([]audit.AuditRecord, error)
}

func (f *fakeAuditRepository) Create(ctx context.Context, record *audit.AuditRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakeAuditRepository) FindAllByEmployee(ctx context.Context, employeeProfileID string) ([]audit.AuditRecord, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeProfileID)
	}
	return nil, nil
}

func TestAuditService_RecordDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		correlationID := uuid.New()
		employeeID := uuid.New()
		occurredAt := time.Now().UTC()

		var stored *audit.AuditRecord
		repo := &fakeAuditRepository{
			createFn: func(ctx context.Context, record *audit.AuditRecord) error {
				stored = record
				return nil
			},
		}
		svc := audit.NewService(repo)

		err := svc.RecordDecision(ctx, events.ChangeRequestDecidedEvent{
			EventType:         "change_request_approved",
			RequestID:         uuid.New().String(),
			CorrelationID:     correlationID.String(),
			EmployeeProfileID: employeeID.String(),
			Kind:              "FIELD_EDIT",
			Decision:          "APPROVED",
			OccurredAt:        occurredAt,
		})

		assert.NoError(t, err)
		assert.NotNil(t, stored)
		assert.Equal(t, correlationID, stored.CorrelationID)
		assert.Equal(t, employeeID, stored.EmployeeProfileID)
		assert.Equal(t, "change_request_approved", stored.EventType)
		assert.Equal(t, occurredAt, stored.OccurredAt)
	})

	t.Run("negative malformed correlation id", func(t *testing.T) {
		repo := &fakeAuditRepository{
			createFn: func(ctx context.Context, record *audit.AuditRecord) error {
				t.Fatal("create must not run for a malformed event")
				return nil
			},
		}
		svc := audit.NewService(repo)

		err := svc.RecordDecision(ctx, events.ChangeRequestDecidedEvent{
			EventType:         "change_request_rejected",
			CorrelationID:     "not-a-uuid",
			EmployeeProfileID: uuid.New().String(),
		})

		assert.Error(t, err)
	})
}

func TestAuditService_TrailForEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	repo := &fakeAuditRepository{
		findAllByEmployeeFn: func(ctx context.Context, id string) ([]audit.AuditRecord, error) {
			assert.Equal(t, employeeID.String(), id)
			return []audit.AuditRecord{
				{ID: uuid.New(), EventType: "change_request_approved"},
				{ID: uuid.New(), EventType: "dispute_rejected"},
			}, nil
		},
	}
	svc := audit.NewService(repo)

	trail, err := svc.TrailForEmployee(ctx, employeeID.String())

	assert.NoError(t, err)
	assert.Len(t, trail, 2)
}
