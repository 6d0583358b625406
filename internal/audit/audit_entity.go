package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one decision on a change request as observed on the
// decision topic. (correlation_id, event_type) is unique so redelivered
// messages collapse into a single row.
type AuditRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID         string    `gorm:"type:varchar(64)" json:"request_id"`
	CorrelationID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_audit_correlation_event" json:"correlation_id"`
	EventType         string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_audit_correlation_event" json:"event_type"`
	EmployeeProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_profile_id"`
	Kind              string    `gorm:"type:varchar(20);not null" json:"kind"`
	Decision          string    `gorm:"type:varchar(20);not null" json:"decision"`
	Reason            string    `gorm:"type:text" json:"reason"`
	OccurredAt        time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditRecord) TableName() string {
	return "change_request_audit"
}
