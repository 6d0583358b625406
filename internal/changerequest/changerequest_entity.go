package changerequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindFieldEdit = "FIELD_EDIT"
	KindDispute   = "DISPUTE"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// WithdrawnReason is the reason written on employee withdrawals.
const WithdrawnReason = "Withdrawn by employee"

type ChangeRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Seq preserves insertion order; list ordering ties on identical
	// submission timestamps are broken with it.
	Seq int64 `gorm:"autoIncrement;uniqueIndex:uq_change_requests_seq"`

	// RequestID is the externally addressable correlation id, kept
	// separate from the storage key so disputes can reference it.
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_change_requests_request_id"`

	EmployeeProfileID uuid.UUID `gorm:"type:uuid;not null;index:idx_change_requests_employee"`

	Kind string `gorm:"type:varchar(20);not null"`

	// Reason carries the submitter's narrative; after a terminal
	// transition it is repurposed for rejection/resolution text.
	Reason string `gorm:"type:text"`

	// Payload is immutable once written, see payload.go.
	Payload []byte `gorm:"type:jsonb;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_change_requests_status"`

	SubmittedAt time.Time  `gorm:"not null"`
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChangeRequest) TableName() string {
	return "change_requests"
}

// Terminal reports whether no further primary-flow transition applies.
func (cr *ChangeRequest) Terminal() bool {
	return cr.Status == StatusApproved || cr.Status == StatusRejected
}
