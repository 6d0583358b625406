package appraisal

import (
	"time"

	"github.com/google/uuid"
)

const (
	TemplateTypeAnnual    = "ANNUAL"
	TemplateTypeQuarterly = "QUARTERLY"
	TemplateTypeProbation = "PROBATION"
)

const (
	CycleStatusPlanned  = "PLANNED"
	CycleStatusActive   = "ACTIVE"
	CycleStatusClosed   = "CLOSED"
	CycleStatusArchived = "ARCHIVED"
)

type AppraisalTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_appraisal_template_name" json:"name"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Criteria    []byte    `gorm:"type:jsonb" json:"criteria,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppraisalTemplate) TableName() string {
	return "appraisal_templates"
}

type AppraisalCycle struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(150);not null" json:"name"`
	TemplateID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"template_id"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time  `gorm:"type:date;not null" json:"end_date"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PLANNED'" json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppraisalCycle) TableName() string {
	return "appraisal_cycles"
}
