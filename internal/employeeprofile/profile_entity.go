package employeeprofile

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type EmployeeProfile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_profile_employee_number"`

	FirstName  string `gorm:"type:varchar(100);not null"`
	LastName   string `gorm:"type:varchar(100);not null"`
	NationalID string `gorm:"type:varchar(14)"`

	WorkEmail     string `gorm:"type:varchar(255);uniqueIndex:uq_profile_work_email"`
	PersonalEmail string `gorm:"type:varchar(255)"`
	Phone         string `gorm:"type:varchar(30)"`
	Biography     string `gorm:"type:text"`
	Address       string `gorm:"type:text"`

	PrimaryDepartmentID  *uuid.UUID `gorm:"type:uuid;index"`
	PrimaryPositionID    *uuid.UUID `gorm:"type:uuid;index"`
	SupervisorPositionID *uuid.UUID `gorm:"type:uuid;index:idx_profile_supervisor"`

	ContractType      string     `gorm:"type:varchar(30)"`
	WorkType          string     `gorm:"type:varchar(30)"`
	DateOfHire        time.Time  `gorm:"type:date;not null"`
	ContractStartDate *time.Time `gorm:"type:date"`
	ContractEndDate   *time.Time `gorm:"type:date"`

	// Records are deactivated, never deleted
	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	Role     string `gorm:"type:varchar(30);not null;default:'DEPARTMENT_EMPLOYEE'"`
	Password string `gorm:"type:varchar(100)" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

var nationalIDPattern = regexp.MustCompile(`^\d{14}$`)

// ValidNationalID reports whether v matches the fixed 14-digit format.
func ValidNationalID(v string) bool {
	return nationalIDPattern.MatchString(v)
}

// editableColumns maps the change-request field enum to profile columns.
// Only these fields may be rewritten through the workflow engine.
var editableColumns = map[string]string{
	"firstName":           "first_name",
	"lastName":            "last_name",
	"nationalId":          "national_id",
	"primaryPositionId":   "primary_position_id",
	"primaryDepartmentId": "primary_department_id",
	"contractType":        "contract_type",
	"workType":            "work_type",
}

// EditableField reports whether field may be targeted by a change request.
func EditableField(field string) bool {
	_, ok := editableColumns[field]
	return ok
}
