package employeeprofile

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *EmployeeProfile) error
	FindAll(ctx context.Context) ([]EmployeeProfile, error)
	FindByID(ctx context.Context, id string) (*EmployeeProfile, error)
	FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*EmployeeProfile, error)
	FindTeamBySupervisor(ctx context.Context, supervisorPositionID string) ([]EmployeeProfile, error)
	Update(ctx context.Context, p *EmployeeProfile) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetPassword(ctx context.Context, id, hashed string) error
	ApplyFieldUpdate(ctx context.Context, id, field, value string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the gorm session onto the caller's transaction so
// every statement issued through the returned repository joins it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, p *EmployeeProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EmployeeProfile, error) {
	var profiles []EmployeeProfile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeProfile, error) {
	var p EmployeeProfile
	err := r.db.WithContext(ctx).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*EmployeeProfile, error) {
	var p EmployeeProfile
	err := r.db.WithContext(ctx).
		First(&p, "employee_number = ?", employeeNumber).Error
	return &p, err
}

func (r *repository) FindTeamBySupervisor(ctx context.Context, supervisorPositionID string) ([]EmployeeProfile, error) {
	var profiles []EmployeeProfile
	err := r.db.WithContext(ctx).
		Where("supervisor_position_id = ?", supervisorPositionID).
		Order("last_name ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) Update(ctx context.Context, p *EmployeeProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeProfile{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *repository) SetPassword(ctx context.Context, id, hashed string) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeProfile{}).
		Where("id = ?", id).
		UpdateColumn("password", hashed).Error
}

// ApplyFieldUpdate writes exactly one workflow-editable column. The
// field name is the change-request enum value, not the column name.
func (r *repository) ApplyFieldUpdate(ctx context.Context, id, field, value string) error {
	column, ok := editableColumns[field]
	if !ok {
		return fmt.Errorf("field %q is not editable", field)
	}

	return r.db.WithContext(ctx).
		Model(&EmployeeProfile{}).
		Where("id = ?", id).
		UpdateColumn(column, value).Error
}
