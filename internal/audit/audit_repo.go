package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, record *AuditRecord) error
	FindAllByEmployee(ctx context.Context, employeeProfileID string) ([]AuditRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *AuditRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeProfileID string) ([]AuditRecord, error) {
	var records []AuditRecord
	err := r.db.WithContext(ctx).
		Where("employee_profile_id = ?", employeeProfileID).
		Order("occurred_at DESC").
		Find(&records).Error
	return records, err
}
