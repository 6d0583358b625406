package changerequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=changerequest_repo.go -destination=mock/changerequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cr *ChangeRequest) error
	FindByID(ctx context.Context, id string) (*ChangeRequest, error)
	FindByRequestID(ctx context.Context, requestID string) (*ChangeRequest, error)
	FindAllByEmployee(ctx context.Context, employeeProfileID string) ([]ChangeRequest, error)
	FindAll(ctx context.Context) ([]ChangeRequest, error)
	TransitionFromPending(ctx context.Context, id, status, reason string, processedAt time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, cr *ChangeRequest) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ChangeRequest, error) {
	var cr ChangeRequest
	err := r.db.WithContext(ctx).
		First(&cr, "id = ?", id).Error
	return &cr, err
}

func (r *repository) FindByRequestID(ctx context.Context, requestID string) (*ChangeRequest, error) {
	var cr ChangeRequest
	err := r.db.WithContext(ctx).
		First(&cr, "request_id = ?", requestID).Error
	return &cr, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeProfileID string) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	err := r.db.WithContext(ctx).
		Where("employee_profile_id = ?", employeeProfileID).
		Order("submitted_at DESC, seq ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC, seq ASC").
		Find(&requests).Error
	return requests, err
}

// TransitionFromPending is the compare-and-swap out of PENDING: the
// update only lands while the row is still pending, so two concurrent
// decisions cannot both win. Returns false when the request was
// already processed (or does not exist).
func (r *repository) TransitionFromPending(ctx context.Context, id, status, reason string, processedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&ChangeRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"reason":       reason,
			"processed_at": processedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
