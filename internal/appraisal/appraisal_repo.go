package appraisal

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=appraisal_repo.go -destination=mock/appraisal_repo_mock.go -package=mock
type Repository interface {
	CreateTemplate(ctx context.Context, t *AppraisalTemplate) error
	FindAllTemplates(ctx context.Context) ([]AppraisalTemplate, error)
	FindTemplateByID(ctx context.Context, id string) (*AppraisalTemplate, error)
	UpdateTemplate(ctx context.Context, t *AppraisalTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	CountCyclesForTemplate(ctx context.Context, templateID string) (int64, error)

	CreateCycle(ctx context.Context, c *AppraisalCycle) error
	FindAllCycles(ctx context.Context) ([]AppraisalCycle, error)
	FindCycleByID(ctx context.Context, id string) (*AppraisalCycle, error)
	UpdateCycle(ctx context.Context, c *AppraisalCycle) error
	TransitionCycle(ctx context.Context, id, fromStatus, toStatus, stampColumn string, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTemplate(ctx context.Context, t *AppraisalTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllTemplates(ctx context.Context) ([]AppraisalTemplate, error) {
	var templates []AppraisalTemplate
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *repository) FindTemplateByID(ctx context.Context, id string) (*AppraisalTemplate, error) {
	var t AppraisalTemplate
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) UpdateTemplate(ctx context.Context, t *AppraisalTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) DeleteTemplate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&AppraisalTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountCyclesForTemplate(ctx context.Context, templateID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AppraisalCycle{}).
		Where("template_id = ?", templateID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateCycle(ctx context.Context, c *AppraisalCycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllCycles(ctx context.Context) ([]AppraisalCycle, error) {
	var cycles []AppraisalCycle
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&cycles).Error
	return cycles, err
}

func (r *repository) FindCycleByID(ctx context.Context, id string) (*AppraisalCycle, error) {
	var c AppraisalCycle
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateCycle(ctx context.Context, c *AppraisalCycle) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// TransitionCycle moves a cycle between lifecycle states, stamping the
// matching timestamp column. The status guard makes concurrent
// transitions lose cleanly instead of double-stamping.
func (r *repository) TransitionCycle(ctx context.Context, id, fromStatus, toStatus, stampColumn string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&AppraisalCycle{}).
		Where("id = ?", id).
		Where("status = ?", fromStatus).
		Updates(map[string]interface{}{
			"status":    toStatus,
			stampColumn: at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
