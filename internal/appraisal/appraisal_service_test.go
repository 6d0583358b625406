package appraisal_test

import (
	"context"
	"testing"
	"time"

	"go-hrcore/internal/appraisal"
	appraisalerrors "go-hrcore/internal/appraisal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAppraisalRepository struct {
	createTemplateFn         func(ctx context.Context, t *appraisal.AppraisalTemplate) error
	findAllTemplatesFn       func(ctx context.Context) ([]appraisal.AppraisalTemplate, error)
	findTemplateByIDFn       func(ctx context.Context, id string) (*appraisal.AppraisalTemplate, error)
	updateTemplateFn         func(ctx context.Context, t *appraisal.AppraisalTemplate) error
	deleteTemplateFn         func(ctx context.Context, id string) error
	countCyclesForTemplateFn func(ctx context.Context, templateID string) (int64, error)
	createCycleFn            func(ctx context.Context, c *appraisal.AppraisalCycle) error
	findAllCyclesFn          func(ctx context.Context) ([]appraisal.AppraisalCycle, error)
	findCycleByIDFn          func(ctx context.Context, id string) (*appraisal.AppraisalCycle, error)
	updateCycleFn            func(ctx context.Context, c *appraisal.AppraisalCycle) error
	transitionCycleFn        func(ctx context.Context, id, fromStatus, toStatus, stampColumn string, at time.Time) (bool, error)
}

func (f *fakeAppraisalRepository) CreateTemplate(ctx context.Context, t *appraisal.AppraisalTemplate) error {
	if f.createTemplateFn != nil {
		return f.createTemplateFn(ctx, t)
	}
	return nil
}

func (f *fakeAppraisalRepository) FindAllTemplates(ctx context.Context) ([]appraisal.AppraisalTemplate, error) {
	if f.findAllTemplatesFn != nil {
		return f.findAllTemplatesFn(ctx)
	}
	return nil, nil
}

func (f *fakeAppraisalRepository) FindTemplateByID(ctx context.Context, id string) (*appraisal.AppraisalTemplate, error) {
	if f.findTemplateByIDFn != nil {
		return f.findTemplateByIDFn(ctx, id)
	}
	return &appraisal.AppraisalTemplate{ID: uuid.MustParse(id)}, nil
}

func (f *fakeAppraisalRepository) UpdateTemplate(ctx context.Context, t *appraisal.AppraisalTemplate) error {
	if f.updateTemplateFn != nil {
		return f.updateTemplateFn(ctx, t)
	}
	return nil
}

func (f *fakeAppraisalRepository) DeleteTemplate(ctx context.Context, id string) error {
	if f.deleteTemplateFn != nil {
		return f.deleteTemplateFn(ctx, id)
	}
	return nil
}

func (f *fakeAppraisalRepository) CountCyclesForTemplate(ctx context.Context, templateID string) (int64, error) {
	if f.countCyclesForTemplateFn != nil {
		return f.countCyclesForTemplateFn(ctx, templateID)
	}
	return 0, nil
}

func (f *fakeAppraisalRepository) CreateCycle(ctx context.Context, c *appraisal.AppraisalCycle) error {
	if f.createCycleFn != nil {
		return f.createCycleFn(ctx, c)
	}
	return nil
}

func (f *fakeAppraisalRepository) FindAllCycles(ctx context.Context) ([]appraisal.AppraisalCycle, error) {
	if f.findAllCyclesFn != nil {
		return f.findAllCyclesFn(ctx)
	}
	return nil, nil
}

func (f *fakeAppraisalRepository) FindCycleByID(ctx context.Context, id string) (*appraisal.AppraisalCycle, error) {
	if f.findCycleByIDFn != nil {
		return f.findCycleByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppraisalRepository) UpdateCycle(ctx context.Context, c *appraisal.AppraisalCycle) error {
	if f.updateCycleFn != nil {
		return f.updateCycleFn(ctx, c)
	}
	return nil
}

func (f *fakeAppraisalRepository) TransitionCycle(ctx context.Context, id, fromStatus, toStatus, stampColumn string, at time.Time) (bool, error) {
	if f.transitionCycleFn != nil {
		return f.transitionCycleFn(ctx, id, fromStatus, toStatus, stampColumn, at)
	}
	return true, nil
}

func plannedCycle() *appraisal.AppraisalCycle {
	return &appraisal.AppraisalCycle{
		ID:         uuid.New(),
		Name:       "2026 H1 Review",
		TemplateID: uuid.New(),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:     appraisal.CycleStatusPlanned,
	}
}

func TestAppraisalService_Templates(t *testing.T) {
	ctx := context.Background()

	t.Run("create success", func(t *testing.T) {
		repo := &fakeAppraisalRepository{}
		svc := appraisal.NewService(repo)

		resp, err := svc.CreateTemplate(ctx, appraisal.CreateTemplateRequest{
			Name: "Annual Review",
			Type: appraisal.TemplateTypeAnnual,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Annual Review", resp.Name)
		assert.Equal(t, appraisal.TemplateTypeAnnual, resp.Type)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("negative missing template", func(t *testing.T) {
		repo := &fakeAppraisalRepository{
			findTemplateByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalTemplate, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := appraisal.NewService(repo)

		_, err := svc.GetTemplateByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, appraisalerrors.ErrTemplateNotFound)
	})

	t.Run("negative delete referenced template", func(t *testing.T) {
		repo := &fakeAppraisalRepository{
			countCyclesForTemplateFn: func(ctx context.Context, templateID string) (int64, error) {
				return 2, nil
			},
			deleteTemplateFn: func(ctx context.Context, id string) error {
				t.Fatal("delete must not run while cycles reference the template")
				return nil
			},
		}
		svc := appraisal.NewService(repo)

		_, err := svc.DeleteTemplate(ctx, uuid.New().String())

		assert.ErrorIs(t, err, appraisalerrors.ErrTemplateInUse)
	})

	t.Run("delete success", func(t *testing.T) {
		repo := &fakeAppraisalRepository{}
		svc := appraisal.NewService(repo)

		id := uuid.New().String()
		resp, err := svc.DeleteTemplate(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, "Template deleted", resp.Message)
		assert.Equal(t, id, resp.ID)
	})
}

func TestAppraisalService_CreateCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("success starts planned", func(t *testing.T) {
		var created *appraisal.AppraisalCycle
		repo := &fakeAppraisalRepository{
			createCycleFn: func(ctx context.Context, c *appraisal.AppraisalCycle) error {
				created = c
				return nil
			},
		}
		svc := appraisal.NewService(repo)

		resp, err := svc.CreateCycle(ctx, appraisal.CreateCycleRequest{
			Name:       "2026 H1 Review",
			TemplateID: uuid.New().String(),
			StartDate:  "2026-01-01",
			EndDate:    "2026-06-30",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, appraisal.CycleStatusPlanned, resp.Status)
		assert.Nil(t, resp.PublishedAt)
	})

	t.Run("negative end before start", func(t *testing.T) {
		repo := &fakeAppraisalRepository{}
		svc := appraisal.NewService(repo)

		_, err := svc.CreateCycle(ctx, appraisal.CreateCycleRequest{
			Name:       "Backwards",
			TemplateID: uuid.New().String(),
			StartDate:  "2026-06-30",
			EndDate:    "2026-01-01",
		})

		assert.ErrorIs(t, err, appraisalerrors.ErrInvalidDateRange)
	})

	t.Run("negative unknown template", func(t *testing.T) {
		repo := &fakeAppraisalRepository{
			findTemplateByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalTemplate, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := appraisal.NewService(repo)

		_, err := svc.CreateCycle(ctx, appraisal.CreateCycleRequest{
			Name:       "Orphan",
			TemplateID: uuid.New().String(),
			StartDate:  "2026-01-01",
			EndDate:    "2026-06-30",
		})

		assert.ErrorIs(t, err, appraisalerrors.ErrTemplateNotFound)
	})
}

func TestAppraisalService_CycleLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("activate stamps published_at", func(t *testing.T) {
		cycle := plannedCycle()
		activated := *cycle
		activated.Status = appraisal.CycleStatusActive
		now := time.Now().UTC()
		activated.PublishedAt = &now

		calls := 0
		repo := &fakeAppraisalRepository{
			findCycleByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalCycle, error) {
				calls++
				if calls == 1 {
					c := *cycle
					return &c, nil
				}
				c := activated
				return &c, nil
			},
			transitionCycleFn: func(ctx context.Context, id, from, to, stampColumn string, at time.Time) (bool, error) {
				assert.Equal(t, appraisal.CycleStatusPlanned, from)
				assert.Equal(t, appraisal.CycleStatusActive, to)
				assert.Equal(t, "published_at", stampColumn)
				return true, nil
			},
		}
		svc := appraisal.NewService(repo)

		resp, err := svc.ActivateCycle(ctx, cycle.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, appraisal.CycleStatusActive, resp.Status)
		assert.NotNil(t, resp.PublishedAt)
	})

	t.Run("negative activate twice", func(t *testing.T) {
		cycle := plannedCycle()
		cycle.Status = appraisal.CycleStatusActive

		repo := &fakeAppraisalRepository{
			findCycleByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalCycle, error) {
				c := *cycle
				return &c, nil
			},
			transitionCycleFn: func(ctx context.Context, id, from, to, stampColumn string, at time.Time) (bool, error) {
				return false, nil
			},
		}
		svc := appraisal.NewService(repo)

		_, err := svc.ActivateCycle(ctx, cycle.ID.String())

		assert.ErrorIs(t, err, appraisalerrors.ErrCycleNotPlanned)
	})

	t.Run("negative close a planned cycle", func(t *testing.T) {
		cycle := plannedCycle()

		repo := &fakeAppraisalRepository{
			findCycleByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalCycle, error) {
				c := *cycle
				return &c, nil
			},
			transitionCycleFn: func(ctx context.Context, id, from, to, stampColumn string, at time.Time) (bool, error) {
				return false, nil
			},
		}
		svc := appraisal.NewService(repo)

		_, err := svc.CloseCycle(ctx, cycle.ID.String())

		assert.ErrorIs(t, err, appraisalerrors.ErrCycleNotActive)
	})

	t.Run("negative archive before close", func(t *testing.T) {
		cycle := plannedCycle()
		cycle.Status = appraisal.CycleStatusActive

		repo := &fakeAppraisalRepository{
			findCycleByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalCycle, error) {
				c := *cycle
				return &c, nil
			},
			transitionCycleFn: func(ctx context.Context, id, from, to, stampColumn string, at time.Time) (bool, error) {
				return false, nil
			},
		}
		svc := appraisal.NewService(repo)

		_, err := svc.ArchiveCycle(ctx, cycle.ID.String())

		assert.ErrorIs(t, err, appraisalerrors.ErrCycleNotClosed)
	})

	t.Run("negative update archived cycle", func(t *testing.T) {
		cycle := plannedCycle()
		cycle.Status = appraisal.CycleStatusArchived

		repo := &fakeAppraisalRepository{
			findCycleByIDFn: func(ctx context.Context, id string) (*appraisal.AppraisalCycle, error) {
				c := *cycle
				return &c, nil
			},
		}
		svc := appraisal.NewService(repo)

		name := "renamed"
		_, err := svc.UpdateCycle(ctx, cycle.ID.String(), appraisal.UpdateCycleRequest{Name: &name})

		assert.ErrorIs(t, err, appraisalerrors.ErrCycleNotEditable)
	})

	t.Run("negative transition missing cycle", func(t *testing.T) {
		repo := &fakeAppraisalRepository{}
		svc := appraisal.NewService(repo)

		_, err := svc.ActivateCycle(ctx, uuid.New().String())

		assert.ErrorIs(t, err, appraisalerrors.ErrCycleNotFound)
	})
}
