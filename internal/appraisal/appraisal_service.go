package appraisal

import (
	"context"
	"errors"
	"time"

	appraisalerrors "go-hrcore/internal/appraisal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=appraisal_service.go -destination=mock/appraisal_service_mock.go -package=mock
type Service interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	GetAllTemplates(ctx context.Context) ([]TemplateResponse, error)
	GetTemplateByID(ctx context.Context, id string) (TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id string, req UpdateTemplateRequest) (TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) (DeleteTemplateResponse, error)

	CreateCycle(ctx context.Context, req CreateCycleRequest) (CycleResponse, error)
	GetAllCycles(ctx context.Context) ([]CycleResponse, error)
	GetCycleByID(ctx context.Context, id string) (CycleResponse, error)
	UpdateCycle(ctx context.Context, id string, req UpdateCycleRequest) (CycleResponse, error)
	ActivateCycle(ctx context.Context, id string) (CycleResponse, error)
	CloseCycle(ctx context.Context, id string) (CycleResponse, error)
	ArchiveCycle(ctx context.Context, id string) (CycleResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("appraisal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("appraisal.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error) {
	s.logger.Debug("create appraisal template", zap.String("name", req.Name))

	t := &AppraisalTemplate{
		ID:          uuid.New(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Criteria:    req.Criteria,
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		s.logger.Error("create appraisal template failed", zap.Error(err))
		return TemplateResponse{}, mapTemplateError(err)
	}

	s.logger.Info("appraisal template created",
		zap.String("template_id", t.ID.String()),
		zap.String("type", t.Type),
	)
	return mapTemplateToResponse(*t), nil
}

func (s *service) GetAllTemplates(ctx context.Context) ([]TemplateResponse, error) {
	templates, err := s.repo.FindAllTemplates(ctx)
	if err != nil {
		s.logger.Error("list appraisal templates failed", zap.Error(err))
		return nil, err
	}

	resp := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		resp[i] = mapTemplateToResponse(t)
	}
	return resp, nil
}

func (s *service) GetTemplateByID(ctx context.Context, id string) (TemplateResponse, error) {
	t, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return TemplateResponse{}, mapTemplateError(err)
	}
	return mapTemplateToResponse(*t), nil
}

func (s *service) UpdateTemplate(ctx context.Context, id string, req UpdateTemplateRequest) (TemplateResponse, error) {
	t, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return TemplateResponse{}, mapTemplateError(err)
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Criteria != nil {
		t.Criteria = req.Criteria
	}

	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		s.logger.Error("update appraisal template failed",
			zap.String("template_id", id),
			zap.Error(err),
		)
		return TemplateResponse{}, mapTemplateError(err)
	}

	return mapTemplateToResponse(*t), nil
}

func (s *service) DeleteTemplate(ctx context.Context, id string) (DeleteTemplateResponse, error) {
	count, err := s.repo.CountCyclesForTemplate(ctx, id)
	if err != nil {
		return DeleteTemplateResponse{}, err
	}
	if count > 0 {
		return DeleteTemplateResponse{}, appraisalerrors.ErrTemplateInUse
	}

	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		return DeleteTemplateResponse{}, mapTemplateError(err)
	}

	s.logger.Info("appraisal template deleted", zap.String("template_id", id))
	return DeleteTemplateResponse{Message: "Template deleted", ID: id}, nil
}

func (s *service) CreateCycle(ctx context.Context, req CreateCycleRequest) (CycleResponse, error) {
	s.logger.Debug("create appraisal cycle", zap.String("name", req.Name))

	start, err := parseDate(req.StartDate)
	if err != nil {
		return CycleResponse{}, appraisalerrors.ErrInvalidDateFormat
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return CycleResponse{}, appraisalerrors.ErrInvalidDateFormat
	}
	if !end.After(start) {
		return CycleResponse{}, appraisalerrors.ErrInvalidDateRange
	}

	if _, err := s.repo.FindTemplateByID(ctx, req.TemplateID); err != nil {
		return CycleResponse{}, mapTemplateError(err)
	}

	c := &AppraisalCycle{
		ID:         uuid.New(),
		Name:       req.Name,
		TemplateID: uuid.MustParse(req.TemplateID),
		StartDate:  start,
		EndDate:    end,
		Status:     CycleStatusPlanned,
	}

	if err := s.repo.CreateCycle(ctx, c); err != nil {
		s.logger.Error("create appraisal cycle failed", zap.Error(err))
		return CycleResponse{}, err
	}

	s.logger.Info("appraisal cycle created",
		zap.String("cycle_id", c.ID.String()),
		zap.String("template_id", req.TemplateID),
	)
	return mapCycleToResponse(*c), nil
}

func (s *service) GetAllCycles(ctx context.Context) ([]CycleResponse, error) {
	cycles, err := s.repo.FindAllCycles(ctx)
	if err != nil {
		s.logger.Error("list appraisal cycles failed", zap.Error(err))
		return nil, err
	}

	resp := make([]CycleResponse, len(cycles))
	for i, c := range cycles {
		resp[i] = mapCycleToResponse(c)
	}
	return resp, nil
}

func (s *service) GetCycleByID(ctx context.Context, id string) (CycleResponse, error) {
	c, err := s.repo.FindCycleByID(ctx, id)
	if err != nil {
		return CycleResponse{}, mapCycleError(err)
	}
	return mapCycleToResponse(*c), nil
}

func (s *service) UpdateCycle(ctx context.Context, id string, req UpdateCycleRequest) (CycleResponse, error) {
	c, err := s.repo.FindCycleByID(ctx, id)
	if err != nil {
		return CycleResponse{}, mapCycleError(err)
	}
	if c.Status == CycleStatusArchived {
		return CycleResponse{}, appraisalerrors.ErrCycleNotEditable
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return CycleResponse{}, appraisalerrors.ErrInvalidDateFormat
		}
		c.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return CycleResponse{}, appraisalerrors.ErrInvalidDateFormat
		}
		c.EndDate = end
	}
	if !c.EndDate.After(c.StartDate) {
		return CycleResponse{}, appraisalerrors.ErrInvalidDateRange
	}

	if err := s.repo.UpdateCycle(ctx, c); err != nil {
		s.logger.Error("update appraisal cycle failed",
			zap.String("cycle_id", id),
			zap.Error(err),
		)
		return CycleResponse{}, err
	}

	return mapCycleToResponse(*c), nil
}

func (s *service) ActivateCycle(ctx context.Context, id string) (CycleResponse, error) {
	return s.transition(ctx, id, CycleStatusPlanned, CycleStatusActive, "published_at", appraisalerrors.ErrCycleNotPlanned)
}

func (s *service) CloseCycle(ctx context.Context, id string) (CycleResponse, error) {
	return s.transition(ctx, id, CycleStatusActive, CycleStatusClosed, "closed_at", appraisalerrors.ErrCycleNotActive)
}

func (s *service) ArchiveCycle(ctx context.Context, id string) (CycleResponse, error) {
	return s.transition(ctx, id, CycleStatusClosed, CycleStatusArchived, "archived_at", appraisalerrors.ErrCycleNotClosed)
}

func (s *service) transition(ctx context.Context, id, from, to, stampColumn string, stateErr error) (CycleResponse, error) {
	s.logger.Debug("transition appraisal cycle",
		zap.String("cycle_id", id),
		zap.String("from", from),
		zap.String("to", to),
	)

	if _, err := s.repo.FindCycleByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleResponse{}, appraisalerrors.ErrCycleNotFound
		}
		return CycleResponse{}, err
	}

	now := time.Now().UTC()
	ok, err := s.repo.TransitionCycle(ctx, id, from, to, stampColumn, now)
	if err != nil {
		s.logger.Error("transition appraisal cycle failed",
			zap.String("cycle_id", id),
			zap.Error(err),
		)
		return CycleResponse{}, err
	}
	if !ok {
		return CycleResponse{}, stateErr
	}

	c, err := s.repo.FindCycleByID(ctx, id)
	if err != nil {
		return CycleResponse{}, mapCycleError(err)
	}

	s.logger.Info("appraisal cycle transitioned",
		zap.String("cycle_id", id),
		zap.String("status", to),
	)
	return mapCycleToResponse(*c), nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func mapTemplateToResponse(t AppraisalTemplate) TemplateResponse {
	return TemplateResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Type:        t.Type,
		Description: t.Description,
		Criteria:    t.Criteria,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func mapCycleToResponse(c AppraisalCycle) CycleResponse {
	resp := CycleResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		TemplateID: c.TemplateID.String(),
		StartDate:  c.StartDate.Format("2006-01-02"),
		EndDate:    c.EndDate.Format("2006-01-02"),
		Status:     c.Status,
	}
	if c.PublishedAt != nil {
		v := c.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &v
	}
	if c.ClosedAt != nil {
		v := c.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &v
	}
	if c.ArchivedAt != nil {
		v := c.ArchivedAt.Format(time.RFC3339)
		resp.ArchivedAt = &v
	}
	return resp
}
