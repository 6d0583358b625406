package employeeprofile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hrcore/internal/domain"
	profileerrors "go-hrcore/internal/employeeprofile/errors"
	"go-hrcore/internal/shared/contextutil"
	"go-hrcore/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const ProfileOptionsKey = "employee-profiles:options"

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	GetAll(ctx context.Context) ([]ProfileResponse, error)
	GetOptions(ctx context.Context) ([]ProfileOptionResponse, error)
	GetByID(ctx context.Context, id string) (ProfileResponse, error)
	Update(ctx context.Context, id string, req UpdateProfileRequest) (ProfileResponse, error)
	SelfUpdate(ctx context.Context, id string, req SelfUpdateRequest) (ProfileResponse, error)
	SetPassword(ctx context.Context, id, password string) error
	Deactivate(ctx context.Context, id string) (DeactivateResponse, error)
	GetTeamSummary(ctx context.Context, supervisorPositionID string) ([]TeamMemberResponse, error)
	GetTeamEmployee(ctx context.Context, supervisorPositionID, employeeID string) (TeamMemberResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeeprofile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeeprofile.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create profile requested",
		zap.String("request_id", rid),
		zap.String("work_email", req.WorkEmail),
	)

	if req.NationalID != "" && !ValidNationalID(req.NationalID) {
		s.logger.Warn("create profile invalid national id", zap.String("request_id", rid))
		return ProfileResponse{}, profileerrors.ErrInvalidNationalID
	}

	dateOfHire, err := parseDate(req.DateOfHire)
	if err != nil {
		return ProfileResponse{}, err
	}
	contractStart, err := parseOptionalDate(req.ContractStartDate)
	if err != nil {
		return ProfileResponse{}, err
	}
	contractEnd, err := parseOptionalDate(req.ContractEndDate)
	if err != nil {
		return ProfileResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create profile begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
		if err != nil {
			s.logger.Error("create profile generate number failed", zap.Error(err))
			return ProfileResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	p := &EmployeeProfile{
		ID:                   uuid.New(),
		EmployeeNumber:       req.EmployeeNumber,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		NationalID:           req.NationalID,
		WorkEmail:            req.WorkEmail,
		PersonalEmail:        req.PersonalEmail,
		Phone:                req.Phone,
		PrimaryDepartmentID:  uuidPtr(req.PrimaryDepartmentID),
		PrimaryPositionID:    uuidPtr(req.PrimaryPositionID),
		SupervisorPositionID: uuidPtr(req.SupervisorPositionID),
		ContractType:         req.ContractType,
		WorkType:             req.WorkType,
		DateOfHire:           dateOfHire,
		ContractStartDate:    contractStart,
		ContractEndDate:      contractEnd,
		Status:               StatusActive,
		Role:                 req.Role,
	}
	if p.Role == "" {
		p.Role = domain.RoleDepartmentEmployee
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create profile persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create profile commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create profile success",
		zap.String("request_id", rid),
		zap.String("employee_profile_id", p.ID.String()),
		zap.String("employee_number", p.EmployeeNumber),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all profiles failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(profiles), nil
}

func (s *service) GetOptions(ctx context.Context) ([]ProfileOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ProfileOptionsKey).Result(); err == nil {
			var resp []ProfileOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when the cache is cold
	v, err, _ := s.sf.Do(ProfileOptionsKey, func() (interface{}, error) {
		profiles, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]ProfileOptionResponse, 0, len(profiles))
		for _, p := range profiles {
			if p.Status != StatusActive {
				continue
			}
			resp = append(resp, ProfileOptionResponse{
				ID:       p.ID.String(),
				FullName: p.FirstName + " " + p.LastName,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, ProfileOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]ProfileOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProfileResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get profile by id failed",
			zap.String("employee_profile_id", id),
			zap.Error(err),
		)
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProfileRequest) (ProfileResponse, error) {
	s.logger.Debug("update profile requested", zap.String("employee_profile_id", id))

	if req.NationalID != "" && !ValidNationalID(req.NationalID) {
		return ProfileResponse{}, profileerrors.ErrInvalidNationalID
	}

	dateOfHire, err := parseDate(req.DateOfHire)
	if err != nil {
		return ProfileResponse{}, err
	}
	contractStart, err := parseOptionalDate(req.ContractStartDate)
	if err != nil {
		return ProfileResponse{}, err
	}
	contractEnd, err := parseOptionalDate(req.ContractEndDate)
	if err != nil {
		return ProfileResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.NationalID = req.NationalID
	p.WorkEmail = req.WorkEmail
	p.PersonalEmail = req.PersonalEmail
	p.Phone = req.Phone
	p.PrimaryDepartmentID = uuidPtr(req.PrimaryDepartmentID)
	p.PrimaryPositionID = uuidPtr(req.PrimaryPositionID)
	p.SupervisorPositionID = uuidPtr(req.SupervisorPositionID)
	p.ContractType = req.ContractType
	p.WorkType = req.WorkType
	p.DateOfHire = dateOfHire
	p.ContractStartDate = contractStart
	p.ContractEndDate = contractEnd

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update profile persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update profile commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update profile success", zap.String("employee_profile_id", id))

	return mapToResponse(*p), nil
}

func (s *service) SelfUpdate(ctx context.Context, id string, req SelfUpdateRequest) (ProfileResponse, error) {
	s.logger.Debug("self update requested", zap.String("employee_profile_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("self update begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	// Only the self-service fields; anything else needs a change request
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.PersonalEmail != nil {
		p.PersonalEmail = *req.PersonalEmail
	}
	if req.WorkEmail != nil {
		p.WorkEmail = *req.WorkEmail
	}
	if req.Biography != nil {
		p.Biography = *req.Biography
	}
	if req.Address != nil {
		p.Address = *req.Address
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("self update persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("self update commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("self update success", zap.String("employee_profile_id", id))

	return mapToResponse(*p), nil
}

func (s *service) SetPassword(ctx context.Context, id, password string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.SetPassword(ctx, id, string(hashed)); err != nil {
		s.logger.Error("set password persist failed",
			zap.String("employee_profile_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("set password success", zap.String("employee_profile_id", id))
	return nil
}

func (s *service) Deactivate(ctx context.Context, id string) (DeactivateResponse, error) {
	s.logger.Debug("deactivate profile requested", zap.String("employee_profile_id", id))

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DeactivateResponse{}, mapRepositoryError(err)
	}

	oldStatus := p.Status
	if err := s.repo.UpdateStatus(ctx, id, StatusInactive); err != nil {
		s.logger.Error("deactivate profile persist failed", zap.Error(err))
		return DeactivateResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("deactivate profile success",
		zap.String("employee_profile_id", id),
		zap.String("old_status", oldStatus),
	)

	return DeactivateResponse{
		ID:        id,
		OldStatus: oldStatus,
		NewStatus: StatusInactive,
	}, nil
}

func (s *service) GetTeamSummary(ctx context.Context, supervisorPositionID string) ([]TeamMemberResponse, error) {
	team, err := s.repo.FindTeamBySupervisor(ctx, supervisorPositionID)
	if err != nil {
		s.logger.Error("get team summary failed",
			zap.String("supervisor_position_id", supervisorPositionID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	resp := make([]TeamMemberResponse, len(team))
	for i, p := range team {
		resp[i] = mapToTeamMember(p)
	}
	return resp, nil
}

func (s *service) GetTeamEmployee(ctx context.Context, supervisorPositionID, employeeID string) (TeamMemberResponse, error) {
	team, err := s.repo.FindTeamBySupervisor(ctx, supervisorPositionID)
	if err != nil {
		return TeamMemberResponse{}, mapRepositoryError(err)
	}

	for _, p := range team {
		if p.ID.String() == employeeID {
			return mapToTeamMember(p), nil
		}
	}

	return TeamMemberResponse{}, profileerrors.ErrProfileNotInTeam
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ProfileOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate profile options cache",
			zap.Error(err),
			zap.String("key", ProfileOptionsKey),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, profileerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(p EmployeeProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:                   p.ID.String(),
		EmployeeNumber:       p.EmployeeNumber,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		NationalID:           p.NationalID,
		WorkEmail:            p.WorkEmail,
		PersonalEmail:        p.PersonalEmail,
		Phone:                p.Phone,
		Biography:            p.Biography,
		Address:              p.Address,
		PrimaryDepartmentID:  uuidToString(p.PrimaryDepartmentID),
		PrimaryPositionID:    uuidToString(p.PrimaryPositionID),
		SupervisorPositionID: uuidToString(p.SupervisorPositionID),
		ContractType:         p.ContractType,
		WorkType:             p.WorkType,
		DateOfHire:           p.DateOfHire.Format("2006-01-02"),
		Status:               p.Status,
		Role:                 p.Role,
	}
	if p.ContractStartDate != nil {
		resp.ContractStartDate = p.ContractStartDate.Format("2006-01-02")
	}
	if p.ContractEndDate != nil {
		resp.ContractEndDate = p.ContractEndDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(profiles []EmployeeProfile) []ProfileResponse {
	res := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		res[i] = mapToResponse(p)
	}
	return res
}

func mapToTeamMember(p EmployeeProfile) TeamMemberResponse {
	return TeamMemberResponse{
		ID:                  p.ID.String(),
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		PrimaryDepartmentID: uuidToString(p.PrimaryDepartmentID),
		PrimaryPositionID:   uuidToString(p.PrimaryPositionID),
		Status:              p.Status,
	}
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
