package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-hrcore/internal/auth/errors"
	"go-hrcore/internal/employeeprofile"
	profileerrors "go-hrcore/internal/employeeprofile/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, employeeNumber, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeProfileID string) (*AuthResponse, error)
}

type service struct {
	profileRepo employeeprofile.Repository
	logger      *zap.Logger
}

func NewService(profileRepo employeeprofile.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{profileRepo: profileRepo, logger: l}
}

func (s *service) Login(ctx context.Context, employeeNumber, password string) (string, string, AuthResponse, error) {
	profile, err := s.profileRepo.FindByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return "", "", AuthResponse{}, err
	}

	if profile.Status != employeeprofile.StatusActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}
	if profile.Password == "" {
		return "", "", AuthResponse{}, autherrors.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("employee_number", employeeNumber))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := generateToken(profile.ID.String(), profile.Role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(profile.ID.String(), profile.Role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("employee_profile_id", profile.ID.String()),
		zap.String("role", profile.Role),
	)

	return accessToken, refreshToken, mapProfile(profile), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	profileID, ok := claims["employee_profile_id"].(string)
	if !ok || profileID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, profileerrors.ErrProfileNotFound
		}
		return "", "", AuthResponse{}, err
	}
	if profile.Status != employeeprofile.StatusActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	newAccess, err := generateToken(profile.ID.String(), profile.Role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefresh, err := generateToken(profile.ID.String(), profile.Role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccess, newRefresh, mapProfile(profile), nil
}

func (s *service) GetMe(ctx context.Context, employeeProfileID string) (*AuthResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, employeeProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileerrors.ErrProfileNotFound
		}
		return nil, err
	}

	resp := mapProfile(profile)
	return &resp, nil
}

func generateToken(employeeProfileID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_profile_id": employeeProfileID,
		"role":                role,
		"exp":                 time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapProfile(p *employeeprofile.EmployeeProfile) AuthResponse {
	return AuthResponse{
		EmployeeProfileID: p.ID.String(),
		EmployeeNumber:    p.EmployeeNumber,
		FullName:          p.FirstName + " " + p.LastName,
		WorkEmail:         p.WorkEmail,
		Role:              p.Role,
	}
}
