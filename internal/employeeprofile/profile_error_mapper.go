package employeeprofile

import (
	"errors"
	"strings"

	profileerrors "go-hrcore/internal/employeeprofile/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_profile_employee_number":
				return profileerrors.ErrEmployeeNumberAlreadyExists
			case "uq_profile_work_email":
				return profileerrors.ErrWorkEmailAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_profile_employee_number") {
		return profileerrors.ErrEmployeeNumberAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_profile_work_email") {
		return profileerrors.ErrWorkEmailAlreadyExists
	}

	return err
}
