package appraisal

import (
	"errors"
	"strings"

	appraisalerrors "go-hrcore/internal/appraisal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapTemplateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appraisalerrors.ErrTemplateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_appraisal_template_name" {
			return appraisalerrors.ErrTemplateNameTaken
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "uq_appraisal_template_name") {
		return appraisalerrors.ErrTemplateNameTaken
	}

	return err
}

func mapCycleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appraisalerrors.ErrCycleNotFound
	}
	return err
}
