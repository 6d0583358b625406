package appraisalerrors

import (
	"net/http"

	"go-hrcore/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Template not found",
		http.StatusNotFound,
	)

	ErrTemplateNameTaken = apperror.New(
		apperror.CodeConflict,
		"A template with this name already exists",
		http.StatusConflict,
	)

	ErrTemplateInUse = apperror.New(
		apperror.CodeConflict,
		"Template is referenced by one or more cycles",
		http.StatusConflict,
	)

	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Appraisal cycle not found",
		http.StatusNotFound,
	)

	ErrCycleNotPlanned = apperror.New(
		apperror.CodeInvalidState,
		"Only planned cycles can be activated",
		http.StatusConflict,
	)

	ErrCycleNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Only active cycles can be closed",
		http.StatusConflict,
	)

	ErrCycleNotClosed = apperror.New(
		apperror.CodeInvalidState,
		"Only closed cycles can be archived",
		http.StatusConflict,
	)

	ErrCycleNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"Archived cycles cannot be updated",
		http.StatusConflict,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be after start date",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
