package profileerrors

import (
	"net/http"

	"go-hrcore/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee profile not found",
		http.StatusNotFound,
	)
	ErrProfileNotInTeam = apperror.New(
		apperror.CodeNotFound,
		"Employee not found in your team",
		http.StatusNotFound,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusConflict,
	)
	ErrWorkEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same work email already exists",
		http.StatusConflict,
	)
	ErrInvalidProfileID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee profile id",
		http.StatusBadRequest,
	)
	ErrInvalidNationalID = apperror.New(
		apperror.CodeInvalidInput,
		"national id must be exactly 14 digits",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrFieldNotEditable = apperror.New(
		apperror.CodeInvalidInput,
		"field cannot be changed through a change request",
		http.StatusBadRequest,
	)
	ErrProfileInactive = apperror.New(
		apperror.CodeInvalidState,
		"employee profile is deactivated",
		http.StatusBadRequest,
	)
)
