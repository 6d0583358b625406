package changerequesterrors

import (
	"net/http"

	"go-hrcore/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Change request not found",
		http.StatusNotFound,
	)
	ErrOriginalRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Original change request not found",
		http.StatusNotFound,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid change request id",
		http.StatusBadRequest,
	)
	ErrUnknownField = apperror.New(
		apperror.CodeInvalidInput,
		"field is not an editable profile field",
		http.StatusBadRequest,
	)
	ErrNationalIDFormat = apperror.New(
		apperror.CodeInvalidInput,
		"nationalId must be 14 digits",
		http.StatusBadRequest,
	)
	ErrOnlyPendingWithdraw = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests can be withdrawn",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"change request has already been processed",
		http.StatusConflict,
	)
	ErrNotFieldEdit = apperror.New(
		apperror.CodeInvalidState,
		"change request does not carry a field edit",
		http.StatusBadRequest,
	)
	ErrNotDispute = apperror.New(
		apperror.CodeInvalidState,
		"change request is not a dispute",
		http.StatusBadRequest,
	)
	ErrOriginalNotDecided = apperror.New(
		apperror.CodeInvalidState,
		"original change request has not been decided yet",
		http.StatusConflict,
	)
	ErrCorruptPayload = apperror.New(
		apperror.CodeInternalError,
		"change request payload is corrupt",
		http.StatusInternalServerError,
	)
)
