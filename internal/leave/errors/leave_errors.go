package leaveerrors

import (
	"fmt"
	"net/http"

	"go-hrdesk/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave application not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrFutureYear = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, can not apply leave for the future year.",
		http.StatusBadRequest,
	)
	ErrContactNumberNotNumeric = apperror.New(
		apperror.CodeInvalidInput,
		"contact_number must contain digits only",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidTargetStatus = apperror.New(
		apperror.CodeInvalidInput,
		"target status must be Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrNegativeDays = apperror.New(
		apperror.CodeInvalidInput,
		"number_of_days must not be negative",
		http.StatusBadRequest,
	)
	ErrNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to process this leave application",
		http.StatusForbidden,
	)
	ErrPendingOnlyEdit = apperror.New(
		apperror.CodeForbidden,
		"only pending applications can be amended by their owner",
		http.StatusForbidden,
	)
)

// OverlappingRequest names the existing conflicting request's type, not the
// candidate's.
func OverlappingRequest(existingType string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Already applied for %s on same date", existingType),
		http.StatusConflict,
	)
}

func MissingField(field string) *apperror.AppError {
	return apperror.RequiredField(field)
}

func NoOpTransition(leaveType, status string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("%s is already %s", leaveType, status),
		http.StatusBadRequest,
	)
}
