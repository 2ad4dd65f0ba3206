package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypePrecondition ErrorType = "PRECONDITION_FAILED"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidLeaveType ErrorCode = "INVALID_LEAVE_TYPE"
	ErrCodeMissingReason    ErrorCode = "MISSING_REASON"

	ErrCodeLeaveNotFound        ErrorCode = "LEAVE_NOT_FOUND"
	ErrCodeEmployeeNotFound     ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeDepartmentNotFound   ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeDirectionNotFound    ErrorCode = "DIRECTION_NOT_FOUND"
	ErrCodeAttendanceNotFound   ErrorCode = "ATTENDANCE_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	ErrCodeForbidden              ErrorCode = "FORBIDDEN"
	ErrCodeManagerApprovalNeeded  ErrorCode = "MANAGER_APPROVAL_REQUIRED"
	ErrCodeLeaveAlreadyProcessed  ErrorCode = "LEAVE_ALREADY_PROCESSED"
	ErrCodeApprovedLeaveImmutable ErrorCode = "APPROVED_LEAVE_IMMUTABLE"
	ErrCodeInsufficientBalance    ErrorCode = "INSUFFICIENT_LEAVE_BALANCE"
	ErrCodeDuplicateAttendance    ErrorCode = "DUPLICATE_ATTENDANCE"
	ErrCodeDuplicateEmail         ErrorCode = "DUPLICATE_EMAIL"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// BalanceDetails is attached to insufficient-balance errors so the calling
// layer can render an actionable message.
type BalanceDetails struct {
	Available int `json:"available"`
	Pending   int `json:"pending"`
	Requested int `json:"requested"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewPreconditionError reports an action that is capability-appropriate but
// disallowed by the entity's current state (wrong workflow status, deleting
// approved leave). Mapped to 400 to match the original API contract.
func NewPreconditionError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypePrecondition,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInsufficientBalanceError(available, pending, requested int) *AppError {
	return &AppError{
		Type: ErrorTypePrecondition,
		Code: ErrCodeInsufficientBalance,
		Message: fmt.Sprintf(
			"insufficient leave balance: %d days available (%d pending approval), %d requested",
			available, pending, requested),
		StatusCode: http.StatusBadRequest,
		Details:    BalanceDetails{Available: available, Pending: pending, Requested: requested},
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrLeaveNotFound        = NewNotFoundError("leave request not found", ErrCodeLeaveNotFound)
	ErrEmployeeNotFound     = NewNotFoundError("employee not found", ErrCodeEmployeeNotFound)
	ErrDepartmentNotFound   = NewNotFoundError("department not found", ErrCodeDepartmentNotFound)
	ErrDirectionNotFound    = NewNotFoundError("direction not found", ErrCodeDirectionNotFound)
	ErrAttendanceNotFound   = NewNotFoundError("attendance record not found", ErrCodeAttendanceNotFound)
	ErrNotificationNotFound = NewNotFoundError("notification not found", ErrCodeNotificationNotFound)

	ErrForbidden = NewForbiddenError("you do not have permission to perform this action", ErrCodeForbidden)

	ErrManagerApprovalNeeded = NewPreconditionError(
		"leave must be approved by the direction manager first", ErrCodeManagerApprovalNeeded)
	ErrLeaveAlreadyProcessed = NewPreconditionError(
		"leave request has already been processed", ErrCodeLeaveAlreadyProcessed)
	ErrApprovedLeaveImmutable = NewPreconditionError(
		"an approved leave cannot be deleted", ErrCodeApprovedLeaveImmutable)
	ErrInvalidDateRange = NewValidationError(
		"end date must be on or after start date", ErrCodeInvalidDateRange)

	ErrDuplicateAttendance = NewConflictError(
		"an attendance record already exists for this employee and date", ErrCodeDuplicateAttendance)
	ErrDuplicateEmail = NewConflictError("an employee with this email already exists", ErrCodeDuplicateEmail)

	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
