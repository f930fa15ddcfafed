package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.TechnicalMessage)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.TechnicalMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Error codes
const (
	ErrCodeParam         = "PARAMERR"
	ErrCodeNoData        = "NODATA"
	ErrCodeRole          = "ROLEERR"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeReq           = "REQERR"
	ErrCodeDB            = "DBERR"
	ErrCodeThirdParty    = "THIRDERR"
	ErrCodeSession       = "SESSIONERR"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Sentinel errors returned by the repositories.
var (
	ErrNotFound = stderrors.New("record not found")
	// ErrStaleState means a conditional update matched no row because the order left the expected status.
	ErrStaleState = stderrors.New("order status changed concurrently")
	// ErrDateConflict means the requested dates overlap an existing order of the house.
	ErrDateConflict = stderrors.New("dates overlap an existing order")
)

func NewParamError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgParam, ErrCodeParam, http.StatusBadRequest, err)
}

// NewParamErrorWithMessage is NewParamError with a more specific user message.
func NewParamErrorWithMessage(technicalMessage, userMessage string, err error) *AppError {
	return NewAppError(technicalMessage, userMessage, ErrCodeParam, http.StatusBadRequest, err)
}

func NewNoDataError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgNoData, ErrCodeNoData, http.StatusNotFound, err)
}

func NewRoleError(technicalMessage string) *AppError {
	return NewAppError(technicalMessage, MsgRole, ErrCodeRole, http.StatusForbidden, nil)
}

func NewConflictError(technicalMessage string) *AppError {
	return NewAppError(technicalMessage, MsgConflict, ErrCodeConflict, http.StatusConflict, nil)
}

func NewReqError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgReq, ErrCodeReq, http.StatusUnprocessableEntity, err)
}

func NewDBError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgDB, ErrCodeDB, http.StatusInternalServerError, err)
}

// NewThirdPartyError is reserved for failures of external services; none are called yet.
func NewThirdPartyError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgThirdParty, ErrCodeThirdParty, http.StatusBadGateway, err)
}

// NewSessionError reports a missing or invalid login token.
func NewSessionError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgUnauthorized, ErrCodeSession, http.StatusUnauthorized, err)
}

// NewRateLimitedError reports a client over its request budget.
func NewRateLimitedError(technicalMessage string) *AppError {
	return NewAppError(technicalMessage, MsgRateLimited, ErrCodeRateLimited, http.StatusTooManyRequests, nil)
}

// Code returns the error code carried by err, or an empty string when err is not an AppError.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
