package errors

import (
	stderrors "errors"
	"net/http"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case stderrors.Is(err, ErrNotFound):
		return NewNoDataError(technicalMessage, err)
	case stderrors.Is(err, ErrStaleState):
		return NewReqError(technicalMessage, err)
	case stderrors.Is(err, ErrDateConflict):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgConflict,
			Code:             ErrCodeConflict,
			HTTPStatus:       http.StatusConflict,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeInternalError,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}
