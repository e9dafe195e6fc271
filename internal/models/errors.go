package models

import (
	"errors"
	"fmt"
)

// Store sentinels. Repositories return these; services translate them.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION_ERROR"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindDuplicate  ErrorKind = "DUPLICATE"
	KindProvider   ErrorKind = "PROVIDER_ERROR"
	KindInternal   ErrorKind = "INTERNAL_ERROR"
)

const (
	CodeMissingAmbulanceID   = "MISSING_AMBULANCE_ID"
	CodeMissingTripID        = "MISSING_TRIP_ID"
	CodeMissingLocation      = "MISSING_LOCATION"
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeInvalidStatusFilter  = "INVALID_STATUS_FILTER"
	CodeInvalidBody          = "INVALID_REQUEST_BODY"
	CodeInvalidStartTime     = "INVALID_START_TIME"
	CodeInvalidEndTime       = "INVALID_END_TIME"
	CodeDuplicateAmbulanceID = "DUPLICATE_AMBULANCE_ID"
	CodeDuplicateTripID      = "DUPLICATE_TRIP_ID"
	CodeAmbulanceNotFound    = "AMBULANCE_NOT_FOUND"
	CodeTripNotFound         = "TRIP_NOT_FOUND"
	CodeLiveSampleNotFound   = "LIVE_SAMPLE_NOT_FOUND"
	CodeProviderError        = "PROVIDER_ERROR"
	CodeInternalError        = "INTERNAL_ERROR"
)

// AppError is the single error type crossing the service boundary.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func NewDuplicateError(code, message string) *AppError {
	return &AppError{Kind: KindDuplicate, Code: code, Message: message}
}

func NewProviderError(message string, details interface{}, err error) *AppError {
	return &AppError{Kind: KindProvider, Code: CodeProviderError, Message: message, Details: details, Err: err}
}

// NewInternalError passes the cause message through to the caller.
func NewInternalError(err error) *AppError {
	msg := "Internal server error"
	if err != nil {
		msg = "Internal server error: " + err.Error()
	}
	return &AppError{Kind: KindInternal, Code: CodeInternalError, Message: msg, Err: err}
}

// AsAppError unwraps err into an *AppError, wrapping unknown errors as internal.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
