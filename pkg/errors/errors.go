package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeBadRequest            = "BAD_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeTooManyRequests       = "TOO_MANY_REQUESTS"
	CodeInternal              = "INTERNAL_ERROR"
	CodeUnavailable           = "SERVICE_UNAVAILABLE"
	CodeDuplicateFile         = "DUPLICATE_FILE"
	CodeHashAlreadyRegistered = "HASH_ALREADY_REGISTERED"
)

// AppError carries the HTTP status and the code clients switch on.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
	Details interface{}
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

// WithDetails attaches caller-facing context rendered under error.details.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err)
}

func Forbidden(message string, err error) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, err)
}

func NotFound(resource string, err error) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound, err)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict, nil)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

// Internal wraps an upstream failure; the cause is surfaced as details.
func Internal(message string, err error) *AppError {
	appErr := New(CodeInternal, message, http.StatusInternalServerError, err)
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

func Unavailable(feature string, err error) *AppError {
	return New(CodeUnavailable, feature+" is not available", http.StatusServiceUnavailable, err)
}

func DuplicateFile(existingFileID, existingFileName string) *AppError {
	return New(CodeDuplicateFile, "You have already uploaded this file", http.StatusConflict, nil).
		WithDetails(map[string]string{
			"existingFileId":   existingFileID,
			"existingFileName": existingFileName,
		})
}

func HashAlreadyRegistered(hash string) *AppError {
	return New(CodeHashAlreadyRegistered, "Hash already exists in the registry", http.StatusConflict, nil).
		WithDetails(map[string]string{"hash": hash})
}

// Is reports whether err wraps an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
