package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeUpstreamParse ErrorType = "UPSTREAM_PARSE_ERROR"
	ErrorTypeUpstreamCall  ErrorType = "UPSTREAM_CALL_ERROR"
	ErrorTypeInternal      ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	// Raw holds the unparsed upstream text for parse failures.
	Raw string `json:"-"`
	Err error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewUpstreamParseError creates an error for model output that could not be decoded (500).
// raw is kept verbatim so it can be returned to the caller for diagnosis.
func NewUpstreamParseError(message string, errorCode string, raw string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeUpstreamParse,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Submit the request again; the model output was not valid JSON.",
		Raw:           raw,
		Err:           err,
	}
}

// NewUpstreamCallError creates an error for a failed call to a generation provider (500).
// The message is the upstream error string.
func NewUpstreamCallError(errorCode string, err error) *AppError {
	msg := "upstream call failed"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Type:          ErrorTypeUpstreamCall,
		Message:       msg,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Check the provider credentials and availability.",
		Err:           err,
	}
}

// NewInternalError creates a new internal error (500)
func NewInternalError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInternal,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: false,
		Err:           err,
	}
}

// As resolves err to an *AppError. Errors that are not AppErrors are wrapped
// as internal errors carrying the original error string.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err.Error(), "INTERNAL", err)
}
