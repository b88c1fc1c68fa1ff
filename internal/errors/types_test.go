package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("No ingredients provided.", "NO_INGREDIENTS", "Add at least one ingredient")
	if err.Type != ErrorTypeValidation {
		t.Errorf("expected TypeValidation, got %v", err.Type)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err.StatusCode)
	}
	if err.RecoverySuggestion() != "Add at least one ingredient" {
		t.Errorf("unexpected suggestion %q", err.RecoverySuggestion())
	}
}

func TestNewUpstreamParseError(t *testing.T) {
	underlying := errors.New("invalid character 'o' in literal null")
	err := NewUpstreamParseError("GPT response was not valid JSON.", "INVALID_JSON", "not json", underlying)
	if err.Type != ErrorTypeUpstreamParse {
		t.Errorf("expected TypeUpstreamParse, got %v", err.Type)
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err.StatusCode)
	}
	if err.Raw != "not json" {
		t.Errorf("expected raw to be kept, got %q", err.Raw)
	}
	if !errors.Is(err, underlying) {
		t.Error("underlying error not correctly wrapped")
	}
}

func TestNewUpstreamCallError(t *testing.T) {
	underlying := errors.New("401 Unauthorized")
	err := NewUpstreamCallError("COMPLETION_FAILED", underlying)
	if err.Message != "401 Unauthorized" {
		t.Errorf("expected upstream message, got %q", err.Message)
	}
	if err.Error() != "401 Unauthorized" {
		t.Errorf("expected message not to be duplicated, got %q", err.Error())
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err.StatusCode)
	}
}

func TestAs(t *testing.T) {
	if As(nil) != nil {
		t.Error("expected nil for nil error")
	}

	appErr := NewValidationError("bad", "BAD", "")
	wrapped := fmt.Errorf("handler: %w", appErr)
	if got := As(wrapped); got != appErr {
		t.Errorf("expected wrapped AppError to be found, got %+v", got)
	}

	plain := As(errors.New("disk full"))
	if plain.Type != ErrorTypeInternal || plain.Message != "disk full" {
		t.Errorf("unexpected conversion: %+v", plain)
	}
}
