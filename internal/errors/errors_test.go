package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := stderrors.New("disk full")
	err := StorageUnavailableError("save", cause)

	if err.Code != ErrCodeStorageUnavailable {
		t.Errorf("Expected STORAGE_UNAVAILABLE, got %s", err.Code)
	}
	if err.Severity != SeverityCritical {
		t.Errorf("Expected critical severity, got %s", err.Severity)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected wrapped cause to unwrap")
	}
}

func TestIsCode(t *testing.T) {
	err := NotFoundError("Template \"x\"")
	if !IsCode(err, ErrCodeNotFound) {
		t.Error("Expected IsCode to match NOT_FOUND")
	}
	if IsCode(err, ErrCodeValidation) {
		t.Error("Expected IsCode to reject a different code")
	}
	if IsCode(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Expected IsCode to reject non-AppError")
	}

	wrapped := fmt.Errorf("failed to get template: %w", err)
	if !IsCode(wrapped, ErrCodeNotFound) {
		t.Error("Expected IsCode to see through fmt.Errorf wrapping")
	}
}

func TestGetAppErrorConvertsPlainErrors(t *testing.T) {
	appErr := GetAppError(stderrors.New("boom"))
	if appErr.Code != ErrCodeInternalError {
		t.Errorf("Expected INTERNAL_ERROR, got %s", appErr.Code)
	}
	if appErr.Cause == nil {
		t.Error("Expected original error kept as cause")
	}
}

func TestIndexOutOfRangeMessage(t *testing.T) {
	err := IndexOutOfRangeError(5, 3)
	if !strings.Contains(err.Message, "5") || !strings.Contains(err.Message, "3") {
		t.Errorf("Expected index and length in message, got %q", err.Message)
	}
}

func TestCLIErrorHandlerFormat(t *testing.T) {
	h := NewCLIErrorHandler(false)

	got := h.FormatError(DataCorruptionError(stderrors.New("bad json")))
	if !strings.HasPrefix(got, "ERROR:") {
		t.Errorf("Expected ERROR prefix, got %q", got)
	}

	got = h.FormatError(NotFoundError("Template"))
	if !strings.HasPrefix(got, "INFO:") {
		t.Errorf("Expected INFO prefix, got %q", got)
	}
}

func TestTUIErrorHandlerDetails(t *testing.T) {
	h := NewTUIErrorHandler(true)
	err := ValidationError("Bad input").WithDetails("field: title")

	got := h.FormatError(err)
	if !strings.Contains(got, "field: title") {
		t.Errorf("Expected details included, got %q", got)
	}

	if h.ErrorColor(err) == "" {
		t.Error("Expected a color for every severity")
	}
}
