package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/0xhtml/search-engine/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("query is required")

	if err.Error() != "query is required" {
		t.Errorf("expected 'query is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid query", inner)

	if err.Error() != "invalid query: parse failed" {
		t.Errorf("expected 'invalid query: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty query")

	wrapped := fmt.Errorf("failed to parse: %w", original)
	doubleWrapped := fmt.Errorf("search error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty query" {
		t.Errorf("expected 'empty query', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("upstream connection failed")
	wrapped := fmt.Errorf("search error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}
