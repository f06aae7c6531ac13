package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "description", Message: "is too long"},
		}, "multiple validation errors: validation error for field 'name': is required; validation error for field 'description': is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			if result := ve.Error(); result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Error("new ValidationError should have no errors")
	}

	ve.AddError("name", ErrorTypeRequired, "name is a required field", "")
	if !ve.HasErrors() {
		t.Error("ValidationError should have errors after AddError")
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddError("name", ErrorTypeInvalidLength, "too long", "x")
	ve.AddError("description", ErrorTypeInvalidCharacter, "bad character", "y")
	ve.AddError("name", ErrorTypeInvalidCharacter, "bad character", "x")

	nameErrors := ve.GetFieldErrors("name")
	if len(nameErrors) != 2 {
		t.Fatalf("GetFieldErrors(name) returned %d errors, expected 2", len(nameErrors))
	}
	if nameErrors[0].Type != ErrorTypeInvalidLength || nameErrors[1].Type != ErrorTypeInvalidCharacter {
		t.Errorf("GetFieldErrors(name) kept the wrong order: %v", nameErrors)
	}
	if len(ve.GetFieldErrors("missing")) != 0 {
		t.Error("GetFieldErrors(missing) should be empty")
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if msg := ve.GetUserFriendlyMessage(); msg != "Input validation failed" {
		t.Errorf("empty message = %q", msg)
	}

	ve.AddError("name", ErrorTypeRequired, "name is a required field", "")
	if msg := ve.GetUserFriendlyMessage(); msg != "name is a required field" {
		t.Errorf("single message = %q", msg)
	}

	ve.AddError("description", ErrorTypeInvalidCharacter, "description must not contain control characters", "")
	msg := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(msg, "Multiple validation errors occurred:\n") {
		t.Errorf("multiple message = %q", msg)
	}
	if !strings.Contains(msg, "- name is a required field\n- description must not contain control characters") {
		t.Errorf("multiple message should list every error, got %q", msg)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()

	if !IsValidationError(ve) {
		t.Error("IsValidationError() should match a *ValidationError")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Error("IsValidationError() should match a wrapped *ValidationError")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError() should not match a plain error")
	}
}
