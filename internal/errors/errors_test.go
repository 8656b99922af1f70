package errors

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "user not found"},
			want: "user not found",
		},
		{
			name: "error with cause",
			err:  &AppError{Code: ErrCodeInternal, Message: "failed to sign token", Cause: errors.New("key too short")},
			want: "failed to sign token: key too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{Code: ErrCodeInternal, Message: "wrapped error", Cause: cause}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		field string
	}{
		{name: "not found", err: NotFound("user not found"), code: ErrCodeNotFound},
		{name: "conflict", err: Conflict("Email already exists"), code: ErrCodeConflict},
		{name: "conflict field", err: ConflictField("email", "Email already exists"), code: ErrCodeConflict, field: "email"},
		{name: "validation", err: Validation("bad input"), code: ErrCodeValidation},
		{name: "validation field", err: ValidationField("password", "too short"), code: ErrCodeValidation, field: "password"},
		{name: "unauthorized", err: Unauthorized("Invalid token"), code: ErrCodeUnauthorized},
		{name: "internal", err: Internal("boom"), code: ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Field != tt.field {
				t.Errorf("Field = %q, want %q", tt.err.Field, tt.field)
			}
		})
	}
}

func TestAppError_FieldErrors(t *testing.T) {
	if got := Unauthorized("x").FieldErrors(); got != nil {
		t.Errorf("FieldErrors() = %v, want nil", got)
	}

	got := ConflictField("email", "Email already exists").FieldErrors()
	want := map[string]string{"email": "Email already exists"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldErrors() = %v, want %v", got, want)
	}

	fields := map[string]string{"email": "Email is required", "password": "Password is required"}
	got = ValidationFields("Validation failed", fields).FieldErrors()
	if !reflect.DeepEqual(got, fields) {
		t.Errorf("FieldErrors() = %v, want %v", got, fields)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrapf(cause, ErrCodeInternal, "insert %s", "user")

	if err.Message != "insert user" {
		t.Errorf("Message = %q, want %q", err.Message, "insert user")
	}
	if !errors.Is(err, cause) {
		t.Errorf("wrapped error lost its cause")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Errorf("Wrap(nil) should return nil")
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", Unauthorized("Invalid email or password"))

	if !IsUnauthorized(wrapped) {
		t.Errorf("IsUnauthorized(wrapped) = false, want true")
	}
	if IsConflict(wrapped) || IsNotFound(wrapped) || IsValidation(wrapped) {
		t.Errorf("wrapped unauthorized error matched another code")
	}
	if IsTimeout(errors.New("plain")) || IsCanceled(nil) || IsInternal(nil) {
		t.Errorf("non-AppError matched a code")
	}
	if GetCode(wrapped) != ErrCodeUnauthorized {
		t.Errorf("GetCode() = %v, want %v", GetCode(wrapped), ErrCodeUnauthorized)
	}
	if GetField(errors.New("plain")) != "" {
		t.Errorf("GetField() of plain error should be empty")
	}
}
