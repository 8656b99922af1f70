package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
		{name: "wrapped deadline", err: fmt.Errorf("query users: %w", context.DeadlineExceeded), wantCode: ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if GetCode(err) != tt.wantCode {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("mapped error should wrap pgx.ErrNoRows")
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name        string
		pgErr       *pgconn.PgError
		wantField   string
		wantMessage string
	}{
		{
			name:        "column name",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key", ColumnName: "email"},
			wantField:   "email",
			wantMessage: "Email already exists",
		},
		{
			name:        "detail message",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: `Key (email)=(a@b.com) already exists.`},
			wantField:   "email",
			wantMessage: "Email already exists",
		},
		{
			name:        "expression index detail",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: `Key (lower(email))=(a@b.com) already exists.`},
			wantField:   "email",
			wantMessage: "Email already exists",
		},
		{
			name:        "constraint name only",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			wantField:   "email",
			wantMessage: "Email already exists",
		},
		{
			name:        "ambiguous constraint",
			pgErr:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_tenant_key"},
			wantField:   "",
			wantMessage: "This value already exists. Please choose a different one.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Fatalf("MapDBError() should be Conflict, got %v", GetCode(err))
			}
			if field := GetField(err); field != tt.wantField {
				t.Errorf("MapDBError() field = %q, want %q", field, tt.wantField)
			}
			var appErr *AppError
			if errors.As(err, &appErr) && appErr.Message != tt.wantMessage {
				t.Errorf("MapDBError() message = %q, want %q", appErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapDBError_ColumnViolations(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{name: "not null with column", pgErr: &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "password_hash"}, wantField: "password_hash"},
		{name: "not null without column", pgErr: &pgconn.PgError{Code: pgerrcode.NotNullViolation}},
		{name: "check with column", pgErr: &pgconn.PgError{Code: pgerrcode.CheckViolation, ColumnName: "email"}, wantField: "email"},
		{name: "check without column", pgErr: &pgconn.PgError{Code: pgerrcode.CheckViolation}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsValidation(err) {
				t.Errorf("MapDBError() should be Validation, got %v", GetCode(err))
			}
			if field := GetField(err); field != tt.wantField {
				t.Errorf("MapDBError() field = %q, want %q", field, tt.wantField)
			}
		})
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.DiskFull})
	if !IsInternal(err) {
		t.Errorf("MapDBError() should be Internal, got %v", GetCode(err))
	}
}

func TestMapDBError_StandardError(t *testing.T) {
	orig := errors.New("boom")
	if err := MapDBError(orig); !errors.Is(err, orig) || GetCode(err) != "" {
		t.Errorf("MapDBError() should pass through unrecognized errors, got %v", err)
	}
}

func TestInferFieldFromConstraint(t *testing.T) {
	tests := map[string]string{
		"users_email_key":        "email",
		"users_lower_key":        "",
		"users_email_tenant_key": "",
		"pkey":                   "",
		"":                       "",
	}
	for in, want := range tests {
		if got := inferFieldFromConstraint(in); got != want {
			t.Errorf("inferFieldFromConstraint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnwrapFunction(t *testing.T) {
	tests := map[string]string{
		"lower(email)":  "email",
		"LOWER(email)":  "email",
		"email":         "email",
		"concat(a, b)":  "concat(a, b)",
		"(email)":       "(email)",
	}
	for in, want := range tests {
		if got := unwrapFunction(in); got != want {
			t.Errorf("unwrapFunction(%q) = %q, want %q", in, got, want)
		}
	}
}
