package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr string
	}{
		{name: "valid", req: CreateUserRequest{Email: "a@b.com", PasswordHash: "$2a$04$hash"}},
		{name: "blank email", req: CreateUserRequest{Email: "  ", PasswordHash: "x"}, wantErr: "email is required"},
		{name: "missing hash", req: CreateUserRequest{Email: "a@b.com"}, wantErr: "password hash is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
}
