//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: LoginRequest{Email: "jane@example.com", Password: "secret"},
			wantErr: false,
		},
		{
			name:    "missing email",
			request: LoginRequest{Password: "secret"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "invalid email format",
			request: LoginRequest{Email: "not-an-email", Password: "secret"},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name:    "missing password",
			request: LoginRequest{Email: "jane@example.com"},
			wantErr: true,
			errMsg:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginResponse_JSONUnmarshaling(t *testing.T) {
	var resp LoginResponse
	err := json.Unmarshal([]byte(`{"access_token":"abc.def.ghi","token_type":"bearer"}`), &resp)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}
