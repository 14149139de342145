//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// LoginRequest represents the credentials submitted to POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// LoginResponse is the token response of POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserProfile represents the authenticated user as returned by GET /auth/me.
type UserProfile struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name,omitempty"`
	Profession       string `json:"profession,omitempty"`
	SecurityQuestion string `json:"security_question,omitempty"`
}
