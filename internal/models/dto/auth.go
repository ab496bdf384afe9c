package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/hongminglow/hotel-admin/internal/models"
)

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// Validate mirrors the checks the registration form performs before submitting.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("%w: name and email are required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: email is malformed", ErrInvalid)
	}
	if len(strings.TrimSpace(r.Password)) < 8 || !utf8.ValidString(r.Password) {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalid)
	}
	if r.Role != "" && !r.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalid, r.Role)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalid)
	}
	return nil
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
