package services

import (
	"context"
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

type Auth struct {
	r Requester
}

// Login exchanges credentials for a token. POST /auth/login
func (a *Auth) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := a.r.DoJSON(ctx, http.MethodPost, path("auth", "login"), req, &out)
	return out, err
}

// Register creates an account. POST /auth/register
func (a *Auth) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	var out models.User
	err := a.r.DoJSON(ctx, http.MethodPost, path("auth", "register"), req, &out)
	return out, err
}

// Me returns the identity of the current token. GET /auth/me
func (a *Auth) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := a.r.DoJSON(ctx, http.MethodGet, path("auth", "me"), nil, &out)
	return out, err
}
