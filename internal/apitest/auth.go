package apitest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/hotel-admin/internal/http/respond"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if req.Role == "" {
		req.Role = models.RoleGuest
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	user := models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Role:  req.Role,
	}
	created, err := s.store.createAccount(user, hash)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "user already exists")
		default:
			slog.Error("create user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}
	respond.JSON(w, http.StatusCreated, "user created successfully", created)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	acc, err := s.store.accountByEmail(req.Email)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: s.IssueToken(acc.user), User: acc.user})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, user models.User) {
	respond.JSON(w, http.StatusOK, "ok", user)
}
