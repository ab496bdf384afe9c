// Package apitest runs an in-memory rendition of the hotel REST API for tests.
// It speaks the same paths, envelope, and status codes as the real backend but
// keeps everything in process memory.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/hotel-admin/internal/auth"
	"github.com/hongminglow/hotel-admin/internal/http/respond"
	"github.com/hongminglow/hotel-admin/internal/models"
)

// Server is a running fake API. URL includes the /api prefix.
type Server struct {
	URL string

	inner  *httptest.Server
	store  *Store
	tokens *auth.TokenManager

	mu      sync.Mutex
	issued  []string
	revoked map[string]bool

	requests atomic.Int64
}

// NewServer starts a fake API on a loopback port.
func NewServer() *Server {
	s := &Server{
		store:   newStore(),
		tokens:  auth.NewTokenManager("apitest-secret", "hotel-api", time.Hour),
		revoked: map[string]bool{},
	}
	mux := http.NewServeMux()
	s.routes(mux)
	s.inner = httptest.NewServer(respond.WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		mux.ServeHTTP(w, r)
	})))
	s.URL = s.inner.URL + "/api"
	return s
}

// Close shuts the server down.
func (s *Server) Close() {
	s.inner.Close()
}

// Store exposes the backing state for seeding and assertions.
func (s *Server) Store() *Store {
	return s.store
}

// Requests returns how many HTTP requests reached the server.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Seed registers an account directly and returns it with its id.
func (s *Server) Seed(user models.User, password string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	created, err := s.store.createAccount(user, hash)
	if err != nil {
		panic(err)
	}
	return created
}

// IssueToken signs a token for user without going through /auth/login.
func (s *Server) IssueToken(user models.User) string {
	token, err := s.tokens.Generate(user)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	s.issued = append(s.issued, token)
	s.mu.Unlock()
	return token
}

// RevokeAll makes every token issued so far answer 401, as if it expired.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, token := range s.issued {
		s.revoked[token] = true
	}
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("GET /api/auth/me", s.guard(nil, s.handleMe))

	managers := []models.Role{models.RoleHotelManager, models.RoleAdmin}

	mux.HandleFunc("GET /api/hotels", s.guard(nil, s.handleListHotels))
	mux.HandleFunc("POST /api/hotels", s.guard(managers, s.handleCreateHotel))
	mux.HandleFunc("GET /api/hotels/{id}", s.guard(nil, s.handleGetHotel))
	mux.HandleFunc("PUT /api/hotels/{id}", s.guard(managers, s.handleUpdateHotel))
	mux.HandleFunc("DELETE /api/hotels/{id}", s.guard(managers, s.handleDeleteHotel))

	mux.HandleFunc("GET /api/hotels/{id}/rooms", s.guard(nil, s.handleListRooms))
	mux.HandleFunc("POST /api/hotels/{id}/rooms", s.guard(managers, s.handleCreateRoom))
	mux.HandleFunc("PUT /api/hotels/{id}/rooms/{roomId}", s.guard(managers, s.handleUpdateRoom))
	mux.HandleFunc("DELETE /api/hotels/{id}/rooms/{roomId}", s.guard(managers, s.handleDeleteRoom))

	mux.HandleFunc("POST /api/bookings", s.guard(nil, s.handleCreateBooking))
	mux.HandleFunc("GET /api/bookings/user", s.guard(nil, s.handleMyBookings))
	mux.HandleFunc("GET /api/bookings/hotel/{id}", s.guard(managers, s.handleHotelBookings))
	mux.HandleFunc("PUT /api/bookings/{id}", s.guard(nil, s.handleUpdateBooking))
	mux.HandleFunc("PUT /api/bookings/{id}/cancel", s.guard(nil, s.handleCancelBooking))

	mux.HandleFunc("GET /api/hotels/{id}/reviews", s.guard(nil, s.handleListReviews))
	mux.HandleFunc("POST /api/hotels/{id}/reviews", s.guard(nil, s.handleCreateReview))
	mux.HandleFunc("PUT /api/hotels/{id}/reviews/{reviewId}", s.guard(nil, s.handleUpdateReview))
	mux.HandleFunc("DELETE /api/hotels/{id}/reviews/{reviewId}", s.guard(nil, s.handleDeleteReview))
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user models.User)

// guard answers 401 for missing, invalid, or revoked tokens and 403 when
// roles is non-empty and excludes the caller.
func (s *Server) guard(roles []models.Role, next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		s.mu.Lock()
		revoked := s.revoked[token]
		s.mu.Unlock()
		if revoked {
			respond.Error(w, http.StatusUnauthorized, "token expired")
			return
		}
		claims, err := s.tokens.Verify(token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}
		user, err := s.store.userByID(claims.Subject)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "unknown user")
			return
		}
		if len(roles) > 0 && !hasRole(roles, user.Role) {
			respond.Error(w, http.StatusForbidden, "insufficient role")
			return
		}
		next(w, r, user)
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}
	token := value[len(bearer):]
	if token == "" {
		return "", false
	}
	return token, true
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func privileged(user models.User) bool {
	return user.Role == models.RoleHotelManager || user.Role == models.RoleAdmin
}
