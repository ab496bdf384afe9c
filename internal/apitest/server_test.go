package apitest

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hotel-admin/internal/http/respond"
	"github.com/hongminglow/hotel-admin/internal/models"
)

func TestGuardStatuses(t *testing.T) {
	s := NewServer()
	defer s.Close()
	guest := s.Seed(models.User{Name: "G", Email: "g@example.com", Role: models.RoleGuest}, "password123")

	resp, err := http.Get(s.URL + "/hotels")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPost, s.URL+"/hotels", strings.NewReader(`{"name":"x","description":"y","basePrice":1,"address":"z"}`))
	req.Header.Set("Authorization", "Bearer "+s.IssueToken(guest))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	token := s.IssueToken(guest)
	s.RevokeAll()
	req, _ = http.NewRequest(http.MethodGet, s.URL+"/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 3, s.Requests())
}

func TestEchoesRequestID(t *testing.T) {
	s := NewServer()
	defer s.Close()

	req, _ := http.NewRequest(http.MethodGet, s.URL+"/hotels", nil)
	req.Header.Set(respond.RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(respond.RequestIDHeader))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, nights("2026-03-01", "2026-03-04"))
}
