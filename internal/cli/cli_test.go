package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hotel-admin/internal/apitest"
	"github.com/hongminglow/hotel-admin/internal/app"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/session"
)

type harness struct {
	api   *apitest.Server
	store *session.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := apitest.NewServer()
	t.Cleanup(api.Close)
	return &harness{api: api, store: session.NewMemoryStore()}
}

func (h *harness) factory(_ context.Context, nav app.Navigator) (*app.App, error) {
	return app.New(app.Options{BaseURL: h.api.URL, Store: h.store, Navigator: nav})
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (h *harness) run(args ...string) result {
	var out, errOut bytes.Buffer
	code := Run(context.Background(), h.factory, args, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (h *harness) login(t *testing.T, role models.Role) models.User {
	t.Helper()
	email := strings.ToLower(string(role)) + "@example.com"
	user := h.api.Seed(models.User{Name: string(role), Email: email, Role: role}, "password123")
	res := h.run("login", "--email", email, "--password", "password123")
	require.Equal(t, 0, res.code, res.stderr)
	return user
}

func TestRoleCommandRequiresLogin(t *testing.T) {
	h := newHarness(t)
	res := h.run("guest", "hotels")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Please log in")
	assert.NotContains(t, res.stderr, "Error:")
	assert.Zero(t, h.api.Requests())
}

func TestLoginPrintsHome(t *testing.T) {
	h := newHarness(t)
	h.api.Seed(models.User{Name: "Mia", Email: "mia@example.com", Role: models.RoleHotelManager}, "password123")

	res := h.run("login", "--email", "mia@example.com", "--password", "password123", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)

	var got loginResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "/manager", got.Home)
	assert.Equal(t, models.RoleHotelManager, got.User.Role)

	token, err := h.store.Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	h := newHarness(t)
	h.api.Seed(models.User{Name: "Mia", Email: "mia@example.com", Role: models.RoleGuest}, "password123")

	var out, errOut bytes.Buffer
	sh := &shell{factory: h.factory}
	root := sh.rootCommand()
	root.SetArgs([]string{"login", "--email", "mia@example.com"})
	root.SetIn(strings.NewReader("password123\n"))
	root.SetOut(&out)
	root.SetErr(&errOut)
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "/guest")
}

func TestLoginRejectedCredentials(t *testing.T) {
	h := newHarness(t)
	h.api.Seed(models.User{Name: "Mia", Email: "mia@example.com", Role: models.RoleGuest}, "password123")

	res := h.run("login", "--email", "mia@example.com", "--password", "nope-nope")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid email or password")
	assert.NotContains(t, res.stderr, "Please log in")
}

func TestRegisterDefaultsToGuest(t *testing.T) {
	h := newHarness(t)
	res := h.run("register", "--name", "Ana", "--email", "ana@example.com", "--password", "password123")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Guest")
	assert.Equal(t, 1, h.api.Store().UserCount())

	res = h.run("register", "--name", "Ana", "--email", "ana@example.com", "--password", "short")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "at least 8 characters")
}

func TestGuestForbiddenFromAdmin(t *testing.T) {
	h := newHarness(t)
	h.login(t, models.RoleGuest)

	res := h.run("admin", "stats")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Unauthorized")
}

func TestGuestBookingFlow(t *testing.T) {
	h := newHarness(t)
	h.login(t, models.RoleGuest)
	hotel := h.api.Store().AddHotel(models.Hotel{Name: "Harbor Inn", Description: "By the sea", BasePrice: 100, Address: "1 Pier"})

	res := h.run("guest", "hotels")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Harbor Inn")
	assert.Contains(t, res.stdout, "100.00")

	res = h.run("guest", "book", "--hotel", hotel.ID)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "please select check-in and check-out dates")

	res = h.run("guest", "book", "--hotel", hotel.ID, "--check-in", "2026-05-01", "--check-out", "2026-05-03", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var booked []models.Booking
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &booked))
	require.Len(t, booked, 1)
	assert.Equal(t, 200.0, booked[0].TotalPrice)

	res = h.run("guest", "cancel", booked[0].ID)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, models.BookingCancelled)

	res = h.run("guest", "bookings", "-o", "yaml")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "status: cancelled")
	assert.Contains(t, res.stdout, "checkInDate:")

	res = h.run("guest", "review", hotel.ID, "--rating", "5", "--comment", "Lovely")
	require.Equal(t, 0, res.code, res.stderr)
	res = h.run("guest", "reviews", hotel.ID)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Lovely")
}

func TestManagerHotelLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login(t, models.RoleHotelManager)

	res := h.run("manager", "hotel", "create", "--name", "Grand", "--description", "Old", "--price", "120", "--address", "Main St", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var created []models.Hotel
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	require.Len(t, created, 1)
	id := created[0].ID

	res = h.run("manager", "hotel", "update", id, "--name", "Grand Palace")
	require.Equal(t, 0, res.code, res.stderr)
	hotels := h.api.Store().Hotels()
	require.Len(t, hotels, 1)
	assert.Equal(t, "Grand Palace", hotels[0].Name)
	assert.Equal(t, "Main St", hotels[0].Address)
	assert.Equal(t, 120.0, hotels[0].BasePrice)

	res = h.run("manager", "room", "add", id, "--number", "101")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, models.RoomStandard)

	res = h.run("manager", "rooms", id, "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, 2, rooms[0].Capacity)

	res = h.run("manager", "room", "update", id, rooms[0].ID, "--type", models.RoomSuite)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, models.RoomSuite)
	assert.Contains(t, res.stdout, "101")

	res = h.run("manager", "room", "delete", id, rooms[0].ID)
	require.Equal(t, 0, res.code, res.stderr)

	res = h.run("manager", "hotel", "create", "--name", "", "--description", "x", "--address", "y")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "name, description, and address are required")

	res = h.run("manager", "hotel", "delete", id)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, h.api.Store().Hotels())
}

func TestAdminStats(t *testing.T) {
	h := newHarness(t)
	guest := h.api.Seed(models.User{Name: "G", Email: "g@example.com", Role: models.RoleGuest}, "password123")
	h.login(t, models.RoleAdmin)
	hotel := h.api.Store().AddHotel(models.Hotel{Name: "A", Description: "d", BasePrice: 50, Address: "x"})
	_, err := h.api.Store().AddBooking(models.Booking{HotelID: hotel.ID, UserID: guest.ID, CheckInDate: "2026-01-01", CheckOutDate: "2026-01-02", Status: models.BookingConfirmed, TotalPrice: 50})
	require.NoError(t, err)

	res := h.run("admin", "stats", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &raw))
	assert.Nil(t, raw["totalUsers"])
	assert.EqualValues(t, 1, raw["totalHotels"])
	assert.EqualValues(t, 1, raw["totalBookings"])
	assert.EqualValues(t, 50, raw["totalRevenue"])

	res = h.run("admin", "stats")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "n/a")
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	h := newHarness(t)
	h.login(t, models.RoleGuest)
	h.api.RevokeAll()

	res := h.run("guest", "bookings")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Please log in")

	_, err := h.store.Get(context.Background())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestLogoutThenWhoami(t *testing.T) {
	h := newHarness(t)
	h.login(t, models.RoleGuest)

	res := h.run("whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "guest@example.com")

	res = h.run("logout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Logged out.")
	assert.Empty(t, res.stderr)

	res = h.run("whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Please log in")
}

func TestUnknownOutputFormat(t *testing.T) {
	h := newHarness(t)
	res := h.run("whoami", "-o", "xml")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `unknown output format "xml"`)
}
