package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hotel-admin/internal/apiclient"
	"github.com/hongminglow/hotel-admin/internal/apitest"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
	"github.com/hongminglow/hotel-admin/internal/session"
)

type fixture struct {
	api      *apitest.Server
	sessions *session.Manager
	svc      *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := apitest.NewServer()
	t.Cleanup(api.Close)
	sessions := session.NewManager(session.NewMemoryStore(), nil)
	client, err := apiclient.New(api.URL, apiclient.WithTokenSource(sessions))
	require.NoError(t, err)
	return &fixture{api: api, sessions: sessions, svc: New(client)}
}

func (f *fixture) login(t *testing.T, role models.Role) models.User {
	t.Helper()
	email := string(role) + "@example.com"
	f.api.Seed(models.User{Name: string(role), Email: email, Role: role}, "password123")
	resp, err := f.svc.Auth.Login(context.Background(), dto.LoginRequest{Email: email, Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, f.sessions.Begin(context.Background(), resp.Token, resp.User))
	return resp.User
}

func TestRegisterLoginMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Auth.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, created.Role)
	assert.NotEmpty(t, created.ID)

	_, err = f.svc.Auth.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apiclient.ErrAuth)

	resp, err := f.svc.Auth.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, f.sessions.Begin(ctx, resp.Token, resp.User))

	me, err := f.svc.Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, me)
}

func TestHotelRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, models.RoleHotelManager)

	in := dto.HotelInput{Name: "Lotus Inn", BasePrice: 120, Address: "1 Bay St", Description: "..."}
	created, err := f.svc.Hotels.Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	hotels, err := f.svc.Hotels.List(ctx)
	require.NoError(t, err)
	var found *models.Hotel
	for i := range hotels {
		if hotels[i].ID == created.ID {
			found = &hotels[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, in, dto.HotelInputFrom(*found))
}

func TestRoomsAndReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, models.RoleAdmin)

	hotel, err := f.svc.Hotels.Create(ctx, dto.HotelInput{Name: "Lotus Inn", BasePrice: 120, Address: "1 Bay St", Description: "..."})
	require.NoError(t, err)

	room, err := f.svc.Rooms.Create(ctx, hotel.ID, dto.RoomInput{RoomNumber: "101", Type: models.RoomSuite, Price: 300, Capacity: 4})
	require.NoError(t, err)
	room.Price = 280
	_, err = f.svc.Rooms.Update(ctx, hotel.ID, room.ID, dto.RoomInput{RoomNumber: "101", Type: models.RoomSuite, Price: 280, Capacity: 4})
	require.NoError(t, err)
	rooms, err := f.svc.Rooms.ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Room{room}, rooms)

	review, err := f.svc.Reviews.Create(ctx, hotel.ID, dto.ReviewInput{Rating: 4, Comment: "quiet"})
	require.NoError(t, err)
	_, err = f.svc.Reviews.Update(ctx, hotel.ID, review.ID, dto.ReviewInput{Rating: 5, Comment: "quiet"})
	require.NoError(t, err)
	reviews, err := f.svc.Reviews.ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)

	require.NoError(t, f.svc.Reviews.Delete(ctx, hotel.ID, review.ID))
	require.NoError(t, f.svc.Rooms.Delete(ctx, hotel.ID, room.ID))
	require.NoError(t, f.svc.Hotels.Delete(ctx, hotel.ID))

	_, err = f.svc.Hotels.Get(ctx, hotel.ID)
	assert.ErrorIs(t, err, apiclient.ErrValidation)
	assert.Equal(t, 404, apiclient.StatusOf(err))
}

func TestCancelBookingTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.api.Store().AddHotel(models.Hotel{Name: "Lotus Inn", BasePrice: 100, Address: "1 Bay St", Description: "..."})
	f.login(t, models.RoleGuest)

	booking, err := f.svc.Bookings.Create(ctx, dto.BookingInput{HotelID: hotel.ID, CheckInDate: "2026-05-01", CheckOutDate: "2026-05-03"})
	require.NoError(t, err)
	assert.Equal(t, 200.0, booking.TotalPrice)

	first, err1 := f.svc.Bookings.Cancel(ctx, booking.ID)
	second, err2 := f.svc.Bookings.Cancel(ctx, booking.ID)
	third, err3 := f.svc.Bookings.Cancel(ctx, booking.ID)
	assert.Equal(t, apiclient.KindOf(err2), apiclient.KindOf(err3))
	assert.Equal(t, apiclient.KindOf(err1), apiclient.KindOf(err2))
	assert.Equal(t, second, third)
	assert.Equal(t, models.BookingCancelled, first.Status)

	_, err1 = f.svc.Bookings.Cancel(ctx, "missing")
	_, err2 = f.svc.Bookings.Cancel(ctx, "missing")
	assert.Equal(t, apiclient.KindValidation, apiclient.KindOf(err1))
	assert.Equal(t, apiclient.KindOf(err1), apiclient.KindOf(err2))

	mine, err := f.svc.Bookings.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Cancelled())
}

func TestExpiredTokenEndsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, models.RoleGuest)

	f.api.RevokeAll()
	_, err := f.svc.Bookings.ListMine(ctx)
	assert.ErrorIs(t, err, apiclient.ErrAuth)
	assert.False(t, f.sessions.View().Authenticated())

	token, err := f.sessions.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestGuestCannotCreateHotel(t *testing.T) {
	f := newFixture(t)
	f.login(t, models.RoleGuest)

	_, err := f.svc.Hotels.Create(context.Background(), dto.HotelInput{Name: "x", Description: "y", Address: "z"})
	assert.ErrorIs(t, err, apiclient.ErrValidation)
	assert.Equal(t, 403, apiclient.StatusOf(err))
	assert.True(t, f.sessions.View().Authenticated(), "403 leaves the session alone")
}
