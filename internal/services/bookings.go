package services

import (
	"context"
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

type Bookings struct {
	r Requester
}

// Create books a stay. POST /bookings
func (b *Bookings) Create(ctx context.Context, in dto.BookingInput) (models.Booking, error) {
	var out models.Booking
	err := b.r.DoJSON(ctx, http.MethodPost, path("bookings"), in, &out)
	return out, err
}

// ListMine returns the caller's bookings. GET /bookings/user
func (b *Bookings) ListMine(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := b.r.DoJSON(ctx, http.MethodGet, path("bookings", "user"), nil, &out)
	return out, err
}

// ListByHotel returns a hotel's bookings. GET /bookings/hotel/{id}
func (b *Bookings) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	var out []models.Booking
	err := b.r.DoJSON(ctx, http.MethodGet, path("bookings", "hotel", hotelID), nil, &out)
	return out, err
}

// Update: PUT /bookings/{id}
func (b *Bookings) Update(ctx context.Context, id string, in dto.BookingUpdate) (models.Booking, error) {
	var out models.Booking
	err := b.r.DoJSON(ctx, http.MethodPut, path("bookings", id), in, &out)
	return out, err
}

// Cancel asks the server to cancel a booking. PUT /bookings/{id}/cancel
//
// Nothing is cached client-side, so repeating the call reports whatever the
// server decides for an already-cancelled booking.
func (b *Bookings) Cancel(ctx context.Context, id string) (models.Booking, error) {
	var out models.Booking
	err := b.r.DoJSON(ctx, http.MethodPut, path("bookings", id, "cancel"), nil, &out)
	return out, err
}
