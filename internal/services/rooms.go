package services

import (
	"context"
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

type Rooms struct {
	r Requester
}

// ListByHotel: GET /hotels/{id}/rooms
func (s *Rooms) ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	var out []models.Room
	err := s.r.DoJSON(ctx, http.MethodGet, path("hotels", hotelID, "rooms"), nil, &out)
	return out, err
}

// Create: POST /hotels/{id}/rooms
func (s *Rooms) Create(ctx context.Context, hotelID string, in dto.RoomInput) (models.Room, error) {
	var out models.Room
	err := s.r.DoJSON(ctx, http.MethodPost, path("hotels", hotelID, "rooms"), in, &out)
	return out, err
}

// Update: PUT /hotels/{id}/rooms/{roomId}
func (s *Rooms) Update(ctx context.Context, hotelID, roomID string, in dto.RoomInput) (models.Room, error) {
	var out models.Room
	err := s.r.DoJSON(ctx, http.MethodPut, path("hotels", hotelID, "rooms", roomID), in, &out)
	return out, err
}

// Delete: DELETE /hotels/{id}/rooms/{roomId}
func (s *Rooms) Delete(ctx context.Context, hotelID, roomID string) error {
	return s.r.DoJSON(ctx, http.MethodDelete, path("hotels", hotelID, "rooms", roomID), nil, nil)
}
