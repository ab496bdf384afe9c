package services

import (
	"context"
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

type Hotels struct {
	r Requester
}

// List returns all hotels. GET /hotels
func (h *Hotels) List(ctx context.Context) ([]models.Hotel, error) {
	var out []models.Hotel
	err := h.r.DoJSON(ctx, http.MethodGet, path("hotels"), nil, &out)
	return out, err
}

// Get returns one hotel. GET /hotels/{id}
func (h *Hotels) Get(ctx context.Context, id string) (models.Hotel, error) {
	var out models.Hotel
	err := h.r.DoJSON(ctx, http.MethodGet, path("hotels", id), nil, &out)
	return out, err
}

// Create adds a hotel. POST /hotels
func (h *Hotels) Create(ctx context.Context, in dto.HotelInput) (models.Hotel, error) {
	var out models.Hotel
	err := h.r.DoJSON(ctx, http.MethodPost, path("hotels"), in, &out)
	return out, err
}

// Update replaces a hotel's editable fields. PUT /hotels/{id}
func (h *Hotels) Update(ctx context.Context, id string, in dto.HotelInput) (models.Hotel, error) {
	var out models.Hotel
	err := h.r.DoJSON(ctx, http.MethodPut, path("hotels", id), in, &out)
	return out, err
}

// Delete removes a hotel. DELETE /hotels/{id}
func (h *Hotels) Delete(ctx context.Context, id string) error {
	return h.r.DoJSON(ctx, http.MethodDelete, path("hotels", id), nil, nil)
}
