package services

import (
	"context"
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

type Reviews struct {
	r Requester
}

// ListByHotel: GET /hotels/{id}/reviews
func (s *Reviews) ListByHotel(ctx context.Context, hotelID string) ([]models.Review, error) {
	var out []models.Review
	err := s.r.DoJSON(ctx, http.MethodGet, path("hotels", hotelID, "reviews"), nil, &out)
	return out, err
}

// Create: POST /hotels/{id}/reviews
func (s *Reviews) Create(ctx context.Context, hotelID string, in dto.ReviewInput) (models.Review, error) {
	var out models.Review
	err := s.r.DoJSON(ctx, http.MethodPost, path("hotels", hotelID, "reviews"), in, &out)
	return out, err
}

// Update: PUT /hotels/{id}/reviews/{reviewId}
func (s *Reviews) Update(ctx context.Context, hotelID, reviewID string, in dto.ReviewInput) (models.Review, error) {
	var out models.Review
	err := s.r.DoJSON(ctx, http.MethodPut, path("hotels", hotelID, "reviews", reviewID), in, &out)
	return out, err
}

// Delete: DELETE /hotels/{id}/reviews/{reviewId}
func (s *Reviews) Delete(ctx context.Context, hotelID, reviewID string) error {
	return s.r.DoJSON(ctx, http.MethodDelete, path("hotels", hotelID, "reviews", reviewID), nil, nil)
}
