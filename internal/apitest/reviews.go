package apitest

import (
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/http/respond"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request, _ models.User) {
	reviews, err := s.store.reviewsOf(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", reviews)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request, user models.User) {
	var in dto.ReviewInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	review, err := s.store.addReview(models.Review{
		HotelID: r.PathValue("id"),
		UserID:  user.ID,
		Rating:  in.Rating,
		Comment: in.Comment,
	})
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusCreated, "review created", review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request, user models.User) {
	var in dto.ReviewInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	hotelID, reviewID := r.PathValue("id"), r.PathValue("reviewId")
	if !s.mayTouchReview(w, hotelID, reviewID, user) {
		return
	}
	review, err := s.store.updateReview(hotelID, reviewID, func(rv *models.Review) {
		rv.Rating = in.Rating
		rv.Comment = in.Comment
	})
	if err != nil {
		writeStoreError(w, err, "review")
		return
	}
	respond.JSON(w, http.StatusOK, "review updated", review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request, user models.User) {
	hotelID, reviewID := r.PathValue("id"), r.PathValue("reviewId")
	if !s.mayTouchReview(w, hotelID, reviewID, user) {
		return
	}
	if err := s.store.deleteReview(hotelID, reviewID); err != nil {
		writeStoreError(w, err, "review")
		return
	}
	respond.NoContent(w)
}

func (s *Server) mayTouchReview(w http.ResponseWriter, hotelID, reviewID string, user models.User) bool {
	review, err := s.store.review(hotelID, reviewID)
	if err != nil {
		writeStoreError(w, err, "review")
		return false
	}
	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "not your review")
		return false
	}
	return true
}
