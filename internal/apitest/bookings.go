package apitest

import (
	"net/http"

	"github.com/hongminglow/hotel-admin/internal/http/respond"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request, user models.User) {
	var in dto.BookingInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	hotel, err := s.store.hotel(in.HotelID)
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	rate := hotel.BasePrice
	if in.RoomID != "" {
		found := false
		for _, room := range hotel.Rooms {
			if room.ID == in.RoomID {
				rate, found = room.Price, true
			}
		}
		if !found {
			respond.Error(w, http.StatusNotFound, "room not found")
			return
		}
	}
	booking, err := s.store.AddBooking(models.Booking{
		HotelID:      in.HotelID,
		RoomID:       in.RoomID,
		UserID:       user.ID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		Status:       models.BookingPending,
		TotalPrice:   rate * float64(nights(in.CheckInDate, in.CheckOutDate)),
	})
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusCreated, "booking created", booking)
}

func (s *Server) handleMyBookings(w http.ResponseWriter, _ *http.Request, user models.User) {
	respond.JSON(w, http.StatusOK, "ok", s.store.bookingsWhere(func(b models.Booking) bool {
		return b.UserID == user.ID
	}))
}

func (s *Server) handleHotelBookings(w http.ResponseWriter, r *http.Request, _ models.User) {
	hotelID := r.PathValue("id")
	if _, err := s.store.hotel(hotelID); err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", s.store.bookingsWhere(func(b models.Booking) bool {
		return b.HotelID == hotelID
	}))
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request, user models.User) {
	var in dto.BookingUpdate
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.mayTouchBooking(w, r.PathValue("id"), user) {
		return
	}
	updated, err := s.store.updateBooking(r.PathValue("id"), func(b *models.Booking) {
		if in.CheckInDate != "" {
			b.CheckInDate, b.CheckOutDate = in.CheckInDate, in.CheckOutDate
		}
		if in.Status != "" {
			b.Status = in.Status
		}
	})
	if err != nil {
		writeStoreError(w, err, "booking")
		return
	}
	respond.JSON(w, http.StatusOK, "booking updated", updated)
}

// handleCancelBooking is idempotent: cancelling a cancelled booking answers
// exactly like the first cancellation did.
func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request, user models.User) {
	if !s.mayTouchBooking(w, r.PathValue("id"), user) {
		return
	}
	updated, err := s.store.updateBooking(r.PathValue("id"), func(b *models.Booking) {
		b.Status = models.BookingCancelled
	})
	if err != nil {
		writeStoreError(w, err, "booking")
		return
	}
	respond.JSON(w, http.StatusOK, "booking cancelled", updated)
}

func (s *Server) mayTouchBooking(w http.ResponseWriter, id string, user models.User) bool {
	booking, err := s.store.booking(id)
	if err != nil {
		writeStoreError(w, err, "booking")
		return false
	}
	if booking.UserID != user.ID && !privileged(user) {
		respond.Error(w, http.StatusForbidden, "not your booking")
		return false
	}
	return true
}
