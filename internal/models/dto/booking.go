package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/hongminglow/hotel-admin/internal/models"
)

type BookingInput struct {
	HotelID      string `json:"hotelId"`
	RoomID       string `json:"roomId,omitempty"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

func (in BookingInput) Validate() error {
	if strings.TrimSpace(in.HotelID) == "" {
		return fmt.Errorf("%w: hotel is required", ErrInvalid)
	}
	return validateStay(in.CheckInDate, in.CheckOutDate)
}

// BookingUpdate changes the dates or status of an existing booking.
type BookingUpdate struct {
	CheckInDate  string `json:"checkInDate,omitempty"`
	CheckOutDate string `json:"checkOutDate,omitempty"`
	Status       string `json:"status,omitempty"`
}

func (in BookingUpdate) Validate() error {
	if in.CheckInDate != "" || in.CheckOutDate != "" {
		if err := validateStay(in.CheckInDate, in.CheckOutDate); err != nil {
			return err
		}
	}
	switch in.Status {
	case "", models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
		return nil
	default:
		return fmt.Errorf("%w: unknown booking status %q", ErrInvalid, in.Status)
	}
}

func validateStay(checkIn, checkOut string) error {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return fmt.Errorf("%w: please select check-in and check-out dates", ErrInvalid)
	}
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return fmt.Errorf("%w: check-in date %q is not YYYY-MM-DD", ErrInvalid, checkIn)
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return fmt.Errorf("%w: check-out date %q is not YYYY-MM-DD", ErrInvalid, checkOut)
	}
	if !out.After(in) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalid)
	}
	return nil
}
