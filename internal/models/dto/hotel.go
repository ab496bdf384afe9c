package dto

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hongminglow/hotel-admin/internal/models"
)

// ErrInvalid marks input rejected before any request is sent.
var ErrInvalid = errors.New("invalid input")

// HotelInput is the payload for creating or updating a hotel.
type HotelInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	Address     string  `json:"address"`
}

func (in HotelInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: name, description, and address are required", ErrInvalid)
	}
	if math.IsNaN(in.BasePrice) || math.IsInf(in.BasePrice, 0) || in.BasePrice < 0 {
		return fmt.Errorf("%w: base price must be a number >= 0", ErrInvalid)
	}
	return nil
}

// HotelInputFrom copies the editable fields of an existing hotel, as the edit form does.
func HotelInputFrom(h models.Hotel) HotelInput {
	return HotelInput{
		Name:        h.Name,
		Description: h.Description,
		BasePrice:   h.BasePrice,
		Address:     h.Address,
	}
}

type RoomInput struct {
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Capacity   int     `json:"capacity"`
}

// NewRoomInput returns the room form defaults.
func NewRoomInput() RoomInput {
	return RoomInput{Type: models.RoomStandard, Capacity: 2}
}

func (in RoomInput) Validate() error {
	if strings.TrimSpace(in.RoomNumber) == "" {
		return fmt.Errorf("%w: room number is required", ErrInvalid)
	}
	switch in.Type {
	case models.RoomStandard, models.RoomDeluxe, models.RoomSuite:
	default:
		return fmt.Errorf("%w: unknown room type %q", ErrInvalid, in.Type)
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return fmt.Errorf("%w: price must be a number >= 0", ErrInvalid)
	}
	if in.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalid)
	}
	return nil
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (in ReviewInput) Validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	return nil
}
