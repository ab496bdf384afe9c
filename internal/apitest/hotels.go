package apitest

import (
	"errors"
	"net/http"
	"time"

	"github.com/hongminglow/hotel-admin/internal/http/respond"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

func (s *Server) handleListHotels(w http.ResponseWriter, _ *http.Request, _ models.User) {
	respond.JSON(w, http.StatusOK, "ok", s.store.Hotels())
}

func (s *Server) handleGetHotel(w http.ResponseWriter, r *http.Request, _ models.User) {
	hotel, err := s.store.hotel(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", hotel)
}

func (s *Server) handleCreateHotel(w http.ResponseWriter, r *http.Request, user models.User) {
	var in dto.HotelInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	created := s.store.AddHotel(models.Hotel{
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   in.BasePrice,
		Address:     in.Address,
		ManagerID:   user.ID,
	})
	respond.JSON(w, http.StatusCreated, "hotel created", created)
}

func (s *Server) handleUpdateHotel(w http.ResponseWriter, r *http.Request, _ models.User) {
	var in dto.HotelInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.store.updateHotel(r.PathValue("id"), func(h *models.Hotel) {
		h.Name = in.Name
		h.Description = in.Description
		h.BasePrice = in.BasePrice
		h.Address = in.Address
	})
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusOK, "hotel updated", updated)
}

func (s *Server) handleDeleteHotel(w http.ResponseWriter, r *http.Request, _ models.User) {
	if err := s.store.deleteHotel(r.PathValue("id")); err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.NoContent(w)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request, _ models.User) {
	rooms, err := s.store.roomsOf(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "hotel")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", rooms)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request, _ models.User) {
	var in dto.RoomInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	room, err := s.store.addRoom(models.Room{
		HotelID:    r.PathValue("id"),
		RoomNumber: in.RoomNumber,
		Type:       in.Type,
		Price:      in.Price,
		Capacity:   in.Capacity,
	})
	if err != nil {
		writeStoreError(w, err, "room")
		return
	}
	respond.JSON(w, http.StatusCreated, "room created", room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request, _ models.User) {
	var in dto.RoomInput
	if !respond.Decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	room, err := s.store.updateRoom(r.PathValue("id"), r.PathValue("roomId"), func(room *models.Room) {
		room.RoomNumber = in.RoomNumber
		room.Type = in.Type
		room.Price = in.Price
		room.Capacity = in.Capacity
	})
	if err != nil {
		writeStoreError(w, err, "room")
		return
	}
	respond.JSON(w, http.StatusOK, "room updated", room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request, _ models.User) {
	if err := s.store.deleteRoom(r.PathValue("id"), r.PathValue("roomId")); err != nil {
		writeStoreError(w, err, "room")
		return
	}
	respond.NoContent(w)
}

func writeStoreError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, ErrAlreadyExists):
		respond.Error(w, http.StatusConflict, what+" already exists")
	default:
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func nights(checkIn, checkOut string) int {
	in, err1 := time.Parse(models.DateLayout, checkIn)
	out, err2 := time.Parse(models.DateLayout, checkOut)
	if err1 != nil || err2 != nil || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}
