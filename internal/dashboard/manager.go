package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
	"github.com/hongminglow/hotel-admin/internal/resource"
	"github.com/hongminglow/hotel-admin/internal/services"
)

// Manager maintains hotels, their rooms, and their bookings.
type Manager struct {
	svc    *services.Services
	logger *slog.Logger

	Hotels *resource.Remote[[]models.Hotel]

	mu       sync.Mutex
	selected *models.Hotel
}

func NewManager(svc *services.Services, logger *slog.Logger) *Manager {
	logger = discardLogger(logger)
	return &Manager{
		svc:    svc,
		logger: logger,
		Hotels: resource.New("hotels", svc.Hotels.List, logger),
	}
}

// Select marks h for editing; nil switches the form back to "add new hotel".
func (m *Manager) Select(h *models.Hotel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h == nil {
		m.selected = nil
		return
	}
	cp := *h
	m.selected = &cp
}

// Selected returns the hotel being edited, if any.
func (m *Manager) Selected() (models.Hotel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return models.Hotel{}, false
	}
	return *m.selected, true
}

// SaveHotel updates the selected hotel or creates a new one, then clears
// the selection and refetches the list.
func (m *Manager) SaveHotel(ctx context.Context, in dto.HotelInput) (models.Hotel, error) {
	if err := in.Validate(); err != nil {
		return models.Hotel{}, err
	}
	var (
		saved models.Hotel
		err   error
	)
	if current, ok := m.Selected(); ok {
		saved, err = m.svc.Hotels.Update(ctx, current.ID, in)
	} else {
		saved, err = m.svc.Hotels.Create(ctx, in)
	}
	if err != nil {
		logFailure(m.logger, "save hotel", err)
		return models.Hotel{}, err
	}
	m.Select(nil)
	m.Hotels.Load(ctx)
	return saved, nil
}

// DeleteHotel removes a hotel and refetches the list.
func (m *Manager) DeleteHotel(ctx context.Context, hotelID string) error {
	if err := m.svc.Hotels.Delete(ctx, hotelID); err != nil {
		logFailure(m.logger, "delete hotel", err)
		return err
	}
	if cur, ok := m.Selected(); ok && cur.ID == hotelID {
		m.Select(nil)
	}
	m.Hotels.Load(ctx)
	return nil
}

// Rooms lists the rooms of a hotel.
func (m *Manager) Rooms(ctx context.Context, hotelID string) ([]models.Room, error) {
	rooms, err := m.svc.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		logFailure(m.logger, "fetch rooms", err)
	}
	return rooms, err
}

// AddRoom creates a room and refetches the hotel list.
func (m *Manager) AddRoom(ctx context.Context, hotelID string, in dto.RoomInput) (models.Room, error) {
	if err := in.Validate(); err != nil {
		return models.Room{}, err
	}
	room, err := m.svc.Rooms.Create(ctx, hotelID, in)
	if err != nil {
		logFailure(m.logger, "add room", err)
		return models.Room{}, err
	}
	m.Hotels.Load(ctx)
	return room, nil
}

func (m *Manager) UpdateRoom(ctx context.Context, hotelID, roomID string, in dto.RoomInput) (models.Room, error) {
	if err := in.Validate(); err != nil {
		return models.Room{}, err
	}
	room, err := m.svc.Rooms.Update(ctx, hotelID, roomID, in)
	if err != nil {
		logFailure(m.logger, "update room", err)
	}
	return room, err
}

func (m *Manager) DeleteRoom(ctx context.Context, hotelID, roomID string) error {
	err := m.svc.Rooms.Delete(ctx, hotelID, roomID)
	if err != nil {
		logFailure(m.logger, "delete room", err)
	}
	return err
}

// Bookings lists the bookings of a hotel.
func (m *Manager) Bookings(ctx context.Context, hotelID string) ([]models.Booking, error) {
	bookings, err := m.svc.Bookings.ListByHotel(ctx, hotelID)
	if err != nil {
		logFailure(m.logger, "fetch hotel bookings", err)
	}
	return bookings, err
}

// SetBookingStatus confirms or cancels a guest's booking.
func (m *Manager) SetBookingStatus(ctx context.Context, bookingID, status string) (models.Booking, error) {
	in := dto.BookingUpdate{Status: status}
	if err := in.Validate(); err != nil {
		return models.Booking{}, err
	}
	booking, err := m.svc.Bookings.Update(ctx, bookingID, in)
	if err != nil {
		logFailure(m.logger, "update booking", err)
	}
	return booking, err
}

func (m *Manager) Close() {
	m.Hotels.Close()
}
