package apitest

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hongminglow/hotel-admin/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

type account struct {
	user         models.User
	passwordHash []byte
}

// Store is the fake API's in-memory state.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by lower-cased email
	hotels   []*models.Hotel
	rooms    []*models.Room
	bookings []*models.Booking
	reviews  []*models.Review
}

func newStore() *Store {
	return &Store{accounts: map[string]*account{}}
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) createAccount(user models.User, hash []byte) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := s.accounts[key]; ok {
		return models.User{}, ErrAlreadyExists
	}
	user.ID = newID()
	s.accounts[key] = &account{user: user, passwordHash: hash}
	return user, nil
}

func (s *Store) accountByEmail(email string) (account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return account{}, ErrNotFound
	}
	return *acc, nil
}

func (s *Store) userByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, nil
		}
	}
	return models.User{}, ErrNotFound
}

// UserCount returns the number of registered accounts.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// Hotels returns a snapshot of all hotels.
func (s *Store) Hotels() []models.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		out = append(out, *h)
	}
	return out
}

// AddHotel inserts h, assigning an id.
func (s *Store) AddHotel(h models.Hotel) models.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = newID()
	s.hotels = append(s.hotels, &h)
	return h
}

func (s *Store) hotel(id string) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hotels {
		if h.ID == id {
			out := *h
			for _, r := range s.rooms {
				if r.HotelID == id {
					out.Rooms = append(out.Rooms, *r)
				}
			}
			return out, nil
		}
	}
	return models.Hotel{}, ErrNotFound
}

func (s *Store) updateHotel(id string, fn func(*models.Hotel)) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hotels {
		if h.ID == id {
			fn(h)
			return *h, nil
		}
	}
	return models.Hotel{}, ErrNotFound
}

func (s *Store) deleteHotel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.hotels {
		if h.ID == id {
			s.hotels = append(s.hotels[:i], s.hotels[i+1:]...)
			s.rooms = filter(s.rooms, func(r *models.Room) bool { return r.HotelID != id })
			s.reviews = filter(s.reviews, func(r *models.Review) bool { return r.HotelID != id })
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) hotelExists(id string) bool {
	for _, h := range s.hotels {
		if h.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) roomsOf(hotelID string) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hotelExists(hotelID) {
		return nil, ErrNotFound
	}
	out := []models.Room{}
	for _, r := range s.rooms {
		if r.HotelID == hotelID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Store) addRoom(r models.Room) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hotelExists(r.HotelID) {
		return models.Room{}, ErrNotFound
	}
	for _, existing := range s.rooms {
		if existing.HotelID == r.HotelID && existing.RoomNumber == r.RoomNumber {
			return models.Room{}, ErrAlreadyExists
		}
	}
	r.ID = newID()
	s.rooms = append(s.rooms, &r)
	return r, nil
}

func (s *Store) updateRoom(hotelID, roomID string, fn func(*models.Room)) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.ID == roomID && r.HotelID == hotelID {
			fn(r)
			return *r, nil
		}
	}
	return models.Room{}, ErrNotFound
}

func (s *Store) deleteRoom(hotelID, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.rooms)
	s.rooms = filter(s.rooms, func(r *models.Room) bool { return !(r.ID == roomID && r.HotelID == hotelID) })
	if len(s.rooms) == before {
		return ErrNotFound
	}
	return nil
}

// AddBooking inserts b, assigning an id.
func (s *Store) AddBooking(b models.Booking) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hotelExists(b.HotelID) {
		return models.Booking{}, ErrNotFound
	}
	b.ID = newID()
	s.bookings = append(s.bookings, &b)
	return b, nil
}

func (s *Store) bookingsWhere(keep func(models.Booking) bool) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if keep(*b) {
			out = append(out, *b)
		}
	}
	return out
}

func (s *Store) booking(id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return *b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (s *Store) updateBooking(id string, fn func(*models.Booking)) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			fn(b)
			return *b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (s *Store) reviewsOf(hotelID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hotelExists(hotelID) {
		return nil, ErrNotFound
	}
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.HotelID == hotelID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Store) addReview(r models.Review) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hotelExists(r.HotelID) {
		return models.Review{}, ErrNotFound
	}
	r.ID = newID()
	s.reviews = append(s.reviews, &r)
	return r, nil
}

func (s *Store) review(hotelID, reviewID string) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == reviewID && r.HotelID == hotelID {
			return *r, nil
		}
	}
	return models.Review{}, ErrNotFound
}

func (s *Store) updateReview(hotelID, reviewID string, fn func(*models.Review)) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == reviewID && r.HotelID == hotelID {
			fn(r)
			return *r, nil
		}
	}
	return models.Review{}, ErrNotFound
}

func (s *Store) deleteReview(hotelID, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.reviews)
	s.reviews = filter(s.reviews, func(r *models.Review) bool { return !(r.ID == reviewID && r.HotelID == hotelID) })
	if len(s.reviews) == before {
		return ErrNotFound
	}
	return nil
}

func filter[T any](in []*T, keep func(*T) bool) []*T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
