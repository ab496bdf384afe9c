package models

// Hotel is the API representation of a property.
type Hotel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	Address     string  `json:"address"`
	ManagerID   string  `json:"managerId,omitempty"`
	Rooms       []Room  `json:"rooms,omitempty"`
}

// Room types offered by the manager dashboard.
const (
	RoomStandard = "Standard"
	RoomDeluxe   = "Deluxe"
	RoomSuite    = "Suite"
)

// Room belongs to exactly one hotel.
type Room struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotelId"`
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Capacity   int     `json:"capacity"`
}

// Review is a guest rating of a hotel.
type Review struct {
	ID      string `json:"id"`
	HotelID string `json:"hotelId"`
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
