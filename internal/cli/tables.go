package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hongminglow/hotel-admin/internal/models"
)

func (sh *shell) printHotels(cmd *cobra.Command, hotels ...models.Hotel) error {
	return sh.printer(cmd).print(hotels,
		[]string{"ID", "NAME", "ADDRESS", "BASE PRICE", "ROOMS"},
		func(row func(...string)) {
			for _, h := range hotels {
				row(h.ID, h.Name, h.Address, money(h.BasePrice), strconv.Itoa(len(h.Rooms)))
			}
		})
}

func (sh *shell) printRooms(cmd *cobra.Command, rooms ...models.Room) error {
	return sh.printer(cmd).print(rooms,
		[]string{"ID", "NUMBER", "TYPE", "PRICE", "CAPACITY"},
		func(row func(...string)) {
			for _, r := range rooms {
				row(r.ID, r.RoomNumber, r.Type, money(r.Price), strconv.Itoa(r.Capacity))
			}
		})
}

func (sh *shell) printBookings(cmd *cobra.Command, bookings ...models.Booking) error {
	return sh.printer(cmd).print(bookings,
		[]string{"ID", "HOTEL", "ROOM", "CHECK-IN", "CHECK-OUT", "STATUS", "TOTAL"},
		func(row func(...string)) {
			for _, b := range bookings {
				room := b.RoomID
				if room == "" {
					room = "-"
				}
				row(b.ID, b.HotelID, room, b.CheckInDate, b.CheckOutDate, b.Status, money(b.TotalPrice))
			}
		})
}

func (sh *shell) printReviews(cmd *cobra.Command, reviews ...models.Review) error {
	return sh.printer(cmd).print(reviews,
		[]string{"ID", "USER", "RATING", "COMMENT"},
		func(row func(...string)) {
			for _, r := range reviews {
				row(r.ID, r.UserID, strconv.Itoa(r.Rating), r.Comment)
			}
		})
}
