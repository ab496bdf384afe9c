package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hongminglow/hotel-admin/internal/dashboard"
	"github.com/hongminglow/hotel-admin/internal/gate"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

func (sh *shell) managerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "manager",
		Short:             "Manage hotels, rooms, and their bookings",
		PersistentPreRunE: sh.gated(gate.HomeFor(models.RoleHotelManager)),
	}

	hotel := &cobra.Command{Use: "hotel", Short: "Create, update, or delete a hotel"}
	hotel.AddCommand(sh.hotelCreateCommand(), sh.hotelUpdateCommand(), sh.hotelDeleteCommand())

	room := &cobra.Command{Use: "room", Short: "Add, update, or delete a room"}
	room.AddCommand(sh.roomAddCommand(), sh.roomUpdateCommand(), sh.roomDeleteCommand())

	booking := &cobra.Command{Use: "booking", Short: "Act on a guest booking"}
	booking.AddCommand(sh.bookingStatusCommand())

	cmd.AddCommand(
		sh.managerHotelsCommand(),
		hotel,
		sh.managerRoomsCommand(),
		room,
		sh.managerBookingsCommand(),
		booking,
	)
	return cmd
}

func (sh *shell) managerDashboard() *dashboard.Manager {
	return dashboard.NewManager(sh.app.Services, sh.app.Logger)
}

func (sh *shell) managerHotelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hotels",
		Short: "List hotels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			st := m.Hotels.Load(cmd.Context())
			if st.Err != nil {
				return fail("fetch hotels", st.Err)
			}
			return sh.printHotels(cmd, st.Data...)
		},
	}
}

func hotelFlags(cmd *cobra.Command, in *dto.HotelInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "hotel name")
	cmd.Flags().StringVar(&in.Description, "description", "", "hotel description")
	cmd.Flags().Float64Var(&in.BasePrice, "price", 0, "base price per night")
	cmd.Flags().StringVar(&in.Address, "address", "", "street address")
}

func (sh *shell) hotelCreateCommand() *cobra.Command {
	var in dto.HotelInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a hotel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			saved, err := m.SaveHotel(cmd.Context(), in)
			if err != nil {
				return fail("save hotel", err)
			}
			return sh.printHotels(cmd, saved)
		},
	}
	hotelFlags(cmd, &in)
	return cmd
}

// hotelUpdateCommand edits an existing hotel: flags left unset keep the
// current values, as the edit form pre-fills them.
func (sh *shell) hotelUpdateCommand() *cobra.Command {
	var flags dto.HotelInput
	cmd := &cobra.Command{
		Use:   "update HOTEL_ID",
		Short: "Edit a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := sh.app.Services.Hotels.Get(ctx, args[0])
			if err != nil {
				return fail("fetch hotel", err)
			}

			in := dto.HotelInputFrom(current)
			set := cmd.Flags().Changed
			if set("name") {
				in.Name = flags.Name
			}
			if set("description") {
				in.Description = flags.Description
			}
			if set("price") {
				in.BasePrice = flags.BasePrice
			}
			if set("address") {
				in.Address = flags.Address
			}

			m := sh.managerDashboard()
			defer m.Close()
			m.Select(&current)
			saved, err := m.SaveHotel(ctx, in)
			if err != nil {
				return fail("save hotel", err)
			}
			return sh.printHotels(cmd, saved)
		},
	}
	hotelFlags(cmd, &flags)
	return cmd
}

func (sh *shell) hotelDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOTEL_ID",
		Short: "Delete a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			if err := m.DeleteHotel(cmd.Context(), args[0]); err != nil {
				return fail("delete hotel", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted hotel %s.\n", args[0])
			return nil
		},
	}
}

func (sh *shell) managerRoomsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms HOTEL_ID",
		Short: "List the rooms of a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			rooms, err := m.Rooms(cmd.Context(), args[0])
			if err != nil {
				return fail("fetch rooms", err)
			}
			return sh.printRooms(cmd, rooms...)
		},
	}
}

func roomFlags(cmd *cobra.Command, in *dto.RoomInput) {
	def := dto.NewRoomInput()
	cmd.Flags().StringVar(&in.RoomNumber, "number", "", "room number")
	cmd.Flags().StringVar(&in.Type, "type", def.Type, "Standard, Deluxe, or Suite")
	cmd.Flags().Float64Var(&in.Price, "price", def.Price, "price per night")
	cmd.Flags().IntVar(&in.Capacity, "capacity", def.Capacity, "number of guests")
}

func (sh *shell) roomAddCommand() *cobra.Command {
	var in dto.RoomInput
	cmd := &cobra.Command{
		Use:   "add HOTEL_ID",
		Short: "Add a room to a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			room, err := m.AddRoom(cmd.Context(), args[0], in)
			if err != nil {
				return fail("add room", err)
			}
			return sh.printRooms(cmd, room)
		},
	}
	roomFlags(cmd, &in)
	return cmd
}

func (sh *shell) roomUpdateCommand() *cobra.Command {
	var flags dto.RoomInput
	cmd := &cobra.Command{
		Use:   "update HOTEL_ID ROOM_ID",
		Short: "Edit a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hotelID, roomID := args[0], args[1]

			m := sh.managerDashboard()
			defer m.Close()
			rooms, err := m.Rooms(ctx, hotelID)
			if err != nil {
				return fail("fetch rooms", err)
			}
			var in dto.RoomInput
			found := false
			for _, r := range rooms {
				if r.ID == roomID {
					in = dto.RoomInput{RoomNumber: r.RoomNumber, Type: r.Type, Price: r.Price, Capacity: r.Capacity}
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("room %s not found in hotel %s", roomID, hotelID)
			}

			set := cmd.Flags().Changed
			if set("number") {
				in.RoomNumber = flags.RoomNumber
			}
			if set("type") {
				in.Type = flags.Type
			}
			if set("price") {
				in.Price = flags.Price
			}
			if set("capacity") {
				in.Capacity = flags.Capacity
			}

			room, err := m.UpdateRoom(ctx, hotelID, roomID, in)
			if err != nil {
				return fail("update room", err)
			}
			return sh.printRooms(cmd, room)
		},
	}
	roomFlags(cmd, &flags)
	return cmd
}

func (sh *shell) roomDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOTEL_ID ROOM_ID",
		Short: "Delete a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			if err := m.DeleteRoom(cmd.Context(), args[0], args[1]); err != nil {
				return fail("delete room", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted room %s.\n", args[1])
			return nil
		},
	}
}

func (sh *shell) managerBookingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings HOTEL_ID",
		Short: "List the bookings of a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			bookings, err := m.Bookings(cmd.Context(), args[0])
			if err != nil {
				return fail("fetch hotel bookings", err)
			}
			return sh.printBookings(cmd, bookings...)
		},
	}
}

func (sh *shell) bookingStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status BOOKING_ID STATUS",
		Short: "Set a booking to pending, confirmed, or cancelled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sh.managerDashboard()
			defer m.Close()
			booking, err := m.SetBookingStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return fail("update booking", err)
			}
			return sh.printBookings(cmd, booking)
		},
	}
}
