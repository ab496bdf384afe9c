package cli

import (
	"github.com/spf13/cobra"

	"github.com/hongminglow/hotel-admin/internal/dashboard"
	"github.com/hongminglow/hotel-admin/internal/gate"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

func (sh *shell) guestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "guest",
		Short:             "Browse hotels and manage your bookings",
		PersistentPreRunE: sh.gated(gate.HomeFor(models.RoleGuest)),
	}
	cmd.AddCommand(
		sh.guestHotelsCommand(),
		sh.guestBookCommand(),
		sh.guestBookingsCommand(),
		sh.guestCancelCommand(),
		sh.guestReviewsCommand(),
		sh.guestReviewCommand(),
	)
	return cmd
}

func (sh *shell) guestDashboard() *dashboard.Guest {
	return dashboard.NewGuest(sh.app.Services, sh.app.Logger)
}

func (sh *shell) guestHotelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hotels",
		Short: "List hotels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := sh.guestDashboard()
			defer g.Close()
			st := g.Hotels.Load(cmd.Context())
			if st.Err != nil {
				return fail("fetch hotels", st.Err)
			}
			return sh.printHotels(cmd, st.Data...)
		},
	}
}

func (sh *shell) guestBookCommand() *cobra.Command {
	var in dto.BookingInput
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a stay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := sh.guestDashboard()
			defer g.Close()
			booking, err := g.Book(cmd.Context(), in)
			if err != nil {
				return fail("create booking", err)
			}
			return sh.printBookings(cmd, booking)
		},
	}
	cmd.Flags().StringVar(&in.HotelID, "hotel", "", "hotel id")
	cmd.Flags().StringVar(&in.RoomID, "room", "", "room id (optional)")
	cmd.Flags().StringVar(&in.CheckInDate, "check-in", "", "check-in date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.CheckOutDate, "check-out", "", "check-out date, YYYY-MM-DD")
	return cmd
}

func (sh *shell) guestBookingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := sh.guestDashboard()
			defer g.Close()
			st := g.Bookings.Load(cmd.Context())
			if st.Err != nil {
				return fail("fetch bookings", st.Err)
			}
			return sh.printBookings(cmd, st.Data...)
		},
	}
}

func (sh *shell) guestCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel BOOKING_ID",
		Short: "Cancel one of your bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := sh.guestDashboard()
			defer g.Close()
			booking, err := g.Cancel(cmd.Context(), args[0])
			if err != nil {
				return fail("cancel booking", err)
			}
			return sh.printBookings(cmd, booking)
		},
	}
}

func (sh *shell) guestReviewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews HOTEL_ID",
		Short: "List the reviews of a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := sh.guestDashboard()
			defer g.Close()
			reviews, err := g.Reviews(cmd.Context(), args[0])
			if err != nil {
				return fail("fetch reviews", err)
			}
			return sh.printReviews(cmd, reviews...)
		},
	}
}

func (sh *shell) guestReviewCommand() *cobra.Command {
	var in dto.ReviewInput
	cmd := &cobra.Command{
		Use:   "review HOTEL_ID",
		Short: "Rate a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := sh.guestDashboard()
			defer g.Close()
			review, err := g.Review(cmd.Context(), args[0], in)
			if err != nil {
				return fail("submit review", err)
			}
			return sh.printReviews(cmd, review)
		},
	}
	cmd.Flags().IntVar(&in.Rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&in.Comment, "comment", "", "review text")
	return cmd
}
