package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hongminglow/hotel-admin/internal/dashboard"
	"github.com/hongminglow/hotel-admin/internal/gate"
	"github.com/hongminglow/hotel-admin/internal/models"
)

func (sh *shell) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "admin",
		Short:             "Platform statistics and hotel moderation",
		PersistentPreRunE: sh.gated(gate.HomeFor(models.RoleAdmin)),
	}
	hotel := &cobra.Command{Use: "hotel", Short: "Moderate a hotel"}
	hotel.AddCommand(sh.adminHotelDeleteCommand())
	cmd.AddCommand(sh.adminStatsCommand(), sh.adminHotelsCommand(), hotel)
	return cmd
}

func (sh *shell) adminStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show platform statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := dashboard.NewAdmin(sh.app.Services, sh.app.Logger)
			defer a.Close()
			st := a.Stats.Load(cmd.Context())
			if st.Err != nil {
				return fail("fetch statistics", st.Err)
			}
			s := st.Data
			users := "n/a"
			if s.TotalUsers != nil {
				users = strconv.Itoa(*s.TotalUsers)
			}
			return sh.printer(cmd).print(s,
				[]string{"METRIC", "VALUE"},
				func(row func(...string)) {
					row("users", users)
					row("hotels", strconv.Itoa(s.TotalHotels))
					row("rooms", strconv.Itoa(s.TotalRooms))
					row("bookings", strconv.Itoa(s.TotalBookings))
					row("active bookings", strconv.Itoa(s.ActiveBookings))
					row("revenue", money(s.TotalRevenue))
				})
		},
	}
}

func (sh *shell) adminHotelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hotels",
		Short: "List every hotel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hotels, err := sh.app.Services.Hotels.List(cmd.Context())
			if err != nil {
				return fail("fetch hotels", err)
			}
			return sh.printHotels(cmd, hotels...)
		},
	}
}

func (sh *shell) adminHotelDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOTEL_ID",
		Short: "Delete a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := dashboard.NewAdmin(sh.app.Services, sh.app.Logger)
			defer a.Close()
			if err := a.DeleteHotel(cmd.Context(), args[0]); err != nil {
				return fail("delete hotel", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted hotel %s.\n", args[0])
			return nil
		},
	}
}
