package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/resource"
	"github.com/hongminglow/hotel-admin/internal/services"
)

// statsConcurrency bounds the per-hotel booking fetches.
const statsConcurrency = 4

// Stats are aggregated from live API data. TotalUsers is nil because the API
// exposes no user listing; it is reported as unavailable, never guessed.
type Stats struct {
	TotalUsers     *int    `json:"totalUsers" yaml:"totalUsers"`
	TotalHotels    int     `json:"totalHotels" yaml:"totalHotels"`
	TotalRooms     int     `json:"totalRooms" yaml:"totalRooms"`
	TotalBookings  int     `json:"totalBookings" yaml:"totalBookings"`
	ActiveBookings int     `json:"activeBookings" yaml:"activeBookings"`
	TotalRevenue   float64 `json:"totalRevenue" yaml:"totalRevenue"`
}

// Admin shows platform-wide statistics and can remove hotels.
type Admin struct {
	svc    *services.Services
	logger *slog.Logger

	Stats *resource.Remote[Stats]
}

func NewAdmin(svc *services.Services, logger *slog.Logger) *Admin {
	logger = discardLogger(logger)
	a := &Admin{svc: svc, logger: logger}
	a.Stats = resource.New("admin stats", a.computeStats, logger)
	return a
}

// DeleteHotel removes a hotel and recomputes the statistics.
func (a *Admin) DeleteHotel(ctx context.Context, hotelID string) error {
	if err := a.svc.Hotels.Delete(ctx, hotelID); err != nil {
		logFailure(a.logger, "delete hotel", err)
		return err
	}
	a.Stats.Load(ctx)
	return nil
}

func (a *Admin) Close() {
	a.Stats.Close()
}

func (a *Admin) computeStats(ctx context.Context) (Stats, error) {
	hotels, err := a.svc.Hotels.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalHotels: len(hotels)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsConcurrency)
	for _, hotel := range hotels {
		g.Go(func() error {
			rooms, err := a.svc.Rooms.ListByHotel(gctx, hotel.ID)
			if err != nil {
				return err
			}
			bookings, err := a.svc.Bookings.ListByHotel(gctx, hotel.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			stats.TotalRooms += len(rooms)
			addBookings(&stats, bookings)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func addBookings(stats *Stats, bookings []models.Booking) {
	for _, b := range bookings {
		stats.TotalBookings++
		if b.Cancelled() {
			continue
		}
		stats.ActiveBookings++
		stats.TotalRevenue += b.TotalPrice
	}
}
