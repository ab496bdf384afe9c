package dashboard

import (
	"context"
	"log/slog"

	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
	"github.com/hongminglow/hotel-admin/internal/resource"
	"github.com/hongminglow/hotel-admin/internal/services"
)

// Guest browses hotels and manages the caller's own bookings and reviews.
type Guest struct {
	svc    *services.Services
	logger *slog.Logger

	Hotels   *resource.Remote[[]models.Hotel]
	Bookings *resource.Remote[[]models.Booking]
}

func NewGuest(svc *services.Services, logger *slog.Logger) *Guest {
	logger = discardLogger(logger)
	return &Guest{
		svc:      svc,
		logger:   logger,
		Hotels:   resource.New("hotels", svc.Hotels.List, logger),
		Bookings: resource.New("bookings", svc.Bookings.ListMine, logger),
	}
}

// Book validates the stay before sending it, then refreshes the booking list.
func (g *Guest) Book(ctx context.Context, in dto.BookingInput) (models.Booking, error) {
	if err := in.Validate(); err != nil {
		return models.Booking{}, err
	}
	booking, err := g.svc.Bookings.Create(ctx, in)
	if err != nil {
		logFailure(g.logger, "create booking", err)
		return models.Booking{}, err
	}
	g.Bookings.Load(ctx)
	return booking, nil
}

// Cancel cancels one of the caller's bookings and refreshes the list from the server.
func (g *Guest) Cancel(ctx context.Context, bookingID string) (models.Booking, error) {
	booking, err := g.svc.Bookings.Cancel(ctx, bookingID)
	if err != nil {
		logFailure(g.logger, "cancel booking", err)
		return models.Booking{}, err
	}
	g.Bookings.Load(ctx)
	return booking, nil
}

// Reviews lists the reviews of a hotel.
func (g *Guest) Reviews(ctx context.Context, hotelID string) ([]models.Review, error) {
	reviews, err := g.svc.Reviews.ListByHotel(ctx, hotelID)
	if err != nil {
		logFailure(g.logger, "fetch reviews", err)
	}
	return reviews, err
}

// Review posts a rating for a hotel.
func (g *Guest) Review(ctx context.Context, hotelID string, in dto.ReviewInput) (models.Review, error) {
	if err := in.Validate(); err != nil {
		return models.Review{}, err
	}
	review, err := g.svc.Reviews.Create(ctx, hotelID, in)
	if err != nil {
		logFailure(g.logger, "create review", err)
	}
	return review, err
}

// DeleteReview removes one of the caller's reviews.
func (g *Guest) DeleteReview(ctx context.Context, hotelID, reviewID string) error {
	err := g.svc.Reviews.Delete(ctx, hotelID, reviewID)
	if err != nil {
		logFailure(g.logger, "delete review", err)
	}
	return err
}

// Close detaches the dashboard; pending loads are discarded.
func (g *Guest) Close() {
	g.Hotels.Close()
	g.Bookings.Close()
}
