package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/orcana-hub/backoffice/internal/storage"
)

// DashboardOverview aggregates the figures the back-office landing page
// shows at a glance.
type DashboardOverview struct {
	// NextBooking is the earliest booking still waiting for confirmation,
	// or nil when the agenda is clear.
	NextBooking    *storage.BookingDetail   `json:"next_booking"`
	PendingQuotes  int                      `json:"pending_quotes"`
	TodaysBookings []*storage.BookingDetail `json:"todays_bookings"`
	LowStockAlerts []*storage.Material      `json:"low_stock_alerts"`
}

// MonthlyRevenue is the completed-booking revenue of one calendar month.
type MonthlyRevenue struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// DashboardService computes the studio's operational overview.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
	// Revenue returns the completed-booking revenue of the last twelve
	// months, oldest month first. The current month is included up to today.
	Revenue(ctx context.Context) ([]MonthlyRevenue, error)
}

type dashboardService struct {
	bookings  storage.BookingStore
	quotes    storage.QuoteStore
	inventory storage.InventoryStore
	loc       *time.Location
	logger    *slog.Logger
	now       func() time.Time
}

// NewDashboardService returns a DashboardService reading from the given
// stores. Day and month boundaries are computed in loc.
func NewDashboardService(
	bookings storage.BookingStore,
	quotes storage.QuoteStore,
	inventory storage.InventoryStore,
	loc *time.Location,
	logger *slog.Logger,
) DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{
		bookings:  bookings,
		quotes:    quotes,
		inventory: inventory,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	next, err := s.bookings.FirstByStatus(ctx, storage.BookingStatusWaiting)
	if err != nil {
		return nil, fmt.Errorf("finding next booking: %w", err)
	}

	pending, err := s.quotes.CountByStatus(ctx, storage.QuoteStatusWaiting)
	if err != nil {
		return nil, fmt.Errorf("counting pending quotes: %w", err)
	}

	today := s.now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, s.loc)
	todays, err := s.bookings.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing today's bookings: %w", err)
	}
	if todays == nil {
		todays = []*storage.BookingDetail{}
	}

	alerts, err := s.inventory.ListBelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing low-stock materials: %w", err)
	}
	if alerts == nil {
		alerts = []*storage.Material{}
	}

	return &DashboardOverview{
		NextBooking:    next,
		PendingQuotes:  pending,
		TodaysBookings: todays,
		LowStockAlerts: alerts,
	}, nil
}

func (s *dashboardService) Revenue(ctx context.Context) ([]MonthlyRevenue, error) {
	today := s.now().In(s.loc)

	months := make([]MonthlyRevenue, 0, 12)
	for i := 11; i >= 0; i-- {
		ref := today.AddDate(0, -i, 0)
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, s.loc)
		end := time.Date(ref.Year(), ref.Month(), ref.Day(), 23, 59, 59, 0, s.loc)

		total, err := s.bookings.RevenueBetween(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("summing revenue for %s: %w", start.Format("2006-01"), err)
		}
		months = append(months, MonthlyRevenue{
			Month: start.Format("2006-01"),
			Total: total,
		})
	}
	return months, nil
}
