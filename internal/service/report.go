package service

import (
	"context"
	"time"

	"xeghep/internal/domain"
	"xeghep/internal/observability"
	"xeghep/internal/state"
)

// ComputeReport aggregates the bookings and requests dated inside r.
// Bookings are dated by their ride snapshot, requests by their own date.
// Revenue, seats and average price count confirmed bookings only; the
// cancel rate is a percentage of all in-range bookings. Empty inputs give
// zero values, never NaN.
func ComputeReport(bookings []domain.Booking, requests []domain.RideRequest, r domain.DateRange) domain.Stats {
	stats := domain.Stats{Range: r, Bookings: []domain.Booking{}}

	cancelled := 0
	for _, b := range bookings {
		if !r.Contains(b.RideSnapshot.Date) {
			continue
		}
		stats.Bookings = append(stats.Bookings, b)

		switch b.Status {
		case domain.BookingStatusConfirmed:
			stats.Revenue += b.Amount()
			stats.TotalConfirmedSeats += b.Seats
		case domain.BookingStatusCancelled:
			cancelled++
		}
	}
	stats.TotalBookings = len(stats.Bookings)

	if stats.TotalConfirmedSeats > 0 {
		stats.AveragePrice = float64(stats.Revenue) / float64(stats.TotalConfirmedSeats)
	}
	if stats.TotalBookings > 0 {
		stats.CancelRate = float64(cancelled) / float64(stats.TotalBookings) * 100
	}

	for _, req := range requests {
		if r.Contains(req.Date) {
			stats.TotalRequests++
		}
	}

	return stats
}

// ReportService produces admin reports from the current state.
type ReportService struct {
	store *state.Store
	clock func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(store *state.Store) *ReportService {
	return &ReportService{store: store, clock: time.Now}
}

// DefaultRange is the first of the current month through today.
func (s *ReportService) DefaultRange() domain.DateRange {
	return domain.MonthToDate(s.clock())
}

// Report recomputes the statistics for r from scratch.
func (s *ReportService) Report(ctx context.Context, r domain.DateRange) (*domain.Stats, error) {
	if r.Start.IsZero() || r.End.IsZero() || r.Start.After(r.End) {
		return nil, ErrInvalidDateRange
	}

	start := time.Now()
	defer func() { observability.ReportLatency.Observe(time.Since(start).Seconds()) }()

	snap := s.store.Snapshot()
	stats := ComputeReport(snap.Bookings, snap.Requests, r)
	stats.TotalDrivers = len(snap.Drivers)
	stats.TotalVehicles = len(snap.Vehicles)

	return &stats, nil
}

// ParseDateRange builds a range from YYYY-MM-DD strings in loc. Empty
// values fall back to the corresponding end of def.
func ParseDateRange(start, end string, def domain.DateRange, loc *time.Location) (domain.DateRange, error) {
	r := def
	if start != "" {
		t, err := time.ParseInLocation(domain.DateLayout, start, loc)
		if err != nil {
			return r, ErrInvalidDateRange
		}
		r.Start = t
	}
	if end != "" {
		t, err := time.ParseInLocation(domain.DateLayout, end, loc)
		if err != nil {
			return r, ErrInvalidDateRange
		}
		r.End = t
	}
	if r.Start.After(r.End) {
		return r, ErrInvalidDateRange
	}
	return r, nil
}
