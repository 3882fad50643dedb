package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
	"xeghep/internal/observability"
	"xeghep/internal/repository"
	"xeghep/internal/state"
)

// IntentParser turns free text into search filters. Implementations must
// return an empty filter, never an error, when they cannot help.
type IntentParser interface {
	Parse(ctx context.Context, query string) domain.SearchFilters
}

// RideService handles posting and browsing seat-shareable rides.
type RideService struct {
	store  *state.Store
	parser IntentParser
	logger logrus.FieldLogger
}

// NewRideService creates a new RideService. parser may be nil, in which
// case free-text search returns the unfiltered list.
func NewRideService(store *state.Store, parser IntentParser, logger logrus.FieldLogger) *RideService {
	return &RideService{
		store:  store,
		parser: parser,
		logger: logger,
	}
}

// PostRideRequest contains the parameters for posting a ride. DriverID and
// VehicleID, when set, fill the driver and car fields from the roster.
type PostRideRequest struct {
	DriverID       string
	VehicleID      string
	DriverName     string
	DriverPhone    string
	Origin         string
	Destination    string
	Date           string
	Time           string
	Price          int64
	SeatsAvailable *int
	TotalSeats     *int
	CarModel       string
	LicensePlate   string
	Type           domain.RideType
	Description    string
}

// PostRide publishes a new ride with the initial driver rating.
func (s *RideService) PostRide(ctx context.Context, req PostRideRequest) (*domain.Ride, error) {
	rideType := req.Type
	if rideType == "" {
		rideType = domain.RideTypeShared
	}
	if !rideType.Valid() {
		return nil, ErrInvalidRideType
	}
	if blank(req.Origin, req.Destination) {
		return nil, ErrInvalidRoute
	}
	if !validSchedule(req.Date, req.Time) {
		return nil, ErrInvalidSchedule
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	var ride domain.Ride
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		ride = domain.Ride{
			ID:           uuid.New().String(),
			DriverName:   strings.TrimSpace(req.DriverName),
			DriverPhone:  strings.TrimSpace(req.DriverPhone),
			DriverRating: domain.InitialDriverRating,
			Origin:       strings.TrimSpace(req.Origin),
			Destination:  strings.TrimSpace(req.Destination),
			Date:         req.Date,
			Time:         req.Time,
			Price:        req.Price,
			TotalSeats:   4,
			CarModel:     strings.TrimSpace(req.CarModel),
			LicensePlate: strings.TrimSpace(req.LicensePlate),
			Type:         rideType,
			Description:  strings.TrimSpace(req.Description),
		}
		ride.SeatsAvailable = ride.TotalSeats - 1

		if req.DriverID != "" {
			driver, ok := tx.Driver(req.DriverID)
			if !ok {
				return fmt.Errorf("driver %s: %w", req.DriverID, repository.ErrNotFound)
			}
			ride.DriverName, ride.DriverPhone = driver.Name, driver.Phone
		}
		if req.VehicleID != "" {
			vehicle, ok := tx.Vehicle(req.VehicleID)
			if !ok {
				return fmt.Errorf("vehicle %s: %w", req.VehicleID, repository.ErrNotFound)
			}
			ride.CarModel, ride.LicensePlate = vehicle.Model, vehicle.LicensePlate
			ride.TotalSeats = vehicle.Capacity()
			ride.SeatsAvailable = max(1, ride.TotalSeats-1)
		}
		if req.TotalSeats != nil {
			ride.TotalSeats = *req.TotalSeats
			ride.SeatsAvailable = max(1, ride.TotalSeats-1)
		}
		if req.SeatsAvailable != nil {
			ride.SeatsAvailable = *req.SeatsAvailable
		}

		if blank(ride.DriverName, ride.DriverPhone) {
			return ErrInvalidDriver
		}
		if ride.TotalSeats < 1 || ride.SeatsAvailable < 0 || ride.SeatsAvailable > ride.TotalSeats {
			return ErrInvalidSeatCount
		}

		tx.AddRide(ride)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RidesPosted.Inc()
	s.logger.WithFields(logrus.Fields{
		"ride_id": ride.ID,
		"route":   ride.Origin + " -> " + ride.Destination,
		"seats":   ride.SeatsAvailable,
	}).Info("ride posted")

	return &ride, nil
}

// GetRide retrieves a posted ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	for _, r := range s.store.Rides() {
		if r.ID == rideID {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("ride %s: %w", rideID, repository.ErrNotFound)
}

// ListRides returns every posted ride, including fully booked ones.
func (s *RideService) ListRides(ctx context.Context) []domain.Ride {
	return s.store.Rides()
}

// ListAvailable returns rides that still have seats, optionally of one
// type, ordered by departure.
func (s *RideService) ListAvailable(ctx context.Context, rideType domain.RideType) []domain.Ride {
	return s.Search(ctx, domain.SearchFilters{Type: rideType})
}

// Search returns the available rides matching f, ordered by departure.
// Origin and destination match case-insensitively as substrings, date and
// type exactly, and time keeps rides leaving at or after it.
func (s *RideService) Search(ctx context.Context, f domain.SearchFilters) []domain.Ride {
	var out []domain.Ride
	for _, r := range s.store.Rides() {
		if r.FullyBooked() || !matches(r, f) {
			continue
		}
		out = append(out, r)
	}
	sortByDeparture(out)
	return out
}

// SearchText extracts filters from free text and runs Search with them.
// When nothing can be extracted the unfiltered available list is returned.
func (s *RideService) SearchText(ctx context.Context, query string) ([]domain.Ride, domain.SearchFilters) {
	var f domain.SearchFilters
	if s.parser != nil && strings.TrimSpace(query) != "" {
		f = s.parser.Parse(ctx, query)
	}
	if f.Type != "" && !f.Type.Valid() {
		s.logger.WithField("type", f.Type).Debug("dropping unknown ride type from parsed filters")
		f.Type = ""
	}
	f.Date = s.normalize("date", f.Date, domain.DateLayout)
	f.Time = s.normalize("time", f.Time, domain.TimeLayout)
	return s.Search(ctx, f), f
}

// normalize rewrites a parsed date or time in its canonical layout so it
// compares correctly with stored values. Values that do not parse are
// dropped.
func (s *RideService) normalize(field, value, layout string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		s.logger.WithField(field, value).Debug("dropping unparseable value from parsed filters")
		return ""
	}
	return t.Format(layout)
}

func matches(r domain.Ride, f domain.SearchFilters) bool {
	if f.Origin != "" && !containsFold(r.Origin, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(r.Destination, f.Destination) {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Time != "" && r.Time < f.Time {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

func sortByDeparture(rides []domain.Ride) {
	sort.SliceStable(rides, func(i, j int) bool {
		a, okA := rides[i].Departure(time.Local)
		b, okB := rides[j].Departure(time.Local)
		if okA != okB {
			return okA
		}
		return a.Before(b)
	})
}
