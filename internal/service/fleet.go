package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
	"xeghep/internal/repository"
	"xeghep/internal/state"
)

// FleetService manages the driver and vehicle rosters.
type FleetService struct {
	store  *state.Store
	logger logrus.FieldLogger
}

// NewFleetService creates a new FleetService.
func NewFleetService(store *state.Store, logger logrus.FieldLogger) *FleetService {
	return &FleetService{store: store, logger: logger}
}

// AddDriver registers a driver.
func (s *FleetService) AddDriver(ctx context.Context, name, phone string) (*domain.Driver, error) {
	if blank(name, phone) {
		return nil, ErrInvalidDriver
	}

	driver := domain.Driver{
		ID:    uuid.New().String(),
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		tx.AddDriver(driver)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// DeleteDriver removes a driver from the roster. Bookings and requests
// keep the driver's name and phone they were made with.
func (s *FleetService) DeleteDriver(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		if !tx.RemoveDriver(driverID) {
			return fmt.Errorf("driver %s: %w", driverID, repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("driver_id", driverID).Info("driver removed")
	return nil
}

// ListDrivers returns the driver roster.
func (s *FleetService) ListDrivers(ctx context.Context) []domain.Driver {
	return s.store.Drivers()
}

// AddVehicle registers a vehicle. An empty type label defaults to
// domain.DefaultVehicleType.
func (s *FleetService) AddVehicle(ctx context.Context, model, vehicleType, licensePlate string) (*domain.Vehicle, error) {
	if blank(model, licensePlate) {
		return nil, ErrInvalidVehicle
	}
	if strings.TrimSpace(vehicleType) == "" {
		vehicleType = domain.DefaultVehicleType
	}

	vehicle := domain.Vehicle{
		ID:           uuid.New().String(),
		Model:        strings.TrimSpace(model),
		Type:         strings.TrimSpace(vehicleType),
		LicensePlate: strings.TrimSpace(licensePlate),
	}
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		tx.AddVehicle(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// DeleteVehicle removes a vehicle from the roster.
func (s *FleetService) DeleteVehicle(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		if !tx.RemoveVehicle(vehicleID) {
			return fmt.Errorf("vehicle %s: %w", vehicleID, repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("vehicle_id", vehicleID).Info("vehicle removed")
	return nil
}

// ListVehicles returns the vehicle roster.
func (s *FleetService) ListVehicles(ctx context.Context) []domain.Vehicle {
	return s.store.Vehicles()
}
