package ferry

import (
	"context"
	"errors"
	"fmt"
)

// Service contains the reservation workflow over the four entity stores.
type Service struct {
	vessels      VesselStore
	sailings     SailingStore
	reservations ReservationStore
	vehicles     VehicleStore
	nowFn        func() int64
	logger       OperationLogger
}

// NewService wires a Service.
func NewService(vessels VesselStore, sailings SailingStore, reservations ReservationStore, vehicles VehicleStore, now func() int64, options ...ServiceOption) (*Service, error) {
	if vessels == nil {
		return nil, fmt.Errorf("%w: vessel store dependency is nil", ErrInvalidServiceConfig)
	}
	if sailings == nil {
		return nil, fmt.Errorf("%w: sailing store dependency is nil", ErrInvalidServiceConfig)
	}
	if reservations == nil {
		return nil, fmt.Errorf("%w: reservation store dependency is nil", ErrInvalidServiceConfig)
	}
	if vehicles == nil {
		return nil, fmt.Errorf("%w: vehicle store dependency is nil", ErrInvalidServiceConfig)
	}
	if now == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	service := &Service{
		vessels:      vessels,
		sailings:     sailings,
		reservations: reservations,
		vehicles:     vehicles,
		nowFn:        now,
	}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	return service, nil
}

// CreateVessel registers a new vessel with its total lane capacities.
func (service *Service) CreateVessel(ctx context.Context, name VesselName, lowCapacityMeters int, highCapacityMeters int) (Vessel, error) {
	vessel, operationError := func() (Vessel, error) {
		_, err := service.vessels.VesselByName(ctx, name)
		if err == nil {
			return Vessel{}, ErrVesselExists
		}
		if !errors.Is(err, ErrVesselNotFound) {
			return Vessel{}, err
		}
		vessel, err := NewVessel(name, lowCapacityMeters, highCapacityMeters)
		if err != nil {
			return Vessel{}, err
		}
		if err := service.vessels.AddVessel(ctx, vessel); err != nil {
			return Vessel{}, err
		}
		return vessel, nil
	}()
	service.logOperation(ctx, OperationLog{
		Operation:  operationCreateVessel,
		VesselName: name,
		Error:      operationError,
	})
	return vessel, operationError
}

// CreateSailing schedules a departure on an existing vessel, seeding the
// remaining lane lengths from the vessel's total capacities.
func (service *Service) CreateSailing(ctx context.Context, vesselName VesselName, terminal string, date string, hour string) (Sailing, error) {
	sailing, operationError := func() (Sailing, error) {
		vessel, err := service.vessels.VesselByName(ctx, vesselName)
		if err != nil {
			return Sailing{}, err
		}
		id, err := MakeSailingID(terminal, date, hour)
		if err != nil {
			return Sailing{}, err
		}
		_, err = service.sailings.SailingByID(ctx, id)
		if err == nil {
			return Sailing{}, ErrSailingExists
		}
		if !errors.Is(err, ErrSailingNotFound) {
			return Sailing{}, err
		}
		sailing := Sailing{
			ID:                  id,
			VesselName:          vessel.Name,
			LowRemainingMeters:  float64(vessel.LowCapacityMeters),
			HighRemainingMeters: float64(vessel.HighCapacityMeters),
			ReservationsCount:   0,
		}
		if err := service.sailings.AddSailing(ctx, sailing); err != nil {
			return Sailing{}, err
		}
		return sailing, nil
	}()
	service.logOperation(ctx, OperationLog{
		Operation:  operationCreateSailing,
		VesselName: vesselName,
		SailingID:  sailing.ID,
		Error:      operationError,
	})
	return sailing, operationError
}

// DeleteSailing removes a sailing and every reservation booked against it.
// Reservations go first so none is left referencing a deleted sailing.
func (service *Service) DeleteSailing(ctx context.Context, id SailingID) error {
	operationError := func() error {
		if _, err := service.sailings.SailingByID(ctx, id); err != nil {
			return err
		}
		if err := service.reservations.DeleteReservationsForSailing(ctx, id); err != nil {
			return err
		}
		return service.sailings.DeleteSailing(ctx, id)
	}()
	service.logOperation(ctx, OperationLog{
		Operation: operationDeleteSailing,
		SailingID: id,
		Error:     operationError,
	})
	return operationError
}

// CreateReservation books a registered vehicle onto a sailing, using the
// dimensions and phone stored in the vehicle directory.
func (service *Service) CreateReservation(ctx context.Context, plate LicensePlate, sailingID SailingID) (Reservation, error) {
	vehicle, err := service.vehicles.VehicleByLicensePlate(ctx, plate)
	if err != nil {
		service.logOperation(ctx, OperationLog{
			Operation:    operationCreateReservation,
			LicensePlate: plate,
			SailingID:    sailingID,
			Error:        err,
		})
		return Reservation{}, err
	}
	return service.bookReservation(ctx, plate, sailingID, vehicle.Dimensions, vehicle.Phone)
}

// CreateReservationWithVehicle books an unregistered vehicle onto a sailing
// and records it in the vehicle directory for reuse. The directory append is
// best effort: the booking stands even if it fails.
func (service *Service) CreateReservationWithVehicle(ctx context.Context, plate LicensePlate, sailingID SailingID, dimensions VehicleDimensions, phone Phone) (Reservation, error) {
	reservation, err := service.bookReservation(ctx, plate, sailingID, dimensions, phone)
	if err != nil {
		return Reservation{}, err
	}
	vehicle := Vehicle{LicensePlate: plate, Phone: phone, Dimensions: dimensions}
	if directoryErr := service.vehicles.AddVehicle(ctx, vehicle); directoryErr != nil {
		service.logOperation(ctx, OperationLog{
			Operation:    operationCreateReservation,
			LicensePlate: plate,
			SailingID:    sailingID,
			Status:       operationStatusOK,
			Error:        WrapError(operationCreateReservation, errorSubjectVehicle, "directory_append", directoryErr),
		})
	}
	return reservation, nil
}

func (service *Service) bookReservation(ctx context.Context, plate LicensePlate, sailingID SailingID, dimensions VehicleDimensions, phone Phone) (Reservation, error) {
	var assignedLane Lane
	reservation, operationError := func() (Reservation, error) {
		sailing, err := service.sailings.SailingByID(ctx, sailingID)
		if err != nil {
			return Reservation{}, err
		}
		id, err := MakeReservationID(plate, sailingID)
		if err != nil {
			return Reservation{}, err
		}
		_, err = service.reservations.ReservationByID(ctx, id)
		if err == nil {
			return Reservation{}, ErrReservationExists
		}
		if !errors.Is(err, ErrReservationNotFound) {
			return Reservation{}, err
		}

		effectiveLength := dimensions.LengthMeters() + DockingBufferMeters
		assignedLane, err = assignLane(sailing, dimensions, effectiveLength)
		if err != nil {
			return Reservation{}, err
		}

		reservation := Reservation{
			ID:           id,
			LicensePlate: plate,
			SailingID:    sailingID,
			Dimensions:   dimensions,
			Phone:        phone,
			Onboard:      false,
			ReservedLane: assignedLane,
		}
		if err := service.reservations.AddReservation(ctx, reservation); err != nil {
			return Reservation{}, err
		}

		switch assignedLane {
		case LaneLow:
			sailing.LowRemainingMeters -= effectiveLength
		case LaneHigh:
			sailing.HighRemainingMeters -= effectiveLength
		}
		sailing.ReservationsCount++
		if err := service.sailings.UpdateSailing(ctx, sailing); err != nil {
			// The reservation is on disk but the capacity was never
			// committed. Undo the write rather than double-book the lane;
			// either way the caller sees the inconsistency.
			_ = service.reservations.DeleteReservation(ctx, id)
			return Reservation{}, WrapError(operationCreateReservation, errorSubjectSailing, errorCodeInconsistency, err)
		}
		return reservation, nil
	}()
	service.logOperation(ctx, OperationLog{
		Operation:    operationCreateReservation,
		LicensePlate: plate,
		SailingID:    sailingID,
		Lane:         assignedLane,
		Error:        operationError,
	})
	return reservation, operationError
}

// CancelReservation releases a booking and restores the capacity of the lane
// it was committed to. A checked-in reservation cannot be cancelled.
func (service *Service) CancelReservation(ctx context.Context, plate LicensePlate, sailingID SailingID) error {
	operationError := func() error {
		id, err := MakeReservationID(plate, sailingID)
		if err != nil {
			return err
		}
		reservation, err := service.reservations.ReservationByID(ctx, id)
		if err != nil {
			return err
		}
		if reservation.Onboard {
			return ErrAlreadyOnboard
		}
		sailing, err := service.sailings.SailingByID(ctx, sailingID)
		if err != nil {
			return err
		}

		restoredLength := reservation.Dimensions.LengthMeters() + DockingBufferMeters
		switch reservation.ReservedLane {
		case LaneHigh:
			sailing.HighRemainingMeters += restoredLength
		default:
			sailing.LowRemainingMeters += restoredLength
		}
		sailing.ReservationsCount--

		if err := service.reservations.DeleteReservation(ctx, id); err != nil {
			return err
		}
		if err := service.sailings.UpdateSailing(ctx, sailing); err != nil {
			return WrapError(operationCancelReservation, errorSubjectSailing, errorCodeInconsistency, err)
		}
		return nil
	}()
	service.logOperation(ctx, OperationLog{
		Operation:    operationCancelReservation,
		LicensePlate: plate,
		SailingID:    sailingID,
		Error:        operationError,
	})
	return operationError
}

// CheckIn marks a reservation onboard and returns the fare to collect.
// A second check-in for the same reservation is rejected.
func (service *Service) CheckIn(ctx context.Context, plate LicensePlate, sailingID SailingID) (float64, error) {
	fee, operationError := func() (float64, error) {
		id, err := MakeReservationID(plate, sailingID)
		if err != nil {
			return 0, err
		}
		reservation, err := service.reservations.ReservationByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if reservation.Onboard {
			return 0, ErrAlreadyOnboard
		}
		fee := FeeFor(reservation.Dimensions)
		if err := service.reservations.SetOnboard(ctx, id, true); err != nil {
			return 0, err
		}
		return fee, nil
	}()
	service.logOperation(ctx, OperationLog{
		Operation:    operationCheckIn,
		LicensePlate: plate,
		SailingID:    sailingID,
		Fee:          fee,
		Error:        operationError,
	})
	return fee, operationError
}

// ReservationFee returns the fare a booking would be charged at check-in.
func (service *Service) ReservationFee(ctx context.Context, plate LicensePlate, sailingID SailingID) (float64, error) {
	id, err := MakeReservationID(plate, sailingID)
	if err != nil {
		return 0, err
	}
	reservation, err := service.reservations.ReservationByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return FeeFor(reservation.Dimensions), nil
}

// RemainingCapacity reports the unallocated lane lengths for a sailing.
func (service *Service) RemainingCapacity(ctx context.Context, id SailingID) (low float64, high float64, err error) {
	return service.sailings.RemainingCapacity(ctx, id)
}

func assignLane(sailing Sailing, dimensions VehicleDimensions, effectiveLength float64) (Lane, error) {
	if dimensions.Overheight() {
		if sailing.HighRemainingMeters >= effectiveLength {
			return LaneHigh, nil
		}
		return "", ErrCapacityExceeded
	}
	if sailing.LowRemainingMeters >= effectiveLength {
		return LaneLow, nil
	}
	if sailing.HighRemainingMeters >= effectiveLength {
		return LaneHigh, nil
	}
	return "", ErrCapacityExceeded
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	entry.AtUnixUTC = service.nowFn()
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}
