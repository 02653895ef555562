package ferry

import (
	"context"
	"errors"
	"testing"
)

func TestCreateVesselStoresCapacities(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	name := mustVesselName(test, "Queen of Surrey")

	vessel, err := service.CreateVessel(context.Background(), name, 100, 100)
	if err != nil {
		test.Fatalf("create vessel: %v", err)
	}
	if vessel.LowCapacityMeters != 100 || vessel.HighCapacityMeters != 100 {
		test.Fatalf("unexpected capacities: %+v", vessel)
	}
	stored, ok := store.vessels[name.String()]
	if !ok {
		test.Fatalf("vessel not persisted")
	}
	if stored != vessel {
		test.Fatalf("stored vessel mismatch: %+v", stored)
	}
}

func TestCreateVesselRejectsDuplicateName(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	name := mustVesselName(test, "Coastal Renaissance")

	if _, err := service.CreateVessel(context.Background(), name, 200, 150); err != nil {
		test.Fatalf("create vessel: %v", err)
	}
	_, err := service.CreateVessel(context.Background(), name, 300, 300)
	if !errors.Is(err, ErrVesselExists) {
		test.Fatalf("expected ErrVesselExists, got %v", err)
	}
	if len(store.vessels) != 1 {
		test.Fatalf("expected single vessel, got %d", len(store.vessels))
	}
}

func TestCreateSailingSeedsCapacityFromVessel(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	name := mustVesselName(test, "Spirit")
	if _, err := service.CreateVessel(context.Background(), name, 120, 80); err != nil {
		test.Fatalf("create vessel: %v", err)
	}

	sailing, err := service.CreateSailing(context.Background(), name, "TSA", "09", "15")
	if err != nil {
		test.Fatalf("create sailing: %v", err)
	}
	if sailing.ID.String() != "TSA-09-15" {
		test.Fatalf("unexpected sailing id %q", sailing.ID)
	}
	if sailing.LowRemainingMeters != 120 || sailing.HighRemainingMeters != 80 {
		test.Fatalf("unexpected remaining capacity: %+v", sailing)
	}
	if sailing.ReservationsCount != 0 {
		test.Fatalf("expected empty sailing, got %d reservations", sailing.ReservationsCount)
	}
}

func TestCreateSailingRejectsDuplicateID(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	name := mustVesselName(test, "Spirit")
	if _, err := service.CreateVessel(context.Background(), name, 120, 80); err != nil {
		test.Fatalf("create vessel: %v", err)
	}
	if _, err := service.CreateSailing(context.Background(), name, "TSA", "09", "15"); err != nil {
		test.Fatalf("create sailing: %v", err)
	}
	_, err := service.CreateSailing(context.Background(), name, "TSA", "09", "15")
	if !errors.Is(err, ErrSailingExists) {
		test.Fatalf("expected ErrSailingExists, got %v", err)
	}
}

func TestCreateSailingRequiresVessel(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	_, err := service.CreateSailing(context.Background(), mustVesselName(test, "Ghost"), "TSA", "09", "15")
	if !errors.Is(err, ErrVesselNotFound) {
		test.Fatalf("expected ErrVesselNotFound, got %v", err)
	}
}

func TestCreateReservationDeductsDockingBuffer(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")
	dimensions := mustDimensions(test, 6.0, 1.8)

	reservation, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, dimensions, mustPhone(test, "604-555-0101"))
	if err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if reservation.ReservedLane != LaneLow {
		test.Fatalf("expected low lane, got %s", reservation.ReservedLane)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.LowRemainingMeters != 93.5 {
		test.Fatalf("expected 93.5m low remaining, got %.1f", sailing.LowRemainingMeters)
	}
	if sailing.HighRemainingMeters != 100 {
		test.Fatalf("high lane should be untouched, got %.1f", sailing.HighRemainingMeters)
	}
	if sailing.ReservationsCount != 1 {
		test.Fatalf("expected 1 reservation, got %d", sailing.ReservationsCount)
	}
}

func TestCreateReservationOverflowsToHighLane(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 5, 100)
	plate := mustLicensePlate(test, "ABC-123")
	dimensions := mustDimensions(test, 6.0, 1.8)

	reservation, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, dimensions, mustPhone(test, "604-555-0101"))
	if err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if reservation.ReservedLane != LaneHigh {
		test.Fatalf("expected high lane, got %s", reservation.ReservedLane)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.LowRemainingMeters != 5 {
		test.Fatalf("low lane should be untouched, got %.1f", sailing.LowRemainingMeters)
	}
	if sailing.HighRemainingMeters != 93.5 {
		test.Fatalf("expected 93.5m high remaining, got %.1f", sailing.HighRemainingMeters)
	}
}

func TestOverheightVehicleNeverAssignedLowLane(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 5)
	plate := mustLicensePlate(test, "TRK-999")
	dimensions := mustDimensions(test, 12.0, 3.5)

	_, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, dimensions, mustPhone(test, "604-555-0102"))
	if !errors.Is(err, ErrCapacityExceeded) {
		test.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.LowRemainingMeters != 100 || sailing.HighRemainingMeters != 5 {
		test.Fatalf("rejected booking must not mutate the sailing: %+v", sailing)
	}
	if len(store.reservations) != 0 {
		test.Fatalf("rejected booking must not persist a reservation")
	}
}

func TestOverheightVehicleUsesHighLane(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "TRK-999")
	dimensions := mustDimensions(test, 12.0, 3.5)

	reservation, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, dimensions, mustPhone(test, "604-555-0102"))
	if err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if reservation.ReservedLane != LaneHigh {
		test.Fatalf("overheight vehicle must ride the high lane, got %s", reservation.ReservedLane)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.HighRemainingMeters != 87.5 {
		test.Fatalf("expected 87.5m high remaining, got %.1f", sailing.HighRemainingMeters)
	}
}

func TestDuplicateReservationLeavesSailingUntouched(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")
	dimensions := mustDimensions(test, 6.0, 1.8)
	phone := mustPhone(test, "604-555-0101")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, dimensions, phone); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	_, err := service.CreateReservation(context.Background(), plate, sailingID)
	if !errors.Is(err, ErrReservationExists) {
		test.Fatalf("expected ErrReservationExists, got %v", err)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.LowRemainingMeters != 93.5 || sailing.ReservationsCount != 1 {
		test.Fatalf("duplicate booking mutated the sailing: %+v", sailing)
	}
}

func TestCreateReservationReusesVehicleDirectory(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")
	store.vehicles[plate.String()] = Vehicle{
		LicensePlate: plate,
		Phone:        mustPhone(test, "604-555-0101"),
		Dimensions:   mustDimensions(test, 8.0, 3.0),
	}

	reservation, err := service.CreateReservation(context.Background(), plate, sailingID)
	if err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if reservation.ReservedLane != LaneHigh {
		test.Fatalf("directory dimensions should route to high lane, got %s", reservation.ReservedLane)
	}
}

func TestCreateReservationUnknownVehicle(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)

	_, err := service.CreateReservation(context.Background(), mustLicensePlate(test, "NEW-111"), sailingID)
	if !errors.Is(err, ErrVehicleNotFound) {
		test.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestCreateReservationWithVehicleRegistersVehicle(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "NEW-111")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0103")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if _, ok := store.vehicles[plate.String()]; !ok {
		test.Fatalf("vehicle not added to directory")
	}
}

func TestCancelRestoresLaneCapacity(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 10.0, 1.8), mustPhone(test, "604-555-0101")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.LowRemainingMeters != 89.5 {
		test.Fatalf("expected 89.5m after booking, got %.1f", sailing.LowRemainingMeters)
	}

	if err := service.CancelReservation(context.Background(), plate, sailingID); err != nil {
		test.Fatalf("cancel reservation: %v", err)
	}
	sailing = store.mustSailing(test, sailingID)
	if sailing.LowRemainingMeters != 100 {
		test.Fatalf("expected full capacity restored, got %.1f", sailing.LowRemainingMeters)
	}
	if sailing.ReservationsCount != 0 {
		test.Fatalf("expected 0 reservations after cancel, got %d", sailing.ReservationsCount)
	}
	if len(store.reservations) != 0 {
		test.Fatalf("reservation record must be gone after cancel")
	}
}

func TestCancelRestoresHighLaneForOverheight(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "TRK-999")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 12.0, 3.5), mustPhone(test, "604-555-0102")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if err := service.CancelReservation(context.Background(), plate, sailingID); err != nil {
		test.Fatalf("cancel reservation: %v", err)
	}
	sailing := store.mustSailing(test, sailingID)
	if sailing.HighRemainingMeters != 100 {
		test.Fatalf("expected high lane restored, got %.1f", sailing.HighRemainingMeters)
	}
}

func TestCancelRejectsOnboardReservation(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0101")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if _, err := service.CheckIn(context.Background(), plate, sailingID); err != nil {
		test.Fatalf("check in: %v", err)
	}
	err := service.CancelReservation(context.Background(), plate, sailingID)
	if !errors.Is(err, ErrAlreadyOnboard) {
		test.Fatalf("expected ErrAlreadyOnboard, got %v", err)
	}
	if len(store.reservations) != 1 {
		test.Fatalf("onboard reservation must survive a cancel attempt")
	}
}

func TestCheckInReturnsFeeAndSetsOnboard(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0101")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	fee, err := service.CheckIn(context.Background(), plate, sailingID)
	if err != nil {
		test.Fatalf("check in: %v", err)
	}
	if fee != 14.0 {
		test.Fatalf("expected standard fee 14.00, got %.2f", fee)
	}
	id := mustReservationID(test, plate, sailingID)
	if !store.reservations[id.String()].Onboard {
		test.Fatalf("reservation not marked onboard")
	}
}

func TestCheckInRejectsSecondArrival(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0101")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if _, err := service.CheckIn(context.Background(), plate, sailingID); err != nil {
		test.Fatalf("first check in: %v", err)
	}
	_, err := service.CheckIn(context.Background(), plate, sailingID)
	if !errors.Is(err, ErrAlreadyOnboard) {
		test.Fatalf("expected ErrAlreadyOnboard, got %v", err)
	}
}

func TestDeleteSailingCascadesToReservations(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	otherSailingID := seedSailing(test, store, "HBY-09-17", 100, 100)

	plates := []string{"AAA-111", "BBB-222", "CCC-333"}
	for _, raw := range plates {
		plate := mustLicensePlate(test, raw)
		if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0100")); err != nil {
			test.Fatalf("create reservation %s: %v", raw, err)
		}
	}
	keeper := mustLicensePlate(test, "DDD-444")
	if _, err := service.CreateReservationWithVehicle(context.Background(), keeper, otherSailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0100")); err != nil {
		test.Fatalf("create reservation on second sailing: %v", err)
	}

	if err := service.DeleteSailing(context.Background(), sailingID); err != nil {
		test.Fatalf("delete sailing: %v", err)
	}
	if _, ok := store.sailings[sailingID.String()]; ok {
		test.Fatalf("sailing record must be gone")
	}
	if len(store.reservations) != 1 {
		test.Fatalf("expected only the other sailing's reservation to survive, got %d", len(store.reservations))
	}
	for _, reservation := range store.reservations {
		if reservation.SailingID != otherSailingID {
			test.Fatalf("unexpected surviving reservation: %+v", reservation)
		}
	}
}

func TestDeleteSailingUnknownID(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	err := service.DeleteSailing(context.Background(), mustSailingID(test, "TSA-01-01"))
	if !errors.Is(err, ErrSailingNotFound) {
		test.Fatalf("expected ErrSailingNotFound, got %v", err)
	}
}

func TestRemainingCapacityReflectsBookings(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	sailingID := seedSailing(test, store, "TSA-09-15", 60, 40)
	plate := mustLicensePlate(test, "ABC-123")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 4.5, 1.6), mustPhone(test, "604-555-0101")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	low, high, err := service.RemainingCapacity(context.Background(), sailingID)
	if err != nil {
		test.Fatalf("remaining capacity: %v", err)
	}
	if low != 55 || high != 40 {
		test.Fatalf("expected 55/40, got %.1f/%.1f", low, high)
	}
}

// stubStore is an in-memory Store for workflow tests.
type stubStore struct {
	vessels      map[string]Vessel
	sailings     map[string]Sailing
	reservations map[string]Reservation
	vehicles     map[string]Vehicle

	addReservationError    error
	deleteReservationError error
	updateSailingError     error
	sailingLookupError     error
	setOnboardError        error
	addVehicleError        error
	deleteForSailingError  error
}

func newStubStore(test *testing.T) *stubStore {
	test.Helper()
	return &stubStore{
		vessels:      make(map[string]Vessel),
		sailings:     make(map[string]Sailing),
		reservations: make(map[string]Reservation),
		vehicles:     make(map[string]Vehicle),
	}
}

func (store *stubStore) AddVessel(ctx context.Context, vessel Vessel) error {
	if _, exists := store.vessels[vessel.Name.String()]; exists {
		return ErrVesselExists
	}
	store.vessels[vessel.Name.String()] = vessel
	return nil
}

func (store *stubStore) VesselByName(ctx context.Context, name VesselName) (Vessel, error) {
	vessel, ok := store.vessels[name.String()]
	if !ok {
		return Vessel{}, ErrVesselNotFound
	}
	return vessel, nil
}

func (store *stubStore) AddSailing(ctx context.Context, sailing Sailing) error {
	if _, exists := store.sailings[sailing.ID.String()]; exists {
		return ErrSailingExists
	}
	store.sailings[sailing.ID.String()] = sailing
	return nil
}

func (store *stubStore) SailingByID(ctx context.Context, id SailingID) (Sailing, error) {
	if store.sailingLookupError != nil {
		return Sailing{}, store.sailingLookupError
	}
	sailing, ok := store.sailings[id.String()]
	if !ok {
		return Sailing{}, ErrSailingNotFound
	}
	return sailing, nil
}

func (store *stubStore) UpdateSailing(ctx context.Context, sailing Sailing) error {
	if store.updateSailingError != nil {
		return store.updateSailingError
	}
	if _, ok := store.sailings[sailing.ID.String()]; !ok {
		return ErrSailingNotFound
	}
	store.sailings[sailing.ID.String()] = sailing
	return nil
}

func (store *stubStore) DeleteSailing(ctx context.Context, id SailingID) error {
	if _, ok := store.sailings[id.String()]; !ok {
		return ErrSailingNotFound
	}
	delete(store.sailings, id.String())
	return nil
}

func (store *stubStore) RemainingCapacity(ctx context.Context, id SailingID) (float64, float64, error) {
	sailing, ok := store.sailings[id.String()]
	if !ok {
		return 0, 0, ErrSailingNotFound
	}
	return sailing.LowRemainingMeters, sailing.HighRemainingMeters, nil
}

func (store *stubStore) AllSailings(ctx context.Context) ([]Sailing, error) {
	sailings := make([]Sailing, 0, len(store.sailings))
	for _, sailing := range store.sailings {
		sailings = append(sailings, sailing)
	}
	return sailings, nil
}

func (store *stubStore) AddReservation(ctx context.Context, reservation Reservation) error {
	if store.addReservationError != nil {
		return store.addReservationError
	}
	if _, exists := store.reservations[reservation.ID.String()]; exists {
		return ErrReservationExists
	}
	store.reservations[reservation.ID.String()] = reservation
	return nil
}

func (store *stubStore) ReservationByID(ctx context.Context, id ReservationID) (Reservation, error) {
	reservation, ok := store.reservations[id.String()]
	if !ok {
		return Reservation{}, ErrReservationNotFound
	}
	return reservation, nil
}

func (store *stubStore) DeleteReservation(ctx context.Context, id ReservationID) error {
	if store.deleteReservationError != nil {
		return store.deleteReservationError
	}
	if _, ok := store.reservations[id.String()]; !ok {
		return ErrReservationNotFound
	}
	delete(store.reservations, id.String())
	return nil
}

func (store *stubStore) DeleteReservationsForSailing(ctx context.Context, sailingID SailingID) error {
	if store.deleteForSailingError != nil {
		return store.deleteForSailingError
	}
	for key, reservation := range store.reservations {
		if reservation.SailingID == sailingID {
			delete(store.reservations, key)
		}
	}
	return nil
}

func (store *stubStore) SetOnboard(ctx context.Context, id ReservationID, onboard bool) error {
	if store.setOnboardError != nil {
		return store.setOnboardError
	}
	reservation, ok := store.reservations[id.String()]
	if !ok {
		return ErrReservationNotFound
	}
	reservation.Onboard = onboard
	store.reservations[id.String()] = reservation
	return nil
}

func (store *stubStore) OnboardStatus(ctx context.Context, id ReservationID) (bool, error) {
	reservation, ok := store.reservations[id.String()]
	if !ok {
		return false, ErrReservationNotFound
	}
	return reservation.Onboard, nil
}

func (store *stubStore) CountReservationsForSailing(ctx context.Context, sailingID SailingID) (int, error) {
	count := 0
	for _, reservation := range store.reservations {
		if reservation.SailingID == sailingID {
			count++
		}
	}
	return count, nil
}

func (store *stubStore) AddVehicle(ctx context.Context, vehicle Vehicle) error {
	if store.addVehicleError != nil {
		return store.addVehicleError
	}
	if _, exists := store.vehicles[vehicle.LicensePlate.String()]; exists {
		return nil
	}
	store.vehicles[vehicle.LicensePlate.String()] = vehicle
	return nil
}

func (store *stubStore) VehicleByLicensePlate(ctx context.Context, plate LicensePlate) (Vehicle, error) {
	vehicle, ok := store.vehicles[plate.String()]
	if !ok {
		return Vehicle{}, ErrVehicleNotFound
	}
	return vehicle, nil
}

func (store *stubStore) mustSailing(test *testing.T, id SailingID) Sailing {
	test.Helper()
	sailing, ok := store.sailings[id.String()]
	if !ok {
		test.Fatalf("sailing %s not found", id)
	}
	return sailing
}

func seedSailing(test *testing.T, store *stubStore, rawID string, lowMeters float64, highMeters float64) SailingID {
	test.Helper()
	id := mustSailingID(test, rawID)
	store.sailings[id.String()] = Sailing{
		ID:                  id,
		VesselName:          mustVesselName(test, "Queen of Surrey"),
		LowRemainingMeters:  lowMeters,
		HighRemainingMeters: highMeters,
	}
	return id
}

func mustNewService(test *testing.T, store Store) *Service {
	test.Helper()
	service, err := NewService(store, store, store, store, func() int64 { return 100 })
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	return service
}

func mustVesselName(test *testing.T, raw string) VesselName {
	test.Helper()
	value, err := NewVesselName(raw)
	if err != nil {
		test.Fatalf("vessel name: %v", err)
	}
	return value
}

func mustLicensePlate(test *testing.T, raw string) LicensePlate {
	test.Helper()
	value, err := NewLicensePlate(raw)
	if err != nil {
		test.Fatalf("license plate: %v", err)
	}
	return value
}

func mustPhone(test *testing.T, raw string) Phone {
	test.Helper()
	value, err := NewPhone(raw)
	if err != nil {
		test.Fatalf("phone: %v", err)
	}
	return value
}

func mustSailingID(test *testing.T, raw string) SailingID {
	test.Helper()
	value, err := NewSailingID(raw)
	if err != nil {
		test.Fatalf("sailing id: %v", err)
	}
	return value
}

func mustDimensions(test *testing.T, lengthMeters float64, heightMeters float64) VehicleDimensions {
	test.Helper()
	value, err := NewVehicleDimensions(lengthMeters, heightMeters)
	if err != nil {
		test.Fatalf("dimensions: %v", err)
	}
	return value
}

func mustReservationID(test *testing.T, plate LicensePlate, sailingID SailingID) ReservationID {
	test.Helper()
	value, err := MakeReservationID(plate, sailingID)
	if err != nil {
		test.Fatalf("reservation id: %v", err)
	}
	return value
}
