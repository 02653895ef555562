package gormstore

import (
	"context"
	"errors"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/harborline/ferry/pkg/ferry"
)

const (
	pgUniqueViolationCode = "23505"
	sqliteConstraintCode  = 19

	errorOperationStore = "store"

	errorSubjectVessel      = "vessel"
	errorSubjectSailing     = "sailing"
	errorSubjectReservation = "reservation"
	errorSubjectVehicle     = "vehicle"

	errorCodeCreate    = "create"
	errorCodeDuplicate = "duplicate"
	errorCodeGet       = "get"
	errorCodeUpdate    = "update"
	errorCodeDelete    = "delete"
	errorCodeList      = "list"
	errorCodeCount     = "count"
	errorCodeInvalid   = "invalid"
)

// Store implements the four ferry store contracts using GORM.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the four entity tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Vessel{}, &Sailing{}, &Reservation{}, &Vehicle{})
}

// AddVessel inserts a vessel row.
func (store *Store) AddVessel(ctx context.Context, vessel ferry.Vessel) error {
	row := Vessel{
		Name:    vessel.Name.String(),
		LowCap:  vessel.LowCapacityMeters,
		HighCap: vessel.HighCapacityMeters,
	}
	err := store.db.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return wrapStoreError(errorSubjectVessel, errorCodeDuplicate, ferry.ErrVesselExists)
	}
	if err != nil {
		return wrapStoreError(errorSubjectVessel, errorCodeCreate, err)
	}
	return nil
}

// VesselByName fetches a vessel by its natural key.
func (store *Store) VesselByName(ctx context.Context, name ferry.VesselName) (ferry.Vessel, error) {
	var row Vessel
	err := store.db.WithContext(ctx).Where("name = ?", name.String()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ferry.Vessel{}, wrapStoreError(errorSubjectVessel, errorCodeGet, ferry.ErrVesselNotFound)
	}
	if err != nil {
		return ferry.Vessel{}, wrapStoreError(errorSubjectVessel, errorCodeGet, err)
	}
	return mapVessel(row)
}

// AddSailing inserts a sailing row.
func (store *Store) AddSailing(ctx context.Context, sailing ferry.Sailing) error {
	row := Sailing{
		ID:                sailing.ID.String(),
		VesselName:        sailing.VesselName.String(),
		LowRemaining:      sailing.LowRemainingMeters,
		HighRemaining:     sailing.HighRemainingMeters,
		ReservationsCount: sailing.ReservationsCount,
	}
	err := store.db.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return wrapStoreError(errorSubjectSailing, errorCodeDuplicate, ferry.ErrSailingExists)
	}
	if err != nil {
		return wrapStoreError(errorSubjectSailing, errorCodeCreate, err)
	}
	return nil
}

// SailingByID fetches a sailing row.
func (store *Store) SailingByID(ctx context.Context, id ferry.SailingID) (ferry.Sailing, error) {
	var row Sailing
	err := store.db.WithContext(ctx).Where("id = ?", id.String()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ferry.Sailing{}, wrapStoreError(errorSubjectSailing, errorCodeGet, ferry.ErrSailingNotFound)
	}
	if err != nil {
		return ferry.Sailing{}, wrapStoreError(errorSubjectSailing, errorCodeGet, err)
	}
	return mapSailing(row)
}

// UpdateSailing rewrites the capacity counters for a sailing.
func (store *Store) UpdateSailing(ctx context.Context, sailing ferry.Sailing) error {
	result := store.db.WithContext(ctx).
		Model(&Sailing{}).
		Where("id = ?", sailing.ID.String()).
		Updates(map[string]interface{}{
			"vessel_name":        sailing.VesselName.String(),
			"low_remaining":      sailing.LowRemainingMeters,
			"high_remaining":     sailing.HighRemainingMeters,
			"reservations_count": sailing.ReservationsCount,
		})
	if result.Error != nil {
		return wrapStoreError(errorSubjectSailing, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectSailing, errorCodeUpdate, ferry.ErrSailingNotFound)
	}
	return nil
}

// DeleteSailing removes a sailing row.
func (store *Store) DeleteSailing(ctx context.Context, id ferry.SailingID) error {
	result := store.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&Sailing{})
	if result.Error != nil {
		return wrapStoreError(errorSubjectSailing, errorCodeDelete, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectSailing, errorCodeDelete, ferry.ErrSailingNotFound)
	}
	return nil
}

// RemainingCapacity reports the unallocated lane lengths for a sailing.
func (store *Store) RemainingCapacity(ctx context.Context, id ferry.SailingID) (float64, float64, error) {
	sailing, err := store.SailingByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return sailing.LowRemainingMeters, sailing.HighRemainingMeters, nil
}

// AllSailings lists every sailing row.
func (store *Store) AllSailings(ctx context.Context) ([]ferry.Sailing, error) {
	var rows []Sailing
	if err := store.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectSailing, errorCodeList, err)
	}
	sailings := make([]ferry.Sailing, 0, len(rows))
	for _, row := range rows {
		sailing, err := mapSailing(row)
		if err != nil {
			return nil, err
		}
		sailings = append(sailings, sailing)
	}
	return sailings, nil
}

// AddReservation inserts a reservation row.
func (store *Store) AddReservation(ctx context.Context, reservation ferry.Reservation) error {
	row := Reservation{
		ID:             reservation.ID.String(),
		LicensePlate:   reservation.LicensePlate.String(),
		SailingID:      reservation.SailingID.String(),
		VehicleLength:  reservation.Dimensions.LengthMeters(),
		VehicleHeight:  reservation.Dimensions.HeightMeters(),
		Phone:          reservation.Phone.String(),
		Onboard:        reservation.Onboard,
		ExpectedReturn: dateFromReturnDate(reservation.ExpectedReturn),
		ReservedLane:   reservation.ReservedLane.String(),
	}
	err := store.db.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return wrapStoreError(errorSubjectReservation, errorCodeDuplicate, ferry.ErrReservationExists)
	}
	if err != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeCreate, err)
	}
	return nil
}

// ReservationByID fetches a reservation by its composite key.
func (store *Store) ReservationByID(ctx context.Context, id ferry.ReservationID) (ferry.Reservation, error) {
	var row Reservation
	err := store.db.WithContext(ctx).Where("id = ?", id.String()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeGet, ferry.ErrReservationNotFound)
	}
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeGet, err)
	}
	return mapReservation(row)
}

// DeleteReservation removes a reservation row.
func (store *Store) DeleteReservation(ctx context.Context, id ferry.ReservationID) error {
	result := store.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&Reservation{})
	if result.Error != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeDelete, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectReservation, errorCodeDelete, ferry.ErrReservationNotFound)
	}
	return nil
}

// DeleteReservationsForSailing drops every reservation booked against the
// sailing. Deleting zero rows is not an error.
func (store *Store) DeleteReservationsForSailing(ctx context.Context, sailingID ferry.SailingID) error {
	err := store.db.WithContext(ctx).Where("sailing_id = ?", sailingID.String()).Delete(&Reservation{}).Error
	if err != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeDelete, err)
	}
	return nil
}

// SetOnboard updates the check-in flag for a reservation.
func (store *Store) SetOnboard(ctx context.Context, id ferry.ReservationID, onboard bool) error {
	result := store.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ?", id.String()).
		Update("onboard", onboard)
	if result.Error != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectReservation, errorCodeUpdate, ferry.ErrReservationNotFound)
	}
	return nil
}

// OnboardStatus reports the check-in flag, distinguishing "not onboard" from
// "no such reservation".
func (store *Store) OnboardStatus(ctx context.Context, id ferry.ReservationID) (bool, error) {
	reservation, err := store.ReservationByID(ctx, id)
	if err != nil {
		return false, err
	}
	return reservation.Onboard, nil
}

// CountReservationsForSailing counts bookings against one sailing.
func (store *Store) CountReservationsForSailing(ctx context.Context, sailingID ferry.SailingID) (int, error) {
	var count int64
	err := store.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("sailing_id = ?", sailingID.String()).
		Count(&count).Error
	if err != nil {
		return 0, wrapStoreError(errorSubjectReservation, errorCodeCount, err)
	}
	return int(count), nil
}

// AddVehicle inserts a vehicle directory row.
func (store *Store) AddVehicle(ctx context.Context, vehicle ferry.Vehicle) error {
	row := Vehicle{
		LicensePlate:  vehicle.LicensePlate.String(),
		Phone:         vehicle.Phone.String(),
		VehicleLength: vehicle.Dimensions.LengthMeters(),
		VehicleHeight: vehicle.Dimensions.HeightMeters(),
	}
	err := store.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return wrapStoreError(errorSubjectVehicle, errorCodeCreate, err)
	}
	return nil
}

// VehicleByLicensePlate fetches a vehicle directory row.
func (store *Store) VehicleByLicensePlate(ctx context.Context, plate ferry.LicensePlate) (ferry.Vehicle, error) {
	var row Vehicle
	err := store.db.WithContext(ctx).Where("license_plate = ?", plate.String()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeGet, ferry.ErrVehicleNotFound)
	}
	if err != nil {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeGet, err)
	}
	return mapVehicle(row)
}

func wrapStoreError(subject string, code string, err error) error {
	return ferry.WrapError(errorOperationStore, subject, code, err)
}

func mapVessel(row Vessel) (ferry.Vessel, error) {
	name, err := ferry.NewVesselName(row.Name)
	if err != nil {
		return ferry.Vessel{}, wrapStoreError(errorSubjectVessel, errorCodeInvalid, err)
	}
	vessel, err := ferry.NewVessel(name, row.LowCap, row.HighCap)
	if err != nil {
		return ferry.Vessel{}, wrapStoreError(errorSubjectVessel, errorCodeInvalid, err)
	}
	return vessel, nil
}

func mapSailing(row Sailing) (ferry.Sailing, error) {
	id, err := ferry.NewSailingID(row.ID)
	if err != nil {
		return ferry.Sailing{}, wrapStoreError(errorSubjectSailing, errorCodeInvalid, err)
	}
	vesselName, err := ferry.NewVesselName(row.VesselName)
	if err != nil {
		return ferry.Sailing{}, wrapStoreError(errorSubjectSailing, errorCodeInvalid, err)
	}
	return ferry.Sailing{
		ID:                  id,
		VesselName:          vesselName,
		LowRemainingMeters:  row.LowRemaining,
		HighRemainingMeters: row.HighRemaining,
		ReservationsCount:   row.ReservationsCount,
	}, nil
}

func mapReservation(row Reservation) (ferry.Reservation, error) {
	id, err := ferry.NewReservationID(row.ID)
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeInvalid, err)
	}
	plate, err := ferry.NewLicensePlate(row.LicensePlate)
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeInvalid, err)
	}
	sailingID, err := ferry.NewSailingID(row.SailingID)
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeInvalid, err)
	}
	dimensions, err := ferry.NewVehicleDimensions(row.VehicleLength, row.VehicleHeight)
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeInvalid, err)
	}
	phone, err := ferry.NewPhone(row.Phone)
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeInvalid, err)
	}
	lane, err := ferry.ParseLane(row.ReservedLane)
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeInvalid, err)
	}
	return ferry.Reservation{
		ID:             id,
		LicensePlate:   plate,
		SailingID:      sailingID,
		Dimensions:     dimensions,
		Phone:          phone,
		Onboard:        row.Onboard,
		ExpectedReturn: returnDateFromDate(row.ExpectedReturn),
		ReservedLane:   lane,
	}, nil
}

func mapVehicle(row Vehicle) (ferry.Vehicle, error) {
	plate, err := ferry.NewLicensePlate(row.LicensePlate)
	if err != nil {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeInvalid, err)
	}
	phone, err := ferry.NewPhone(row.Phone)
	if err != nil {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeInvalid, err)
	}
	dimensions, err := ferry.NewVehicleDimensions(row.VehicleLength, row.VehicleHeight)
	if err != nil {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeInvalid, err)
	}
	return ferry.Vehicle{LicensePlate: plate, Phone: phone, Dimensions: dimensions}, nil
}

func dateFromReturnDate(value ferry.ReturnDate) datatypes.Date {
	if value == (ferry.ReturnDate{}) {
		return datatypes.Date{}
	}
	return datatypes.Date(time.Date(value.Year, time.Month(value.Month), value.Day, 0, 0, 0, 0, time.UTC))
}

func returnDateFromDate(value datatypes.Date) ferry.ReturnDate {
	asTime := time.Time(value)
	if asTime.IsZero() {
		return ferry.ReturnDate{}
	}
	return ferry.ReturnDate{
		Year:  asTime.Year(),
		Month: int(asTime.Month()),
		Day:   asTime.Day(),
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}
