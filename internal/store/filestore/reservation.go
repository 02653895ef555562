package filestore

import (
	"context"

	"github.com/harborline/ferry/pkg/ferry"
)

// Reservation record layout: composite id (21-byte slot), license plate
// (11-byte slot), sailing id (10-byte slot), vehicle length (float32),
// vehicle height (float32), phone (15-byte slot), onboard (1 byte),
// expected return date (3 x int32), reserved lane (int32).
const (
	reservationIDSlotWidth      = 21
	reservationPlateSlotWidth   = 11
	reservationSailingSlotWidth = 10
	reservationPhoneSlotWidth   = 15
	reservationRecordSize       = reservationIDSlotWidth + reservationPlateSlotWidth +
		reservationSailingSlotWidth + 4 + 4 + reservationPhoneSlotWidth + 1 + 12 + 4
)

const (
	laneCodeLow  = 0
	laneCodeHigh = 1
)

type reservationCodec struct{}

func (reservationCodec) Size() int { return reservationRecordSize }

func (reservationCodec) Encode(record ferry.Reservation, slot []byte) error {
	if err := putFixedString(slot[0:21], record.ID.String()); err != nil {
		return err
	}
	if err := putFixedString(slot[21:32], record.LicensePlate.String()); err != nil {
		return err
	}
	if err := putFixedString(slot[32:42], record.SailingID.String()); err != nil {
		return err
	}
	putFloat32(slot[42:46], record.Dimensions.LengthMeters())
	putFloat32(slot[46:50], record.Dimensions.HeightMeters())
	if err := putFixedString(slot[50:65], record.Phone.String()); err != nil {
		return err
	}
	putBool(slot[65:66], record.Onboard)
	putInt32(slot[66:70], record.ExpectedReturn.Year)
	putInt32(slot[70:74], record.ExpectedReturn.Month)
	putInt32(slot[74:78], record.ExpectedReturn.Day)
	putInt32(slot[78:82], laneCode(record.ReservedLane))
	return nil
}

func (reservationCodec) Decode(slot []byte) (ferry.Reservation, error) {
	id, err := ferry.NewReservationID(fixedString(slot[0:21]))
	if err != nil {
		return ferry.Reservation{}, err
	}
	plate, err := ferry.NewLicensePlate(fixedString(slot[21:32]))
	if err != nil {
		return ferry.Reservation{}, err
	}
	sailingID, err := ferry.NewSailingID(fixedString(slot[32:42]))
	if err != nil {
		return ferry.Reservation{}, err
	}
	dimensions, err := ferry.NewVehicleDimensions(float32At(slot[42:46]), float32At(slot[46:50]))
	if err != nil {
		return ferry.Reservation{}, err
	}
	phone, err := ferry.NewPhone(fixedString(slot[50:65]))
	if err != nil {
		return ferry.Reservation{}, err
	}
	lane, err := laneFromCode(int32At(slot[78:82]))
	if err != nil {
		return ferry.Reservation{}, err
	}
	return ferry.Reservation{
		ID:           id,
		LicensePlate: plate,
		SailingID:    sailingID,
		Dimensions:   dimensions,
		Phone:        phone,
		Onboard:      boolAt(slot[65:66]),
		ExpectedReturn: ferry.ReturnDate{
			Year:  int32At(slot[66:70]),
			Month: int32At(slot[70:74]),
			Day:   int32At(slot[74:78]),
		},
		ReservedLane: lane,
	}, nil
}

// ReservationFile stores vehicle bookings.
type ReservationFile struct {
	records *RecordFile[ferry.Reservation]
}

// OpenReservationFile opens or creates the reservation record file.
func OpenReservationFile(path string) (*ReservationFile, error) {
	records, err := OpenRecordFile[ferry.Reservation](path, reservationCodec{})
	if err != nil {
		return nil, err
	}
	return &ReservationFile{records: records}, nil
}

// Close releases the backing file.
func (store *ReservationFile) Close() error {
	return store.records.Close()
}

// AddReservation appends a reservation record.
func (store *ReservationFile) AddReservation(_ context.Context, reservation ferry.Reservation) error {
	if err := store.records.Append(reservation); err != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeAppend, err)
	}
	return nil
}

// ReservationByID scans for a reservation by its composite key.
func (store *ReservationFile) ReservationByID(_ context.Context, id ferry.ReservationID) (ferry.Reservation, error) {
	reservation, found, err := store.records.FindFirst(matchReservationID(id))
	if err != nil {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeGet, err)
	}
	if !found {
		return ferry.Reservation{}, wrapStoreError(errorSubjectReservation, errorCodeGet, ferry.ErrReservationNotFound)
	}
	return reservation, nil
}

// DeleteReservation swap-deletes the reservation with the given composite key.
func (store *ReservationFile) DeleteReservation(_ context.Context, id ferry.ReservationID) error {
	deleted, err := store.records.DeleteFirst(matchReservationID(id))
	if err != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeDelete, err)
	}
	if !deleted {
		return wrapStoreError(errorSubjectReservation, errorCodeDelete, ferry.ErrReservationNotFound)
	}
	return nil
}

// DeleteReservationsForSailing drops every reservation booked against the
// sailing by rewriting the file. Deleting zero reservations is not an error.
func (store *ReservationFile) DeleteReservationsForSailing(_ context.Context, sailingID ferry.SailingID) error {
	err := store.records.DeleteAllMatching(func(candidate ferry.Reservation) bool {
		return candidate.SailingID == sailingID
	})
	if err != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeDelete, err)
	}
	return nil
}

// SetOnboard rewrites the reservation's slot with the new check-in flag.
func (store *ReservationFile) SetOnboard(ctx context.Context, id ferry.ReservationID, onboard bool) error {
	reservation, err := store.ReservationByID(ctx, id)
	if err != nil {
		return err
	}
	reservation.Onboard = onboard
	updated, err := store.records.UpdateFirst(matchReservationID(id), reservation)
	if err != nil {
		return wrapStoreError(errorSubjectReservation, errorCodeOnboard, err)
	}
	if !updated {
		return wrapStoreError(errorSubjectReservation, errorCodeOnboard, ferry.ErrReservationNotFound)
	}
	return nil
}

// OnboardStatus reports the check-in flag, distinguishing "not onboard" from
// "no such reservation".
func (store *ReservationFile) OnboardStatus(ctx context.Context, id ferry.ReservationID) (bool, error) {
	reservation, err := store.ReservationByID(ctx, id)
	if err != nil {
		return false, err
	}
	return reservation.Onboard, nil
}

// CountReservationsForSailing counts bookings against one sailing.
func (store *ReservationFile) CountReservationsForSailing(_ context.Context, sailingID ferry.SailingID) (int, error) {
	count, err := store.records.Count(func(candidate ferry.Reservation) bool {
		return candidate.SailingID == sailingID
	})
	if err != nil {
		return 0, wrapStoreError(errorSubjectReservation, errorCodeCount, err)
	}
	return count, nil
}

func matchReservationID(id ferry.ReservationID) func(ferry.Reservation) bool {
	return func(candidate ferry.Reservation) bool {
		return candidate.ID == id
	}
}

func laneCode(lane ferry.Lane) int {
	if lane == ferry.LaneHigh {
		return laneCodeHigh
	}
	return laneCodeLow
}

func laneFromCode(code int) (ferry.Lane, error) {
	switch code {
	case laneCodeLow:
		return ferry.LaneLow, nil
	case laneCodeHigh:
		return ferry.LaneHigh, nil
	}
	return "", ferry.ErrInvalidLane
}
