package ferry

import (
	"context"
	"fmt"
	"strings"
)

// Lane identifies one of the two docking-capacity pools on a sailing.
type Lane string

const (
	LaneLow  Lane = "low"
	LaneHigh Lane = "high"
)

// String returns the lane name.
func (lane Lane) String() string {
	return string(lane)
}

// ParseLane maps a stored lane name back to a Lane.
func ParseLane(raw string) (Lane, error) {
	switch Lane(raw) {
	case LaneLow:
		return LaneLow, nil
	case LaneHigh:
		return LaneHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLane, raw)
}

// VesselName identifies a vessel.
type VesselName struct {
	value string
}

// LicensePlate identifies a vehicle.
type LicensePlate struct {
	value string
}

// Phone is a bounded contact number.
type Phone struct {
	value string
}

// SailingID identifies a scheduled departure, formatted TTT-DD-HH.
type SailingID struct {
	value string
}

// ReservationID is the fixed-width composite booking key derived from a
// license plate and a sailing id.
type ReservationID struct {
	value string
}

// VehicleDimensions carries a vehicle's length and height in meters.
type VehicleDimensions struct {
	lengthMeters float64
	heightMeters float64
}

// ReturnDate is a plain calendar date; the zero value means "not set".
type ReturnDate struct {
	Year  int
	Month int
	Day   int
}

// NewVesselName validates and normalizes a vessel name.
func NewVesselName(raw string) (VesselName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return VesselName{}, fmt.Errorf("%w: empty value", ErrInvalidVesselName)
	}
	if len(trimmed) > MaxVesselNameLength {
		return VesselName{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidVesselName, MaxVesselNameLength)
	}
	return VesselName{value: trimmed}, nil
}

// String returns the normalized name.
func (name VesselName) String() string {
	return name.value
}

// NewLicensePlate validates and normalizes a license plate.
func NewLicensePlate(raw string) (LicensePlate, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LicensePlate{}, fmt.Errorf("%w: empty value", ErrInvalidLicensePlate)
	}
	if len(trimmed) > MaxLicensePlateLength {
		return LicensePlate{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidLicensePlate, MaxLicensePlateLength)
	}
	return LicensePlate{value: trimmed}, nil
}

// String returns the normalized plate.
func (plate LicensePlate) String() string {
	return plate.value
}

// NewPhone validates and normalizes a contact number.
func NewPhone(raw string) (Phone, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Phone{}, fmt.Errorf("%w: empty value", ErrInvalidPhone)
	}
	if len(trimmed) > MaxPhoneLength {
		return Phone{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidPhone, MaxPhoneLength)
	}
	return Phone{value: trimmed}, nil
}

// String returns the normalized number.
func (phone Phone) String() string {
	return phone.value
}

// NewSailingID validates a sailing id against the TTT-DD-HH format.
func NewSailingID(raw string) (SailingID, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != SailingIDLength {
		return SailingID{}, fmt.Errorf("%w: %q is not TTT-DD-HH", ErrInvalidSailingID, raw)
	}
	for position, character := range trimmed {
		switch position {
		case 0, 1, 2:
			if !isLetter(character) {
				return SailingID{}, fmt.Errorf("%w: terminal code must be letters", ErrInvalidSailingID)
			}
		case 3, 6:
			if character != '-' {
				return SailingID{}, fmt.Errorf("%w: %q is not TTT-DD-HH", ErrInvalidSailingID, raw)
			}
		default:
			if !isDigit(character) {
				return SailingID{}, fmt.Errorf("%w: date and hour must be digits", ErrInvalidSailingID)
			}
		}
	}
	return SailingID{value: trimmed}, nil
}

// MakeSailingID builds a sailing id from its three components.
func MakeSailingID(terminal string, date string, hour string) (SailingID, error) {
	terminal = strings.TrimSpace(terminal)
	if len(terminal) != 3 || !allLetters(terminal) {
		return SailingID{}, fmt.Errorf("%w: terminal must be exactly 3 letters", ErrInvalidSailingID)
	}
	if len(date) != 2 || !allDigits(date) {
		return SailingID{}, fmt.Errorf("%w: date must be exactly 2 digits", ErrInvalidSailingID)
	}
	if len(hour) != 2 || !allDigits(hour) {
		return SailingID{}, fmt.Errorf("%w: hour must be exactly 2 digits", ErrInvalidSailingID)
	}
	return SailingID{value: terminal + "-" + date + "-" + hour}, nil
}

// String returns the sailing id.
func (id SailingID) String() string {
	return id.value
}

// MakeReservationID derives the canonical composite booking key: the plate
// and sailing id concatenated, padded with '*' to the fixed width.
func MakeReservationID(plate LicensePlate, sailingID SailingID) (ReservationID, error) {
	combined := plate.String() + sailingID.String()
	if combined == "" {
		return ReservationID{}, fmt.Errorf("%w: empty components", ErrInvalidReservationID)
	}
	if len(combined) > ReservationIDLength {
		return ReservationID{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidReservationID, ReservationIDLength)
	}
	padded := combined + strings.Repeat(string(reservationIDPadding), ReservationIDLength-len(combined))
	return ReservationID{value: padded}, nil
}

// NewReservationID revalidates a stored composite key.
func NewReservationID(raw string) (ReservationID, error) {
	if len(raw) != ReservationIDLength {
		return ReservationID{}, fmt.Errorf("%w: must be exactly %d characters", ErrInvalidReservationID, ReservationIDLength)
	}
	return ReservationID{value: raw}, nil
}

// String returns the padded composite key.
func (id ReservationID) String() string {
	return id.value
}

// NewVehicleDimensions validates booking dimensions.
func NewVehicleDimensions(lengthMeters float64, heightMeters float64) (VehicleDimensions, error) {
	if lengthMeters <= 0 || lengthMeters > MaxVehicleLengthMeters {
		return VehicleDimensions{}, fmt.Errorf("%w: length must be in (0, %.1f] meters", ErrInvalidVehicleDimensions, MaxVehicleLengthMeters)
	}
	if heightMeters <= 0 || heightMeters > MaxVehicleHeightMeters {
		return VehicleDimensions{}, fmt.Errorf("%w: height must be in (0, %.1f] meters", ErrInvalidVehicleDimensions, MaxVehicleHeightMeters)
	}
	return VehicleDimensions{lengthMeters: lengthMeters, heightMeters: heightMeters}, nil
}

// LengthMeters returns the vehicle length.
func (dimensions VehicleDimensions) LengthMeters() float64 {
	return dimensions.lengthMeters
}

// HeightMeters returns the vehicle height.
func (dimensions VehicleDimensions) HeightMeters() float64 {
	return dimensions.heightMeters
}

// Overheight reports whether the vehicle is restricted to the high lane.
func (dimensions VehicleDimensions) Overheight() bool {
	return dimensions.heightMeters > OverheightThresholdMeters
}

// Vessel is a ferry with fixed per-lane capacity.
type Vessel struct {
	Name               VesselName
	LowCapacityMeters  int
	HighCapacityMeters int
}

// NewVessel validates vessel capacities.
func NewVessel(name VesselName, lowCapacityMeters int, highCapacityMeters int) (Vessel, error) {
	if lowCapacityMeters <= 0 || lowCapacityMeters > MaxLaneCapacityMeters {
		return Vessel{}, fmt.Errorf("%w: low lane must be in (0, %d] meters", ErrInvalidLaneCapacity, MaxLaneCapacityMeters)
	}
	if highCapacityMeters <= 0 || highCapacityMeters > MaxLaneCapacityMeters {
		return Vessel{}, fmt.Errorf("%w: high lane must be in (0, %d] meters", ErrInvalidLaneCapacity, MaxLaneCapacityMeters)
	}
	return Vessel{
		Name:               name,
		LowCapacityMeters:  lowCapacityMeters,
		HighCapacityMeters: highCapacityMeters,
	}, nil
}

// Sailing is a scheduled departure with mutable remaining lane capacity.
type Sailing struct {
	ID                  SailingID
	VesselName          VesselName
	LowRemainingMeters  float64
	HighRemainingMeters float64
	ReservationsCount   int
}

// Reservation is a vehicle booking against a sailing.
type Reservation struct {
	ID             ReservationID
	LicensePlate   LicensePlate
	SailingID      SailingID
	Dimensions     VehicleDimensions
	Phone          Phone
	Onboard        bool
	ExpectedReturn ReturnDate
	ReservedLane   Lane
}

// Vehicle is an entry in the repeat-customer directory.
type Vehicle struct {
	LicensePlate LicensePlate
	Phone        Phone
	Dimensions   VehicleDimensions
}

// VesselStore is the persistence contract for the vessel directory.
type VesselStore interface {
	AddVessel(ctx context.Context, vessel Vessel) error
	VesselByName(ctx context.Context, name VesselName) (Vessel, error)
}

// SailingStore is the persistence contract for sailings.
type SailingStore interface {
	AddSailing(ctx context.Context, sailing Sailing) error
	SailingByID(ctx context.Context, id SailingID) (Sailing, error)
	UpdateSailing(ctx context.Context, sailing Sailing) error
	DeleteSailing(ctx context.Context, id SailingID) error
	RemainingCapacity(ctx context.Context, id SailingID) (low float64, high float64, err error)
	AllSailings(ctx context.Context) ([]Sailing, error)
}

// ReservationStore is the persistence contract for reservations.
type ReservationStore interface {
	AddReservation(ctx context.Context, reservation Reservation) error
	ReservationByID(ctx context.Context, id ReservationID) (Reservation, error)
	DeleteReservation(ctx context.Context, id ReservationID) error
	DeleteReservationsForSailing(ctx context.Context, sailingID SailingID) error
	SetOnboard(ctx context.Context, id ReservationID, onboard bool) error
	OnboardStatus(ctx context.Context, id ReservationID) (bool, error)
	CountReservationsForSailing(ctx context.Context, sailingID SailingID) (int, error)
}

// VehicleStore is the persistence contract for the vehicle directory.
type VehicleStore interface {
	AddVehicle(ctx context.Context, vehicle Vehicle) error
	VehicleByLicensePlate(ctx context.Context, plate LicensePlate) (Vehicle, error)
}

// Store bundles the four entity contracts for backends that provide all of them.
type Store interface {
	VesselStore
	SailingStore
	ReservationStore
	VehicleStore
}

func isLetter(character rune) bool {
	return (character >= 'A' && character <= 'Z') || (character >= 'a' && character <= 'z')
}

func isDigit(character rune) bool {
	return character >= '0' && character <= '9'
}

func allLetters(value string) bool {
	for _, character := range value {
		if !isLetter(character) {
			return false
		}
	}
	return true
}

func allDigits(value string) bool {
	for _, character := range value {
		if !isDigit(character) {
			return false
		}
	}
	return true
}
