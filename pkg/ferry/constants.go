package ferry

const (
	operationCreateVessel      = "create_vessel"
	operationCreateSailing     = "create_sailing"
	operationDeleteSailing     = "delete_sailing"
	operationCreateReservation = "create_reservation"
	operationCancelReservation = "cancel_reservation"
	operationCheckIn           = "check_in"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	errorSubjectVessel      = "vessel"
	errorSubjectSailing     = "sailing"
	errorSubjectReservation = "reservation"
	errorSubjectVehicle     = "vehicle"

	errorCodeInconsistency = "inconsistency"
)

// Field budgets shared with the fixed-width storage codecs.
const (
	MaxVesselNameLength   = 24
	MaxLicensePlateLength = 10
	MaxPhoneLength        = 14
	SailingIDLength       = 9
	ReservationIDLength   = 20
)

const (
	// MaxLaneCapacityMeters bounds a vessel lane's total length.
	MaxLaneCapacityMeters = 3600

	// MaxVehicleLengthMeters and MaxVehicleHeightMeters bound booking input.
	MaxVehicleLengthMeters = 99.9
	MaxVehicleHeightMeters = 9.9

	// DockingBufferMeters is added to a vehicle's length whenever lane
	// capacity is committed or restored.
	DockingBufferMeters = 0.5

	// OverheightThresholdMeters splits low-lane-eligible vehicles from
	// high-lane-only vehicles.
	OverheightThresholdMeters = 2.0
)

// reservationIDPadding fills the composite reservation key out to its fixed width.
const reservationIDPadding = '*'
