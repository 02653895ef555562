package ferry

// Fare tiers. A vehicle at most 7 m long and 2 m high pays the flat rate;
// longer vehicles pay per meter of length, with a premium above the
// overheight threshold.
const (
	standardVehicleFee         = 14.0
	standardLengthLimitMeters  = 7.0
	longLowRatePerMeter        = 2.0
	longOverheightRatePerMeter = 3.0
)

// FeeFor returns the fare for a vehicle of the given dimensions.
//
// A vehicle no longer than 7 m but taller than 2 m matches no tier and is
// charged nothing. That combination was never priced by the business rules
// this system inherited; it is kept as-is rather than guessed at.
func FeeFor(dimensions VehicleDimensions) float64 {
	length := dimensions.LengthMeters()
	height := dimensions.HeightMeters()
	switch {
	case length <= standardLengthLimitMeters && height <= OverheightThresholdMeters:
		return standardVehicleFee
	case length > standardLengthLimitMeters && height <= OverheightThresholdMeters:
		return length * longLowRatePerMeter
	case length > standardLengthLimitMeters && height > OverheightThresholdMeters:
		return length * longOverheightRatePerMeter
	}
	return 0
}
