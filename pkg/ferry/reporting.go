package ferry

import "context"

// SailingReportRow is one line of the sailing report.
type SailingReportRow struct {
	SailingID           SailingID
	VesselName          VesselName
	LowRemainingMeters  float64
	HighRemainingMeters float64
	TotalVehicles       int
	CapacityFactor      float64
}

// SailingReport lists every sailing with its booked-vehicle count and the
// fraction of total lane length still unallocated. A sailing whose vessel
// record is missing reports a zero capacity factor.
func (service *Service) SailingReport(ctx context.Context) ([]SailingReportRow, error) {
	sailings, err := service.sailings.AllSailings(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]SailingReportRow, 0, len(sailings))
	for _, sailing := range sailings {
		totalVehicles, err := service.reservations.CountReservationsForSailing(ctx, sailing.ID)
		if err != nil {
			return nil, err
		}
		row := SailingReportRow{
			SailingID:           sailing.ID,
			VesselName:          sailing.VesselName,
			LowRemainingMeters:  sailing.LowRemainingMeters,
			HighRemainingMeters: sailing.HighRemainingMeters,
			TotalVehicles:       totalVehicles,
		}
		vessel, err := service.vessels.VesselByName(ctx, sailing.VesselName)
		if err == nil {
			totalCapacity := float64(vessel.LowCapacityMeters + vessel.HighCapacityMeters)
			if totalCapacity > 0 {
				row.CapacityFactor = (sailing.LowRemainingMeters + sailing.HighRemainingMeters) / totalCapacity
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SailingByID returns a single sailing.
func (service *Service) SailingByID(ctx context.Context, id SailingID) (Sailing, error) {
	return service.sailings.SailingByID(ctx, id)
}
