package main

import (
	"fmt"
	"io"

	"github.com/harborline/ferry/pkg/ferry"
)

const reportPageSize = 5

// renderSailingReport prints rows in pages of reportPageSize. When more is
// non-nil it is asked between pages whether to continue; a nil more prints
// every page without pausing.
func renderSailingReport(writer io.Writer, rows []ferry.SailingReportRow, more func() bool) {
	fmt.Fprintln(writer, "Sailing Status Report")
	fmt.Fprintf(writer, "%-10s %-25s %9s %9s %4s %5s\n",
		"Sailing", "Vessel", "LRL(m)", "HRL(m)", "TV", "CF(%)")
	if len(rows) == 0 {
		fmt.Fprintln(writer, "(no sailings scheduled)")
		return
	}
	for index, row := range rows {
		if index > 0 && index%reportPageSize == 0 {
			if more != nil && !more() {
				return
			}
		}
		fmt.Fprintf(writer, "%-10s %-25s %9.1f %9.1f %4d %5.1f\n",
			row.SailingID, row.VesselName,
			row.LowRemainingMeters, row.HighRemainingMeters,
			row.TotalVehicles, row.CapacityFactor*100)
	}
}
