// Package filestore persists ferry records as headerless fixed-width binary
// files, one per entity, in a single data directory. Lookups are linear
// scans; deletion swaps the last record into the freed slot and truncates,
// so record order is not stable.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harborline/ferry/pkg/ferry"
)

const (
	vesselFileName      = "vessels.dat"
	sailingFileName     = "sailings.dat"
	reservationFileName = "reservations.dat"
	vehicleFileName     = "vehicles.dat"

	errorOperationStore = "store"

	errorSubjectVessel      = "vessel"
	errorSubjectSailing     = "sailing"
	errorSubjectReservation = "reservation"
	errorSubjectVehicle     = "vehicle"

	errorCodeAppend  = "append"
	errorCodeGet     = "get"
	errorCodeUpdate  = "update"
	errorCodeDelete  = "delete"
	errorCodeList    = "list"
	errorCodeCount   = "count"
	errorCodeOnboard = "onboard"
)

func wrapStoreError(subject string, code string, err error) error {
	return ferry.WrapError(errorOperationStore, subject, code, err)
}

// Stores bundles the four entity stores backed by one data directory. Each
// store owns exclusive access to its file for the process lifetime.
type Stores struct {
	Vessels      *VesselFile
	Sailings     *SailingFile
	Reservations *ReservationFile
	Vehicles     *VehicleFile

	directory string
}

// Open opens (or creates) the four backing files under directory. Failure to
// open any of them closes the rest and aborts.
func Open(directory string) (*Stores, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", directory, err)
	}
	stores := &Stores{directory: directory}
	if err := stores.open(); err != nil {
		return nil, err
	}
	return stores, nil
}

func (stores *Stores) open() error {
	vessels, err := OpenVesselFile(filepath.Join(stores.directory, vesselFileName))
	if err != nil {
		return err
	}
	sailings, err := OpenSailingFile(filepath.Join(stores.directory, sailingFileName))
	if err != nil {
		_ = vessels.Close()
		return err
	}
	reservations, err := OpenReservationFile(filepath.Join(stores.directory, reservationFileName))
	if err != nil {
		_ = vessels.Close()
		_ = sailings.Close()
		return err
	}
	vehicles, err := OpenVehicleFile(filepath.Join(stores.directory, vehicleFileName))
	if err != nil {
		_ = vessels.Close()
		_ = sailings.Close()
		_ = reservations.Close()
		return err
	}
	stores.Vessels = vessels
	stores.Sailings = sailings
	stores.Reservations = reservations
	stores.Vehicles = vehicles
	return nil
}

// Close releases every backing file, in reverse open order.
func (stores *Stores) Close() error {
	return errors.Join(
		stores.Vehicles.Close(),
		stores.Reservations.Close(),
		stores.Sailings.Close(),
		stores.Vessels.Close(),
	)
}

// Reset closes and reopens every backing file.
func (stores *Stores) Reset() error {
	if err := stores.Close(); err != nil {
		return err
	}
	return stores.open()
}
