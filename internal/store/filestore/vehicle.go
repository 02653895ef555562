package filestore

import (
	"context"

	"github.com/harborline/ferry/pkg/ferry"
)

// Vehicle record layout: license plate (11-byte slot), phone (13-byte slot),
// vehicle length (float32), vehicle height (float32).
const (
	vehiclePlateSlotWidth = 11
	vehiclePhoneSlotWidth = 13
	vehicleRecordSize     = vehiclePlateSlotWidth + vehiclePhoneSlotWidth + 4 + 4
)

type vehicleCodec struct{}

func (vehicleCodec) Size() int { return vehicleRecordSize }

func (vehicleCodec) Encode(record ferry.Vehicle, slot []byte) error {
	if err := putFixedString(slot[0:11], record.LicensePlate.String()); err != nil {
		return err
	}
	if err := putFixedString(slot[11:24], record.Phone.String()); err != nil {
		return err
	}
	putFloat32(slot[24:28], record.Dimensions.LengthMeters())
	putFloat32(slot[28:32], record.Dimensions.HeightMeters())
	return nil
}

func (vehicleCodec) Decode(slot []byte) (ferry.Vehicle, error) {
	plate, err := ferry.NewLicensePlate(fixedString(slot[0:11]))
	if err != nil {
		return ferry.Vehicle{}, err
	}
	phone, err := ferry.NewPhone(fixedString(slot[11:24]))
	if err != nil {
		return ferry.Vehicle{}, err
	}
	dimensions, err := ferry.NewVehicleDimensions(float32At(slot[24:28]), float32At(slot[28:32]))
	if err != nil {
		return ferry.Vehicle{}, err
	}
	return ferry.Vehicle{LicensePlate: plate, Phone: phone, Dimensions: dimensions}, nil
}

// VehicleFile is the append-only repeat-customer directory.
type VehicleFile struct {
	records *RecordFile[ferry.Vehicle]
}

// OpenVehicleFile opens or creates the vehicle record file.
func OpenVehicleFile(path string) (*VehicleFile, error) {
	records, err := OpenRecordFile[ferry.Vehicle](path, vehicleCodec{})
	if err != nil {
		return nil, err
	}
	return &VehicleFile{records: records}, nil
}

// Close releases the backing file.
func (store *VehicleFile) Close() error {
	return store.records.Close()
}

// AddVehicle appends a vehicle record.
func (store *VehicleFile) AddVehicle(_ context.Context, vehicle ferry.Vehicle) error {
	if err := store.records.Append(vehicle); err != nil {
		return wrapStoreError(errorSubjectVehicle, errorCodeAppend, err)
	}
	return nil
}

// VehicleByLicensePlate scans for a vehicle by exact plate match.
func (store *VehicleFile) VehicleByLicensePlate(_ context.Context, plate ferry.LicensePlate) (ferry.Vehicle, error) {
	vehicle, found, err := store.records.FindFirst(func(candidate ferry.Vehicle) bool {
		return candidate.LicensePlate == plate
	})
	if err != nil {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeGet, err)
	}
	if !found {
		return ferry.Vehicle{}, wrapStoreError(errorSubjectVehicle, errorCodeGet, ferry.ErrVehicleNotFound)
	}
	return vehicle, nil
}
