package filestore

import (
	"context"

	"github.com/harborline/ferry/pkg/ferry"
)

// Vessel record layout: name (25-byte NUL-terminated slot), low capacity
// (int32), high capacity (int32).
const (
	vesselNameSlotWidth = 25
	vesselRecordSize    = vesselNameSlotWidth + 4 + 4
)

type vesselCodec struct{}

func (vesselCodec) Size() int { return vesselRecordSize }

func (vesselCodec) Encode(record ferry.Vessel, slot []byte) error {
	if err := putFixedString(slot[0:vesselNameSlotWidth], record.Name.String()); err != nil {
		return err
	}
	putInt32(slot[25:29], record.LowCapacityMeters)
	putInt32(slot[29:33], record.HighCapacityMeters)
	return nil
}

func (vesselCodec) Decode(slot []byte) (ferry.Vessel, error) {
	name, err := ferry.NewVesselName(fixedString(slot[0:vesselNameSlotWidth]))
	if err != nil {
		return ferry.Vessel{}, err
	}
	return ferry.NewVessel(name, int32At(slot[25:29]), int32At(slot[29:33]))
}

// VesselFile is the append-only vessel directory.
type VesselFile struct {
	records *RecordFile[ferry.Vessel]
}

// OpenVesselFile opens or creates the vessel record file.
func OpenVesselFile(path string) (*VesselFile, error) {
	records, err := OpenRecordFile[ferry.Vessel](path, vesselCodec{})
	if err != nil {
		return nil, err
	}
	return &VesselFile{records: records}, nil
}

// Close releases the backing file.
func (store *VesselFile) Close() error {
	return store.records.Close()
}

// AddVessel appends a vessel record.
func (store *VesselFile) AddVessel(_ context.Context, vessel ferry.Vessel) error {
	if err := store.records.Append(vessel); err != nil {
		return wrapStoreError(errorSubjectVessel, errorCodeAppend, err)
	}
	return nil
}

// VesselByName scans for a vessel with an exactly matching name.
func (store *VesselFile) VesselByName(_ context.Context, name ferry.VesselName) (ferry.Vessel, error) {
	vessel, found, err := store.records.FindFirst(func(candidate ferry.Vessel) bool {
		return candidate.Name == name
	})
	if err != nil {
		return ferry.Vessel{}, wrapStoreError(errorSubjectVessel, errorCodeGet, err)
	}
	if !found {
		return ferry.Vessel{}, wrapStoreError(errorSubjectVessel, errorCodeGet, ferry.ErrVesselNotFound)
	}
	return vessel, nil
}
