package filestore

import (
	"context"

	"github.com/harborline/ferry/pkg/ferry"
)

// Sailing record layout: id (10-byte slot), vessel name (26-byte slot), low
// remaining length (float32), high remaining length (float32), reservation
// count (int32).
const (
	sailingIDSlotWidth     = 10
	sailingVesselSlotWidth = 26
	sailingRecordSize      = sailingIDSlotWidth + sailingVesselSlotWidth + 4 + 4 + 4
)

type sailingCodec struct{}

func (sailingCodec) Size() int { return sailingRecordSize }

func (sailingCodec) Encode(record ferry.Sailing, slot []byte) error {
	if err := putFixedString(slot[0:10], record.ID.String()); err != nil {
		return err
	}
	if err := putFixedString(slot[10:36], record.VesselName.String()); err != nil {
		return err
	}
	putFloat32(slot[36:40], record.LowRemainingMeters)
	putFloat32(slot[40:44], record.HighRemainingMeters)
	putInt32(slot[44:48], record.ReservationsCount)
	return nil
}

func (sailingCodec) Decode(slot []byte) (ferry.Sailing, error) {
	id, err := ferry.NewSailingID(fixedString(slot[0:10]))
	if err != nil {
		return ferry.Sailing{}, err
	}
	vesselName, err := ferry.NewVesselName(fixedString(slot[10:36]))
	if err != nil {
		return ferry.Sailing{}, err
	}
	return ferry.Sailing{
		ID:                  id,
		VesselName:          vesselName,
		LowRemainingMeters:  float32At(slot[36:40]),
		HighRemainingMeters: float32At(slot[40:44]),
		ReservationsCount:   int32At(slot[44:48]),
	}, nil
}

// SailingFile stores scheduled departures.
type SailingFile struct {
	records *RecordFile[ferry.Sailing]
}

// OpenSailingFile opens or creates the sailing record file.
func OpenSailingFile(path string) (*SailingFile, error) {
	records, err := OpenRecordFile[ferry.Sailing](path, sailingCodec{})
	if err != nil {
		return nil, err
	}
	return &SailingFile{records: records}, nil
}

// Close releases the backing file.
func (store *SailingFile) Close() error {
	return store.records.Close()
}

// AddSailing appends a sailing record.
func (store *SailingFile) AddSailing(_ context.Context, sailing ferry.Sailing) error {
	if err := store.records.Append(sailing); err != nil {
		return wrapStoreError(errorSubjectSailing, errorCodeAppend, err)
	}
	return nil
}

// SailingByID scans for a sailing by its id.
func (store *SailingFile) SailingByID(_ context.Context, id ferry.SailingID) (ferry.Sailing, error) {
	sailing, found, err := store.records.FindFirst(matchSailingID(id))
	if err != nil {
		return ferry.Sailing{}, wrapStoreError(errorSubjectSailing, errorCodeGet, err)
	}
	if !found {
		return ferry.Sailing{}, wrapStoreError(errorSubjectSailing, errorCodeGet, ferry.ErrSailingNotFound)
	}
	return sailing, nil
}

// UpdateSailing rewrites the full record slot for the sailing's id.
func (store *SailingFile) UpdateSailing(_ context.Context, sailing ferry.Sailing) error {
	updated, err := store.records.UpdateFirst(matchSailingID(sailing.ID), sailing)
	if err != nil {
		return wrapStoreError(errorSubjectSailing, errorCodeUpdate, err)
	}
	if !updated {
		return wrapStoreError(errorSubjectSailing, errorCodeUpdate, ferry.ErrSailingNotFound)
	}
	return nil
}

// DeleteSailing swap-deletes the sailing record.
func (store *SailingFile) DeleteSailing(_ context.Context, id ferry.SailingID) error {
	deleted, err := store.records.DeleteFirst(matchSailingID(id))
	if err != nil {
		return wrapStoreError(errorSubjectSailing, errorCodeDelete, err)
	}
	if !deleted {
		return wrapStoreError(errorSubjectSailing, errorCodeDelete, ferry.ErrSailingNotFound)
	}
	return nil
}

// RemainingCapacity reports the unallocated lane lengths for a sailing.
func (store *SailingFile) RemainingCapacity(ctx context.Context, id ferry.SailingID) (float64, float64, error) {
	sailing, err := store.SailingByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return sailing.LowRemainingMeters, sailing.HighRemainingMeters, nil
}

// AllSailings returns every stored sailing.
func (store *SailingFile) AllSailings(_ context.Context) ([]ferry.Sailing, error) {
	sailings, err := store.records.FindAll(func(ferry.Sailing) bool { return true })
	if err != nil {
		return nil, wrapStoreError(errorSubjectSailing, errorCodeList, err)
	}
	return sailings, nil
}

func matchSailingID(id ferry.SailingID) func(ferry.Sailing) bool {
	return func(candidate ferry.Sailing) bool {
		return candidate.ID == id
	}
}
