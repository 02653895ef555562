package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// ErrClosed is returned by every operation on a closed record file.
var ErrClosed = errors.New("record file is closed")

// Codec translates one record between its domain value and its fixed-width
// on-disk slot. Size must be constant: positional addressing and the
// swap-and-truncate delete both depend on it.
type Codec[T any] interface {
	Size() int
	Encode(record T, slot []byte) error
	Decode(slot []byte) (T, error)
}

// RecordFile is a headerless sequence of fixed-width records backed by a
// single long-lived file handle. There is no record count and no checksum;
// file size divided by record size is the record count.
type RecordFile[T any] struct {
	mutex sync.Mutex
	path  string
	file  *os.File
	codec Codec[T]
}

// OpenRecordFile opens the backing file for read and write, creating it
// empty when it does not exist.
func OpenRecordFile[T any](path string, codec Codec[T]) (*RecordFile[T], error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open record file %s: %w", path, err)
	}
	return &RecordFile[T]{path: path, file: file, codec: codec}, nil
}

// Close releases the file handle. Closing an already-closed file is a no-op.
func (recordFile *RecordFile[T]) Close() error {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return nil
	}
	err := recordFile.file.Close()
	recordFile.file = nil
	return err
}

// Len returns the number of records currently stored.
func (recordFile *RecordFile[T]) Len() (int, error) {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	return recordFile.lenLocked()
}

// Append writes a record at the logical end of the file.
func (recordFile *RecordFile[T]) Append(record T) error {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return ErrClosed
	}
	slot := make([]byte, recordFile.codec.Size())
	if err := recordFile.codec.Encode(record, slot); err != nil {
		return err
	}
	count, err := recordFile.lenLocked()
	if err != nil {
		return err
	}
	if _, err := recordFile.file.WriteAt(slot, recordFile.offset(count)); err != nil {
		return fmt.Errorf("append record to %s: %w", recordFile.path, err)
	}
	return nil
}

// FindFirst scans from the start and returns the first record the predicate
// accepts. The boolean reports whether a match was found.
func (recordFile *RecordFile[T]) FindFirst(match func(T) bool) (T, bool, error) {
	var zero T
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return zero, false, ErrClosed
	}
	record, _, found, err := recordFile.scanLocked(match)
	return record, found, err
}

// FindAll scans the whole file collecting every record the predicate accepts.
func (recordFile *RecordFile[T]) FindAll(match func(T) bool) ([]T, error) {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return nil, ErrClosed
	}
	count, err := recordFile.lenLocked()
	if err != nil {
		return nil, err
	}
	var matches []T
	for index := 0; index < count; index++ {
		record, err := recordFile.readLocked(index)
		if err != nil {
			return nil, err
		}
		if match(record) {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

// Count reports how many records the predicate accepts.
func (recordFile *RecordFile[T]) Count(match func(T) bool) (int, error) {
	matches, err := recordFile.FindAll(match)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// DeleteFirst removes the first record the predicate accepts by overwriting
// its slot with the last record and truncating the file by one record width.
// Record order is not preserved. The boolean reports whether anything was
// deleted.
func (recordFile *RecordFile[T]) DeleteFirst(match func(T) bool) (bool, error) {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return false, ErrClosed
	}
	_, targetIndex, found, err := recordFile.scanLocked(match)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	count, err := recordFile.lenLocked()
	if err != nil {
		return false, err
	}
	lastIndex := count - 1
	if targetIndex != lastIndex {
		lastSlot := make([]byte, recordFile.codec.Size())
		if _, err := recordFile.file.ReadAt(lastSlot, recordFile.offset(lastIndex)); err != nil {
			return false, fmt.Errorf("read last record of %s: %w", recordFile.path, err)
		}
		if _, err := recordFile.file.WriteAt(lastSlot, recordFile.offset(targetIndex)); err != nil {
			return false, fmt.Errorf("overwrite record in %s: %w", recordFile.path, err)
		}
	}
	if err := recordFile.file.Truncate(recordFile.offset(lastIndex)); err != nil {
		return false, fmt.Errorf("truncate %s: %w", recordFile.path, err)
	}
	return true, nil
}

// DeleteAllMatching rewrites the whole file keeping only the records the
// predicate rejects.
func (recordFile *RecordFile[T]) DeleteAllMatching(match func(T) bool) error {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return ErrClosed
	}
	count, err := recordFile.lenLocked()
	if err != nil {
		return err
	}
	var kept []T
	for index := 0; index < count; index++ {
		record, err := recordFile.readLocked(index)
		if err != nil {
			return err
		}
		if !match(record) {
			kept = append(kept, record)
		}
	}
	if err := recordFile.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate %s: %w", recordFile.path, err)
	}
	for index, record := range kept {
		slot := make([]byte, recordFile.codec.Size())
		if err := recordFile.codec.Encode(record, slot); err != nil {
			return err
		}
		if _, err := recordFile.file.WriteAt(slot, recordFile.offset(index)); err != nil {
			return fmt.Errorf("rewrite %s: %w", recordFile.path, err)
		}
	}
	return nil
}

// UpdateFirst overwrites the slot of the first record the predicate accepts.
// The fixed record width keeps every other offset stable. The boolean
// reports whether a record was updated.
func (recordFile *RecordFile[T]) UpdateFirst(match func(T) bool, record T) (bool, error) {
	recordFile.mutex.Lock()
	defer recordFile.mutex.Unlock()
	if recordFile.file == nil {
		return false, ErrClosed
	}
	_, targetIndex, found, err := recordFile.scanLocked(match)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	slot := make([]byte, recordFile.codec.Size())
	if err := recordFile.codec.Encode(record, slot); err != nil {
		return false, err
	}
	if _, err := recordFile.file.WriteAt(slot, recordFile.offset(targetIndex)); err != nil {
		return false, fmt.Errorf("update record in %s: %w", recordFile.path, err)
	}
	return true, nil
}

func (recordFile *RecordFile[T]) offset(index int) int64 {
	return int64(index) * int64(recordFile.codec.Size())
}

func (recordFile *RecordFile[T]) lenLocked() (int, error) {
	if recordFile.file == nil {
		return 0, ErrClosed
	}
	info, err := recordFile.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", recordFile.path, err)
	}
	return int(info.Size()) / recordFile.codec.Size(), nil
}

func (recordFile *RecordFile[T]) readLocked(index int) (T, error) {
	var zero T
	slot := make([]byte, recordFile.codec.Size())
	if _, err := recordFile.file.ReadAt(slot, recordFile.offset(index)); err != nil && err != io.EOF {
		return zero, fmt.Errorf("read record %d of %s: %w", index, recordFile.path, err)
	}
	return recordFile.codec.Decode(slot)
}

func (recordFile *RecordFile[T]) scanLocked(match func(T) bool) (T, int, bool, error) {
	var zero T
	count, err := recordFile.lenLocked()
	if err != nil {
		return zero, 0, false, err
	}
	for index := 0; index < count; index++ {
		record, err := recordFile.readLocked(index)
		if err != nil {
			return zero, 0, false, err
		}
		if match(record) {
			return record, index, true, nil
		}
	}
	return zero, 0, false, nil
}
