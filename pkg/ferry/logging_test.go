package ferry

import (
	"context"
	"testing"
)

type recorderLogger struct {
	entries []OperationLog
}

func (logger *recorderLogger) LogOperation(_ context.Context, entry OperationLog) {
	logger.entries = append(logger.entries, entry)
}

func TestServiceLogsCheckInOperation(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	logger := &recorderLogger{}
	service, err := NewService(store, store, store, store, func() int64 { return 42 }, WithOperationLogger(logger))
	if err != nil {
		test.Fatalf("service init failed: %v", err)
	}
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "ABC-123")
	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 6.0, 1.8), mustPhone(test, "604-555-0101")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	logger.entries = nil

	if _, err := service.CheckIn(context.Background(), plate, sailingID); err != nil {
		test.Fatalf("check in: %v", err)
	}
	if len(logger.entries) != 1 {
		test.Fatalf("expected one log entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if entry.Operation != operationCheckIn || entry.LicensePlate != plate || entry.SailingID != sailingID {
		test.Fatalf("unexpected log entry: %+v", entry)
	}
	if entry.Fee != 14.0 {
		test.Fatalf("expected fee 14.00 in log entry, got %.2f", entry.Fee)
	}
	if entry.Error != nil || entry.Status != operationStatusOK {
		test.Fatalf("expected successful log entry, got %+v", entry)
	}
	if entry.AtUnixUTC != 42 {
		test.Fatalf("expected injected clock value, got %d", entry.AtUnixUTC)
	}
}

func TestServiceLogsErrorStatus(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	logger := &recorderLogger{}
	service, err := NewService(store, store, store, store, func() int64 { return 1 }, WithOperationLogger(logger))
	if err != nil {
		test.Fatalf("service init failed: %v", err)
	}
	sailingID := mustSailingID(test, "TSA-09-15")

	if err := service.DeleteSailing(context.Background(), sailingID); err == nil {
		test.Fatalf("expected error for unknown sailing")
	}
	if len(logger.entries) != 1 {
		test.Fatalf("expected one log entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if entry.Status != operationStatusError || entry.Error == nil {
		test.Fatalf("expected error log entry, got %+v", entry)
	}
	if entry.Operation != operationDeleteSailing {
		test.Fatalf("unexpected operation %q", entry.Operation)
	}
}

func TestServiceLogsReservationLane(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	logger := &recorderLogger{}
	service, err := NewService(store, store, store, store, func() int64 { return 7 }, WithOperationLogger(logger))
	if err != nil {
		test.Fatalf("service init failed: %v", err)
	}
	sailingID := seedSailing(test, store, "TSA-09-15", 100, 100)
	plate := mustLicensePlate(test, "TRK-999")

	if _, err := service.CreateReservationWithVehicle(context.Background(), plate, sailingID, mustDimensions(test, 12.0, 3.5), mustPhone(test, "604-555-0102")); err != nil {
		test.Fatalf("create reservation: %v", err)
	}
	if len(logger.entries) != 1 {
		test.Fatalf("expected one log entry, got %d", len(logger.entries))
	}
	if logger.entries[0].Lane != LaneHigh {
		test.Fatalf("expected high lane in log entry, got %q", logger.entries[0].Lane)
	}
}
