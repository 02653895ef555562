package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/harborline/ferry/internal/store/filestore"
	"github.com/harborline/ferry/internal/store/gormstore"
	"github.com/harborline/ferry/pkg/ferry"
)

const (
	flagDataDir          = "data-dir"
	flagDatabaseURL      = "database-url"
	configKeyDataDir     = "data_dir"
	configKeyDatabaseURL = "database_url"
	defaultDataDir       = "./data"
)

type runtimeConfig struct {
	DataDir     string
	DatabaseURL string
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ferry: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &runtimeConfig{}
	cmd := &cobra.Command{
		Use:           "ferry",
		Short:         "Ferry reservation manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, cfg)
		},
	}

	cmd.PersistentFlags().String(flagDataDir, defaultDataDir, "directory holding the record files")
	cmd.PersistentFlags().String(flagDatabaseURL, "", "optional SQL backend (sqlite:// or postgres:// DSN)")

	cmd.AddCommand(
		newVesselCommand(cfg),
		newSailingCommand(cfg),
		newReservationCommand(cfg),
		newMenuCommand(cfg),
	)
	return cmd
}

func loadConfig(cmd *cobra.Command, cfg *runtimeConfig) error {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv(configKeyDataDir, "FERRY_DATA_DIR"); err != nil {
		return err
	}
	if err := viper.BindEnv(configKeyDatabaseURL, "DATABASE_URL"); err != nil {
		return err
	}

	if err := viper.BindPFlag(configKeyDataDir, cmd.Flags().Lookup(flagDataDir)); err != nil {
		return err
	}
	if err := viper.BindPFlag(configKeyDatabaseURL, cmd.Flags().Lookup(flagDatabaseURL)); err != nil {
		return err
	}

	cfg.DataDir = viper.GetString(configKeyDataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.DatabaseURL = viper.GetString(configKeyDatabaseURL)
	return nil
}

// environment holds the wired service plus everything that must be released
// at exit.
type environment struct {
	service *ferry.Service
	logger  *zap.Logger
	cleanup func() error
}

func (env *environment) close() {
	_ = env.logger.Sync()
	if env.cleanup != nil {
		if err := env.cleanup(); err != nil {
			env.logger.Warn("store shutdown error", zap.Error(err))
		}
	}
}

// runWithService opens the configured backend, runs fn, and tears down.
// Failure to open any backing store aborts before fn runs.
func runWithService(cmd *cobra.Command, cfg *runtimeConfig, fn func(ctx context.Context, service *ferry.Service) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := newEnvironment(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.close()
	return fn(ctx, env.service)
}

func newEnvironment(ctx context.Context, cfg *runtimeConfig) (*environment, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}

	clock := func() int64 { return time.Now().UTC().Unix() }
	operationLogger := &zapOperationLogger{logger: logger}

	if cfg.DatabaseURL == "" {
		stores, err := filestore.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("storage init: %w", err)
		}
		service, err := ferry.NewService(
			stores.Vessels, stores.Sailings, stores.Reservations, stores.Vehicles,
			clock, ferry.WithOperationLogger(operationLogger),
		)
		if err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("service init: %w", err)
		}
		return &environment{service: service, logger: logger, cleanup: stores.Close}, nil
	}

	gormDB, cleanup, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}
	if err := gormstore.Migrate(gormDB); err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	store := gormstore.New(gormDB)
	service, err := ferry.NewService(store, store, store, store, clock, ferry.WithOperationLogger(operationLogger))
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("service init: %w", err)
	}
	return &environment{service: service, logger: logger, cleanup: cleanup}, nil
}

func openDatabase(ctx context.Context, dsn string) (*gorm.DB, func() error, error) {
	driver, sqlitePath, err := resolveDriver(dsn)
	if err != nil {
		return nil, nil, err
	}

	var db *gorm.DB
	switch driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	default:
		return nil, nil, fmt.Errorf("unsupported database scheme %q", driver)
	}
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error { return sqlDB.Close() }
	return db.WithContext(ctx), cleanup, nil
}

func resolveDriver(dsn string) (string, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres", "", nil
	}
	if strings.HasPrefix(dsn, "sqlite://") {
		parsed, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse sqlite url: %w", err)
		}
		path := parsed.Path
		if path == "" {
			path = parsed.Host
		}
		if path == "" || path == "/" {
			path = "ferry.db"
		}
		sqlitePath, err := normalizeSQLitePath(path)
		return "sqlite", sqlitePath, err
	}
	// Treat everything else as a direct sqlite path.
	sqlitePath, err := normalizeSQLitePath(dsn)
	return "sqlite", sqlitePath, err
}

func normalizeSQLitePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if strings.HasPrefix(path, "/") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		return path, nil
	}
	abs := filepath.Join(".", path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	return abs, nil
}

// zapOperationLogger forwards domain operation logs to zap.
type zapOperationLogger struct {
	logger *zap.Logger
}

func (operationLogger *zapOperationLogger) LogOperation(_ context.Context, entry ferry.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
		zap.Int64("at_unix_utc", entry.AtUnixUTC),
	}
	if entry.VesselName.String() != "" {
		fields = append(fields, zap.String("vessel", entry.VesselName.String()))
	}
	if entry.SailingID.String() != "" {
		fields = append(fields, zap.String("sailing_id", entry.SailingID.String()))
	}
	if entry.LicensePlate.String() != "" {
		fields = append(fields, zap.String("license_plate", entry.LicensePlate.String()))
	}
	if entry.Lane != "" {
		fields = append(fields, zap.String("lane", entry.Lane.String()))
	}
	if entry.Fee > 0 {
		fields = append(fields, zap.Float64("fee", entry.Fee))
	}
	if entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
		operationLogger.logger.Warn("operation failed", fields...)
		return
	}
	operationLogger.logger.Info("operation completed", fields...)
}

// userMessage maps domain errors to the terse operator-facing messages the
// menu and subcommands print.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ferry.ErrVesselNotFound):
		return "Error: Vessel not found"
	case errors.Is(err, ferry.ErrSailingNotFound):
		return "Error: Sailing ID does not exist"
	case errors.Is(err, ferry.ErrReservationNotFound):
		return "Error: Reservation not found"
	case errors.Is(err, ferry.ErrVehicleNotFound):
		return "Error: License plate not found"
	case errors.Is(err, ferry.ErrVesselExists):
		return "Error: Vessel name already exists"
	case errors.Is(err, ferry.ErrSailingExists):
		return "Error: Sailing ID conflict"
	case errors.Is(err, ferry.ErrReservationExists):
		return "Error: A reservation already exists for this vehicle on this sailing"
	case errors.Is(err, ferry.ErrCapacityExceeded):
		return "Error: No sufficient lane capacity"
	case errors.Is(err, ferry.ErrAlreadyOnboard):
		return "Error: Customer already checked in"
	}
	return fmt.Sprintf("Error: %v", err)
}
