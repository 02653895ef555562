package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harborline/ferry/pkg/ferry"
)

func newVesselCommand(cfg *runtimeConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vessel",
		Short: "Manage vessels",
	}
	cmd.AddCommand(newVesselCreateCommand(cfg))
	return cmd
}

func newVesselCreateCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME LOW_LANE_METERS HIGH_LANE_METERS",
		Short: "Register a vessel with its lane capacities",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := ferry.NewVesselName(args[0])
			if err != nil {
				return err
			}
			lowCapacity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("low lane capacity: %w", err)
			}
			highCapacity, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("high lane capacity: %w", err)
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				vessel, err := service.CreateVessel(ctx, name, lowCapacity, highCapacity)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Vessel %s created (low %dm, high %dm)\n",
					vessel.Name, vessel.LowCapacityMeters, vessel.HighCapacityMeters)
				return nil
			})
		},
	}
}

func newSailingCommand(cfg *runtimeConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sailing",
		Short: "Manage sailings",
	}
	cmd.AddCommand(
		newSailingCreateCommand(cfg),
		newSailingDeleteCommand(cfg),
		newSailingShowCommand(cfg),
		newSailingReportCommand(cfg),
	)
	return cmd
}

func newSailingCreateCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "create VESSEL TERMINAL DAY HOUR",
		Short: "Schedule a sailing (terminal is a 3-letter code, day and hour are two digits)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vesselName, err := ferry.NewVesselName(args[0])
			if err != nil {
				return err
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				sailing, err := service.CreateSailing(ctx, vesselName, args[1], args[2], args[3])
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sailing %s created on vessel %s\n", sailing.ID, sailing.VesselName)
				return nil
			})
		},
	}
}

func newSailingDeleteCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SAILING_ID",
		Short: "Delete a sailing and all its reservations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sailingID, err := ferry.NewSailingID(args[0])
			if err != nil {
				return err
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				if err := service.DeleteSailing(ctx, sailingID); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sailing %s deleted\n", sailingID)
				return nil
			})
		},
	}
}

func newSailingShowCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show SAILING_ID",
		Short: "Show one sailing's vessel and remaining lane capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sailingID, err := ferry.NewSailingID(args[0])
			if err != nil {
				return err
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				sailing, err := service.SailingByID(ctx, sailingID)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sailing %s\n  Vessel: %s\n  Low lane remaining: %.1fm\n  High lane remaining: %.1fm\n  Reservations: %d\n",
					sailing.ID, sailing.VesselName, sailing.LowRemainingMeters, sailing.HighRemainingMeters, sailing.ReservationsCount)
				return nil
			})
		},
	}
}

func newSailingReportCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the sailing status report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				rows, err := service.SailingReport(ctx)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				renderSailingReport(cmd.OutOrStdout(), rows, nil)
				return nil
			})
		},
	}
}

func newReservationCommand(cfg *runtimeConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Manage vehicle reservations",
	}
	cmd.AddCommand(
		newReservationCreateCommand(cfg),
		newReservationCancelCommand(cfg),
		newReservationCheckinCommand(cfg),
	)
	return cmd
}

func newReservationCreateCommand(cfg *runtimeConfig) *cobra.Command {
	var (
		lengthMeters float64
		heightMeters float64
		phoneNumber  string
	)
	cmd := &cobra.Command{
		Use:   "create PLATE SAILING_ID",
		Short: "Reserve lane space for a vehicle on a sailing",
		Long: "Reserve lane space for a vehicle on a sailing. Known vehicles are looked up " +
			"by plate; for a new vehicle pass --length, --height, and --phone.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plate, err := ferry.NewLicensePlate(args[0])
			if err != nil {
				return err
			}
			sailingID, err := ferry.NewSailingID(args[1])
			if err != nil {
				return err
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				var reservation ferry.Reservation
				if lengthMeters > 0 || heightMeters > 0 || phoneNumber != "" {
					dimensions, err := ferry.NewVehicleDimensions(lengthMeters, heightMeters)
					if err != nil {
						return err
					}
					phone, err := ferry.NewPhone(phoneNumber)
					if err != nil {
						return err
					}
					reservation, err = service.CreateReservationWithVehicle(ctx, plate, sailingID, dimensions, phone)
					if err != nil {
						fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
						return err
					}
				} else {
					reservation, err = service.CreateReservation(ctx, plate, sailingID)
					if err != nil {
						fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reserved %s on sailing %s (%s lane)\n",
					reservation.LicensePlate, reservation.SailingID, reservation.ReservedLane)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&lengthMeters, "length", 0, "vehicle length in meters (new vehicles)")
	cmd.Flags().Float64Var(&heightMeters, "height", 0, "vehicle height in meters (new vehicles)")
	cmd.Flags().StringVar(&phoneNumber, "phone", "", "contact phone number (new vehicles)")
	return cmd
}

func newReservationCancelCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel PLATE SAILING_ID",
		Short: "Cancel a reservation and restore lane capacity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plate, err := ferry.NewLicensePlate(args[0])
			if err != nil {
				return err
			}
			sailingID, err := ferry.NewSailingID(args[1])
			if err != nil {
				return err
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				if err := service.CancelReservation(ctx, plate, sailingID); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reservation for %s on sailing %s cancelled\n", plate, sailingID)
				return nil
			})
		},
	}
}

func newReservationCheckinCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin PLATE SAILING_ID",
		Short: "Check a vehicle in at the berth and quote its fee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plate, err := ferry.NewLicensePlate(args[0])
			if err != nil {
				return err
			}
			sailingID, err := ferry.NewSailingID(args[1])
			if err != nil {
				return err
			}
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				fee, err := service.CheckIn(ctx, plate, sailingID)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), userMessage(err))
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Vehicle %s checked in. Fee: $%.2f\n", plate, fee)
				return nil
			})
		},
	}
}
