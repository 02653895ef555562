package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborline/ferry/pkg/ferry"
)

func newMenuCommand(cfg *runtimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive terminal menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(cmd, cfg, func(ctx context.Context, service *ferry.Service) error {
				session := &menuSession{
					service: service,
					input:   bufio.NewScanner(cmd.InOrStdin()),
					output:  cmd.OutOrStdout(),
				}
				return session.run(ctx)
			})
		},
	}
}

type menuSession struct {
	service *ferry.Service
	input   *bufio.Scanner
	output  io.Writer
}

func (session *menuSession) run(ctx context.Context) error {
	for {
		fmt.Fprint(session.output, `
Main Menu
  1) Create vessel
  2) Create sailing
  3) Delete sailing
  4) Create reservation
  5) Cancel reservation
  6) Check in vehicles
  7) Sailing status report
  8) Find sailing
  0) Exit
Choice: `)
		choice, ok := session.readLine()
		if !ok {
			return nil
		}
		switch choice {
		case "0":
			return nil
		case "1":
			session.createVessel(ctx)
		case "2":
			session.createSailing(ctx)
		case "3":
			session.deleteSailing(ctx)
		case "4":
			session.createReservation(ctx)
		case "5":
			session.cancelReservation(ctx)
		case "6":
			session.checkInLoop(ctx)
		case "7":
			session.sailingReport(ctx)
		case "8":
			session.findSailing(ctx)
		default:
			fmt.Fprintln(session.output, "Invalid choice")
		}
	}
}

func (session *menuSession) readLine() (string, bool) {
	if !session.input.Scan() {
		return "", false
	}
	return strings.TrimSpace(session.input.Text()), true
}

func (session *menuSession) prompt(label string) (string, bool) {
	fmt.Fprintf(session.output, "%s: ", label)
	return session.readLine()
}

func (session *menuSession) promptFloat(label string) (float64, bool) {
	raw, ok := session.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintln(session.output, "Error: not a number")
		return 0, false
	}
	return value, true
}

func (session *menuSession) promptInt(label string) (int, bool) {
	raw, ok := session.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(session.output, "Error: not a number")
		return 0, false
	}
	return value, true
}

func (session *menuSession) createVessel(ctx context.Context) {
	rawName, ok := session.prompt("Vessel name")
	if !ok {
		return
	}
	name, err := ferry.NewVesselName(rawName)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	lowCapacity, ok := session.promptInt("Low lane capacity (m)")
	if !ok {
		return
	}
	highCapacity, ok := session.promptInt("High lane capacity (m)")
	if !ok {
		return
	}
	vessel, err := session.service.CreateVessel(ctx, name, lowCapacity, highCapacity)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	fmt.Fprintf(session.output, "Vessel %s created\n", vessel.Name)
}

func (session *menuSession) createSailing(ctx context.Context) {
	rawVessel, ok := session.prompt("Vessel name")
	if !ok {
		return
	}
	vesselName, err := ferry.NewVesselName(rawVessel)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	terminal, ok := session.prompt("Departure terminal (3 letters)")
	if !ok {
		return
	}
	day, ok := session.prompt("Departure day (2 digits)")
	if !ok {
		return
	}
	hour, ok := session.prompt("Departure hour (2 digits)")
	if !ok {
		return
	}
	sailing, err := session.service.CreateSailing(ctx, vesselName, terminal, day, hour)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	fmt.Fprintf(session.output, "Sailing %s created\n", sailing.ID)
}

func (session *menuSession) deleteSailing(ctx context.Context) {
	sailingID, ok := session.promptSailingID()
	if !ok {
		return
	}
	if err := session.service.DeleteSailing(ctx, sailingID); err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	fmt.Fprintf(session.output, "Sailing %s and its reservations deleted\n", sailingID)
}

func (session *menuSession) promptSailingID() (ferry.SailingID, bool) {
	raw, ok := session.prompt("Sailing ID")
	if !ok {
		return ferry.SailingID{}, false
	}
	sailingID, err := ferry.NewSailingID(raw)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return ferry.SailingID{}, false
	}
	return sailingID, true
}

func (session *menuSession) promptPlate() (ferry.LicensePlate, bool) {
	raw, ok := session.prompt("License plate")
	if !ok {
		return ferry.LicensePlate{}, false
	}
	plate, err := ferry.NewLicensePlate(raw)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return ferry.LicensePlate{}, false
	}
	return plate, true
}

func (session *menuSession) createReservation(ctx context.Context) {
	plate, ok := session.promptPlate()
	if !ok {
		return
	}
	sailingID, ok := session.promptSailingID()
	if !ok {
		return
	}
	reservation, err := session.service.CreateReservation(ctx, plate, sailingID)
	if err == nil {
		fmt.Fprintf(session.output, "Reserved %s lane space on sailing %s\n", reservation.ReservedLane, sailingID)
		return
	}
	if !errors.Is(err, ferry.ErrVehicleNotFound) {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}

	// Unknown vehicle: collect its particulars and register while booking.
	fmt.Fprintln(session.output, "Vehicle not on file; enter its details.")
	lengthMeters, ok := session.promptFloat("Vehicle length (m)")
	if !ok {
		return
	}
	heightMeters, ok := session.promptFloat("Vehicle height (m)")
	if !ok {
		return
	}
	dimensions, err := ferry.NewVehicleDimensions(lengthMeters, heightMeters)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	rawPhone, ok := session.prompt("Contact phone")
	if !ok {
		return
	}
	phone, err := ferry.NewPhone(rawPhone)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	reservation, err = session.service.CreateReservationWithVehicle(ctx, plate, sailingID, dimensions, phone)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	fmt.Fprintf(session.output, "Reserved %s lane space on sailing %s\n", reservation.ReservedLane, sailingID)
}

func (session *menuSession) cancelReservation(ctx context.Context) {
	plate, ok := session.promptPlate()
	if !ok {
		return
	}
	sailingID, ok := session.promptSailingID()
	if !ok {
		return
	}
	if err := session.service.CancelReservation(ctx, plate, sailingID); err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	fmt.Fprintln(session.output, "Reservation cancelled")
}

// checkInLoop processes arrivals for one sailing until the operator enters 0.
func (session *menuSession) checkInLoop(ctx context.Context) {
	sailingID, ok := session.promptSailingID()
	if !ok {
		return
	}
	for {
		raw, ok := session.prompt("License plate (0 to finish)")
		if !ok || raw == "0" {
			return
		}
		plate, err := ferry.NewLicensePlate(raw)
		if err != nil {
			fmt.Fprintln(session.output, userMessage(err))
			continue
		}
		fee, err := session.service.CheckIn(ctx, plate, sailingID)
		if err != nil {
			fmt.Fprintln(session.output, userMessage(err))
			continue
		}
		fmt.Fprintf(session.output, "Checked in. Fee: $%.2f\n", fee)
	}
}

func (session *menuSession) sailingReport(ctx context.Context) {
	rows, err := session.service.SailingReport(ctx)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	renderSailingReport(session.output, rows, func() bool {
		answer, ok := session.prompt("Show more? (y/n)")
		if !ok {
			return false
		}
		return strings.EqualFold(answer, "y")
	})
}

func (session *menuSession) findSailing(ctx context.Context) {
	sailingID, ok := session.promptSailingID()
	if !ok {
		return
	}
	sailing, err := session.service.SailingByID(ctx, sailingID)
	if err != nil {
		fmt.Fprintln(session.output, userMessage(err))
		return
	}
	fmt.Fprintf(session.output, "Sailing %s on %s\n  Low lane remaining: %.1fm\n  High lane remaining: %.1fm\n  Reservations: %d\n",
		sailing.ID, sailing.VesselName, sailing.LowRemainingMeters, sailing.HighRemainingMeters, sailing.ReservationsCount)
}
