// ABOUTME: Appointment commands - booking, lifecycle transitions and payment capture
// ABOUTME: Status transitions are server-enforced; the CLI just requests them

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/atlasrobotics/atlas-console/internal/model"
)

func cmdAppointments(c *console, args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	switch subcmd {
	case "list", "ls":
		page := 1
		for i := 0; i < len(args); i++ {
			if args[i] == "--page" || args[i] == "-p" {
				if i+1 < len(args) {
					n, err := parseIntArg(args[i+1])
					if err != nil {
						return usagef("invalid page: %s", args[i+1])
					}
					page = n
					i++
				}
			}
		}
		appts, err := c.app.ListAppointments(ctx, page)
		if err != nil {
			return err
		}
		printAppointments("Appointments", appts)
		return nil

	case "mine":
		appts, err := c.app.MyAppointments(ctx)
		if err != nil {
			return err
		}
		printAppointments("My Appointments", appts)
		return nil

	case "book":
		return cmdAppointmentsBook(c, ctx, args)

	case "approve":
		if len(args) < 1 {
			return usagef("usage: appointments approve <appointment-id>")
		}
		return c.app.ApproveAppointment(ctx, args[0])

	case "cancel":
		if len(args) < 1 {
			return usagef("usage: appointments cancel <appointment-id>")
		}
		return c.app.CancelAppointment(ctx, args[0])

	case "checkin":
		if len(args) < 1 {
			return usagef("usage: appointments checkin <appointment-id>")
		}
		return c.app.CheckInAppointment(ctx, args[0])

	case "checkout":
		if len(args) < 1 {
			return usagef("usage: appointments checkout <appointment-id>")
		}
		return c.app.CheckOutAppointment(ctx, args[0])

	case "pay":
		var payload model.CapturePaymentPayload
		for i := 0; i < len(args); i++ {
			switch args[i] {
			case "--appointment", "-a":
				if i+1 < len(args) {
					payload.AppointmentID = args[i+1]
					i++
				}
			case "--reference", "-r":
				if i+1 < len(args) {
					payload.Reference = args[i+1]
					i++
				}
			}
		}
		if payload.AppointmentID == "" || payload.Reference == "" {
			return usagef("usage: appointments pay --appointment <id> --reference <checkout-ref>")
		}
		return c.app.CapturePayment(ctx, payload)

	default:
		return usagef("unknown appointments subcommand: %s (use list, mine, book, approve, cancel, checkin, checkout, pay)", subcmd)
	}
}

func cmdAppointmentsBook(c *console, ctx context.Context, args []string) error {
	var payload model.AppointmentPayload
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--lab", "-l":
			if i+1 < len(args) {
				payload.LabID = args[i+1]
				i++
			}
		case "--date", "-d":
			if i+1 < len(args) {
				payload.Date = args[i+1]
				i++
			}
		case "--time", "-t":
			if i+1 < len(args) {
				payload.Time = args[i+1]
				i++
			}
		case "--purpose":
			if i+1 < len(args) {
				payload.Purpose = args[i+1]
				i++
			}
		case "--participants", "-n":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					return usagef("invalid participants: %s", args[i+1])
				}
				payload.Participants = n
				i++
			}
		}
	}

	appt, err := c.app.BookAppointment(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Printf("  Appointment %s: %s %s at lab %s (%s)\n",
		appt.ID, appt.Date, appt.Time, appt.LabID, appt.Status)
	return nil
}

func printAppointments(title string, appts []model.Appointment) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  " + title)
	cyan.Println("  " + dashes(len(title)))

	if len(appts) == 0 {
		fmt.Println("  (no appointments)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tDATE\tTIME\tLAB\tPURPOSE\tSTATUS\tPAYMENT")
	fmt.Fprintln(w, "  --\t----\t----\t---\t-------\t------\t-------")
	for _, ap := range appts {
		status := ap.Status
		switch ap.Status {
		case model.AppointmentCancelled:
			status = color.RedString(ap.Status)
		case model.AppointmentApproved, model.AppointmentCompleted:
			status = color.GreenString(ap.Status)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(ap.ID, 12), ap.Date, ap.Time, truncate(ap.LabID, 12),
			truncate(ap.Purpose, 24), status, ap.PaymentStatus)
	}
	w.Flush()
	fmt.Println()
}
