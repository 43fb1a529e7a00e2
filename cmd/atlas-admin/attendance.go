// ABOUTME: Attendance commands - check in/out, breaks and paginated history
// ABOUTME: The open session is whatever record the server last echoed back

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/atlasrobotics/atlas-console/internal/model"
)

func cmdAttendance(c *console, args []string) error {
	subcmd := "history"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	switch subcmd {
	case "checkin":
		rec, err := c.app.CheckIn(ctx)
		if err != nil {
			return err
		}
		printAttendance(rec)
		return nil
	case "checkout":
		rec, err := c.app.CheckOut(ctx)
		if err != nil {
			return err
		}
		printAttendance(rec)
		return nil
	case "break":
		action := ""
		if len(args) > 0 {
			action = args[0]
		}
		switch action {
		case "start":
			return c.app.StartBreak(ctx)
		case "end":
			return c.app.EndBreak(ctx)
		default:
			return usagef("usage: attendance break start|end")
		}
	case "history":
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
		records, err := c.app.AttendanceHistory(ctx, page)
		if err != nil {
			return err
		}
		printAttendanceHistory(records)
		return nil
	default:
		return usagef("unknown attendance subcommand: %s (use checkin, checkout, break, history)", subcmd)
	}
}

func printAttendance(rec *model.AttendanceRecord) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Attendance")
	cyan.Println("  ----------")
	fmt.Printf("  Checked in:   %s\n", rec.CheckIn.Format("15:04"))
	if rec.CheckOut != nil {
		fmt.Printf("  Checked out:  %s\n", rec.CheckOut.Format("15:04"))
		fmt.Printf("  Worked:       %s\n", workedDuration(rec))
	}
	for _, br := range rec.Breaks {
		if br.End != nil {
			fmt.Printf("  Break:        %s - %s\n", br.Start.Format("15:04"), br.End.Format("15:04"))
		} else {
			fmt.Printf("  Break:        %s - (open)\n", br.Start.Format("15:04"))
		}
	}
	fmt.Println()
}

func printAttendanceHistory(records []model.AttendanceRecord) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Attendance History")
	cyan.Println("  ------------------")

	if len(records) == 0 {
		fmt.Println("  (no records)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  DATE\tIN\tOUT\tBREAKS\tWORKED")
	fmt.Fprintln(w, "  ----\t--\t---\t------\t------")
	for i := range records {
		rec := &records[i]
		out := "-"
		if rec.CheckOut != nil {
			out = rec.CheckOut.Format("15:04")
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%s\n",
			rec.CheckIn.Format("2006-01-02"), rec.CheckIn.Format("15:04"),
			out, len(rec.Breaks), workedDuration(rec))
	}
	w.Flush()
	fmt.Println()
}

// workedDuration is check-in to check-out minus closed breaks. An open
// session or open break renders as "-"; the server owns the authoritative
// number, this is display-side arithmetic only.
func workedDuration(rec *model.AttendanceRecord) string {
	if rec.CheckOut == nil {
		return "-"
	}
	worked := rec.CheckOut.Sub(rec.CheckIn)
	for _, br := range rec.Breaks {
		if br.End == nil {
			return "-"
		}
		worked -= br.End.Sub(br.Start)
	}
	return worked.Round(time.Minute).String()
}
