// ABOUTME: Notification commands - list, broadcast, mark read, delete, watch
// ABOUTME: watch polls the list on the configured interval until interrupted

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/atlasrobotics/atlas-console/internal/model"
)

func cmdNotifications(c *console, args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		ctx, cancel := cmdCtx(c)
		defer cancel()
		notifs, err := c.app.ListNotifications(ctx)
		if err != nil {
			return err
		}
		printNotifications(notifs)
		return nil

	case "send", "broadcast":
		var payload model.NotificationPayload
		for i := 0; i < len(args); i++ {
			switch args[i] {
			case "--title", "-t":
				if i+1 < len(args) {
					payload.Title = args[i+1]
					i++
				}
			case "--message", "-m":
				if i+1 < len(args) {
					payload.Message = args[i+1]
					i++
				}
			}
		}
		ctx, cancel := cmdCtx(c)
		defer cancel()
		return c.app.BroadcastNotification(ctx, payload)

	case "read":
		if len(args) < 1 {
			return usagef("usage: notifications read <notification-id>")
		}
		ctx, cancel := cmdCtx(c)
		defer cancel()
		return c.app.MarkNotificationRead(ctx, args[0])

	case "delete", "rm", "remove":
		if len(args) < 1 {
			return usagef("usage: notifications delete <notification-id>")
		}
		ctx, cancel := cmdCtx(c)
		defer cancel()
		return c.app.DeleteNotification(ctx, args[0])

	case "watch":
		return cmdNotificationsWatch(c)

	default:
		return usagef("unknown notifications subcommand: %s (use list, send, read, delete, watch)", subcmd)
	}
}

// cmdNotificationsWatch polls the notification list and prints anything
// new until Ctrl+C. There is no push channel; polling interval comes
// from the watch config section.
func cmdNotificationsWatch(c *console) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := c.cfg.Watch.PollInterval
	fmt.Printf("Watching notifications every %s (Ctrl+C to stop)\n", interval)

	seen := make(map[string]bool)
	first := true

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		notifs, err := c.app.ListNotifications(ctx)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println()
				return nil
			}
			// Render the failure toast now instead of after the loop ends.
			renderToasts(c.toasts)
		}

		for _, n := range notifs {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			if first {
				continue
			}
			color.Cyan("[%s] %s\n", n.CreatedAt.Format("15:04:05"), n.Title)
			fmt.Println("  " + n.Message)
		}
		first = false

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-ticker.C:
		}
	}
}

func printNotifications(notifs []model.Notification) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Notifications")
	cyan.Println("  -------------")

	if len(notifs) == 0 {
		fmt.Println("  (no notifications)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tMESSAGE\tREAD\tCREATED")
	fmt.Fprintln(w, "  --\t-----\t-------\t----\t-------")
	for _, n := range notifs {
		read := ""
		if n.Read {
			read = "✓"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			truncate(n.ID, 12), truncate(n.Title, 24), truncate(n.Message, 40),
			read, fmtTime(n.CreatedAt))
	}
	w.Flush()
	fmt.Println()
}
