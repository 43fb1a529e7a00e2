// ABOUTME: Admin CLI for the Atlas robotics-education backend
// ABOUTME: Wires config, session, API client and app state into terminal commands

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/atlasrobotics/atlas-console/internal/api"
	"github.com/atlasrobotics/atlas-console/internal/app"
	"github.com/atlasrobotics/atlas-console/internal/config"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/session"
)

const banner = `
       _   _
  __ _| |_| | __ _ ___
 / _' | __| |/ _' / __|
| (_| | |_| | (_| \__ \
 \__,_|\__|_|\__,_|___/
`

// console bundles everything a command needs.
type console struct {
	cfg    *config.Config
	sess   *session.Session
	toasts *notify.Hub
	app    *app.App
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(cfg.Session.TokenPath)
	toasts := notify.NewHub()
	logger := newLogger(cfg.Logging)
	client := api.New(cfg.API.BaseURL, cfg.API.RequestTimeout, sess, logger)

	c := &console{
		cfg:    cfg,
		sess:   sess,
		toasts: toasts,
		app:    app.New(client, sess, toasts, logger),
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		err = cmdLogin(c, args)
	case "register":
		err = cmdRegister(c, args)
	case "logout":
		err = cmdLogout(c)
	case "whoami":
		err = cmdWhoami(c)
	case "profile":
		err = cmdProfile(c, args)
	case "verify":
		err = cmdVerify(c, args)
	case "reset-password":
		err = cmdResetPassword(c, args)
	case "books":
		err = cmdBooks(c, args)
	case "companies":
		err = cmdCompanies(c, args)
	case "departments":
		err = cmdDepartments(c, args)
	case "employees":
		err = cmdEmployees(c, args)
	case "faculties":
		err = cmdFaculties(c, args)
	case "regions":
		err = cmdRegions(c, args)
	case "labs":
		err = cmdLabs(c, args)
	case "attendance":
		err = cmdAttendance(c, args)
	case "appointments":
		err = cmdAppointments(c, args)
	case "notifications":
		err = cmdNotifications(c, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	renderToasts(c.toasts)

	if err != nil {
		// Dispatch failures were already rendered as error toasts; only
		// local errors (bad flags, prompt failures) need printing here.
		var ue *usageError
		if errors.As(err, &ue) {
			color.Red("Error: %v\n", ue)
		}
		os.Exit(1)
	}
}

// usageError marks an error raised before any request was dispatched.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: atlas-admin <command> [args]")
	fmt.Println()
	yellow.Println("Account:")
	fmt.Println("  login --email <addr>              Sign in (password is prompted)")
	fmt.Println("  register --name <n> --email <e>   Create an account")
	fmt.Println("  logout                            Sign out and forget the token")
	fmt.Println("  whoami                            Show the stored token's identity")
	fmt.Println("  profile [show|update]             Show or update your profile")
	fmt.Println("  verify [send|<otp>]               Verify your account with an emailed code")
	fmt.Println("  reset-password ...                Request or complete a password reset")
	fmt.Println()
	yellow.Println("Library:")
	fmt.Println("  books list|get|create|update|delete|borrow|return|mine|loans")
	fmt.Println()
	yellow.Println("Directory:")
	fmt.Println("  companies|departments|employees|faculties|regions|labs")
	fmt.Println("      list|get|create|update|delete")
	fmt.Println()
	yellow.Println("Operations:")
	fmt.Println("  attendance checkin|checkout|break|history")
	fmt.Println("  appointments list|mine|book|approve|cancel|checkin|checkout|pay")
	fmt.Println("  notifications list|send|read|delete|watch")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  ATLAS_CONFIG    Config file path (default: ~/.config/atlas/config.yaml)")
	fmt.Println("  ATLAS_TOKEN     Session token override (default: ~/.config/atlas/token)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  atlas-admin login --email admin@example.com")
	fmt.Println("  atlas-admin books create --title 'Dune' --author 'Herbert' \\")
	fmt.Println("      --category Fiction --quantity 3 --region <region-id>")
	fmt.Println("  atlas-admin appointments book --lab <lab-id> --date 2026-09-15 \\")
	fmt.Println("      --time 14:00 --purpose workshop --participants 2")
	fmt.Println()
}

// loadConfig resolves the config file: ATLAS_CONFIG if set (must exist),
// otherwise the default path if present, otherwise built-in defaults.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("ATLAS_CONFIG"); path != "" {
		return config.Load(path)
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return config.Default(), nil
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	path := filepath.Join(configDir, "atlas", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(lc config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// cmdCtx bounds one command invocation. The request timeout already lives
// in the HTTP client; this is the outer bound for multi-request commands.
func cmdCtx(c *console) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 4*c.cfg.API.RequestTimeout)
}

// renderToasts drains and prints whatever the dispatchers raised.
func renderToasts(hub *notify.Hub) {
	for _, t := range hub.Drain() {
		switch t.Level {
		case notify.Success:
			color.Green("✓ %s\n", t.Message)
		case notify.Error:
			color.Red("✗ %s\n", t.Message)
		default:
			fmt.Println("  " + t.Message)
		}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// parseIntArg parses a string flag value to int.
func parseIntArg(s string) (int, error) {
	var v int
	_, err := fmt.Sscanf(s, "%d", &v)
	return v, err
}

// fmtTime renders a timestamp for table output.
func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 02 15:04")
}
