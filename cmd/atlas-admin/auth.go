// ABOUTME: Account commands - login, register, logout, profile, verify, reset
// ABOUTME: Passwords are prompted with echo disabled, never taken from argv

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/session"
)

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", usagef("reading password: %v", err)
	}
	return string(pw), nil
}

func cmdLogin(c *console, args []string) error {
	var email string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email", "-e":
			if i+1 < len(args) {
				email = args[i+1]
				i++
			}
		}
	}
	if email == "" {
		return usagef("usage: login --email <address>")
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	if err := c.app.Login(ctx, model.LoginPayload{Email: email, Password: password}); err != nil {
		return err
	}

	user := c.app.Auth.State().Selected
	if user != nil {
		fmt.Printf("  Signed in as %s (%s)\n", user.Name, user.Role)
	}
	return nil
}

func cmdRegister(c *console, args []string) error {
	var name, email string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--email", "-e":
			if i+1 < len(args) {
				email = args[i+1]
				i++
			}
		}
	}
	if name == "" || email == "" {
		return usagef("usage: register --name <name> --email <address>")
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return usagef("passwords do not match")
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	return c.app.Register(ctx, model.RegisterPayload{Name: name, Email: email, Password: password})
}

func cmdLogout(c *console) error {
	ctx, cancel := cmdCtx(c)
	defer cancel()
	return c.app.Logout(ctx)
}

func cmdWhoami(c *console) error {
	token := c.sess.Token()
	if token == "" {
		return usagef("not signed in (run: atlas-admin login --email <address>)")
	}

	claims, err := session.Inspect(token)
	if err != nil {
		return usagef("stored token is not parseable: %v", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Session")
	cyan.Println("  -------")
	fmt.Printf("  Subject:  %s\n", claims.Subject)
	if claims.Role != "" {
		fmt.Printf("  Role:     %s\n", claims.Role)
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Printf("  Expires:  %s\n", claims.ExpiresAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	return nil
}

func cmdProfile(c *console, args []string) error {
	subcmd := "show"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	switch subcmd {
	case "show":
		user, err := c.app.Profile(ctx)
		if err != nil {
			return err
		}
		printUser(user)
		return nil
	case "update":
		var name, birthDate string
		for i := 0; i < len(args); i++ {
			switch args[i] {
			case "--name", "-n":
				if i+1 < len(args) {
					name = args[i+1]
					i++
				}
			case "--birth-date", "-b":
				if i+1 < len(args) {
					birthDate = args[i+1]
					i++
				}
			}
		}
		if name == "" {
			return usagef("usage: profile update --name <name> [--birth-date YYYY-MM-DD]")
		}
		return c.app.UpdateProfile(ctx, model.ProfilePayload{Name: name, BirthDate: birthDate})
	default:
		return usagef("unknown profile subcommand: %s (use show, update)", subcmd)
	}
}

func printUser(u *model.User) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Profile")
	cyan.Println("  -------")
	fmt.Printf("  Name:      %s\n", u.Name)
	fmt.Printf("  Email:     %s\n", u.Email)
	fmt.Printf("  Role:      %s\n", u.Role)
	fmt.Printf("  Verified:  %t\n", u.IsVerified)
	if u.BirthDate != nil {
		fmt.Printf("  Birthday:  %s\n", u.BirthDate.Format("2006-01-02"))
	}
	fmt.Println()
}

// cmdVerify sends an OTP ("verify send") or submits one ("verify 123456").
func cmdVerify(c *console, args []string) error {
	ctx, cancel := cmdCtx(c)
	defer cancel()

	if len(args) == 0 || args[0] == "send" {
		return c.app.SendVerifyOTP(ctx)
	}
	return c.app.VerifyAccount(ctx, model.OTPPayload{OTP: args[0]})
}

// cmdResetPassword requests a reset code or completes the reset:
//
//	reset-password send --email <addr>
//	reset-password --email <addr> --otp <code>   (new password prompted)
func cmdResetPassword(c *console, args []string) error {
	ctx, cancel := cmdCtx(c)
	defer cancel()

	if len(args) > 0 && args[0] == "send" {
		var email string
		rest := args[1:]
		for i := 0; i < len(rest); i++ {
			if rest[i] == "--email" || rest[i] == "-e" {
				if i+1 < len(rest) {
					email = rest[i+1]
					i++
				}
			}
		}
		if email == "" {
			return usagef("usage: reset-password send --email <address>")
		}
		return c.app.SendResetOTP(ctx, email)
	}

	var email, otp string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email", "-e":
			if i+1 < len(args) {
				email = args[i+1]
				i++
			}
		case "--otp", "-o":
			if i+1 < len(args) {
				otp = strings.TrimSpace(args[i+1])
				i++
			}
		}
	}
	if email == "" || otp == "" {
		return usagef("usage: reset-password --email <address> --otp <code>")
	}

	password, err := promptPassword("New password")
	if err != nil {
		return err
	}

	return c.app.ResetPassword(ctx, model.ResetPasswordPayload{
		Email:       email,
		OTP:         otp,
		NewPassword: password,
	})
}
