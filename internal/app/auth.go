// ABOUTME: Auth dispatchers: login, registration, profile, OTP verification, reset
// ABOUTME: Login and registration persist the session token; logout clears it

package app

import (
	"context"
	"net/http"

	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// authEnvelope is the login/register response: the session token plus the
// account record.
type authEnvelope struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates and persists the session token.
func (a *App) Login(ctx context.Context, payload model.LoginPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Auth.Begin()
	var out authEnvelope
	if err := a.api.Do(ctx, http.MethodPost, "/auth/login", payload, &out); err != nil {
		return fail(a, a.Auth, seq, "login", err)
	}
	if err := a.sess.Save(out.Token); err != nil {
		return fail(a, a.Auth, seq, "login", err)
	}
	a.Auth.Commit(seq, state.SelectedUpdated[model.User]{Item: out.User})
	a.toasts.Publish(notify.Success, "signed in as %s", out.User.Email)
	return nil
}

// Register creates an account and persists the returned session token.
func (a *App) Register(ctx context.Context, payload model.RegisterPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Auth.Begin()
	var out authEnvelope
	if err := a.api.Do(ctx, http.MethodPost, "/auth/register", payload, &out); err != nil {
		return fail(a, a.Auth, seq, "registration", err)
	}
	if err := a.sess.Save(out.Token); err != nil {
		return fail(a, a.Auth, seq, "registration", err)
	}
	a.Auth.Commit(seq, state.SelectedUpdated[model.User]{Item: out.User})
	a.toasts.Publish(notify.Success, "account created for %s", out.User.Email)
	return nil
}

// Logout invalidates the server session and clears the persisted token.
func (a *App) Logout(ctx context.Context) error {
	seq := a.Auth.Begin()
	if err := a.api.Do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fail(a, a.Auth, seq, "logout", err)
	}
	if err := a.sess.Clear(); err != nil {
		return fail(a, a.Auth, seq, "logout", err)
	}
	a.Auth.Commit(seq, state.Cleared[model.User]{})
	a.toasts.Publish(notify.Success, "signed out")
	return nil
}

// Profile fetches the authenticated account into the auth store.
func (a *App) Profile(ctx context.Context) (*model.User, error) {
	seq := a.Auth.Begin()
	var out itemEnvelope[model.User]
	if err := a.api.Do(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, fail(a, a.Auth, seq, "loading profile", err)
	}
	a.Auth.Commit(seq, state.ItemLoaded[model.User]{Item: out.Data})
	return &out.Data, nil
}

// UpdateProfile saves profile changes and keeps the server's echo.
func (a *App) UpdateProfile(ctx context.Context, payload model.ProfilePayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Auth.Begin()
	var out itemEnvelope[model.User]
	if err := a.api.Do(ctx, http.MethodPut, "/auth/update-profile", payload, &out); err != nil {
		return fail(a, a.Auth, seq, "updating profile", err)
	}
	a.Auth.Commit(seq, state.SelectedUpdated[model.User]{Item: out.Data})
	a.toasts.Publish(notify.Success, "profile updated")
	return nil
}

// SendVerifyOTP asks the backend to email a verification code.
func (a *App) SendVerifyOTP(ctx context.Context) error {
	seq := a.Auth.Begin()
	if err := a.api.Do(ctx, http.MethodPost, "/auth/send-verify-otp", nil, nil); err != nil {
		return fail(a, a.Auth, seq, "sending verification code", err)
	}
	a.Auth.Commit(seq, state.Done[model.User]{})
	a.toasts.Publish(notify.Success, "verification code sent")
	return nil
}

// VerifyAccount submits the emailed verification code.
func (a *App) VerifyAccount(ctx context.Context, payload model.OTPPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Auth.Begin()
	var out itemEnvelope[model.User]
	if err := a.api.Do(ctx, http.MethodPost, "/auth/verify-account", payload, &out); err != nil {
		return fail(a, a.Auth, seq, "verifying account", err)
	}
	a.Auth.Commit(seq, state.SelectedUpdated[model.User]{Item: out.Data})
	a.toasts.Publish(notify.Success, "account verified")
	return nil
}

// SendResetOTP asks the backend to email a password reset code.
func (a *App) SendResetOTP(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: email}
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Auth.Begin()
	if err := a.api.Do(ctx, http.MethodPost, "/auth/send-reset-otp", payload, nil); err != nil {
		return fail(a, a.Auth, seq, "sending reset code", err)
	}
	a.Auth.Commit(seq, state.Done[model.User]{})
	a.toasts.Publish(notify.Success, "reset code sent to %s", email)
	return nil
}

// ResetPassword completes a password reset with the emailed code.
func (a *App) ResetPassword(ctx context.Context, payload model.ResetPasswordPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Auth.Begin()
	if err := a.api.Do(ctx, http.MethodPost, "/auth/reset-password", payload, nil); err != nil {
		return fail(a, a.Auth, seq, "resetting password", err)
	}
	a.Auth.Commit(seq, state.Done[model.User]{})
	a.toasts.Publish(notify.Success, "password reset, sign in again")
	return nil
}
