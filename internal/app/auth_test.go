// ABOUTME: Dispatcher tests for auth: token persistence, loading flag, failures
// ABOUTME: The session token file is the only client-side state these flows touch

package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasrobotics/atlas-console/internal/model"
)

func userJSON(id, email string) map[string]any {
	return map[string]any{"id": id, "name": "Ada", "email": email, "role": "admin", "isVerified": true}
}

func TestLogin_PersistsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"token": "tok-abc",
			"user":  userJSON("u-1", "ada@atlas.example.com"),
		})
	})

	ta := newTestApp(t, mux)

	err := ta.Login(context.Background(), model.LoginPayload{
		Email: "ada@atlas.example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", ta.sess.Token())

	snap := ta.Auth.State()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "u-1", snap.Selected.ID)
	assert.True(t, snap.Success)
}

func TestLogin_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "invalid email or password"})
	})

	ta := newTestApp(t, mux)

	err := ta.Login(context.Background(), model.LoginPayload{
		Email: "ada@atlas.example.com", Password: "wrong",
	})
	require.Error(t, err)

	assert.Empty(t, ta.sess.Token(), "no token persisted on failure")
	snap := ta.Auth.State()
	assert.Equal(t, "invalid email or password", snap.Err)
	assert.False(t, snap.Loading)
}

func TestLogin_ValidationRejectsBadEmail(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux())

	err := ta.Login(context.Background(), model.LoginPayload{Email: "not-an-email", Password: "x"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLogout_ClearsTokenAndStore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"token": "tok-abc", "user": userJSON("u-1", "a@b.co")})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "logged out"})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	require.NoError(t, ta.Login(ctx, model.LoginPayload{Email: "a@b.co", Password: "hunter22"}))
	require.NoError(t, ta.Logout(ctx))

	assert.Empty(t, ta.sess.Token())
	snap := ta.Auth.State()
	assert.Nil(t, snap.Selected)
}

func TestProfile_LoadingTrueWhileInFlight(t *testing.T) {
	var ta *testApp
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, ta.Auth.State().Loading, "loading must be true while the request is in flight")
		writeJSON(t, w, http.StatusOK, map[string]any{"data": userJSON("u-1", "a@b.co")})
	})

	ta = newTestApp(t, mux)

	_, err := ta.Profile(context.Background())
	require.NoError(t, err)
	assert.False(t, ta.Auth.State().Loading)
}

func TestVerifyAccount_UpdatesVerificationFlag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/verify-account", func(w http.ResponseWriter, r *http.Request) {
		u := userJSON("u-1", "a@b.co")
		u["isVerified"] = true
		writeJSON(t, w, http.StatusOK, map[string]any{"data": u})
	})

	ta := newTestApp(t, mux)

	err := ta.VerifyAccount(context.Background(), model.OTPPayload{OTP: "123456"})
	require.NoError(t, err)

	snap := ta.Auth.State()
	require.NotNil(t, snap.Selected)
	assert.True(t, snap.Selected.IsVerified)
}

func TestVerifyAccount_RejectsMalformedOTP(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux())

	err := ta.VerifyAccount(context.Background(), model.OTPPayload{OTP: "12ab"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
}
