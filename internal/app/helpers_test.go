// ABOUTME: Shared test helpers for dispatcher tests
// ABOUTME: Each test runs an httptest backend and a temp-dir session token file

package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlasrobotics/atlas-console/internal/api"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/session"
)

// testApp wires an App against the given backend handler.
type testApp struct {
	*App
	hub  *notify.Hub
	sess *session.Session
}

func newTestApp(t *testing.T, handler http.Handler) *testApp {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New(filepath.Join(t.TempDir(), "token"))
	hub := notify.NewHub()
	log := slog.New(slog.DiscardHandler)
	client := api.New(srv.URL, 5*time.Second, sess, log)

	return &testApp{App: New(client, sess, hub, log), hub: hub, sess: sess}
}

// writeJSON writes a JSON response body.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

// lastToast returns the most recent toast, draining the hub.
func lastToast(t *testing.T, hub *notify.Hub) notify.Toast {
	t.Helper()
	toasts := hub.Drain()
	if len(toasts) == 0 {
		t.Fatal("expected at least one toast")
	}
	return toasts[len(toasts)-1]
}
