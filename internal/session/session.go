// ABOUTME: Session token persistence - the single piece of client-side state
// ABOUTME: ATLAS_TOKEN env var overrides the token file under the user config dir

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const envToken = "ATLAS_TOKEN"

// Session reads and writes the persisted session token. The token file is
// the only thing this client ever persists.
type Session struct {
	path string
}

// New creates a session backed by the given token file path. An empty
// path resolves to $XDG_CONFIG_HOME/atlas/token (or ~/.config/atlas/token).
func New(path string) *Session {
	if path == "" {
		path = defaultPath()
	}
	return &Session{path: path}
}

func defaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "atlas", "token")
}

// Token returns the current session token: ATLAS_TOKEN if set, otherwise
// the token file's contents. Empty means unauthenticated.
func (s *Session) Token() string {
	if token := os.Getenv(envToken); token != "" {
		return token
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save persists the token after a successful login or registration.
func (s *Session) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the persisted token on logout. A missing file is not an
// error.
func (s *Session) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// Claims is the subset of token claims the console displays. The client
// never verifies signatures; that is the backend's job on every request.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// Inspect parses the token without verification for display purposes
// (whoami, expiry warnings).
func Inspect(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
