// Package session persists the authenticated session: the bearer token and
// the cached user record, stored as two sibling files under a state
// directory. Token and user are written and removed together; readers treat
// anything corrupt or half-present as logged out.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rexlx/scribble/internal"
)

const (
	tokenFile = "token"
	userFile  = "user"
)

// Store reads and writes the persisted session. It performs no network
// calls; all methods are synchronous file access on the UI goroutine.
type Store struct {
	dir string
}

// NewStore creates the state directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Save persists the token and user together. If the user record cannot be
// written the token is removed again so the pair never goes out of sync.
func (s *Store) Save(token string, user *internal.User) error {
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err == nil {
		err = os.WriteFile(filepath.Join(s.dir, userFile), data, 0600)
	}
	if err != nil {
		os.Remove(filepath.Join(s.dir, tokenFile))
		return err
	}
	return nil
}

// Token returns the stored bearer token, or "" when logged out. A token
// whose cached user is missing is withheld, and a token that parses as a
// JWT with a past expiry is treated as absent. Opaque tokens pass through
// untouched; the server remains the authority on validity.
func (s *Store) Token() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	token := strings.TrimSpace(string(raw))
	if token == "" || s.CurrentUser() == nil {
		return ""
	}
	if expired(token) {
		return ""
	}
	return token
}

// CurrentUser returns the cached user without a network call. Corrupt data
// is treated as absent, not as an error.
func (s *Store) CurrentUser() *internal.User {
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var user internal.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return nil
	}
	return &user
}

// Clear removes token and user. It never fails; missing files are fine.
func (s *Store) Clear() {
	os.Remove(filepath.Join(s.dir, tokenFile))
	os.Remove(filepath.Join(s.dir, userFile))
}

// expired reports whether token is a JWT whose exp claim has passed.
func expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
