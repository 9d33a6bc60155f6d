package api

import (
	"context"

	"github.com/rexlx/scribble/internal"
	"github.com/rexlx/scribble/internal/session"
)

type authResponse struct {
	Token string        `json:"token"`
	User  internal.User `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthService performs the auth round trips and writes the resulting
// session through the store. Logout touches storage only, never the
// network, so it can run from inside the gateway's failure path.
type AuthService struct {
	client *Client
	store  *session.Store
}

func NewAuthService(client *Client, store *session.Store) *AuthService {
	return &AuthService{client: client, store: store}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*internal.Session, error) {
	return s.authenticate(ctx, "/auth/login", credentials{Email: email, Password: password})
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*internal.Session, error) {
	return s.authenticate(ctx, "/auth/register", credentials{Email: email, Password: password, Name: name})
}

func (s *AuthService) authenticate(ctx context.Context, path string, creds credentials) (*internal.Session, error) {
	var resp authResponse
	if err := s.client.Post(ctx, path, creds, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := s.store.Save(resp.Token, &resp.User); err != nil {
			return nil, &Error{Message: err.Error()}
		}
	}
	return &internal.Session{Token: resp.Token, User: resp.User}, nil
}

// Logout clears the persisted session. It never fails.
func (s *AuthService) Logout() {
	s.store.Clear()
}

// CurrentUser reads the cached user without a network call.
func (s *AuthService) CurrentUser() *internal.User {
	return s.store.CurrentUser()
}
