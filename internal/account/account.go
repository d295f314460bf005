// Package account implements login, registration and logout on top of the
// API client and the session manager.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mlbahja/blogger/internal/guard"
	"github.com/mlbahja/blogger/internal/session"
	"github.com/mlbahja/blogger/pkg/blogsdk"
)

// Authenticator is the part of *blogsdk.Client used here.
type Authenticator interface {
	Login(ctx context.Context, req blogsdk.LoginRequest) (*blogsdk.AuthResponse, error)
	Register(ctx context.Context, req blogsdk.RegisterRequest) (*blogsdk.AuthResponse, error)
}

type Service struct {
	client    Authenticator
	session   *session.Manager
	navigator guard.Navigator
	logger    *slog.Logger
}

func NewService(client Authenticator, sess *session.Manager, nav guard.Navigator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:    client,
		session:   sess,
		navigator: nav,
		logger:    logger,
	}
}

// Login authenticates, persists the returned token and identity, and
// navigates home.
func (s *Service) Login(ctx context.Context, req blogsdk.LoginRequest) (*session.Identity, error) {
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.begin(ctx, resp)
}

// Register creates the account and logs straight into it.
func (s *Service) Register(ctx context.Context, req blogsdk.RegisterRequest) (*session.Identity, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.begin(ctx, resp)
}

func (s *Service) begin(ctx context.Context, resp *blogsdk.AuthResponse) (*session.Identity, error) {
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("account: server returned no access token")
	}

	id := IdentityFrom(resp)
	if err := s.session.Start(ctx, resp.AccessToken, id); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "user_id", id.ID, "username", id.Username, "role", id.Role)
	s.navigate(guard.PathHome)
	return &id, nil
}

// Logout clears the session. When navigate is set the user is sent to the
// login screen afterwards.
func (s *Service) Logout(ctx context.Context, navigate bool) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("logged out")
	if navigate {
		s.navigate(guard.PathLogin)
	}
	return nil
}

func (s *Service) IsLoggedIn(ctx context.Context) bool {
	return s.session.IsValid(ctx)
}

func (s *Service) navigate(path string) {
	if s.navigator != nil {
		s.navigator.Navigate(path)
	}
}

// IdentityFrom extracts the cached identity from an auth response.
func IdentityFrom(resp *blogsdk.AuthResponse) session.Identity {
	return session.Identity{
		ID:       resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     session.Role(resp.Role),
	}
}
