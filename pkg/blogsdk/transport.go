package blogsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// LoginPath is where the user is sent after a ban.
const LoginPath = "/login"

// Credentials is the session state the transport reads and, on a ban,
// clears. *session.Manager satisfies it.
type Credentials interface {
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(path string)
}

// AuthTransport attaches the session's bearer token to outgoing requests
// and reacts to the ban signal.
//
// Login and registration requests pass through untouched. On a 403 whose
// JSON body has "banned": true the session is cleared and the Navigator is
// sent to LoginPath; the response itself is still returned so the caller
// observes the failure.
type AuthTransport struct {
	Base        http.RoundTripper
	Credentials Credentials
	Navigator   Navigator

	// Limiter, when set, throttles outgoing requests client side.
	Limiter *rate.Limiter

	Logger *slog.Logger
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	if isCredentialExchange(req) {
		return t.base().RoundTrip(req)
	}

	bearer := false
	if t.Credentials != nil {
		if tok := t.Credentials.Token(ctx); tok != "" {
			req = req.Clone(ctx)
			req.Header.Set("Authorization", "Bearer "+tok)
			bearer = true
		}
	}
	if req.Method == http.MethodPost {
		t.logger().Debug("outgoing POST", "path", req.URL.Path, "bearer", bearer)
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusForbidden {
		t.checkBan(ctx, resp)
	}
	return resp, nil
}

// checkBan peeks at a 403 body and, if it carries the ban flag, ends the
// session. The body is restored so the caller can still read it.
func (t *AuthTransport) checkBan(ctx context.Context, resp *http.Response) {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || !isBannedBody(body) {
		return
	}

	t.logger().Warn("account banned, ending session")
	if t.Credentials != nil {
		if err := t.Credentials.Clear(ctx); err != nil {
			t.logger().Error("failed to clear session after ban", "error", err)
		}
	}
	if t.Navigator != nil {
		t.Navigator.Navigate(LoginPath)
	}
}

func isCredentialExchange(req *http.Request) bool {
	p := strings.TrimSuffix(req.URL.Path, "/")
	return strings.HasSuffix(p, "/auth/login") || strings.HasSuffix(p, "/auth/register")
}
