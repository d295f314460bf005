package blogsdk_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeCredentials struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeCredentials) Token(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCredentials) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(p string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, p)
}

func (n *navRecorder) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// newTestClient wires a Client through an AuthTransport to handler.
func newTestClient(t *testing.T, handler http.Handler, creds *fakeCredentials, nav *navRecorder) *blogsdk.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := blogsdk.NewClient(srv.URL)
	c.HTTPClient.Transport = &blogsdk.AuthTransport{
		Base:        srv.Client().Transport,
		Credentials: creds,
		Navigator:   nav,
	}
	return c
}

func TestAuthTransportBearer(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen = map[string]string{}
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = r.Header.Get("Authorization")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login", "/auth/register":
			_, _ = io.WriteString(w, `{"id":1,"username":"alice","email":"a@example.com","role":"USER","accessToken":"new","refreshToken":null}`)
		case "/auth/users/me":
			_, _ = io.WriteString(w, `{"id":1,"username":"alice","role":"USER"}`)
		default:
			_, _ = io.WriteString(w, `{}`)
		}
	})

	creds := &fakeCredentials{token: "stored-token"}
	c := newTestClient(t, handler, creds, &navRecorder{})
	ctx := context.Background()

	_, err := c.Login(ctx, blogsdk.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = c.Register(ctx, blogsdk.RegisterRequest{
		Username: "alice", Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	_, err = c.Me(ctx)
	require.NoError(t, err)
	_, err = c.GetPost(ctx, 3)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Empty(t, seen["/auth/login"], "login must never carry a token")
	require.Empty(t, seen["/auth/register"], "register must never carry a token")
	require.Equal(t, "Bearer stored-token", seen["/auth/users/me"])
	require.Equal(t, "Bearer stored-token", seen["/auth/posts/3"])
}

func TestAuthTransportNoToken(t *testing.T) {
	t.Parallel()

	got := make(chan string, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"posts":[],"total":0,"totalPages":0,"currentPage":1}`)
	})

	c := newTestClient(t, handler, &fakeCredentials{}, &navRecorder{})
	_, err := c.ListPosts(context.Background(), blogsdk.PageOptions{})
	require.NoError(t, err)
	require.Empty(t, <-got)
}

func TestAuthTransportBan(t *testing.T) {
	t.Parallel()

	t.Run("banned 403 clears session and redirects", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error": "User account is banned: alice", "banned": true}`)
		})

		creds := &fakeCredentials{token: "tok"}
		nav := &navRecorder{}
		c := newTestClient(t, handler, creds, nav)

		_, err := c.Me(context.Background())
		require.Error(t, err)
		require.True(t, blogsdk.IsBanned(err))
		require.True(t, blogsdk.IsStatus(err, http.StatusForbidden))

		var apiErr *blogsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "User account is banned: alice", apiErr.Message)

		require.Equal(t, 1, creds.cleared)
		require.Empty(t, creds.Token(context.Background()))
		require.Equal(t, []string{blogsdk.LoginPath}, nav.Paths())
	})

	t.Run("ban detected when other fields have unexpected types", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error": {"code": "BANNED"}, "banned": true}`)
		})

		creds := &fakeCredentials{token: "tok"}
		nav := &navRecorder{}
		c := newTestClient(t, handler, creds, nav)

		_, err := c.Me(context.Background())
		require.True(t, blogsdk.IsBanned(err))
		require.Equal(t, 1, creds.cleared)
		require.Equal(t, []string{blogsdk.LoginPath}, nav.Paths())
	})

	t.Run("plain 403 leaves session alone", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error": "forbidden"}`)
		})

		creds := &fakeCredentials{token: "tok"}
		nav := &navRecorder{}
		c := newTestClient(t, handler, creds, nav)

		_, err := c.AdminStats(context.Background())
		require.True(t, blogsdk.IsStatus(err, http.StatusForbidden))
		require.False(t, blogsdk.IsBanned(err))
		require.Zero(t, creds.cleared)
		require.Empty(t, nav.Paths())
	})

	t.Run("banned flag on other status is ignored", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error": "nope", "banned": true}`)
		})

		creds := &fakeCredentials{token: "tok"}
		nav := &navRecorder{}
		c := newTestClient(t, handler, creds, nav)

		_, err := c.Me(context.Background())
		require.True(t, blogsdk.IsStatus(err, http.StatusUnauthorized))
		require.Zero(t, creds.cleared)
		require.Empty(t, nav.Paths())
	})

	t.Run("non-json 403 body", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, "Access Denied")
		})

		creds := &fakeCredentials{token: "tok"}
		c := newTestClient(t, handler, creds, &navRecorder{})

		_, err := c.Me(context.Background())
		var apiErr *blogsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "Access Denied", apiErr.Message)
		require.Zero(t, creds.cleared)
	})
}

func TestAuthTransportLimiter(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count": 3}`)
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := blogsdk.NewClient(srv.URL)
	c.HTTPClient.Transport = &blogsdk.AuthTransport{
		Base:    srv.Client().Transport,
		Limiter: rate.NewLimiter(rate.Every(time.Hour), 1),
	}

	n, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	// The single token is spent; the next call cannot wait an hour.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.UnreadCount(ctx)
	require.Error(t, err)
}
