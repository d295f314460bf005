package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mlbahja/blogger/internal/app"
	"github.com/mlbahja/blogger/internal/guard"
	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api string
	db  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": 9999999999}).
		SignedString([]byte("k"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req blogsdk.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		role := blogsdk.RoleUser
		if req.Username == "root" {
			role = blogsdk.RoleAdmin
		}
		_ = json.NewEncoder(w).Encode(blogsdk.AuthResponse{
			ID: 7, Username: req.Username, Email: req.Username + "@example.com", Role: role, AccessToken: tok,
		})
	})
	mux.HandleFunc("GET /auth/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+tok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"posts":[{"id":3,"title":"Hello","author":{"id":7,"username":"alice"},"likeCount":2}],"total":1,"totalPages":1,"currentPage":1}`)
	})
	mux.HandleFunc("GET /auth/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"User account is banned","banned":true}`)
	})
	mux.HandleFunc("GET /auth/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"totalUsers":4,"totalPosts":9}`)
	})
	mux.HandleFunc("GET /auth/reports/admin/count-unresolved", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count":2}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &fixture{api: srv.URL, db: filepath.Join(t.TempDir(), "session.db")}
}

// run executes one blogger invocation. Each call builds a fresh application
// over the same session file, like separate processes would.
func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	st := &state{
		newApp: func(cfg app.Config) (*app.Application, error) {
			return app.New(cfg, app.WithLogWriter(io.Discard))
		},
	}
	defer st.close()

	root := newRootCmd(st)
	var out bytes.Buffer
	root.SetArgs(append([]string{"--api", f.api, "--session-db", f.db}, args...))
	root.SetIn(strings.NewReader(""))
	root.SetOut(&out)
	root.SetErr(io.Discard)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func requireDenied(t *testing.T, err error, redirect string) {
	t.Helper()
	var denied *DeniedError
	require.True(t, errors.As(err, &denied), "expected DeniedError, got %v", err)
	require.Equal(t, redirect, denied.Redirect)
}

func TestGuardedCommands(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "posts", "list")
	requireDenied(t, err, guard.PathLogin)

	out, err := f.run(t, "login", "-u", "alice", "-p", "pw")
	require.NoError(t, err)
	require.Contains(t, out, "logged in as alice (USER)")

	_, err = f.run(t, "login", "-u", "alice", "-p", "pw")
	requireDenied(t, err, guard.PathHome)

	out, err = f.run(t, "posts", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Hello")
	require.Contains(t, out, "alice")

	_, err = f.run(t, "admin", "stats")
	requireDenied(t, err, guard.PathUnauthorized)
	require.Equal(t, "admin role required", describe(err))

	out, err = f.run(t, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "logged out")

	_, err = f.run(t, "whoami")
	requireDenied(t, err, guard.PathLogin)
}

func TestAdminCommands(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "login", "-u", "root", "-p", "pw")
	require.NoError(t, err)

	out, err := f.run(t, "--json", "admin", "stats")
	require.NoError(t, err)

	var stats map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.EqualValues(t, 4, stats["totalUsers"])
	require.EqualValues(t, 2, stats["unresolvedReports"])
}

func TestLoginFailureKeepsGuest(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "login", "-u", "alice", "-p", "wrong")
	require.True(t, blogsdk.IsStatus(err, http.StatusUnauthorized))
	require.Contains(t, describe(err), "Invalid credentials")

	out, err := f.run(t, "--json", "status")
	require.NoError(t, err)
	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	require.Equal(t, false, st["loggedIn"])
	require.Equal(t, guard.PathLogin, st["landing"])
}

func TestBannedUserIsLoggedOut(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "login", "-u", "bob", "-p", "pw")
	require.NoError(t, err)

	_, err = f.run(t, "profile", "show")
	require.True(t, blogsdk.IsBanned(err))
	require.Contains(t, describe(err), "banned and you have been logged out")

	_, err = f.run(t, "profile", "show")
	requireDenied(t, err, guard.PathLogin)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := parseID("42")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad)
		require.Error(t, err, bad)
	}
}
