package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mlbahja/blogger/internal/guard"
	"github.com/mlbahja/blogger/internal/session"
	"github.com/mlbahja/blogger/internal/session/drivers/memory"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	valid bool
	id    *session.Identity
	err   error
}

func (f fakeSession) IsValid(context.Context) bool { return f.valid }

func (f fakeSession) Identity(context.Context) (*session.Identity, error) {
	return f.id, f.err
}

var (
	user  = &session.Identity{ID: 1, Username: "u", Role: session.RoleUser}
	admin = &session.Identity{ID: 2, Username: "a", Role: session.RoleAdmin}
)

func TestGuardMatrix(t *testing.T) {
	t.Parallel()

	type build func(guard.Session, guard.Navigator) guard.Guard

	cases := []struct {
		name     string
		guard    build
		sess     fakeSession
		allow    bool
		redirect string
	}{
		{"auth/valid", guard.Authenticated, fakeSession{valid: true, id: user}, true, ""},
		{"auth/invalid", guard.Authenticated, fakeSession{}, false, guard.PathLogin},
		{"guest/invalid", guard.Guest, fakeSession{}, true, ""},
		{"guest/valid", guard.Guest, fakeSession{valid: true, id: user}, false, guard.PathHome},
		{"admin/invalid", guard.Admin, fakeSession{id: admin}, false, guard.PathLogin},
		{"admin/user role", guard.Admin, fakeSession{valid: true, id: user}, false, guard.PathUnauthorized},
		{"admin/admin role", guard.Admin, fakeSession{valid: true, id: admin}, true, ""},
		{"admin/no identity", guard.Admin, fakeSession{valid: true}, false, guard.PathUnauthorized},
		{"admin/identity error", guard.Admin, fakeSession{valid: true, err: errors.New("corrupt")}, false, guard.PathUnauthorized},
		{"root/valid", guard.Root, fakeSession{valid: true}, false, guard.PathHome},
		{"root/invalid", guard.Root, fakeSession{}, false, guard.PathLogin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			nav := &guard.Recorder{}

			d := tc.guard(tc.sess, nav)(context.Background())

			require.Equal(t, tc.allow, d.Allow)
			require.Equal(t, tc.redirect, d.Redirect)
			if tc.allow {
				require.Empty(t, nav.Paths())
			} else {
				require.Equal(t, []string{tc.redirect}, nav.Paths())
			}
		})
	}
}

func TestGuardNilNavigator(t *testing.T) {
	t.Parallel()
	d := guard.Authenticated(fakeSession{}, nil)(context.Background())
	require.Equal(t, guard.Decision{Redirect: guard.PathLogin}, d)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	require.True(t, guard.Open()(context.Background()).Allow)
}

func TestGuardsOverManager(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sign := func(exp int64) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp}).SignedString([]byte("k"))
		require.NoError(t, err)
		return tok
	}

	t.Run("expired token bounces to login and clears", func(t *testing.T) {
		store := memory.New()
		m := session.NewManager(store)
		require.NoError(t, m.Start(ctx, sign(1), *admin))

		nav := &guard.Recorder{}
		d := guard.Admin(m, nav)(ctx)
		require.False(t, d.Allow)
		require.Equal(t, guard.PathLogin, nav.Last())
		require.Equal(t, 0, store.Len())
	})

	t.Run("valid admin passes admin and authenticated", func(t *testing.T) {
		m := session.NewManager(memory.New())
		require.NoError(t, m.Start(ctx, sign(9999999999), *admin))

		nav := &guard.Recorder{}
		require.True(t, guard.Admin(m, nav)(ctx).Allow)
		require.True(t, guard.Authenticated(m, nav)(ctx).Allow)
		require.False(t, guard.Guest(m, nav)(ctx).Allow)
		require.Equal(t, []string{guard.PathHome}, nav.Paths())
	})
}

func TestRecorder(t *testing.T) {
	t.Parallel()
	r := &guard.Recorder{}
	require.Empty(t, r.Last())
	r.Navigate("/a")
	r.Navigate("/b")
	require.Equal(t, "/b", r.Last())
	require.Equal(t, []string{"/a", "/b"}, r.Paths())
	r.Reset()
	require.Empty(t, r.Paths())
}
