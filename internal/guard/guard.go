// Package guard decides whether a screen may be entered given the current
// session, redirecting through a Navigator when it may not.
package guard

import (
	"context"
	"sync"

	"github.com/mlbahja/blogger/internal/session"
)

// Well-known screens.
const (
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathHome         = "/home"
	PathUnauthorized = "/unauthorized"
)

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(path string)
}

// Session is the part of *session.Manager the guards need.
type Session interface {
	IsValid(ctx context.Context) bool
	Identity(ctx context.Context) (*session.Identity, error)
}

// Decision is the outcome of a guard. Redirect is set whenever Allow is false.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func deny(nav Navigator, path string) Decision {
	if nav != nil {
		nav.Navigate(path)
	}
	return Decision{Redirect: path}
}

type Guard func(ctx context.Context) Decision

// Authenticated admits only callers holding a valid session.
func Authenticated(s Session, nav Navigator) Guard {
	return func(ctx context.Context) Decision {
		if s.IsValid(ctx) {
			return allow()
		}
		return deny(nav, PathLogin)
	}
}

// Guest admits only callers without a valid session, e.g. the login screen.
func Guest(s Session, nav Navigator) Guard {
	return func(ctx context.Context) Decision {
		if !s.IsValid(ctx) {
			return allow()
		}
		return deny(nav, PathHome)
	}
}

// Admin admits valid sessions whose cached identity has the ADMIN role.
// A valid token with no readable identity is treated as a non-admin.
func Admin(s Session, nav Navigator) Guard {
	return func(ctx context.Context) Decision {
		if !s.IsValid(ctx) {
			return deny(nav, PathLogin)
		}
		id, err := s.Identity(ctx)
		if err != nil || id == nil || !id.IsAdmin() {
			return deny(nav, PathUnauthorized)
		}
		return allow()
	}
}

// Root resolves the empty route. It always redirects: home when the
// session is valid, login otherwise.
func Root(s Session, nav Navigator) Guard {
	return func(ctx context.Context) Decision {
		if s.IsValid(ctx) {
			return deny(nav, PathHome)
		}
		return deny(nav, PathLogin)
	}
}

// Open admits everyone.
func Open() Guard {
	return func(context.Context) Decision { return allow() }
}

// Recorder is a Navigator that remembers every path it was sent to.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Last returns the most recent path, or "" if none.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = nil
}
