// Package cli implements the blogger command tree. Every command is a
// screen with a route; the route's guard runs before the command body and
// a denied guard aborts the command with the redirect it asked for.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mlbahja/blogger/internal/app"
	"github.com/mlbahja/blogger/internal/guard"
	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/mlbahja/blogger/pkg/slogx"
	"github.com/spf13/cobra"
)

// route is stored in a command's annotations and inherited by children.
type route string

const (
	routeOpen  route = "open"
	routeGuest route = "guest"
	routeAuth  route = "auth"
	routeAdmin route = "admin"
)

const routeKey = "blogger.route"

func withRoute(cmd *cobra.Command, r route) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[routeKey] = string(r)
	return cmd
}

func routeOf(cmd *cobra.Command) route {
	for c := cmd; c != nil; c = c.Parent() {
		if r, ok := c.Annotations[routeKey]; ok {
			return route(r)
		}
	}
	return routeOpen
}

// DeniedError is returned when a command's guard refuses entry.
type DeniedError struct {
	Redirect string
}

func (e *DeniedError) Error() string {
	switch e.Redirect {
	case guard.PathLogin:
		return "not logged in: run `blogger login`"
	case guard.PathHome:
		return "already logged in"
	case guard.PathUnauthorized:
		return "admin role required"
	default:
		return "redirected to " + e.Redirect
	}
}

type globalFlags struct {
	apiURL    string
	sessionDB string
	logLevel  string
	logFormat string
	ephemeral bool
	json      bool
}

// state is shared by every command of one invocation.
type state struct {
	flags globalFlags
	app   *app.Application

	// newApp is replaced in tests.
	newApp func(cfg app.Config) (*app.Application, error)
}

func (s *state) close() {
	if s.app != nil {
		_ = s.app.Close()
		s.app = nil
	}
}

// NewRootCmd builds the command tree. Call Close on the returned cleanup
// when execution finishes.
func NewRootCmd() (*cobra.Command, func()) {
	st := &state{
		newApp: func(cfg app.Config) (*app.Application, error) { return app.New(cfg) },
	}
	return newRootCmd(st), st.close
}

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "blogger",
		Short:         "Command line client for the blogger platform",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := st.open(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = slogx.WithContext(ctx, st.app.Logger())
			cmd.SetContext(slogx.WithCommand(ctx, cmd.CommandPath()))
			return st.enter(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.flags.apiURL, "api", "", "API base URL (env BLOGGER_API_URL)")
	pf.StringVar(&st.flags.sessionDB, "session-db", "", "session file (env BLOGGER_SESSION_DB)")
	pf.StringVar(&st.flags.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	pf.StringVar(&st.flags.logFormat, "log-format", "", "text or json (env LOG_FORMAT)")
	pf.BoolVar(&st.flags.ephemeral, "ephemeral", false, "keep the session in memory for this invocation only")
	pf.BoolVar(&st.flags.json, "json", false, "print results as JSON")

	root.AddCommand(
		newLoginCommand(st),
		newRegisterCommand(st),
		newLogoutCommand(st),
		newWhoamiCommand(st),
		newStatusCommand(st),
		newPostsCommand(st),
		newUsersCommand(st),
		newProfileCommand(st),
		newNotificationsCommand(st),
		newReportsCommand(st),
		newMessagesCommand(st),
		newAdminCommand(st),
	)

	return root
}

// open loads configuration, applies flag overrides and builds the
// application.
func (s *state) open(cmd *cobra.Command) error {
	if s.app != nil {
		return nil
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	if s.flags.apiURL != "" {
		cfg.APIURL = s.flags.apiURL
	}
	if s.flags.sessionDB != "" {
		cfg.SessionDB = s.flags.sessionDB
	}
	if s.flags.logLevel != "" {
		cfg.LogLevel = s.flags.logLevel
	}
	if s.flags.logFormat != "" {
		cfg.LogFormat = s.flags.logFormat
	}
	cfg.Ephemeral = cfg.Ephemeral || s.flags.ephemeral

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a, err := s.newApp(cfg)
	if err != nil {
		return err
	}
	s.app = a
	return nil
}

// enter runs the guard for cmd's route.
func (s *state) enter(cmd *cobra.Command) error {
	var g guard.Guard
	switch routeOf(cmd) {
	case routeGuest:
		g = guard.Guest(s.app.Session, s.app.Navigator)
	case routeAuth:
		g = guard.Authenticated(s.app.Session, s.app.Navigator)
	case routeAdmin:
		g = guard.Admin(s.app.Session, s.app.Navigator)
	default:
		g = guard.Open()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d := g(ctx); !d.Allow {
		s.app.Logger().Debug("guard denied", "command", cmd.CommandPath(), "redirect", d.Redirect)
		return &DeniedError{Redirect: d.Redirect}
	}
	return nil
}

func (s *state) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), json: s.flags.json}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root, cleanup := NewRootCmd()
	defer cleanup()

	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", describe(err))
		return 1
	}
	return 0
}

func describe(err error) string {
	var denied *DeniedError
	switch {
	case errors.As(err, &denied):
		return denied.Error()
	case blogsdk.IsBanned(err):
		return err.Error() + "\nyour account has been banned and you have been logged out"
	case blogsdk.IsStatus(err, 401):
		return err.Error() + "\nrun `blogger login` to sign in again"
	default:
		return err.Error()
	}
}
