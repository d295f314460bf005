package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mlbahja/blogger/internal/guard"
	"github.com/mlbahja/blogger/internal/session"
	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/spf13/cobra"
)

// readSecret reads one line from r, prompting on w first.
func readSecret(r io.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCommand(st *state) *cobra.Command {
	var req blogsdk.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a username or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				pw, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				req.Password = pw
			}

			id, err := st.app.Account.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printIdentity(st.printer(cmd), id, "logged in as")
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (read from stdin when omitted)")
	cmd.MarkFlagsOneRequired("username", "email")
	return withRoute(cmd, routeGuest)
}

func newRegisterCommand(st *state) *cobra.Command {
	var req blogsdk.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if req.Password == "" {
				pw, err := readSecret(in, cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				req.Password = pw
			}
			if req.ConfirmPassword == "" {
				pw, err := readSecret(in, cmd.ErrOrStderr(), "Confirm password: ")
				if err != nil {
					return err
				}
				req.ConfirmPassword = pw
			}

			id, err := st.app.Account.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printIdentity(st.printer(cmd), id, "registered and logged in as")
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username (at least 3 characters)")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (at least 6 characters)")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm", "", "repeat the password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return withRoute(cmd, routeGuest)
}

func newLogoutCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.app.Account.Logout(cmd.Context(), true); err != nil {
				return err
			}
			return st.printer(cmd).message("logged out")
		},
	}
	return withRoute(cmd, routeOpen)
}

func newWhoamiCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !st.app.Session.IsValid(ctx) {
				return &DeniedError{Redirect: guard.PathLogin}
			}
			id, err := st.app.Session.Identity(ctx)
			if err != nil {
				return err
			}
			if id == nil {
				return errors.New("session has a token but no cached identity, log in again")
			}
			exp, _ := st.app.Session.Expiry(ctx)

			return st.printer(cmd).emit(struct {
				*session.Identity
				ExpiresAt time.Time `json:"expiresAt"`
			}{id, exp}, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "ID:\t%d\n", id.ID)
				fmt.Fprintf(tw, "Username:\t%s\n", id.Username)
				fmt.Fprintf(tw, "Email:\t%s\n", orDash(id.Email))
				fmt.Fprintf(tw, "Role:\t%s\n", id.Role)
				fmt.Fprintf(tw, "Session expires:\t%s\n", exp.Local().Format(time.RFC1123))
			})
		},
	}
	return withRoute(cmd, routeOpen)
}

// status resolves the empty route: where would the app land right now.
func newStatusCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a valid session exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d := guard.Root(st.app.Session, st.app.Navigator)(ctx)
			loggedIn := d.Redirect == guard.PathHome

			return st.printer(cmd).emit(map[string]any{
				"loggedIn": loggedIn,
				"landing":  d.Redirect,
				"api":      st.app.Config().APIURL,
			}, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "API:\t%s\n", st.app.Config().APIURL)
				fmt.Fprintf(tw, "Logged in:\t%s\n", yesNo(loggedIn))
				fmt.Fprintf(tw, "Landing:\t%s\n", d.Redirect)
			})
		},
	}
	return withRoute(cmd, routeOpen)
}

func printIdentity(p printer, id *session.Identity, verb string) error {
	return p.emit(id, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "%s %s (%s)\n", verb, id.Username, id.Role)
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
