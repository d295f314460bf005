package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/spf13/cobra"
)

func printUsers(p printer, users []blogsdk.UserProfile) error {
	return p.emit(users, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tROLE\tBANNED\tPOSTS")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
				u.ID, u.Username, orDash(u.FullName), u.Role, yesNo(u.IsBanned), u.PostCount)
		}
	})
}

func printProfile(p printer, u *blogsdk.UserProfile) error {
	return p.emit(u, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
		fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
		fmt.Fprintf(tw, "Email:\t%s\n", orDash(u.Email))
		fmt.Fprintf(tw, "Name:\t%s\n", orDash(u.FullName))
		fmt.Fprintf(tw, "Bio:\t%s\n", orDash(u.Bio))
		fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
		fmt.Fprintf(tw, "Banned:\t%s\n", yesNo(u.IsBanned))
		fmt.Fprintf(tw, "Posts:\t%d\n", u.PostCount)
		fmt.Fprintf(tw, "Comments:\t%d\n", u.CommentCount)
		fmt.Fprintf(tw, "Joined:\t%s\n", ago(u.CreatedAt))
	})
}

func newUsersCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"u"},
		Short:   "Browse users and manage who you follow",
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := st.app.Client.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				return printUsers(st.printer(cmd), users)
			},
		},
		&cobra.Command{
			Use:   "show <user-id>",
			Short: "Show a user's profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				u, err := st.app.Client.GetUser(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printProfile(st.printer(cmd), u)
			},
		},
		&cobra.Command{
			Use:   "follow <user-id>",
			Short: "Follow a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := st.app.Client.Follow(cmd.Context(), id); err != nil {
					return err
				}
				return st.printer(cmd).message("now following user %d", id)
			},
		},
		&cobra.Command{
			Use:   "unfollow <user-id>",
			Short: "Stop following a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := st.app.Client.Unfollow(cmd.Context(), id); err != nil {
					return err
				}
				return st.printer(cmd).message("stopped following user %d", id)
			},
		},
		&cobra.Command{
			Use:   "following",
			Short: "List users you follow",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := st.app.Client.Following(cmd.Context())
				if err != nil {
					return err
				}
				return printUsers(st.printer(cmd), users)
			},
		},
		&cobra.Command{
			Use:   "followers",
			Short: "List users following you",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := st.app.Client.Followers(cmd.Context())
				if err != nil {
					return err
				}
				return printUsers(st.printer(cmd), users)
			},
		},
	)
	return withRoute(cmd, routeAuth)
}

// myID returns the signed-in user's id from the cached identity.
func (s *state) myID(cmd *cobra.Command) (int64, error) {
	id, err := s.app.Session.Identity(cmd.Context())
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, fmt.Errorf("no cached identity, log in again")
	}
	return id.ID, nil
}

func newProfileCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your own profile",
		Args:  cobra.NoArgs,
	}

	var edit blogsdk.UpdateProfileRequest
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := st.myID(cmd)
			if err != nil {
				return err
			}
			u, err := st.app.Client.UpdateProfile(cmd.Context(), id, edit)
			if err != nil {
				return err
			}
			return printProfile(st.printer(cmd), u)
		},
	}
	editCmd.Flags().StringVar(&edit.FullName, "name", "", "full name")
	editCmd.Flags().StringVar(&edit.Bio, "bio", "", "short biography")
	editCmd.Flags().StringVar(&edit.Avatar, "avatar", "", "avatar URL")

	var pw blogsdk.ChangePasswordRequest
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := st.myID(cmd)
			if err != nil {
				return err
			}
			if err := st.app.Client.ChangePassword(cmd.Context(), id, pw); err != nil {
				return err
			}
			return st.printer(cmd).message("password changed")
		},
	}
	passwordCmd.Flags().StringVar(&pw.CurrentPassword, "current", "", "current password")
	passwordCmd.Flags().StringVar(&pw.NewPassword, "new", "", "new password (at least 6 characters)")
	passwordCmd.Flags().StringVar(&pw.ConfirmPassword, "confirm", "", "repeat the new password")

	var confirmDelete bool
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDelete {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			id, err := st.myID(cmd)
			if err != nil {
				return err
			}
			if err := st.app.Client.DeleteAccount(cmd.Context(), id); err != nil {
				return err
			}
			if err := st.app.Account.Logout(cmd.Context(), true); err != nil {
				return err
			}
			return st.printer(cmd).message("account deleted")
		},
	}
	deleteCmd.Flags().BoolVar(&confirmDelete, "yes", false, "confirm deletion")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := st.app.Client.Me(cmd.Context())
				if err != nil {
					return err
				}
				return printProfile(st.printer(cmd), u)
			},
		},
		editCmd,
		passwordCmd,
		&cobra.Command{
			Use:   "picture <image-file>",
			Short: "Upload a new profile picture",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()

				up, err := st.app.Client.UploadProfilePicture(cmd.Context(), filepath.Base(args[0]), f)
				if err != nil {
					return err
				}
				return st.printer(cmd).emit(up, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "%s\t%s\n", orDash(up.Message), up.URL)
				})
			},
		},
		deleteCmd,
	)
	return withRoute(cmd, routeAuth)
}
