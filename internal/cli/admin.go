package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/spf13/cobra"
)

// idAction builds a subcommand that takes one numeric id, calls do and
// prints done with the id substituted.
func idAction(st *state, use, short, done string, do func(ctx context.Context, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := do(cmd.Context(), id); err != nil {
				return err
			}
			return st.printer(cmd).message(done, id)
		},
	}
}

func newAdminCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderation and user management (admin only)",
		Args:  cobra.NoArgs,
	}

	var unresolved bool
	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "List reports filed by users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := st.app.Client.AllReports
			if unresolved {
				list = st.app.Client.UnresolvedReports
			}
			reports, err := list(cmd.Context())
			if err != nil {
				return err
			}
			return printReports(st.printer(cmd), reports)
		},
	}
	reportsCmd.Flags().BoolVar(&unresolved, "unresolved", false, "only show unresolved reports")

	var notes string
	var reopen bool
	resolveCmd := &cobra.Command{
		Use:   "resolve <report-id>",
		Short: "Mark a report resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := st.app.Client.UpdateReport(cmd.Context(), id, blogsdk.UpdateReportRequest{
				Resolved:   !reopen,
				AdminNotes: notes,
			})
			if err != nil {
				return err
			}
			return st.printer(cmd).emit(r, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "report %d resolved: %s\n", r.ID, yesNo(r.Resolved))
			})
		},
	}
	resolveCmd.Flags().StringVar(&notes, "notes", "", "moderator notes stored with the report")
	resolveCmd.Flags().BoolVar(&reopen, "reopen", false, "mark the report unresolved instead")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show platform statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := st.app.Client.AdminStats(cmd.Context())
				if err != nil {
					return err
				}
				pending, err := st.app.Client.UnresolvedReportCount(cmd.Context())
				if err != nil {
					return err
				}
				out := struct {
					*blogsdk.AdminStats
					UnresolvedReports int64 `json:"unresolvedReports"`
				}{s, pending}
				return st.printer(cmd).emit(out, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "Users:\t%d (%d active, %d banned, %d admins)\n", s.TotalUsers, s.ActiveUsers, s.BannedUsers, s.AdminUsers)
					fmt.Fprintf(tw, "New users this week:\t%d\n", s.NewUsersThisWeek)
					fmt.Fprintf(tw, "Posts:\t%d (%d today)\n", s.TotalPosts, s.PostsToday)
					fmt.Fprintf(tw, "Comments:\t%d (%d today)\n", s.TotalComments, s.CommentsToday)
					fmt.Fprintf(tw, "Unresolved reports:\t%d\n", pending)
				})
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "List every user with moderation details",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := st.app.Client.AdminUsers(cmd.Context())
				if err != nil {
					return err
				}
				return printUsers(st.printer(cmd), users)
			},
		},
		idAction(st, "ban <user-id>", "Ban a user", "user %d banned",
			func(ctx context.Context, id int64) error { return st.app.Client.BanUser(ctx, id) }),
		idAction(st, "unban <user-id>", "Lift a ban", "user %d unbanned",
			func(ctx context.Context, id int64) error { return st.app.Client.UnbanUser(ctx, id) }),
		&cobra.Command{
			Use:       "role <user-id> <USER|ADMIN>",
			Short:     "Change a user's role",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{string(blogsdk.RoleUser), string(blogsdk.RoleAdmin)},
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				role := blogsdk.Role(strings.ToUpper(args[1]))
				if err := st.app.Client.ChangeUserRole(cmd.Context(), id, role); err != nil {
					return err
				}
				return st.printer(cmd).message("user %d is now %s", id, role)
			},
		},
		idAction(st, "delete-user <user-id>", "Delete a user account", "user %d deleted",
			func(ctx context.Context, id int64) error { return st.app.Client.AdminDeleteUser(ctx, id) }),
		&cobra.Command{
			Use:   "posts",
			Short: "List every post, hidden ones included",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				posts, err := st.app.Client.AdminPosts(cmd.Context())
				if err != nil {
					return err
				}
				return printPosts(st.printer(cmd), posts, posts)
			},
		},
		idAction(st, "hide <post-id>", "Hide a post from the feed", "post %d hidden",
			func(ctx context.Context, id int64) error { return st.app.Client.HidePost(ctx, id) }),
		idAction(st, "unhide <post-id>", "Make a hidden post visible again", "post %d visible",
			func(ctx context.Context, id int64) error { return st.app.Client.UnhidePost(ctx, id) }),
		idAction(st, "delete-post <post-id>", "Delete any post", "post %d deleted",
			func(ctx context.Context, id int64) error { return st.app.Client.AdminDeletePost(ctx, id) }),
		reportsCmd,
		resolveCmd,
		idAction(st, "delete-report <report-id>", "Delete a report", "report %d deleted",
			func(ctx context.Context, id int64) error { return st.app.Client.DeleteReport(ctx, id) }),
	)
	return withRoute(cmd, routeAdmin)
}
