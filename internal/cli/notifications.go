package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/spf13/cobra"
)

func printNotifications(p printer, items []blogsdk.Notification) error {
	return p.emit(items, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tTYPE\tREAD\tWHEN\tMESSAGE")
		for _, n := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				n.ID, n.Type, yesNo(n.IsRead), ago(n.CreatedAt), truncate(n.Message, 60))
		}
	})
}

func newNotificationsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "Read and manage notifications",
		Args:    cobra.NoArgs,
	}

	var page, size int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := st.printer(cmd)
			if !cmd.Flags().Changed("page") && !cmd.Flags().Changed("size") {
				items, err := st.app.Notify.List(cmd.Context())
				if err != nil {
					return err
				}
				return printNotifications(p, items)
			}

			res, err := st.app.Client.NotificationsPage(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			if p.json {
				return p.emit(res, nil)
			}
			if err := printNotifications(p, res.Content); err != nil {
				return err
			}
			return p.message("page %d of %d (%d total)", res.Number+1, res.TotalPages, res.TotalElements)
		},
	}
	listCmd.Flags().IntVar(&page, "page", 0, "zero-based page number")
	listCmd.Flags().IntVar(&size, "size", 20, "page size")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the unread count until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := st.printer(cmd)
			poller := st.app.NewPoller()
			poller.OnChange = func(unread int64) {
				_ = p.emit(map[string]int64{"unread": unread}, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "unread notifications: %d\n", unread)
				})
			}
			poller.Start()
			defer poller.Stop()

			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "unread",
			Short: "List unread notifications",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := st.app.Notify.Unread(cmd.Context())
				if err != nil {
					return err
				}
				return printNotifications(st.printer(cmd), items)
			},
		},
		&cobra.Command{
			Use:   "count",
			Short: "Show the unread notification count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := st.app.Notify.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				return st.printer(cmd).emit(map[string]int64{"unread": n}, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "%d\n", n)
				})
			},
		},
		&cobra.Command{
			Use:   "read <notification-id>",
			Short: "Mark a notification as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := st.app.Notify.MarkRead(cmd.Context(), id); err != nil {
					return err
				}
				return st.printer(cmd).message("notification %d marked read", id)
			},
		},
		&cobra.Command{
			Use:   "read-all",
			Short: "Mark every notification as read",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := st.app.Notify.MarkAllRead(cmd.Context()); err != nil {
					return err
				}
				return st.printer(cmd).message("all notifications marked read")
			},
		},
		&cobra.Command{
			Use:   "delete <notification-id>",
			Short: "Delete a notification",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := st.app.Notify.Delete(cmd.Context(), id); err != nil {
					return err
				}
				return st.printer(cmd).message("notification %d deleted", id)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all read notifications",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := st.app.Notify.DeleteRead(cmd.Context()); err != nil {
					return err
				}
				return st.printer(cmd).message("read notifications deleted")
			},
		},
		watchCmd,
	)
	return withRoute(cmd, routeAuth)
}
