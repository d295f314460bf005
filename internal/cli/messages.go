package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMessagesCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"m"},
		Short:   "Direct messages between users",
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "send <user-id> <text...>",
			Short: "Send a message to a user",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				to, err := parseID(args[0])
				if err != nil {
					return err
				}
				sent, err := st.app.Client.SendMessage(cmd.Context(), to, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return st.printer(cmd).emit(sent, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "message %d sent\n", sent.ID)
				})
			},
		},
		&cobra.Command{
			Use:   "conversations",
			Short: "List conversations with their last message",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				convs, err := st.app.Client.Conversations(cmd.Context())
				if err != nil {
					return err
				}
				return st.printer(cmd).emit(convs, func(tw *tabwriter.Writer) {
					fmt.Fprintln(tw, "USER\tUSERNAME\tUNREAD\tWHEN\tLAST")
					for _, c := range convs {
						last := c.LastMessage
						if c.LastMessageFromMe && last != "" {
							last = "you: " + last
						}
						fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
							c.UserID, c.Username, c.UnreadCount, ago(c.LastMessageTime), orDash(truncate(last, 48)))
					}
				})
			},
		},
		&cobra.Command{
			Use:   "show <user-id>",
			Short: "Show the conversation with a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				with, err := parseID(args[0])
				if err != nil {
					return err
				}
				msgs, err := st.app.Client.Conversation(cmd.Context(), with)
				if err != nil {
					return err
				}
				return st.printer(cmd).emit(msgs, func(tw *tabwriter.Writer) {
					for _, m := range msgs {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.ID, m.Sender.Username, ago(m.CreatedAt), m.Content)
					}
				})
			},
		},
		&cobra.Command{
			Use:   "read <user-id>",
			Short: "Mark a conversation as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				with, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := st.app.Client.MarkConversationRead(cmd.Context(), with); err != nil {
					return err
				}
				return st.printer(cmd).message("conversation with user %d marked read", with)
			},
		},
		&cobra.Command{
			Use:   "unread",
			Short: "Show the unread message count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := st.app.Client.UnreadMessageCount(cmd.Context())
				if err != nil {
					return err
				}
				return st.printer(cmd).emit(map[string]int64{"unread": n}, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "%d\n", n)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <message-id>",
			Short: "Delete one of your messages",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := st.app.Client.DeleteMessage(cmd.Context(), id); err != nil {
					return err
				}
				return st.printer(cmd).message("message %d deleted", id)
			},
		},
	)
	return withRoute(cmd, routeAuth)
}
