package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/spf13/cobra"
)

func printReports(p printer, reports []blogsdk.Report) error {
	return p.emit(reports, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tPOST\tREPORTER\tRESOLVED\tWHEN\tMESSAGE")
		for _, r := range reports {
			fmt.Fprintf(tw, "%d\t%d %s\t%s\t%s\t%s\t%s\n",
				r.ID, r.PostID, truncate(r.PostTitle, 24), r.ReporterUsername,
				yesNo(r.Resolved), ago(r.CreatedAt), truncate(r.Message, 48))
		}
	})
}

func newReportsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Report posts and review your reports",
		Args:  cobra.NoArgs,
	}

	var req blogsdk.CreateReportRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Report a post to the moderators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := st.app.Client.CreateReport(cmd.Context(), req)
			if err != nil {
				return err
			}
			return st.printer(cmd).emit(r, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "report %d filed against post %d\n", r.ID, r.PostID)
			})
		},
	}
	createCmd.Flags().Int64Var(&req.PostID, "post", 0, "id of the post to report")
	createCmd.Flags().StringVarP(&req.Message, "message", "m", "", "reason for the report")
	_ = createCmd.MarkFlagRequired("post")

	cmd.AddCommand(
		createCmd,
		&cobra.Command{
			Use:   "mine",
			Short: "List reports you have filed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reports, err := st.app.Client.MyReports(cmd.Context())
				if err != nil {
					return err
				}
				return printReports(st.printer(cmd), reports)
			},
		},
	)
	return withRoute(cmd, routeAuth)
}
