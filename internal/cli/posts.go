package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/mlbahja/blogger/pkg/blogsdk"
	"github.com/spf13/cobra"
)

func newPostsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"p"},
		Short:   "Read and write posts",
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(
		newPostsListCommand(st),
		newPostsFollowingCommand(st),
		newPostsShowCommand(st),
		newPostsCreateCommand(st),
		newPostsEditCommand(st),
		newPostsDeleteCommand(st),
		newPostsLikeCommand(st, true),
		newPostsLikeCommand(st, false),
		newPostsCommentCommand(st),
		newPostsUploadCommand(st),
	)
	return withRoute(cmd, routeAuth)
}

func printPosts(p printer, posts []blogsdk.Post, v any) error {
	return p.emit(v, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tLIKES\tCOMMENTS\tCREATED")
		for _, post := range posts {
			title := truncate(post.Title, 48)
			if post.IsHidden {
				title += " [hidden]"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
				post.ID, title, post.Author.Username, post.LikeCount, post.CommentCount, ago(post.CreatedAt))
		}
	})
}

func newPostsListCommand(st *state) *cobra.Command {
	var opts blogsdk.PageOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the public feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := st.app.Client.ListPosts(cmd.Context(), opts)
			if err != nil {
				return err
			}
			p := st.printer(cmd)
			if err := printPosts(p, page.Posts, page); err != nil {
				return err
			}
			if !p.json {
				fmt.Fprintf(p.w, "\npage %d of %d (%d posts)\n", page.CurrentPage, page.TotalPages, page.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.Size, "size", 10, "posts per page")
	return cmd
}

func newPostsFollowingCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "following",
		Short: "List posts from users you follow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := st.app.Client.ListFollowingPosts(cmd.Context())
			if err != nil {
				return err
			}
			return printPosts(st.printer(cmd), posts, posts)
		},
	}
}

func newPostsShowCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			post, err := st.app.Client.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}

			return st.printer(cmd).emit(post, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "%s\n", post.Title)
				fmt.Fprintf(tw, "by %s, %s\n", post.Author.Username, ago(post.CreatedAt))
				if len(post.Tags) > 0 {
					fmt.Fprintf(tw, "tags: %s\n", strings.Join(post.Tags, ", "))
				}
				if post.MediaURL != "" {
					fmt.Fprintf(tw, "media: %s (%s)\n", post.MediaURL, orDash(post.MediaType))
				}
				fmt.Fprintf(tw, "\n%s\n\n", post.Content)
				fmt.Fprintf(tw, "%d likes, %d comments\n", post.LikeCount, len(post.Comments))
				for _, c := range post.Comments {
					fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n", c.ID, c.Author, truncate(c.Content, 60), ago(c.CreatedAt))
				}
			})
		},
	}
}

func postFlags(cmd *cobra.Command, req *blogsdk.CreatePostRequest) {
	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "post title")
	cmd.Flags().StringVarP(&req.Content, "content", "c", "", "post body")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "tag, repeatable")
	cmd.Flags().StringVar(&req.MediaURL, "media-url", "", "URL returned by posts upload")
	cmd.Flags().StringVar(&req.MediaType, "media-type", "", "image, video or gif")
}

func newPostsCreateCommand(st *state) *cobra.Command {
	var req blogsdk.CreatePostRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := st.app.Client.CreatePost(cmd.Context(), req)
			if err != nil {
				return err
			}
			return st.printer(cmd).emit(post, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "created post %d\n", post.ID)
			})
		},
	}
	postFlags(cmd, &req)
	return cmd
}

func newPostsEditCommand(st *state) *cobra.Command {
	var req blogsdk.CreatePostRequest

	cmd := &cobra.Command{
		Use:   "edit <post-id>",
		Short: "Replace a post's title and content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			post, err := st.app.Client.UpdatePost(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return st.printer(cmd).emit(post, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "updated post %d\n", post.ID)
			})
		},
	}
	postFlags(cmd, &req)
	return cmd
}

func newPostsDeleteCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := st.app.Client.DeletePost(cmd.Context(), id); err != nil {
				return err
			}
			return st.printer(cmd).message("deleted post %d", id)
		},
	}
}

func newPostsLikeCommand(st *state, like bool) *cobra.Command {
	use, short := "like", "Like a post, or a comment with --comment"
	if !like {
		use, short = "unlike", "Remove your like from a post or comment"
	}

	var commentID int64
	cmd := &cobra.Command{
		Use:   use + " <post-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c := st.app.Client
			p := st.printer(cmd)

			if commentID > 0 {
				var ack *blogsdk.CommentLikeAck
				if like {
					ack, err = c.LikeComment(ctx, id, commentID)
				} else {
					ack, err = c.UnlikeComment(ctx, id, commentID)
				}
				if err != nil {
					return err
				}
				return p.emit(ack, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "comment %d now has %d likes\n", commentID, ack.LikeCount)
				})
			}

			var post *blogsdk.Post
			if like {
				post, err = c.LikePost(ctx, id)
			} else {
				post, err = c.UnlikePost(ctx, id)
			}
			if err != nil {
				return err
			}
			return p.emit(post, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "post %d now has %d likes\n", post.ID, post.LikeCount)
			})
		},
	}
	cmd.Flags().Int64Var(&commentID, "comment", 0, "comment id on the post")
	return cmd
}

func newPostsCommentCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ack, err := st.app.Client.AddComment(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return st.printer(cmd).emit(ack, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, ack.Message)
			})
		},
	}
}

func newPostsUploadCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image or video for use in a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			up, err := st.app.Client.UploadMedia(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return st.printer(cmd).emit(up, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "URL:\t%s\n", up.URL)
				fmt.Fprintf(tw, "Type:\t%s\n", up.MediaType)
			})
		},
	}
}
