package blogsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ListPosts returns one page of the public feed.
func (c *Client) ListPosts(ctx context.Context, opts PageOptions) (*PostPage, error) {
	path, err := withQuery("/auth/posts", opts.withDefaults())
	if err != nil {
		return nil, err
	}

	var out PostPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFollowingPosts returns posts written by users the caller follows.
func (c *Client) ListFollowingPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.doJSON(ctx, http.MethodGet, "/auth/posts/following", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/auth/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out Post
	if err := c.doJSON(ctx, http.MethodPost, "/auth/posts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, req CreatePostRequest) (*Post, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out Post
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/posts/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/posts/%d", id), nil, nil)
}

// UploadMedia stores an image or video for later use as a post's MediaURL.
func (c *Client) UploadMedia(ctx context.Context, filename string, r io.Reader) (*MediaUpload, error) {
	var out MediaUpload
	if err := c.doUpload(ctx, "/auth/posts/upload", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddComment(ctx context.Context, postID int64, content string) (*CommentAck, error) {
	req := commentRequest{Content: content}
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out CommentAck
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/auth/posts/%d/comments", postID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikePost(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/auth/posts/%d/like", id), struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnlikePost(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/posts/%d/like", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) HasLikedPost(ctx context.Context, id int64) (bool, error) {
	var out bool
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/auth/posts/%d/liked", id), nil, &out)
	return out, err
}

func (c *Client) LikeComment(ctx context.Context, postID, commentID int64) (*CommentLikeAck, error) {
	var out CommentLikeAck
	path := fmt.Sprintf("/auth/posts/%d/comments/%d/like", postID, commentID)
	if err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnlikeComment(ctx context.Context, postID, commentID int64) (*CommentLikeAck, error) {
	var out CommentLikeAck
	path := fmt.Sprintf("/auth/posts/%d/comments/%d/like", postID, commentID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) HasLikedComment(ctx context.Context, postID, commentID int64) (bool, error) {
	var out bool
	path := fmt.Sprintf("/auth/posts/%d/comments/%d/liked", postID, commentID)
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}
