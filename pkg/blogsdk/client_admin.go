package blogsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Every call in this file requires the ADMIN role server side.

func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/auth/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]UserProfile, error) {
	var out []UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BanUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/admin/users/%d/ban", id), struct{}{}, nil)
}

func (c *Client) UnbanUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/admin/users/%d/unban", id), struct{}{}, nil)
}

func (c *Client) ChangeUserRole(ctx context.Context, id int64, role Role) error {
	req := changeRoleRequest{Role: role}
	if err := Validate(req); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/admin/users/%d/role", id), req, nil)
}

func (c *Client) AdminDeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/admin/users/%d", id), nil, nil)
}

// AdminPosts lists every post including hidden ones.
func (c *Client) AdminPosts(ctx context.Context) ([]Post, error) {
	var out postsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/auth/admin/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) HidePost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/admin/posts/%d/hide", id), struct{}{}, nil)
}

func (c *Client) UnhidePost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/admin/posts/%d/unhide", id), struct{}{}, nil)
}

func (c *Client) AdminDeletePost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/admin/posts/%d", id), nil, nil)
}
