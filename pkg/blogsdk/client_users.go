package blogsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*UserProfile, error) {
	var out UserProfile
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/auth/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*UserProfile, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out UserProfile
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/users/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	if err := Validate(req); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/users/%d/password", id), req, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/users/%d", id), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]UserProfile, error) {
	var out []UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Follow(ctx context.Context, userID int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/auth/users/%d/follow", userID), struct{}{}, nil)
}

func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/users/%d/follow", userID), nil, nil)
}

func (c *Client) IsFollowing(ctx context.Context, userID int64) (bool, error) {
	var out bool
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/auth/users/%d/is-following", userID), nil, &out)
	return out, err
}

// Following lists the users the caller follows.
func (c *Client) Following(ctx context.Context) ([]UserProfile, error) {
	var out []UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/users/following", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Followers lists the users following the caller.
func (c *Client) Followers(ctx context.Context) ([]UserProfile, error) {
	var out []UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/users/followers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadProfilePicture replaces the caller's profile picture. The server
// only accepts image content.
func (c *Client) UploadProfilePicture(ctx context.Context, filename string, r io.Reader) (*ProfilePictureUpload, error) {
	var out ProfilePictureUpload
	if err := c.doUpload(ctx, "/auth/users/upload-profile-picture", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
