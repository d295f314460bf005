package blogsdk

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.doJSON(ctx, http.MethodGet, "/auth/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NotificationsPage returns a zero-based page of notifications.
func (c *Client) NotificationsPage(ctx context.Context, page, size int) (*NotificationPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	path, err := withQuery("/auth/notifications/paginated", notificationPageQuery{Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	var out NotificationPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnreadNotifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.doJSON(ctx, http.MethodGet, "/auth/notifications/unread", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var out countResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/notifications/unread/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/notifications/%d/read", id), struct{}{}, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPut, "/auth/notifications/read-all", struct{}{}, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/notifications/%d", id), nil, nil)
}

// DeleteReadNotifications removes every notification already marked read.
func (c *Client) DeleteReadNotifications(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/auth/notifications/read", nil, nil)
}
