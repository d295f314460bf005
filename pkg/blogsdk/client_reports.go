package blogsdk

import (
	"context"
	"fmt"
	"net/http"
)

// CreateReport flags a post for moderation.
func (c *Client) CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out Report
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reports", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyReports(ctx context.Context) ([]Report, error) {
	return c.listReports(ctx, "/auth/reports/my")
}

func (c *Client) AllReports(ctx context.Context) ([]Report, error) {
	return c.listReports(ctx, "/auth/reports/admin/all")
}

func (c *Client) UnresolvedReports(ctx context.Context) ([]Report, error) {
	return c.listReports(ctx, "/auth/reports/admin/unresolved")
}

func (c *Client) listReports(ctx context.Context, path string) ([]Report, error) {
	var out []Report
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UnresolvedReportCount(ctx context.Context) (int64, error) {
	var out countResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/reports/admin/count-unresolved", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) UpdateReport(ctx context.Context, id int64, req UpdateReportRequest) (*Report, error) {
	var out Report
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/reports/admin/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReport(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/reports/admin/%d", id), nil, nil)
}
