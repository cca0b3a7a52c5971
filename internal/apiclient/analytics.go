package apiclient

import (
	"context"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) DashboardSummary(ctx context.Context, token string) (domain.DashboardSummary, error) {
	var res domain.DashboardSummary
	err := c.do(ctx, token, http.MethodGet, "/analytics/dashboard", nil, nil, &res)
	return res, err
}

func (c *Client) AdherenceReport(ctx context.Context, token string) ([]domain.AdherenceEntry, error) {
	var res []domain.AdherenceEntry
	err := c.do(ctx, token, http.MethodGet, "/analytics/adherence", nil, nil, &res)
	return res, err
}
