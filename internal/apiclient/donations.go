package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) Donations(ctx context.Context, token string) ([]domain.Donation, error) {
	var res []domain.Donation
	err := c.do(ctx, token, http.MethodGet, "/donations", nil, nil, &res)
	return res, err
}

func (c *Client) CreateDonation(ctx context.Context, token string, d domain.Donation) (domain.Donation, error) {
	var res domain.Donation
	err := c.do(ctx, token, http.MethodPost, "/donations", nil, d, &res)
	return res, err
}

func (c *Client) UpdateDonationStatus(ctx context.Context, token string, id int64, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/donations/%d/status", id), nil, body, nil)
}

func (c *Client) DeleteDonation(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/donations/%d", id), nil, nil, nil)
}
