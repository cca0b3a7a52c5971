package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) Prescriptions(ctx context.Context, token string) ([]domain.Prescription, error) {
	var res []domain.Prescription
	err := c.do(ctx, token, http.MethodGet, "/prescriptions", nil, nil, &res)
	return res, err
}

func (c *Client) CreatePrescription(ctx context.Context, token string, p domain.Prescription) (domain.Prescription, error) {
	var res domain.Prescription
	err := c.do(ctx, token, http.MethodPost, "/prescriptions", nil, p, &res)
	return res, err
}

func (c *Client) UpdatePrescription(ctx context.Context, token string, id int64, p domain.Prescription) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/prescriptions/%d", id), nil, p, nil)
}

func (c *Client) DeletePrescription(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/prescriptions/%d", id), nil, nil, nil)
}
