package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) Medications(ctx context.Context, token string) ([]domain.Medication, error) {
	var res []domain.Medication
	err := c.do(ctx, token, http.MethodGet, "/medications", nil, nil, &res)
	return res, err
}

func (c *Client) CreateMedication(ctx context.Context, token string, m domain.Medication) (domain.Medication, error) {
	var res domain.Medication
	err := c.do(ctx, token, http.MethodPost, "/medications", nil, m, &res)
	return res, err
}

func (c *Client) UpdateMedication(ctx context.Context, token string, id int64, m domain.Medication) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/medications/%d", id), nil, m, nil)
}

func (c *Client) DeleteMedication(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/medications/%d", id), nil, nil, nil)
}
