package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) Reminders(ctx context.Context, token string) ([]domain.Reminder, error) {
	var res []domain.Reminder
	err := c.do(ctx, token, http.MethodGet, "/reminders", nil, nil, &res)
	return res, err
}

func (c *Client) PendingReminders(ctx context.Context, token string) ([]domain.Reminder, error) {
	var res []domain.Reminder
	err := c.do(ctx, token, http.MethodGet, "/reminders/pending", nil, nil, &res)
	return res, err
}

func (c *Client) CreateReminder(ctx context.Context, token string, rem domain.Reminder) (domain.Reminder, error) {
	var res domain.Reminder
	err := c.do(ctx, token, http.MethodPost, "/reminders", nil, rem, &res)
	return res, err
}

func (c *Client) CompleteReminder(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodPost, fmt.Sprintf("/reminders/%d/complete", id), nil, nil, nil)
}

func (c *Client) DeleteReminder(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/reminders/%d", id), nil, nil, nil)
}
