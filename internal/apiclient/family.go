package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) FamilyMembers(ctx context.Context, token string) ([]domain.FamilyMember, error) {
	var res []domain.FamilyMember
	err := c.do(ctx, token, http.MethodGet, "/family", nil, nil, &res)
	return res, err
}

func (c *Client) CreateFamilyMember(ctx context.Context, token string, m domain.FamilyMember) (domain.FamilyMember, error) {
	var res domain.FamilyMember
	err := c.do(ctx, token, http.MethodPost, "/family", nil, m, &res)
	return res, err
}

func (c *Client) UpdateFamilyMember(ctx context.Context, token string, id int64, m domain.FamilyMember) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/family/%d", id), nil, m, nil)
}

func (c *Client) DeleteFamilyMember(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/family/%d", id), nil, nil, nil)
}
