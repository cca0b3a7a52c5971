package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

func (c *Client) RewardBalance(ctx context.Context, token string) (domain.RewardBalance, error) {
	var res domain.RewardBalance
	err := c.do(ctx, token, http.MethodGet, "/rewards/balance", nil, nil, &res)
	return res, err
}

func (c *Client) RewardCatalog(ctx context.Context, token string) ([]domain.RewardItem, error) {
	var res []domain.RewardItem
	err := c.do(ctx, token, http.MethodGet, "/rewards/catalog", nil, nil, &res)
	return res, err
}

func (c *Client) RewardHistory(ctx context.Context, token string) ([]domain.RewardEvent, error) {
	var res []domain.RewardEvent
	err := c.do(ctx, token, http.MethodGet, "/rewards/history", nil, nil, &res)
	return res, err
}

func (c *Client) RedeemReward(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodPost, fmt.Sprintf("/rewards/%d/redeem", id), nil, nil, nil)
}
