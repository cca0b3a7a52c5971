package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"medtrack/web/domain"
)

// InventoryItems lists a pharmacy's stock, optionally filtered by a search
// query over name and generic name.
func (c *Client) InventoryItems(ctx context.Context, token string, pharmacyID int64, query string) ([]domain.InventoryItem, error) {
	var params url.Values
	if query != "" {
		params = url.Values{"query": {query}}
	}
	var res []domain.InventoryItem
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/inventories/%d/items", pharmacyID), params, nil, &res)
	return res, err
}

func (c *Client) CreateInventoryItem(ctx context.Context, token string, pharmacyID int64, item domain.InventoryItem) (domain.InventoryItem, error) {
	var res domain.InventoryItem
	err := c.do(ctx, token, http.MethodPost, fmt.Sprintf("/inventories/%d/items", pharmacyID), nil, item, &res)
	return res, err
}

func (c *Client) UpdateInventoryItem(ctx context.Context, token string, pharmacyID, itemID int64, item domain.InventoryItem) error {
	return c.do(ctx, token, http.MethodPut, fmt.Sprintf("/inventories/%d/items/%d", pharmacyID, itemID), nil, item, nil)
}

func (c *Client) DeleteInventoryItem(ctx context.Context, token string, pharmacyID, itemID int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/inventories/%d/items/%d", pharmacyID, itemID), nil, nil, nil)
}

func (c *Client) InventoryStats(ctx context.Context, token string, pharmacyID int64) (domain.InventoryStats, error) {
	var res domain.InventoryStats
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/inventories/%d/stats", pharmacyID), nil, nil, &res)
	return res, err
}

func (c *Client) InventoryOverview(ctx context.Context, token string, pharmacyID int64) (domain.InventoryOverview, error) {
	var res domain.InventoryOverview
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/inventories/%d/overview", pharmacyID), nil, nil, &res)
	return res, err
}
