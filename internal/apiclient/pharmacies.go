package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/web/domain"
)

// MyPharmacy returns the pharmacy attached to the staff credential. It also
// serves as the staff-session probe on reload: a patient token gets a
// rejection here.
func (c *Client) MyPharmacy(ctx context.Context, token string) (domain.Pharmacy, error) {
	var res domain.Pharmacy
	err := c.do(ctx, token, http.MethodGet, "/pharmacies/mine", nil, nil, &res)
	return res, err
}

func (c *Client) PharmacyActivity(ctx context.Context, token string, pharmacyID int64) ([]domain.ActivityEntry, error) {
	var res []domain.ActivityEntry
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/pharmacies/%d/activity", pharmacyID), nil, nil, &res)
	return res, err
}
