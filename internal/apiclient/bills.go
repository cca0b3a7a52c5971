package apiclient

import (
	"context"
	"net/http"

	"medtrack/web/domain"
)

// BillRequest is the submission payload composed from a billing draft.
type BillRequest struct {
	CustomerName          string                `json:"customerName"`
	CustomerPhone         string                `json:"customerPhone,omitempty"`
	CustomerEmail         string                `json:"customerEmail,omitempty"`
	PaymentMethod         string                `json:"paymentMethod"`
	PaymentStatus         string                `json:"paymentStatus"`
	Items                 []domain.BillLineItem `json:"items"`
	DiscountAmount        float64               `json:"discountAmount"`
	TaxAmount             float64               `json:"taxAmount"`
	Notes                 string                `json:"notes,omitempty"`
	PrescriptionReference string                `json:"prescriptionReference,omitempty"`
}

func (c *Client) Bills(ctx context.Context, token string) ([]domain.Bill, error) {
	var res []domain.Bill
	err := c.do(ctx, token, http.MethodGet, "/bills", nil, nil, &res)
	return res, err
}

func (c *Client) CreateBill(ctx context.Context, token string, req BillRequest) (domain.Bill, error) {
	var res domain.Bill
	err := c.do(ctx, token, http.MethodPost, "/bills", nil, req, &res)
	return res, err
}
