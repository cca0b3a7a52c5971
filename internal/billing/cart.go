// Package billing accumulates line items for one pharmacy sale before
// submission. Every mutation keeps each line within its available stock
// and its subtotal equal to quantity times unit price; totals are derived,
// never stored.
package billing

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"medtrack/web/domain"
)

var (
	// ErrOutOfStock rejects adding an item with no available stock.
	ErrOutOfStock = errors.New("billing: item is out of stock")
	// ErrInsufficientStock rejects a quantity above the available stock.
	ErrInsufficientStock = errors.New("billing: insufficient stock")
	// ErrUnknownItem rejects a quantity change for an item not in the draft.
	ErrUnknownItem = errors.New("billing: item is not in the draft")
)

var validate = validator.New()

// Draft is the client-side state of one sale being composed. It exists
// only until submission succeeds, then resets.
type Draft struct {
	CustomerName          string                `validate:"required"`
	CustomerPhone         string                ``
	CustomerEmail         string                `validate:"omitempty,email"`
	PaymentMethod         string                `validate:"required"`
	PaymentStatus         string                `validate:"required"`
	Items                 []domain.BillLineItem `validate:"min=1"`
	DiscountAmount        float64               `validate:"gte=0"`
	TaxAmount             float64               `validate:"gte=0"`
	Notes                 string                ``
	PrescriptionReference string                ``
}

// NewDraft returns an empty draft with the default payment selection.
func NewDraft() *Draft {
	return &Draft{PaymentMethod: domain.PaymentCash, PaymentStatus: domain.PaymentPaid}
}

// AddItem appends one unit of an inventory item. Adding the same item
// again merges into the existing line. Exceeding the available stock
// leaves the draft unchanged.
func (d *Draft) AddItem(item domain.InventoryItem) error {
	if item.Quantity <= 0 {
		return ErrOutOfStock
	}
	for i := range d.Items {
		if d.Items[i].InventoryID == item.ID {
			if d.Items[i].Quantity+1 > d.Items[i].AvailableQuantity {
				return ErrInsufficientStock
			}
			d.Items[i].Quantity++
			d.Items[i].Subtotal = float64(d.Items[i].Quantity) * d.Items[i].UnitPrice
			return nil
		}
	}
	d.Items = append(d.Items, domain.BillLineItem{
		InventoryID:       item.ID,
		Name:              item.Name,
		Quantity:          1,
		UnitPrice:         item.UnitPrice,
		Subtotal:          item.UnitPrice,
		AvailableQuantity: item.Quantity,
	})
	return nil
}

// SetQuantity updates a line's quantity. Below 1 removes the line; above
// the available stock is rejected with the draft unchanged.
func (d *Draft) SetQuantity(inventoryID, n int64) error {
	for i := range d.Items {
		if d.Items[i].InventoryID != inventoryID {
			continue
		}
		if n < 1 {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return nil
		}
		if n > d.Items[i].AvailableQuantity {
			return ErrInsufficientStock
		}
		d.Items[i].Quantity = n
		d.Items[i].Subtotal = float64(n) * d.Items[i].UnitPrice
		return nil
	}
	return ErrUnknownItem
}

// RemoveItem drops a line unconditionally.
func (d *Draft) RemoveItem(inventoryID int64) {
	for i := range d.Items {
		if d.Items[i].InventoryID == inventoryID {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return
		}
	}
}

// Subtotal is the sum of line subtotals.
func (d *Draft) Subtotal() float64 {
	var sum float64
	for _, item := range d.Items {
		sum += item.Subtotal
	}
	return sum
}

// Total is subtotal minus discount plus tax.
func (d *Draft) Total() float64 {
	return d.Subtotal() - d.DiscountAmount + d.TaxAmount
}

// Validate rejects a draft that must not reach the backend: no line items
// or no customer name.
func (d *Draft) Validate() error {
	return validate.Struct(d)
}

// Reset returns the draft to its empty post-submission state.
func (d *Draft) Reset() {
	*d = *NewDraft()
}
