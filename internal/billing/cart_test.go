package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/web/domain"
)

func stockItem(id int64, qty int64, price float64) domain.InventoryItem {
	return domain.InventoryItem{ID: id, Name: "Napa 500mg", Quantity: qty, UnitPrice: price}
}

func TestAddItemMergesIntoOneLine(t *testing.T) {
	d := NewDraft()
	item := stockItem(1, 5, 1.20)

	require.NoError(t, d.AddItem(item))
	require.NoError(t, d.AddItem(item))
	require.NoError(t, d.AddItem(item))

	require.Len(t, d.Items, 1)
	assert.Equal(t, int64(3), d.Items[0].Quantity)
	assert.InDelta(t, 3.60, d.Items[0].Subtotal, 1e-9)
}

func TestAddItemCapsAtAvailableStock(t *testing.T) {
	d := NewDraft()
	item := stockItem(1, 5, 1.20)
	for i := 0; i < 5; i++ {
		require.NoError(t, d.AddItem(item))
	}

	before := *d
	beforeItems := append([]domain.BillLineItem(nil), d.Items...)

	err := d.AddItem(item)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Rejection leaves the draft exactly as it was.
	assert.Equal(t, beforeItems, d.Items)
	assert.Equal(t, before.Subtotal(), d.Subtotal())
}

func TestAddItemThreeOfFiveThenFourthSucceeds(t *testing.T) {
	d := NewDraft()
	item := stockItem(1, 5, 2.00)
	for i := 0; i < 3; i++ {
		require.NoError(t, d.AddItem(item))
	}

	require.NoError(t, d.AddItem(item))
	assert.Equal(t, int64(4), d.Items[0].Quantity)
	assert.InDelta(t, 8.00, d.Items[0].Subtotal, 1e-9)
}

func TestAddItemOutOfStock(t *testing.T) {
	d := NewDraft()
	err := d.AddItem(stockItem(1, 0, 1.20))
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, d.Items)
}

func TestSetQuantity(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddItem(stockItem(1, 10, 2.50)))

	require.NoError(t, d.SetQuantity(1, 4))
	assert.Equal(t, int64(4), d.Items[0].Quantity)
	assert.InDelta(t, 10.00, d.Items[0].Subtotal, 1e-9)

	// Above available stock: rejected, line unchanged.
	require.ErrorIs(t, d.SetQuantity(1, 11), ErrInsufficientStock)
	assert.Equal(t, int64(4), d.Items[0].Quantity)

	// Unknown line.
	require.ErrorIs(t, d.SetQuantity(99, 1), ErrUnknownItem)

	// Below one removes the line.
	require.NoError(t, d.SetQuantity(1, 0))
	assert.Empty(t, d.Items)
}

func TestRemoveItem(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddItem(stockItem(1, 5, 1.00)))
	require.NoError(t, d.AddItem(stockItem(2, 5, 2.00)))

	d.RemoveItem(1)
	require.Len(t, d.Items, 1)
	assert.Equal(t, int64(2), d.Items[0].InventoryID)

	// Removing an absent line is a no-op.
	d.RemoveItem(99)
	assert.Len(t, d.Items, 1)
}

func TestTotals(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddItem(stockItem(1, 5, 3.00)))
	require.NoError(t, d.SetQuantity(1, 2))
	require.NoError(t, d.AddItem(stockItem(2, 5, 4.00)))

	assert.InDelta(t, 10.00, d.Subtotal(), 1e-9)

	d.DiscountAmount = 1.50
	d.TaxAmount = 0.75
	assert.InDelta(t, 9.25, d.Total(), 1e-9)
}

func TestValidateRejectsEmptyDraft(t *testing.T) {
	d := NewDraft()
	d.CustomerName = "Rahim Uddin"
	assert.Error(t, d.Validate(), "a draft with no items must not submit")

	require.NoError(t, d.AddItem(stockItem(1, 5, 1.00)))
	assert.NoError(t, d.Validate())
}

func TestValidateRejectsMissingCustomerName(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddItem(stockItem(1, 5, 1.00)))
	assert.Error(t, d.Validate())

	d.CustomerName = "Rahim Uddin"
	assert.NoError(t, d.Validate())
}

func TestValidateRejectsBadEmailAndNegativeAdjustments(t *testing.T) {
	d := NewDraft()
	d.CustomerName = "Rahim Uddin"
	require.NoError(t, d.AddItem(stockItem(1, 5, 1.00)))

	d.CustomerEmail = "not-an-email"
	assert.Error(t, d.Validate())
	d.CustomerEmail = "rahim@example.com"
	assert.NoError(t, d.Validate())

	d.DiscountAmount = -1
	assert.Error(t, d.Validate())
	d.DiscountAmount = 0

	d.TaxAmount = -1
	assert.Error(t, d.Validate())
}

func TestReset(t *testing.T) {
	d := NewDraft()
	d.CustomerName = "Rahim Uddin"
	d.DiscountAmount = 2
	require.NoError(t, d.AddItem(stockItem(1, 5, 1.00)))

	d.Reset()
	assert.Empty(t, d.Items)
	assert.Empty(t, d.CustomerName)
	assert.Zero(t, d.DiscountAmount)
	assert.Equal(t, domain.PaymentCash, d.PaymentMethod)
	assert.Equal(t, domain.PaymentPaid, d.PaymentStatus)
}

func TestCartsArePerSession(t *testing.T) {
	carts := NewCarts()
	a := carts.Get("session-a")
	b := carts.Get("session-b")
	require.NotSame(t, a, b)

	require.NoError(t, a.AddItem(stockItem(1, 5, 1.00)))
	assert.Empty(t, b.Items)

	// Same session always sees the same draft.
	assert.Same(t, a, carts.Get("session-a"))

	carts.Drop("session-a")
	assert.Empty(t, carts.Get("session-a").Items)
}
