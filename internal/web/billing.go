package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"medtrack/web/domain"
	"medtrack/web/internal/apiclient"
	"medtrack/web/internal/billing"
)

type billingData struct {
	Draft         *billing.Draft
	Subtotal      float64
	Total         float64
	SearchResults []domain.InventoryItem
	Query         string
	RecentBills   []domain.Bill
}

// billingPage renders the point-of-sale view: inventory search, the
// current draft with derived totals, and recent bills.
func (h *Handler) billingPage(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("query")

	var results []domain.InventoryItem
	var banner string
	if query != "" {
		var fetched bool
		results, banner, fetched = fetchList(h, w, r, func(ctx context.Context, token string) ([]domain.InventoryItem, error) {
			return h.api.InventoryItems(ctx, token, pharmacyID, query)
		})
		if !fetched {
			return
		}
	}

	bills, billsBanner, ok := fetchList(h, w, r, h.api.Bills)
	if !ok {
		return
	}
	if banner == "" {
		banner = billsBanner
	}
	if len(bills) > 5 {
		bills = bills[len(bills)-5:]
	}

	draft := h.carts.Get(sessionID(r))
	h.renderBanner(w, r, "billing", "Billing", banner, billingData{
		Draft:         draft,
		Subtotal:      draft.Subtotal(),
		Total:         draft.Total(),
		SearchResults: results,
		Query:         query,
		RecentBills:   bills,
	})
}

// cartAddItem looks the inventory item up by id and adds one unit to the
// draft. Stock-bound rejections never mutate the draft.
func (h *Handler) cartAddItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
		return
	}
	inventoryID := formInt64(r, "inventory_id")

	items, err := h.api.InventoryItems(r.Context(), token(r), pharmacyID, "")
	if err != nil {
		h.failBack(w, r, "/pharmacy/dashboard/billing", err)
		return
	}
	var found *domain.InventoryItem
	for i := range items {
		if items[i].ID == inventoryID {
			found = &items[i]
			break
		}
	}
	if found == nil {
		h.setFlash(w, flashError, "inventory item not found")
		http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
		return
	}

	switch err := h.carts.Get(sessionID(r)).AddItem(*found); {
	case errors.Is(err, billing.ErrOutOfStock):
		h.setFlash(w, flashError, found.Name+" is out of stock")
	case errors.Is(err, billing.ErrInsufficientStock):
		h.setFlash(w, flashError, "not enough stock of "+found.Name)
	case err != nil:
		h.setFlash(w, flashError, err.Error())
	default:
		h.setFlash(w, flashSuccess, found.Name+" added to bill")
	}
	http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
}

func (h *Handler) cartSetQuantity(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.staffPharmacyID(w, r); !ok {
		return
	}
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
		return
	}

	switch err := h.carts.Get(sessionID(r)).SetQuantity(id, formInt64(r, "quantity")); {
	case errors.Is(err, billing.ErrInsufficientStock):
		h.setFlash(w, flashError, "requested quantity exceeds available stock")
	case errors.Is(err, billing.ErrUnknownItem):
		h.setFlash(w, flashError, "item is not on the bill")
	case err != nil:
		h.setFlash(w, flashError, err.Error())
	}
	http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
}

func (h *Handler) cartRemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.staffPharmacyID(w, r); !ok {
		return
	}
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.carts.Get(sessionID(r)).RemoveItem(id)
	http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
}

// cartSubmit folds the posted customer details into the draft, validates
// locally and only then calls the backend. A rejected draft never leaves
// the client; a backend failure leaves the draft intact for retry.
func (h *Handler) cartSubmit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.staffPharmacyID(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
		return
	}

	draft := h.carts.Get(sessionID(r))
	draft.CustomerName = r.FormValue("customer_name")
	draft.CustomerPhone = r.FormValue("customer_phone")
	draft.CustomerEmail = r.FormValue("customer_email")
	if m := r.FormValue("payment_method"); m != "" {
		draft.PaymentMethod = m
	}
	if s := r.FormValue("payment_status"); s != "" {
		draft.PaymentStatus = s
	}
	draft.DiscountAmount = formFloat(r, "discount_amount")
	draft.TaxAmount = formFloat(r, "tax_amount")
	draft.Notes = r.FormValue("notes")
	draft.PrescriptionReference = r.FormValue("prescription_reference")

	if err := draft.Validate(); err != nil {
		h.setFlash(w, flashError, validationMessage(err))
		http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
		return
	}

	_, err := h.api.CreateBill(r.Context(), token(r), apiclient.BillRequest{
		CustomerName:          draft.CustomerName,
		CustomerPhone:         draft.CustomerPhone,
		CustomerEmail:         draft.CustomerEmail,
		PaymentMethod:         draft.PaymentMethod,
		PaymentStatus:         draft.PaymentStatus,
		Items:                 draft.Items,
		DiscountAmount:        draft.DiscountAmount,
		TaxAmount:             draft.TaxAmount,
		Notes:                 draft.Notes,
		PrescriptionReference: draft.PrescriptionReference,
	})
	if err != nil {
		h.failBack(w, r, "/pharmacy/dashboard/billing", err)
		return
	}

	draft.Reset()
	h.setFlash(w, flashSuccess, "bill created")
	http.Redirect(w, r, "/pharmacy/dashboard/billing", http.StatusSeeOther)
}

// validationMessage turns validator output into something a cashier can
// act on.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "the bill is incomplete"
	}
	switch verrs[0].Field() {
	case "CustomerName":
		return "customer name is required"
	case "Items":
		return "add at least one item to the bill"
	case "CustomerEmail":
		return "customer email is not valid"
	case "DiscountAmount", "TaxAmount":
		return "discount and tax cannot be negative"
	}
	return "the bill is incomplete"
}
