package web

import (
	"context"
	"net/http"

	"medtrack/web/domain"
)

// staffPharmacyID returns the pharmacy behind the current session. A
// patient wandering into a pharmacy URL gets bounced to their own
// dashboard; the backend rejects their token on these resources anyway.
func (h *Handler) staffPharmacyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	p := principal(r)
	if !domain.IsPharmacyStaff(p) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return 0, false
	}
	return p.Staff.PharmacyID, true
}

type pharmacyDashboardData struct {
	Pharmacy domain.Pharmacy
	Stats    domain.InventoryStats
	Overview domain.InventoryOverview
	Activity []domain.ActivityEntry
}

func (h *Handler) pharmacyDashboard(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}

	var data pharmacyDashboardData
	var banner string

	pharmacy, err := h.api.MyPharmacy(r.Context(), token(r))
	if err != nil {
		if h.sessionFailed(w, r, err) {
			return
		}
		banner = errMessage(err)
	} else {
		data.Pharmacy = pharmacy
	}

	if stats, err := h.api.InventoryStats(r.Context(), token(r), pharmacyID); err == nil {
		data.Stats = stats
	} else if h.sessionFailed(w, r, err) {
		return
	}
	if overview, err := h.api.InventoryOverview(r.Context(), token(r), pharmacyID); err == nil {
		data.Overview = overview
	} else if h.sessionFailed(w, r, err) {
		return
	}

	activity, activityBanner, ok := fetchList(h, w, r, func(ctx context.Context, token string) ([]domain.ActivityEntry, error) {
		return h.api.PharmacyActivity(ctx, token, pharmacyID)
	})
	if !ok {
		return
	}
	if len(activity) > 8 {
		activity = activity[len(activity)-8:]
	}
	data.Activity = activity
	if banner == "" {
		banner = activityBanner
	}

	h.renderBanner(w, r, "pharmacy_dashboard", "Pharmacy dashboard", banner, data)
}

// Inventory

type inventoryData struct {
	Items []domain.InventoryItem
	Stats domain.InventoryStats
	Query string
}

func (h *Handler) inventoryPage(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("query")

	items, banner, ok := fetchList(h, w, r, func(ctx context.Context, token string) ([]domain.InventoryItem, error) {
		return h.api.InventoryItems(ctx, token, pharmacyID, query)
	})
	if !ok {
		return
	}
	stats, err := h.api.InventoryStats(r.Context(), token(r), pharmacyID)
	if err != nil {
		if h.sessionFailed(w, r, err) {
			return
		}
		if banner == "" {
			banner = errMessage(err)
		}
	}
	h.renderBanner(w, r, "inventory", "Inventory", banner, inventoryData{Items: items, Stats: stats, Query: query})
}

func inventoryItemFromForm(r *http.Request) domain.InventoryItem {
	return domain.InventoryItem{
		Name:         r.FormValue("name"),
		GenericName:  r.FormValue("generic_name"),
		Manufacturer: r.FormValue("manufacturer"),
		Quantity:     formInt64(r, "quantity"),
		UnitPrice:    formFloat(r, "unit_price"),
		CostPrice:    formFloat(r, "cost_price"),
		ExpiryDate:   r.FormValue("expiry_date"),
	}
}

func (h *Handler) createInventoryItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/dashboard/inventory", http.StatusSeeOther)
		return
	}
	item := inventoryItemFromForm(r)
	if item.Name == "" || item.UnitPrice <= 0 {
		h.setFlash(w, flashError, "name and a positive unit price are required")
		http.Redirect(w, r, "/pharmacy/dashboard/inventory", http.StatusSeeOther)
		return
	}
	if _, err := h.api.CreateInventoryItem(r.Context(), token(r), pharmacyID, item); err != nil {
		h.failBack(w, r, "/pharmacy/dashboard/inventory", err)
		return
	}
	h.setFlash(w, flashSuccess, "inventory item added")
	http.Redirect(w, r, "/pharmacy/dashboard/inventory", http.StatusSeeOther)
}

func (h *Handler) updateInventoryItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/dashboard/inventory", http.StatusSeeOther)
		return
	}
	if err := h.api.UpdateInventoryItem(r.Context(), token(r), pharmacyID, id, inventoryItemFromForm(r)); err != nil {
		h.failBack(w, r, "/pharmacy/dashboard/inventory", err)
		return
	}
	h.setFlash(w, flashSuccess, "inventory item updated")
	http.Redirect(w, r, "/pharmacy/dashboard/inventory", http.StatusSeeOther)
}

func (h *Handler) deleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteInventoryItem(r.Context(), token(r), pharmacyID, id); err != nil {
		h.failBack(w, r, "/pharmacy/dashboard/inventory", err)
		return
	}
	h.setFlash(w, flashSuccess, "inventory item removed")
	http.Redirect(w, r, "/pharmacy/dashboard/inventory", http.StatusSeeOther)
}

// Activity

func (h *Handler) activityPage(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := h.staffPharmacyID(w, r)
	if !ok {
		return
	}
	activity, banner, ok := fetchList(h, w, r, func(ctx context.Context, token string) ([]domain.ActivityEntry, error) {
		return h.api.PharmacyActivity(ctx, token, pharmacyID)
	})
	if !ok {
		return
	}
	h.renderBanner(w, r, "activity", "Activity", banner, activity)
}
