package demo

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"medtrack/web/domain"
)

// recordActivity must be called with s.mu held.
func (s *Server) recordActivity(pharmacyID int64, kind, message string) {
	s.activity[pharmacyID] = append(s.activity[pharmacyID], domain.ActivityEntry{
		ID:         s.allocID(),
		PharmacyID: pharmacyID,
		Type:       kind,
		Message:    message,
		CreatedAt:  nowStamp(),
	})
}

func (s *Server) myPharmacy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.requireStaff(w, r)
	if acct == nil {
		return
	}
	respondJSON(w, http.StatusOK, acct.pharmacy)
}

func (s *Server) pharmacyActivity(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	respondJSON(w, http.StatusOK, append([]domain.ActivityEntry{}, s.activity[id]...))
}

// Inventory

func (s *Server) listInventory(w http.ResponseWriter, r *http.Request) {
	pharmacyID, err := urlID(r, "pharmacyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	items := []domain.InventoryItem{}
	for _, item := range s.inventory[pharmacyID] {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.GenericName), query) {
			items = append(items, item)
		}
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) createInventoryItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, err := urlID(r, "pharmacyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}
	var item domain.InventoryItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item.Name == "" || item.Quantity < 0 || item.UnitPrice <= 0 {
		respondError(w, http.StatusBadRequest, "name, quantity and unitPrice are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	item.ID = s.allocID()
	item.PharmacyID = pharmacyID
	item.CreatedAt = nowStamp()
	item.UpdatedAt = item.CreatedAt
	s.inventory[pharmacyID] = append(s.inventory[pharmacyID], item)
	s.recordActivity(pharmacyID, "inventory", "added "+item.Name)
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) updateInventoryItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, err := urlID(r, "pharmacyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid inventory id")
		return
	}
	var item domain.InventoryItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item.Quantity < 0 || item.UnitPrice <= 0 {
		respondError(w, http.StatusBadRequest, "quantity and unitPrice are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	for i := range s.inventory[pharmacyID] {
		if s.inventory[pharmacyID][i].ID == id {
			item.ID = id
			item.PharmacyID = pharmacyID
			item.CreatedAt = s.inventory[pharmacyID][i].CreatedAt
			item.UpdatedAt = nowStamp()
			s.inventory[pharmacyID][i] = item
			respondJSON(w, http.StatusOK, item)
			return
		}
	}
	respondError(w, http.StatusNotFound, "inventory item not found")
}

func (s *Server) deleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	pharmacyID, err := urlID(r, "pharmacyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid inventory id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	for i := range s.inventory[pharmacyID] {
		if s.inventory[pharmacyID][i].ID == id {
			s.recordActivity(pharmacyID, "inventory", "removed "+s.inventory[pharmacyID][i].Name)
			s.inventory[pharmacyID] = append(s.inventory[pharmacyID][:i], s.inventory[pharmacyID][i+1:]...)
			respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respondError(w, http.StatusNotFound, "inventory item not found")
}

const lowStockThreshold = 10

func (s *Server) inventoryStats(w http.ResponseWriter, r *http.Request) {
	pharmacyID, err := urlID(r, "pharmacyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	var stats domain.InventoryStats
	cutoff := time.Now().Add(30 * 24 * time.Hour)
	for _, item := range s.inventory[pharmacyID] {
		stats.TotalItems++
		stats.TotalValue += float64(item.Quantity) * item.UnitPrice
		if item.Quantity < lowStockThreshold {
			stats.LowStockCount++
		}
		if expiresBefore(item, cutoff) {
			stats.ExpiringSoon++
		}
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) inventoryOverview(w http.ResponseWriter, r *http.Request) {
	pharmacyID, err := urlID(r, "pharmacyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pharmacy id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct := s.requireStaff(w, r); acct == nil {
		return
	}
	overview := domain.InventoryOverview{LowStock: []domain.InventoryItem{}, ExpiringSoon: []domain.InventoryItem{}}
	cutoff := time.Now().Add(30 * 24 * time.Hour)
	for _, item := range s.inventory[pharmacyID] {
		if item.Quantity < lowStockThreshold {
			overview.LowStock = append(overview.LowStock, item)
		}
		if expiresBefore(item, cutoff) {
			overview.ExpiringSoon = append(overview.ExpiringSoon, item)
		}
	}
	respondJSON(w, http.StatusOK, overview)
}

func expiresBefore(item domain.InventoryItem, cutoff time.Time) bool {
	if item.ExpiryDate == "" {
		return false
	}
	expiry, err := time.Parse("2006-01-02", item.ExpiryDate)
	if err != nil {
		return false
	}
	return expiry.Before(cutoff)
}

// Bills

func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.requireStaff(w, r)
	if acct == nil {
		return
	}
	respondJSON(w, http.StatusOK, append([]domain.Bill{}, s.bills[acct.staff.PharmacyID]...))
}

type billRequest struct {
	CustomerName          string                `json:"customerName"`
	CustomerPhone         string                `json:"customerPhone"`
	CustomerEmail         string                `json:"customerEmail"`
	PaymentMethod         string                `json:"paymentMethod"`
	PaymentStatus         string                `json:"paymentStatus"`
	Items                 []domain.BillLineItem `json:"items"`
	DiscountAmount        float64               `json:"discountAmount"`
	TaxAmount             float64               `json:"taxAmount"`
	Notes                 string                `json:"notes"`
	PrescriptionReference string                `json:"prescriptionReference"`
}

// createBill checks every line against live stock before committing, then
// decrements inventory and records the sale.
func (s *Server) createBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerName == "" || len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "customerName and at least one item are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.requireStaff(w, r)
	if acct == nil {
		return
	}
	pharmacyID := acct.staff.PharmacyID

	snapshots := make(map[int64]int)
	var subtotal float64
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "every item needs a positive quantity")
			return
		}
		idx := -1
		for i := range s.inventory[pharmacyID] {
			if s.inventory[pharmacyID][i].ID == line.InventoryID {
				idx = i
				break
			}
		}
		if idx < 0 {
			respondError(w, http.StatusBadRequest, "inventory not found for one or more items")
			return
		}
		if s.inventory[pharmacyID][idx].Quantity < line.Quantity {
			respondError(w, http.StatusBadRequest, "insufficient stock for "+s.inventory[pharmacyID][idx].Name)
			return
		}
		snapshots[line.InventoryID] = idx
		subtotal += float64(line.Quantity) * s.inventory[pharmacyID][idx].UnitPrice
	}

	total := subtotal - req.DiscountAmount + req.TaxAmount
	if total < 0 {
		total = 0
	}

	items := make([]domain.BillLineItem, len(req.Items))
	for i, line := range req.Items {
		idx := snapshots[line.InventoryID]
		inv := &s.inventory[pharmacyID][idx]
		inv.Quantity -= line.Quantity
		inv.UpdatedAt = nowStamp()
		items[i] = domain.BillLineItem{
			InventoryID:       line.InventoryID,
			Name:              inv.Name,
			Quantity:          line.Quantity,
			UnitPrice:         inv.UnitPrice,
			Subtotal:          float64(line.Quantity) * inv.UnitPrice,
			AvailableQuantity: inv.Quantity,
		}
	}

	bill := domain.Bill{
		ID:                    s.allocID(),
		PharmacyID:            pharmacyID,
		CustomerName:          req.CustomerName,
		CustomerPhone:         req.CustomerPhone,
		CustomerEmail:         req.CustomerEmail,
		PaymentMethod:         req.PaymentMethod,
		PaymentStatus:         req.PaymentStatus,
		Items:                 items,
		Subtotal:              subtotal,
		DiscountAmount:        req.DiscountAmount,
		TaxAmount:             req.TaxAmount,
		TotalAmount:           total,
		Notes:                 req.Notes,
		PrescriptionReference: req.PrescriptionReference,
		CreatedAt:             nowStamp(),
	}
	s.bills[pharmacyID] = append(s.bills[pharmacyID], bill)
	s.recordActivity(pharmacyID, "sale", fmt.Sprintf("bill #%d for %s (%.2f)", bill.ID, bill.CustomerName, bill.TotalAmount))
	respondJSON(w, http.StatusCreated, bill)
}
