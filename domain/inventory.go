package domain

type InventoryItem struct {
	ID           int64   `json:"id"`
	PharmacyID   int64   `json:"pharmacyId"`
	Name         string  `json:"name"`
	GenericName  string  `json:"genericName,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	CostPrice    float64 `json:"costPrice,omitempty"`
	ExpiryDate   string  `json:"expiryDate,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

// InventoryStats summarizes a pharmacy's stock position.
type InventoryStats struct {
	TotalItems    int64   `json:"totalItems"`
	TotalValue    float64 `json:"totalValue"`
	LowStockCount int64   `json:"lowStockCount"`
	ExpiringSoon  int64   `json:"expiringSoon"`
}

// InventoryOverview lists the items behind the stats counters.
type InventoryOverview struct {
	LowStock     []InventoryItem `json:"lowStock"`
	ExpiringSoon []InventoryItem `json:"expiringSoon"`
}
