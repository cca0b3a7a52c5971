package domain

const (
	PaymentCash = "cash"
	PaymentCard = "card"

	PaymentPaid    = "paid"
	PaymentPending = "pending"
)

type BillLineItem struct {
	InventoryID       int64   `json:"inventoryId"`
	Name              string  `json:"name"`
	Quantity          int64   `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	Subtotal          float64 `json:"subtotal"`
	AvailableQuantity int64   `json:"availableQuantity"`
}

type Bill struct {
	ID                    int64          `json:"id"`
	PharmacyID            int64          `json:"pharmacyId"`
	CustomerName          string         `json:"customerName"`
	CustomerPhone         string         `json:"customerPhone,omitempty"`
	CustomerEmail         string         `json:"customerEmail,omitempty"`
	PaymentMethod         string         `json:"paymentMethod"`
	PaymentStatus         string         `json:"paymentStatus"`
	Items                 []BillLineItem `json:"items"`
	Subtotal              float64        `json:"subtotal"`
	DiscountAmount        float64        `json:"discountAmount"`
	TaxAmount             float64        `json:"taxAmount"`
	TotalAmount           float64        `json:"totalAmount"`
	Notes                 string         `json:"notes,omitempty"`
	PrescriptionReference string         `json:"prescriptionReference,omitempty"`
	CreatedAt             string         `json:"createdAt,omitempty"`
}
