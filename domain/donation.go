package domain

const (
	DonationPending   = "pending"
	DonationApproved  = "approved"
	DonationCollected = "collected"
	DonationRejected  = "rejected"
)

type Donation struct {
	ID           int64  `json:"id"`
	MedicineName string `json:"medicineName"`
	Quantity     int64  `json:"quantity"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	Status       string `json:"status"`
	PharmacyID   *int64 `json:"pharmacyId,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
