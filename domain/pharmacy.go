package domain

type Pharmacy struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// ActivityEntry is one row of a pharmacy's recent-activity feed.
type ActivityEntry struct {
	ID         int64  `json:"id"`
	PharmacyID int64  `json:"pharmacyId"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	CreatedAt  string `json:"createdAt"`
}
