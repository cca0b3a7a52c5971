package domain

type Medication struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate,omitempty"`
	Notes          string `json:"notes,omitempty"`
	PrescriptionID *int64 `json:"prescriptionId,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
