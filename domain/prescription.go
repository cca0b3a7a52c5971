package domain

type Prescription struct {
	ID          int64  `json:"id"`
	DoctorName  string `json:"doctorName"`
	IssuedDate  string `json:"issuedDate"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
	RefillsLeft int    `json:"refillsLeft"`
	Notes       string `json:"notes,omitempty"`
	FileURL     string `json:"fileUrl,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
