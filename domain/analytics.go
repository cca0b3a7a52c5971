package domain

// DashboardSummary backs the patient dashboard overview widgets.
type DashboardSummary struct {
	ActiveMedications int64   `json:"activeMedications"`
	PendingReminders  int64   `json:"pendingReminders"`
	AdherenceRate     float64 `json:"adherenceRate"`
	PointsBalance     int64   `json:"pointsBalance"`
	FamilyMembers     int64   `json:"familyMembers"`
	DonationsMade     int64   `json:"donationsMade"`
}

// AdherenceEntry is one day of the adherence report.
type AdherenceEntry struct {
	Date   string  `json:"date"`
	Taken  int64   `json:"taken"`
	Missed int64   `json:"missed"`
	Rate   float64 `json:"rate"`
}
