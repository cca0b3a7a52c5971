package domain

const (
	ReminderPending   = "pending"
	ReminderCompleted = "completed"
)

type Reminder struct {
	ID             int64  `json:"id"`
	MedicationID   int64  `json:"medicationId"`
	MedicationName string `json:"medicationName,omitempty"`
	ScheduledAt    string `json:"scheduledAt"`
	Status         string `json:"status"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
