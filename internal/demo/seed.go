package demo

import (
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"medtrack/web/domain"
)

// DemoPassword works for both seeded demo accounts.
const DemoPassword = "demo1234"

const (
	DemoPatientEmail  = "demo@medtrack.test"
	DemoPharmacyEmail = "pharmacy@medtrack.test"
)

// seed loads the demo patient, the demo pharmacy and a small stock catalog.
func (s *Server) seed() {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("unable to seed demo accounts: %v", err)
	}

	patientID := s.allocID()
	s.patients[patientID] = &patientAccount{
		patient: domain.Patient{
			ID:        patientID,
			Email:     DemoPatientEmail,
			FirstName: "Daria",
			LastName:  "Demo",
			Roles:     []string{"patient"},
			CreatedAt: nowStamp(),
		},
		passwordHash: hashed,
	}
	s.patientEmails[DemoPatientEmail] = patientID
	s.grantPoints(patientID, 120, "welcome bonus")

	med := domain.Medication{
		ID:        s.allocID(),
		Name:      "Metformin 500mg",
		Dosage:    "500mg",
		Frequency: "twice daily",
		StartDate: time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
		CreatedAt: nowStamp(),
	}
	s.medications[patientID] = []domain.Medication{med}
	s.reminders[patientID] = []domain.Reminder{{
		ID:             s.allocID(),
		MedicationID:   med.ID,
		MedicationName: med.Name,
		ScheduledAt:    time.Now().Format("2006-01-02") + "T08:00",
		Status:         domain.ReminderPending,
		CreatedAt:      nowStamp(),
	}}

	pharmacyID := s.allocID()
	staffID := s.allocID()
	s.staff[staffID] = &staffAccount{
		staff: domain.PharmacyStaffMember{
			ID:         staffID,
			PharmacyID: pharmacyID,
			UserID:     staffID,
			Role:       "owner",
			Active:     true,
			FirstName:  "Piet",
			LastName:   "Apotheek",
			Email:      DemoPharmacyEmail,
			CreatedAt:  nowStamp(),
		},
		passwordHash: hashed,
		pharmacy: domain.Pharmacy{
			ID:        pharmacyID,
			Name:      "Demo Pharmacy",
			Address:   "1 Demo Street",
			Email:     DemoPharmacyEmail,
			CreatedAt: nowStamp(),
		},
	}
	s.staffEmails[DemoPharmacyEmail] = staffID

	// name|generic|manufacturer|qty|price
	catalog := []string{
		"Napa 500mg|Paracetamol|Beximco|120|1.20",
		"Seclo 20mg|Omeprazole|Square|60|6.50",
		"Monas 10mg|Montelukast|Acme|8|17.50",
		"Azithrocin 500mg|Azithromycin|Beximco|30|35.00",
		"Fexo 120mg|Fexofenadine|Square|5|9.00",
	}
	for _, row := range catalog {
		parts := strings.Split(row, "|")
		item := domain.InventoryItem{
			ID:           s.allocID(),
			PharmacyID:   pharmacyID,
			Name:         parts[0],
			GenericName:  parts[1],
			Manufacturer: parts[2],
			Quantity:     mustInt(parts[3]),
			UnitPrice:    mustFloat(parts[4]),
			ExpiryDate:   time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			CreatedAt:    nowStamp(),
			UpdatedAt:    nowStamp(),
		}
		s.inventory[pharmacyID] = append(s.inventory[pharmacyID], item)
	}
	s.recordActivity(pharmacyID, "seed", "demo catalog loaded")

	s.catalog = []domain.RewardItem{
		{ID: s.allocID(), Name: "Pharmacy voucher", Description: "5.00 off the next purchase", Cost: 100},
		{ID: s.allocID(), Name: "Free delivery", Description: "one free home delivery", Cost: 50},
	}
}

func mustInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
