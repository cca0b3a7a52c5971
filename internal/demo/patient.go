package demo

import (
	"net/http"

	"medtrack/web/domain"
)

// Medications

func (s *Server) listMedications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.Medication{}, s.medications[callerID(r)]...))
}

func (s *Server) createMedication(w http.ResponseWriter, r *http.Request) {
	var m domain.Medication
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if m.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	m.ID = s.allocID()
	m.CreatedAt = nowStamp()
	s.medications[uid] = append(s.medications[uid], m)
	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMedication(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medication id")
		return
	}
	var m domain.Medication
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.medications[uid] {
		if s.medications[uid][i].ID == id {
			m.ID = id
			m.CreatedAt = s.medications[uid][i].CreatedAt
			s.medications[uid][i] = m
			respondJSON(w, http.StatusOK, m)
			return
		}
	}
	respondError(w, http.StatusNotFound, "medication not found")
}

func (s *Server) deleteMedication(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medication id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.medications[uid] {
		if s.medications[uid][i].ID == id {
			s.medications[uid] = append(s.medications[uid][:i], s.medications[uid][i+1:]...)
			respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respondError(w, http.StatusNotFound, "medication not found")
}

// Reminders

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.Reminder{}, s.reminders[callerID(r)]...))
}

func (s *Server) pendingReminders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := []domain.Reminder{}
	for _, rem := range s.reminders[callerID(r)] {
		if rem.Status == domain.ReminderPending {
			pending = append(pending, rem)
		}
	}
	respondJSON(w, http.StatusOK, pending)
}

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	var rem domain.Reminder
	if err := decodeJSON(r, &rem); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rem.MedicationID == 0 || rem.ScheduledAt == "" {
		respondError(w, http.StatusBadRequest, "medicationId and scheduledAt are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for _, m := range s.medications[uid] {
		if m.ID == rem.MedicationID {
			rem.MedicationName = m.Name
		}
	}
	rem.ID = s.allocID()
	rem.Status = domain.ReminderPending
	rem.CreatedAt = nowStamp()
	s.reminders[uid] = append(s.reminders[uid], rem)
	respondJSON(w, http.StatusCreated, rem)
}

func (s *Server) completeReminder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.reminders[uid] {
		if s.reminders[uid][i].ID == id {
			if s.reminders[uid][i].Status == domain.ReminderCompleted {
				respondError(w, http.StatusBadRequest, "reminder already completed")
				return
			}
			s.reminders[uid][i].Status = domain.ReminderCompleted
			s.grantPoints(uid, 10, "reminder completed")
			respondJSON(w, http.StatusOK, s.reminders[uid][i])
			return
		}
	}
	respondError(w, http.StatusNotFound, "reminder not found")
}

func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.reminders[uid] {
		if s.reminders[uid][i].ID == id {
			s.reminders[uid] = append(s.reminders[uid][:i], s.reminders[uid][i+1:]...)
			respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respondError(w, http.StatusNotFound, "reminder not found")
}

// Prescriptions

func (s *Server) listPrescriptions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.Prescription{}, s.prescriptions[callerID(r)]...))
}

func (s *Server) createPrescription(w http.ResponseWriter, r *http.Request) {
	var p domain.Prescription
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.DoctorName == "" {
		respondError(w, http.StatusBadRequest, "doctorName is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	p.ID = s.allocID()
	p.CreatedAt = nowStamp()
	s.prescriptions[uid] = append(s.prescriptions[uid], p)
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid prescription id")
		return
	}
	var p domain.Prescription
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.prescriptions[uid] {
		if s.prescriptions[uid][i].ID == id {
			p.ID = id
			p.CreatedAt = s.prescriptions[uid][i].CreatedAt
			s.prescriptions[uid][i] = p
			respondJSON(w, http.StatusOK, p)
			return
		}
	}
	respondError(w, http.StatusNotFound, "prescription not found")
}

func (s *Server) deletePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid prescription id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.prescriptions[uid] {
		if s.prescriptions[uid][i].ID == id {
			s.prescriptions[uid] = append(s.prescriptions[uid][:i], s.prescriptions[uid][i+1:]...)
			respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respondError(w, http.StatusNotFound, "prescription not found")
}

// Donations

func (s *Server) listDonations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.Donation{}, s.donations[callerID(r)]...))
}

func (s *Server) createDonation(w http.ResponseWriter, r *http.Request) {
	var d domain.Donation
	if err := decodeJSON(r, &d); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if d.MedicineName == "" || d.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "medicineName and a positive quantity are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	d.ID = s.allocID()
	d.Status = domain.DonationPending
	d.CreatedAt = nowStamp()
	s.donations[uid] = append(s.donations[uid], d)
	respondJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDonationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid donation id")
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch payload.Status {
	case domain.DonationPending, domain.DonationApproved, domain.DonationCollected, domain.DonationRejected:
	default:
		respondError(w, http.StatusBadRequest, "invalid donation status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.donations[uid] {
		if s.donations[uid][i].ID == id {
			s.donations[uid][i].Status = payload.Status
			respondJSON(w, http.StatusOK, s.donations[uid][i])
			return
		}
	}
	respondError(w, http.StatusNotFound, "donation not found")
}

func (s *Server) deleteDonation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid donation id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.donations[uid] {
		if s.donations[uid][i].ID == id {
			s.donations[uid] = append(s.donations[uid][:i], s.donations[uid][i+1:]...)
			respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respondError(w, http.StatusNotFound, "donation not found")
}

// Family

func (s *Server) listFamily(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.FamilyMember{}, s.family[callerID(r)]...))
}

func (s *Server) createFamilyMember(w http.ResponseWriter, r *http.Request) {
	var m domain.FamilyMember
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if m.FirstName == "" || m.Relation == "" {
		respondError(w, http.StatusBadRequest, "firstName and relation are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	m.ID = s.allocID()
	m.CreatedAt = nowStamp()
	s.family[uid] = append(s.family[uid], m)
	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) updateFamilyMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid family member id")
		return
	}
	var m domain.FamilyMember
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.family[uid] {
		if s.family[uid][i].ID == id {
			m.ID = id
			m.CreatedAt = s.family[uid][i].CreatedAt
			s.family[uid][i] = m
			respondJSON(w, http.StatusOK, m)
			return
		}
	}
	respondError(w, http.StatusNotFound, "family member not found")
}

func (s *Server) deleteFamilyMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid family member id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for i := range s.family[uid] {
		if s.family[uid][i].ID == id {
			s.family[uid] = append(s.family[uid][:i], s.family[uid][i+1:]...)
			respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respondError(w, http.StatusNotFound, "family member not found")
}

// Analytics

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	var pending int64
	for _, rem := range s.reminders[uid] {
		if rem.Status == domain.ReminderPending {
			pending++
		}
	}
	respondJSON(w, http.StatusOK, domain.DashboardSummary{
		ActiveMedications: int64(len(s.medications[uid])),
		PendingReminders:  pending,
		AdherenceRate:     s.adherenceRate(uid),
		PointsBalance:     s.rewardPoints[uid],
		FamilyMembers:     int64(len(s.family[uid])),
		DonationsMade:     int64(len(s.donations[uid])),
	})
}

func (s *Server) adherenceRate(uid int64) float64 {
	var taken, total int64
	for _, rem := range s.reminders[uid] {
		total++
		if rem.Status == domain.ReminderCompleted {
			taken++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(taken) / float64(total) * 100
}

func (s *Server) adherenceReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	byDate := make(map[string]*domain.AdherenceEntry)
	order := []string{}
	for _, rem := range s.reminders[uid] {
		date := rem.ScheduledAt
		if len(date) >= 10 {
			date = date[:10]
		}
		entry, ok := byDate[date]
		if !ok {
			entry = &domain.AdherenceEntry{Date: date}
			byDate[date] = entry
			order = append(order, date)
		}
		if rem.Status == domain.ReminderCompleted {
			entry.Taken++
		} else {
			entry.Missed++
		}
	}

	report := make([]domain.AdherenceEntry, 0, len(order))
	for _, date := range order {
		entry := byDate[date]
		if total := entry.Taken + entry.Missed; total > 0 {
			entry.Rate = float64(entry.Taken) / float64(total) * 100
		}
		report = append(report, *entry)
	}
	respondJSON(w, http.StatusOK, report)
}

// Rewards

// grantPoints must be called with s.mu held.
func (s *Server) grantPoints(uid, points int64, reason string) {
	s.rewardPoints[uid] += points
	s.rewardEvents[uid] = append(s.rewardEvents[uid], domain.RewardEvent{
		ID:        s.allocID(),
		Points:    points,
		Reason:    reason,
		CreatedAt: nowStamp(),
	})
}

func (s *Server) rewardBalance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.rewardPoints[callerID(r)]
	tier := "bronze"
	switch {
	case points >= 1000:
		tier = "gold"
	case points >= 300:
		tier = "silver"
	}
	respondJSON(w, http.StatusOK, domain.RewardBalance{Points: points, Tier: tier})
}

func (s *Server) rewardCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.RewardItem{}, s.catalog...))
}

func (s *Server) rewardHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, append([]domain.RewardEvent{}, s.rewardEvents[callerID(r)]...))
}

func (s *Server) redeemReward(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reward id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := callerID(r)
	for _, item := range s.catalog {
		if item.ID != id {
			continue
		}
		if s.rewardPoints[uid] < item.Cost {
			respondError(w, http.StatusBadRequest, "insufficient points")
			return
		}
		s.rewardPoints[uid] -= item.Cost
		s.rewardEvents[uid] = append(s.rewardEvents[uid], domain.RewardEvent{
			ID:        s.allocID(),
			Points:    -item.Cost,
			Reason:    "redeemed " + item.Name,
			CreatedAt: nowStamp(),
		})
		respondJSON(w, http.StatusOK, map[string]string{"status": "redeemed"})
		return
	}
	respondError(w, http.StatusNotFound, "reward not found")
}
