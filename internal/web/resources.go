package web

import (
	"net/http"

	"medtrack/web/domain"
)

// Patient resource views. Every mutation goes POST-redirect-GET: the list
// is refetched on the follow-up request rather than patched locally.

// Medications

func (h *Handler) medicationsPage(w http.ResponseWriter, r *http.Request) {
	meds, banner, ok := fetchList(h, w, r, h.api.Medications)
	if !ok {
		return
	}
	h.renderBanner(w, r, "medications", "Medications", banner, meds)
}

func medicationFromForm(r *http.Request) domain.Medication {
	return domain.Medication{
		Name:      r.FormValue("name"),
		Dosage:    r.FormValue("dosage"),
		Frequency: r.FormValue("frequency"),
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
		Notes:     r.FormValue("notes"),
	}
}

func (h *Handler) createMedication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/medications", http.StatusSeeOther)
		return
	}
	m := medicationFromForm(r)
	if m.Name == "" {
		h.setFlash(w, flashError, "medication name is required")
		http.Redirect(w, r, "/dashboard/medications", http.StatusSeeOther)
		return
	}
	if _, err := h.api.CreateMedication(r.Context(), token(r), m); err != nil {
		h.failBack(w, r, "/dashboard/medications", err)
		return
	}
	h.setFlash(w, flashSuccess, "medication added")
	http.Redirect(w, r, "/dashboard/medications", http.StatusSeeOther)
}

func (h *Handler) updateMedication(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/medications", http.StatusSeeOther)
		return
	}
	if err := h.api.UpdateMedication(r.Context(), token(r), id, medicationFromForm(r)); err != nil {
		h.failBack(w, r, "/dashboard/medications", err)
		return
	}
	h.setFlash(w, flashSuccess, "medication updated")
	http.Redirect(w, r, "/dashboard/medications", http.StatusSeeOther)
}

func (h *Handler) deleteMedication(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteMedication(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/medications", err)
		return
	}
	h.setFlash(w, flashSuccess, "medication removed")
	http.Redirect(w, r, "/dashboard/medications", http.StatusSeeOther)
}

// Reminders

type remindersData struct {
	Pending     []domain.Reminder
	All         []domain.Reminder
	Medications []domain.Medication
}

func (h *Handler) remindersPage(w http.ResponseWriter, r *http.Request) {
	all, banner, ok := fetchList(h, w, r, h.api.Reminders)
	if !ok {
		return
	}
	pending := make([]domain.Reminder, 0, len(all))
	for _, rem := range all {
		if rem.Status == domain.ReminderPending {
			pending = append(pending, rem)
		}
	}
	meds, medsBanner, ok := fetchList(h, w, r, h.api.Medications)
	if !ok {
		return
	}
	if banner == "" {
		banner = medsBanner
	}
	h.renderBanner(w, r, "reminders", "Reminders", banner, remindersData{
		Pending:     pending,
		All:         all,
		Medications: meds,
	})
}

func (h *Handler) createReminder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/reminders", http.StatusSeeOther)
		return
	}
	rem := domain.Reminder{
		MedicationID: formInt64(r, "medication_id"),
		ScheduledAt:  r.FormValue("scheduled_at"),
		Notes:        r.FormValue("notes"),
	}
	if rem.MedicationID == 0 || rem.ScheduledAt == "" {
		h.setFlash(w, flashError, "medication and time are required")
		http.Redirect(w, r, "/dashboard/reminders", http.StatusSeeOther)
		return
	}
	if _, err := h.api.CreateReminder(r.Context(), token(r), rem); err != nil {
		h.failBack(w, r, "/dashboard/reminders", err)
		return
	}
	h.setFlash(w, flashSuccess, "reminder scheduled")
	http.Redirect(w, r, "/dashboard/reminders", http.StatusSeeOther)
}

func (h *Handler) completeReminder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.CompleteReminder(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/reminders", err)
		return
	}
	h.setFlash(w, flashSuccess, "reminder completed")
	http.Redirect(w, r, "/dashboard/reminders", http.StatusSeeOther)
}

func (h *Handler) deleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteReminder(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/reminders", err)
		return
	}
	h.setFlash(w, flashSuccess, "reminder removed")
	http.Redirect(w, r, "/dashboard/reminders", http.StatusSeeOther)
}

// Prescriptions

func (h *Handler) prescriptionsPage(w http.ResponseWriter, r *http.Request) {
	prescriptions, banner, ok := fetchList(h, w, r, h.api.Prescriptions)
	if !ok {
		return
	}
	h.renderBanner(w, r, "prescriptions", "Prescriptions", banner, prescriptions)
}

func prescriptionFromForm(r *http.Request) domain.Prescription {
	return domain.Prescription{
		DoctorName:  r.FormValue("doctor_name"),
		IssuedDate:  r.FormValue("issued_date"),
		ExpiryDate:  r.FormValue("expiry_date"),
		RefillsLeft: int(formInt64(r, "refills_left")),
		Notes:       r.FormValue("notes"),
	}
}

func (h *Handler) createPrescription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/prescriptions", http.StatusSeeOther)
		return
	}
	p := prescriptionFromForm(r)
	if p.DoctorName == "" {
		h.setFlash(w, flashError, "doctor name is required")
		http.Redirect(w, r, "/dashboard/prescriptions", http.StatusSeeOther)
		return
	}
	if _, err := h.api.CreatePrescription(r.Context(), token(r), p); err != nil {
		h.failBack(w, r, "/dashboard/prescriptions", err)
		return
	}
	h.setFlash(w, flashSuccess, "prescription added")
	http.Redirect(w, r, "/dashboard/prescriptions", http.StatusSeeOther)
}

func (h *Handler) updatePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/prescriptions", http.StatusSeeOther)
		return
	}
	if err := h.api.UpdatePrescription(r.Context(), token(r), id, prescriptionFromForm(r)); err != nil {
		h.failBack(w, r, "/dashboard/prescriptions", err)
		return
	}
	h.setFlash(w, flashSuccess, "prescription updated")
	http.Redirect(w, r, "/dashboard/prescriptions", http.StatusSeeOther)
}

func (h *Handler) deletePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeletePrescription(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/prescriptions", err)
		return
	}
	h.setFlash(w, flashSuccess, "prescription removed")
	http.Redirect(w, r, "/dashboard/prescriptions", http.StatusSeeOther)
}

// Donations

func (h *Handler) donationsPage(w http.ResponseWriter, r *http.Request) {
	donations, banner, ok := fetchList(h, w, r, h.api.Donations)
	if !ok {
		return
	}
	h.renderBanner(w, r, "donations", "Donations", banner, donations)
}

func (h *Handler) createDonation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/donations", http.StatusSeeOther)
		return
	}
	d := domain.Donation{
		MedicineName: r.FormValue("medicine_name"),
		Quantity:     formInt64(r, "quantity"),
		ExpiryDate:   r.FormValue("expiry_date"),
		Notes:        r.FormValue("notes"),
	}
	if d.MedicineName == "" || d.Quantity <= 0 {
		h.setFlash(w, flashError, "medicine name and a positive quantity are required")
		http.Redirect(w, r, "/dashboard/donations", http.StatusSeeOther)
		return
	}
	if _, err := h.api.CreateDonation(r.Context(), token(r), d); err != nil {
		h.failBack(w, r, "/dashboard/donations", err)
		return
	}
	h.setFlash(w, flashSuccess, "donation registered")
	http.Redirect(w, r, "/dashboard/donations", http.StatusSeeOther)
}

func (h *Handler) updateDonationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/donations", http.StatusSeeOther)
		return
	}
	if err := h.api.UpdateDonationStatus(r.Context(), token(r), id, r.FormValue("status")); err != nil {
		h.failBack(w, r, "/dashboard/donations", err)
		return
	}
	h.setFlash(w, flashSuccess, "donation updated")
	http.Redirect(w, r, "/dashboard/donations", http.StatusSeeOther)
}

func (h *Handler) deleteDonation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteDonation(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/donations", err)
		return
	}
	h.setFlash(w, flashSuccess, "donation removed")
	http.Redirect(w, r, "/dashboard/donations", http.StatusSeeOther)
}

// Family

func (h *Handler) familyPage(w http.ResponseWriter, r *http.Request) {
	members, banner, ok := fetchList(h, w, r, h.api.FamilyMembers)
	if !ok {
		return
	}
	h.renderBanner(w, r, "family", "Family", banner, members)
}

func familyMemberFromForm(r *http.Request) domain.FamilyMember {
	return domain.FamilyMember{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Relation:  r.FormValue("relation"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
	}
}

func (h *Handler) createFamilyMember(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/family", http.StatusSeeOther)
		return
	}
	m := familyMemberFromForm(r)
	if m.FirstName == "" || m.Relation == "" {
		h.setFlash(w, flashError, "name and relation are required")
		http.Redirect(w, r, "/dashboard/family", http.StatusSeeOther)
		return
	}
	if _, err := h.api.CreateFamilyMember(r.Context(), token(r), m); err != nil {
		h.failBack(w, r, "/dashboard/family", err)
		return
	}
	h.setFlash(w, flashSuccess, "family member added")
	http.Redirect(w, r, "/dashboard/family", http.StatusSeeOther)
}

func (h *Handler) updateFamilyMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/family", http.StatusSeeOther)
		return
	}
	if err := h.api.UpdateFamilyMember(r.Context(), token(r), id, familyMemberFromForm(r)); err != nil {
		h.failBack(w, r, "/dashboard/family", err)
		return
	}
	h.setFlash(w, flashSuccess, "family member updated")
	http.Redirect(w, r, "/dashboard/family", http.StatusSeeOther)
}

func (h *Handler) deleteFamilyMember(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteFamilyMember(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/family", err)
		return
	}
	h.setFlash(w, flashSuccess, "family member removed")
	http.Redirect(w, r, "/dashboard/family", http.StatusSeeOther)
}

// Rewards

type rewardsData struct {
	Balance domain.RewardBalance
	Catalog []domain.RewardItem
	History []domain.RewardEvent
}

func (h *Handler) rewardsPage(w http.ResponseWriter, r *http.Request) {
	catalog, banner, ok := fetchList(h, w, r, h.api.RewardCatalog)
	if !ok {
		return
	}
	history, historyBanner, ok := fetchList(h, w, r, h.api.RewardHistory)
	if !ok {
		return
	}
	if banner == "" {
		banner = historyBanner
	}
	balance, err := h.api.RewardBalance(r.Context(), token(r))
	if err != nil {
		if h.sessionFailed(w, r, err) {
			return
		}
		if banner == "" {
			banner = errMessage(err)
		}
	}
	h.renderBanner(w, r, "rewards", "Rewards", banner, rewardsData{
		Balance: balance,
		Catalog: catalog,
		History: history,
	})
}

func (h *Handler) redeemReward(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.api.RedeemReward(r.Context(), token(r), id); err != nil {
		h.failBack(w, r, "/dashboard/rewards", err)
		return
	}
	h.setFlash(w, flashSuccess, "reward redeemed")
	http.Redirect(w, r, "/dashboard/rewards", http.StatusSeeOther)
}
