package web

import (
	"net/http"

	"medtrack/web/domain"
)

type dashboardData struct {
	Summary  domain.DashboardSummary
	Pending  []domain.Reminder
	Failed   bool
	ErrorMsg string
}

// dashboard renders the patient overview: summary widgets plus pending
// reminders. The two fetches are independent; either failing leaves the
// other intact.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	if domain.IsPharmacyStaff(principal(r)) {
		http.Redirect(w, r, "/pharmacy/dashboard", http.StatusSeeOther)
		return
	}

	var data dashboardData
	summary, err := h.api.DashboardSummary(r.Context(), token(r))
	if err != nil {
		if h.sessionFailed(w, r, err) {
			return
		}
		data.Failed = true
		data.ErrorMsg = errMessage(err)
	} else {
		data.Summary = summary
	}

	pending, banner, ok := fetchList(h, w, r, h.api.PendingReminders)
	if !ok {
		return
	}
	data.Pending = pending
	if data.ErrorMsg == "" {
		data.ErrorMsg = banner
	}

	h.renderBanner(w, r, "dashboard", "Dashboard", data.ErrorMsg, data)
}

type analyticsData struct {
	Summary domain.DashboardSummary
	Report  []domain.AdherenceEntry
}

func (h *Handler) analyticsPage(w http.ResponseWriter, r *http.Request) {
	report, banner, ok := fetchList(h, w, r, h.api.AdherenceReport)
	if !ok {
		return
	}
	summary, err := h.api.DashboardSummary(r.Context(), token(r))
	if err != nil {
		if h.sessionFailed(w, r, err) {
			return
		}
		if banner == "" {
			banner = errMessage(err)
		}
	}
	h.renderBanner(w, r, "analytics", "Analytics", banner, analyticsData{Summary: summary, Report: report})
}

func (h *Handler) profilePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "profile", "Profile", principal(r))
}

func (h *Handler) settingsPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "settings", "Settings", principal(r))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}
	newPassword := r.FormValue("new_password")
	if newPassword == "" {
		h.setFlash(w, flashError, "a new password is required")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}
	if err := h.api.ResetPassword(r.Context(), token(r), newPassword); err != nil {
		h.failBack(w, r, "/dashboard/settings", err)
		return
	}
	h.setFlash(w, flashSuccess, "password updated")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}
