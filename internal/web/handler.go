// Package web is the presentation layer: chi routes, session-backed auth
// state and server-rendered views. All persistence and business rules live
// behind the REST API; handlers only fetch, validate forms and render.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"medtrack/web/domain"
	"medtrack/web/internal/apiclient"
	"medtrack/web/internal/billing"
	"medtrack/web/internal/logging"
	"medtrack/web/internal/session"
)

// Handler bundles dependencies for the web frontend.
type Handler struct {
	api      *apiclient.Client
	sessions *session.Manager
	carts    *billing.Carts
	log      *logrus.Logger
	pages    pageSet
}

// New constructs a Handler and wires the billing carts to session
// lifecycle: a logged-out session loses its draft.
func New(api *apiclient.Client, sessions *session.Manager, carts *billing.Carts, log *logrus.Logger) *Handler {
	h := &Handler{
		api:      api,
		sessions: sessions,
		carts:    carts,
		log:      log,
		pages:    parsePages(),
	}
	sessions.Subscribe(func(sessionID string, p *domain.Principal) {
		if p == nil {
			carts.Drop(sessionID)
		}
	})
	return h
}

// Router wires up all routes: public marketing and auth pages, the patient
// dashboard subtree and the pharmacy subtree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(h.withSession)

	// Public marketing/info pages.
	r.Get("/", h.staticPage("home", "MedTrack"))
	r.Get("/about", h.staticPage("info", "About"))
	r.Get("/faq", h.staticPage("info", "FAQ"))
	r.Get("/blog", h.staticPage("info", "Blog"))
	r.Get("/pricing", h.staticPage("info", "Pricing"))
	r.Get("/terms", h.staticPage("info", "Terms"))

	// Auth surface.
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Get("/signup", h.signupPage)
	r.Post("/signup", h.signup)
	r.Get("/oauth2/google", h.googleRedirect)
	r.Get("/oauth2/callback", h.oauthCallback)
	r.Get("/pharmacy/login", h.pharmacyLoginPage)
	r.Post("/pharmacy/login", h.pharmacyLogin)
	r.Get("/pharmacy/signup", h.pharmacySignupPage)
	r.Post("/pharmacy/signup", h.pharmacySignup)
	r.Post("/logout", h.logout)

	// Patient dashboard subtree.
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.dashboard)

		r.Get("/medications", h.medicationsPage)
		r.Post("/medications", h.createMedication)
		r.Post("/medications/{id}/update", h.updateMedication)
		r.Post("/medications/{id}/delete", h.deleteMedication)

		r.Get("/reminders", h.remindersPage)
		r.Post("/reminders", h.createReminder)
		r.Post("/reminders/{id}/complete", h.completeReminder)
		r.Post("/reminders/{id}/delete", h.deleteReminder)

		r.Get("/prescriptions", h.prescriptionsPage)
		r.Post("/prescriptions", h.createPrescription)
		r.Post("/prescriptions/{id}/update", h.updatePrescription)
		r.Post("/prescriptions/{id}/delete", h.deletePrescription)

		r.Get("/donations", h.donationsPage)
		r.Post("/donations", h.createDonation)
		r.Post("/donations/{id}/status", h.updateDonationStatus)
		r.Post("/donations/{id}/delete", h.deleteDonation)

		r.Get("/family", h.familyPage)
		r.Post("/family", h.createFamilyMember)
		r.Post("/family/{id}/update", h.updateFamilyMember)
		r.Post("/family/{id}/delete", h.deleteFamilyMember)

		r.Get("/analytics", h.analyticsPage)

		r.Get("/rewards", h.rewardsPage)
		r.Post("/rewards/{id}/redeem", h.redeemReward)

		r.Get("/profile", h.profilePage)
		r.Get("/settings", h.settingsPage)
		r.Post("/settings/password", h.changePassword)
	})

	// Pharmacy dashboard subtree.
	r.Route("/pharmacy/dashboard", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.pharmacyDashboard)

		r.Get("/inventory", h.inventoryPage)
		r.Post("/inventory", h.createInventoryItem)
		r.Post("/inventory/{id}/update", h.updateInventoryItem)
		r.Post("/inventory/{id}/delete", h.deleteInventoryItem)

		r.Get("/billing", h.billingPage)
		r.Post("/billing/items", h.cartAddItem)
		r.Post("/billing/items/{id}/quantity", h.cartSetQuantity)
		r.Post("/billing/items/{id}/delete", h.cartRemoveItem)
		r.Post("/billing/submit", h.cartSubmit)

		r.Get("/activity", h.activityPage)
	})

	return r
}

// sessionFailed handles the cross-cutting session-expiry policy: an
// unauthorized response from any API call clears the stored credential and
// sends the browser to the login page.
func (h *Handler) sessionFailed(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	if err := h.sessions.Logout(sessionID(r)); err != nil {
		h.log.WithError(err).Error("unable to clear session after auth failure")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// errMessage maps an API error to the text shown in a flash banner.
// Backend rejections are surfaced verbatim; transport errors get a generic
// message.
func errMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "request failed, please try again"
}

// failBack flashes the error and redirects to the page the form came from.
func (h *Handler) failBack(w http.ResponseWriter, r *http.Request, backPath string, err error) {
	if h.sessionFailed(w, r, err) {
		return
	}
	h.setFlash(w, flashError, errMessage(err))
	http.Redirect(w, r, backPath, http.StatusSeeOther)
}

// fetchList loads one resource list for a view. Transport and backend
// failures do not blank the page: the view renders with an empty list and
// the error in a banner. ok=false means a redirect was already written.
func fetchList[T any](h *Handler, w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, token string) ([]T, error)) (items []T, banner string, ok bool) {
	items, err := fetch(r.Context(), token(r))
	if err != nil {
		if h.sessionFailed(w, r, err) {
			return nil, "", false
		}
		return []T{}, errMessage(err), true
	}
	return items, "", true
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func formInt64(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(r.FormValue(key), 10, 64)
	return n
}

func formFloat(r *http.Request, key string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(key), 64)
	return f
}
