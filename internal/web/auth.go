package web

import (
	"net/http"

	"medtrack/web/domain"
	"medtrack/web/internal/apiclient"
)

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if p := principal(r); p != nil {
		http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
		return
	}
	h.render(w, r, "login", "Sign in", nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.setFlash(w, flashError, "email and password are required")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	res, err := h.api.Login(r.Context(), email, password)
	if err != nil {
		h.setFlash(w, flashError, errMessage(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	p := domain.PatientPrincipal(res.User)
	if err := h.sessions.Establish(sessionID(r), res.Token, p); err != nil {
		h.log.WithError(err).Error("unable to persist session")
		h.setFlash(w, flashError, "unable to start a session")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
}

func (h *Handler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "signup", "Create account", nil)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	req := apiclient.SignupRequest{
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		h.setFlash(w, flashError, "email, password and first name are required")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	res, err := h.api.Signup(r.Context(), req)
	if err != nil {
		h.setFlash(w, flashError, errMessage(err))
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	p := domain.PatientPrincipal(res.User)
	if err := h.sessions.Establish(sessionID(r), res.Token, p); err != nil {
		h.log.WithError(err).Error("unable to persist session")
		h.setFlash(w, flashError, "unable to start a session")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
}

// googleRedirect asks the backend for the OAuth2 provider URL and sends
// the browser there.
func (h *Handler) googleRedirect(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.api.GoogleAuthURL(r.Context())
	if err != nil {
		h.setFlash(w, flashError, errMessage(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, authURL, http.StatusSeeOther)
}

// oauthCallback receives the provider round-trip: a bearer token in the
// query string. The token is stored and resolved like any other
// credential; a failed resolution lands back on the login page.
func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		h.setFlash(w, flashError, "sign-in was not completed")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	sid := sessionID(r)
	if err := h.sessions.SetCredential(sid, tok); err != nil {
		h.log.WithError(err).Error("unable to persist session")
		h.setFlash(w, flashError, "unable to start a session")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	p, err := h.sessions.Resolve(r.Context(), sid)
	if err != nil || p == nil {
		h.setFlash(w, flashError, "sign-in could not be verified")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
}

func (h *Handler) pharmacyLoginPage(w http.ResponseWriter, r *http.Request) {
	if p := principal(r); p != nil {
		http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
		return
	}
	h.render(w, r, "pharmacy_login", "Pharmacy sign in", nil)
}

func (h *Handler) pharmacyLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/login", http.StatusSeeOther)
		return
	}
	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.setFlash(w, flashError, "email and password are required")
		http.Redirect(w, r, "/pharmacy/login", http.StatusSeeOther)
		return
	}

	res, err := h.api.PharmacyLogin(r.Context(), email, password)
	if err != nil {
		h.setFlash(w, flashError, errMessage(err))
		http.Redirect(w, r, "/pharmacy/login", http.StatusSeeOther)
		return
	}

	p := domain.StaffPrincipal(res.Staff)
	if err := h.sessions.Establish(sessionID(r), res.Token, p); err != nil {
		h.log.WithError(err).Error("unable to persist session")
		h.setFlash(w, flashError, "unable to start a session")
		http.Redirect(w, r, "/pharmacy/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
}

func (h *Handler) pharmacySignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pharmacy_signup", "Register pharmacy", nil)
}

func (h *Handler) pharmacySignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, flashError, "invalid form submission")
		http.Redirect(w, r, "/pharmacy/signup", http.StatusSeeOther)
		return
	}
	req := apiclient.PharmacySignupRequest{
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		PharmacyName:    r.FormValue("pharmacy_name"),
		PharmacyAddress: r.FormValue("pharmacy_address"),
		LicenseNumber:   r.FormValue("license_number"),
	}
	if req.Email == "" || req.Password == "" || req.PharmacyName == "" {
		h.setFlash(w, flashError, "email, password and pharmacy name are required")
		http.Redirect(w, r, "/pharmacy/signup", http.StatusSeeOther)
		return
	}

	res, err := h.api.PharmacySignup(r.Context(), req)
	if err != nil {
		h.setFlash(w, flashError, errMessage(err))
		http.Redirect(w, r, "/pharmacy/signup", http.StatusSeeOther)
		return
	}

	p := domain.StaffPrincipal(res.Staff)
	if err := h.sessions.Establish(sessionID(r), res.Token, p); err != nil {
		h.log.WithError(err).Error("unable to persist session")
		h.setFlash(w, flashError, "unable to start a session")
		http.Redirect(w, r, "/pharmacy/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, p.DashboardPath(), http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(sessionID(r)); err != nil {
		h.log.WithError(err).Error("unable to clear session")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
