package demo

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"medtrack/web/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type patientAuthResponse struct {
	Token string         `json:"token"`
	User  domain.Patient `json:"user"`
}

type staffAuthResponse struct {
	Token string                     `json:"token"`
	Staff domain.PharmacyStaffMember `json:"staff"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.patientEmails[strings.ToLower(req.Email)]
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	acct := s.patients[id]
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.generateToken(id, domain.KindPatient)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, patientAuthResponse{Token: token, User: acct.patient})
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		respondError(w, http.StatusBadRequest, "email, password and firstName are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(req.Email)
	if _, exists := s.patientEmails[email]; exists {
		respondError(w, http.StatusConflict, "email already exists")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	id := s.allocID()
	patient := domain.Patient{
		ID:        id,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     []string{"patient"},
		CreatedAt: nowStamp(),
	}
	s.patients[id] = &patientAccount{patient: patient, passwordHash: hashed}
	s.patientEmails[email] = id
	s.grantPoints(id, 100, "welcome bonus")

	token, err := s.generateToken(id, domain.KindPatient)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, patientAuthResponse{Token: token, User: patient})
}

// validate returns patient-shaped data for any valid token, matching the
// backend contract the client has to live with: staff accounts come back
// flattened to the patient shape here.
func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := callerID(r)
	if callerKind(r) == string(domain.KindPharmacyStaff) {
		acct, ok := s.staff[id]
		if !ok {
			respondError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		respondJSON(w, http.StatusOK, domain.Patient{
			ID:        acct.staff.ID,
			Email:     acct.staff.Email,
			FirstName: acct.staff.FirstName,
			LastName:  acct.staff.LastName,
			Roles:     []string{"pharmacy"},
			CreatedAt: acct.staff.CreatedAt,
		})
		return
	}

	acct, ok := s.patients[id]
	if !ok {
		respondError(w, http.StatusUnauthorized, "unknown account")
		return
	}
	respondJSON(w, http.StatusOK, acct.patient)
}

func (s *Server) pharmacyLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.staffEmails[strings.ToLower(req.Email)]
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	acct := s.staff[id]
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.generateToken(id, domain.KindPharmacyStaff)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, staffAuthResponse{Token: token, Staff: acct.staff})
}

type pharmacySignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PharmacyName    string `json:"pharmacyName"`
	PharmacyAddress string `json:"pharmacyAddress"`
	LicenseNumber   string `json:"licenseNumber"`
}

func (s *Server) pharmacySignup(w http.ResponseWriter, r *http.Request) {
	var req pharmacySignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.PharmacyName) == "" {
		respondError(w, http.StatusBadRequest, "email, password and pharmacyName are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(req.Email)
	if _, exists := s.staffEmails[email]; exists {
		respondError(w, http.StatusConflict, "email already exists")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	pharmacyID := s.allocID()
	staffID := s.allocID()
	acct := &staffAccount{
		staff: domain.PharmacyStaffMember{
			ID:         staffID,
			PharmacyID: pharmacyID,
			UserID:     staffID,
			Role:       "owner",
			Active:     true,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      email,
			CreatedAt:  nowStamp(),
		},
		passwordHash: hashed,
		pharmacy: domain.Pharmacy{
			ID:            pharmacyID,
			Name:          req.PharmacyName,
			Address:       req.PharmacyAddress,
			Email:         email,
			LicenseNumber: req.LicenseNumber,
			CreatedAt:     nowStamp(),
		},
	}
	s.staff[staffID] = acct
	s.staffEmails[email] = staffID
	s.recordActivity(pharmacyID, "signup", "pharmacy registered")

	token, err := s.generateToken(staffID, domain.KindPharmacyStaff)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, staffAuthResponse{Token: token, Staff: acct.staff})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "newPassword is required")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := callerID(r)
	if callerKind(r) == string(domain.KindPharmacyStaff) {
		if acct, ok := s.staff[id]; ok {
			acct.passwordHash = hashed
			respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
			return
		}
	} else if acct, ok := s.patients[id]; ok {
		acct.passwordHash = hashed
		respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
		return
	}
	respondError(w, http.StatusUnauthorized, "unknown account")
}

// googleURL short-circuits the OAuth2 dance in demo mode: the returned URL
// is the app's own callback carrying a token for the seeded demo patient.
func (s *Server) googleURL(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.patientEmails["demo@medtrack.test"]
	if !ok {
		respondError(w, http.StatusInternalServerError, "demo patient missing")
		return
	}
	token, err := s.generateToken(id, domain.KindPatient)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": "/oauth2/callback?token=" + token})
}
