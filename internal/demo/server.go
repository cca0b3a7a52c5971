// Package demo is an embedded stand-in for the medtrack REST API. It is
// only mounted behind the DEMO_MODE flag (or by tests) and serves clearly
// fake data from memory; it is never a silent fallback for a failing
// backend. It speaks the same surface the real backend does, including
// bearer-token auth.
package demo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"medtrack/web/domain"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxKind   ctxKey = "kind"
)

type patientAccount struct {
	patient      domain.Patient
	passwordHash []byte
}

type staffAccount struct {
	staff        domain.PharmacyStaffMember
	passwordHash []byte
	pharmacy     domain.Pharmacy
}

// Server holds all demo state in memory behind one mutex.
type Server struct {
	secret string

	mu     sync.Mutex
	nextID int64

	patients      map[int64]*patientAccount
	patientEmails map[string]int64
	staff         map[int64]*staffAccount
	staffEmails   map[string]int64

	medications   map[int64][]domain.Medication
	reminders     map[int64][]domain.Reminder
	prescriptions map[int64][]domain.Prescription
	donations     map[int64][]domain.Donation
	family        map[int64][]domain.FamilyMember

	rewardPoints map[int64]int64
	rewardEvents map[int64][]domain.RewardEvent
	catalog      []domain.RewardItem

	inventory map[int64][]domain.InventoryItem
	bills     map[int64][]domain.Bill
	activity  map[int64][]domain.ActivityEntry
}

// New constructs a seeded demo server. secret signs the demo bearer tokens.
func New(secret string) *Server {
	s := &Server{
		secret:        secret,
		patients:      make(map[int64]*patientAccount),
		patientEmails: make(map[string]int64),
		staff:         make(map[int64]*staffAccount),
		staffEmails:   make(map[string]int64),
		medications:   make(map[int64][]domain.Medication),
		reminders:     make(map[int64][]domain.Reminder),
		prescriptions: make(map[int64][]domain.Prescription),
		donations:     make(map[int64][]domain.Donation),
		family:        make(map[int64][]domain.FamilyMember),
		rewardPoints:  make(map[int64]int64),
		rewardEvents:  make(map[int64][]domain.RewardEvent),
		inventory:     make(map[int64][]domain.InventoryItem),
		bills:         make(map[int64][]domain.Bill),
		activity:      make(map[int64][]domain.ActivityEntry),
	}
	s.seed()
	return s
}

// Router wires up the demo API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/signup", s.signup)
		r.Post("/pharmacy/login", s.pharmacyLogin)
		r.Post("/pharmacy/signup", s.pharmacySignup)
		r.Group(func(protected chi.Router) {
			protected.Use(s.authMiddleware)
			protected.Get("/validate", s.validate)
			protected.Post("/reset-password", s.resetPassword)
		})
	})

	r.Get("/oauth2/google/url", s.googleURL)

	r.Group(func(pr chi.Router) {
		pr.Use(s.authMiddleware)

		pr.Route("/medications", func(r chi.Router) {
			r.Get("/", s.listMedications)
			r.Post("/", s.createMedication)
			r.Put("/{id}", s.updateMedication)
			r.Delete("/{id}", s.deleteMedication)
		})

		pr.Route("/reminders", func(r chi.Router) {
			r.Get("/", s.listReminders)
			r.Get("/pending", s.pendingReminders)
			r.Post("/", s.createReminder)
			r.Post("/{id}/complete", s.completeReminder)
			r.Delete("/{id}", s.deleteReminder)
		})

		pr.Route("/prescriptions", func(r chi.Router) {
			r.Get("/", s.listPrescriptions)
			r.Post("/", s.createPrescription)
			r.Put("/{id}", s.updatePrescription)
			r.Delete("/{id}", s.deletePrescription)
		})

		pr.Route("/donations", func(r chi.Router) {
			r.Get("/", s.listDonations)
			r.Post("/", s.createDonation)
			r.Put("/{id}/status", s.updateDonationStatus)
			r.Delete("/{id}", s.deleteDonation)
		})

		pr.Route("/family", func(r chi.Router) {
			r.Get("/", s.listFamily)
			r.Post("/", s.createFamilyMember)
			r.Put("/{id}", s.updateFamilyMember)
			r.Delete("/{id}", s.deleteFamilyMember)
		})

		pr.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", s.dashboardSummary)
			r.Get("/adherence", s.adherenceReport)
		})

		pr.Route("/rewards", func(r chi.Router) {
			r.Get("/balance", s.rewardBalance)
			r.Get("/catalog", s.rewardCatalog)
			r.Get("/history", s.rewardHistory)
			r.Post("/{id}/redeem", s.redeemReward)
		})

		pr.Route("/pharmacies", func(r chi.Router) {
			r.Get("/mine", s.myPharmacy)
			r.Get("/{id}/activity", s.pharmacyActivity)
		})

		pr.Route("/inventories/{pharmacyID}/items", func(r chi.Router) {
			r.Get("/", s.listInventory)
			r.Post("/", s.createInventoryItem)
			r.Put("/{id}", s.updateInventoryItem)
			r.Delete("/{id}", s.deleteInventoryItem)
		})
		pr.Get("/inventories/{pharmacyID}/stats", s.inventoryStats)
		pr.Get("/inventories/{pharmacyID}/overview", s.inventoryOverview)

		pr.Route("/bills", func(r chi.Router) {
			r.Get("/", s.listBills)
			r.Post("/", s.createBill)
		})
	})

	return r
}

// Authentication helpers

type authClaims struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

func (s *Server) generateToken(userID int64, kind domain.PrincipalKind) (string, error) {
	claims := authClaims{
		UserID: userID,
		Kind:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxKind, claims.Kind)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func callerID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxUserID).(int64)
	return id
}

func callerKind(r *http.Request) string {
	kind, _ := r.Context().Value(ctxKind).(string)
	return kind
}

// requireStaff resolves the calling staff account or writes a 403.
func (s *Server) requireStaff(w http.ResponseWriter, r *http.Request) *staffAccount {
	if callerKind(r) != string(domain.KindPharmacyStaff) {
		respondError(w, http.StatusForbidden, "pharmacy staff account required")
		return nil
	}
	acct, ok := s.staff[callerID(r)]
	if !ok {
		respondError(w, http.StatusForbidden, "unknown staff account")
		return nil
	}
	return acct
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
