package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"medtrack/web/domain"
	"medtrack/web/internal/apiclient"
	"medtrack/web/internal/migrations"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	migrations.Run(db)
	return NewStore(db)
}

// countingBackend fakes the API's validation surface and counts how many
// requests it receives.
type countingBackend struct {
	requests    atomic.Int64
	rejectToken string
	pharmacyErr bool
}

func (b *countingBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		if r.Header.Get("Authorization") == "Bearer "+b.rejectToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		json.NewEncoder(w).Encode(domain.Patient{ID: 1, Email: "ada@example.com", FirstName: "Ada", LastName: "Rahman"})
	})
	mux.HandleFunc("/pharmacies/mine", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		if b.pharmacyErr {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "not pharmacy staff"})
			return
		}
		json.NewEncoder(w).Encode(domain.Pharmacy{ID: 7, Name: "City Pharmacy"})
	})
	return mux
}

func testManager(t *testing.T, backend *countingBackend) *Manager {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewManager(testStore(t), apiclient.New(srv.URL, nil), log)
}

func TestResolveWithoutCredentialMakesNoRequest(t *testing.T) {
	backend := &countingBackend{}
	m := testManager(t, backend)

	p, err := m.Resolve(context.Background(), "fresh-session")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Zero(t, backend.requests.Load(), "a logged-out session must not hit the network")
}

func TestEstablishThenResolvePatient(t *testing.T) {
	m := testManager(t, &countingBackend{})

	patient := domain.PatientPrincipal(domain.Patient{ID: 1, Email: "ada@example.com", FirstName: "Ada", LastName: "Rahman"})
	require.NoError(t, m.Establish("s1", "tok-1", patient))

	tok, err := m.Token("s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	p, err := m.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, domain.KindPatient, p.Kind)
	assert.Equal(t, "ada@example.com", p.Email())
}

func TestResolveClearsRejectedCredential(t *testing.T) {
	backend := &countingBackend{rejectToken: "stale"}
	m := testManager(t, backend)

	patient := domain.PatientPrincipal(domain.Patient{ID: 1})
	require.NoError(t, m.Establish("s1", "stale", patient))

	p, err := m.Resolve(context.Background(), "s1")
	require.NoError(t, err, "a rejected credential reads as logged out, not as an error")
	assert.Nil(t, p)

	// The credential is gone: resolving again makes no further request.
	before := backend.requests.Load()
	p, err = m.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, before, backend.requests.Load())
}

func TestStaffSessionSurvivesReload(t *testing.T) {
	m := testManager(t, &countingBackend{})

	staff := domain.StaffPrincipal(domain.PharmacyStaffMember{
		ID: 2, PharmacyID: 7, Role: "owner",
		FirstName: "Kamal", LastName: "Hossain", Email: "kamal@pharmacy.test",
	})
	require.NoError(t, m.Establish("s1", "tok-staff", staff))

	p, err := m.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	require.True(t, domain.IsPharmacyStaff(p), "staff kind must survive a reload")
	assert.Equal(t, int64(7), p.Staff.PharmacyID)
}

func TestStaffProbeFailureClearsSession(t *testing.T) {
	m := testManager(t, &countingBackend{pharmacyErr: true})

	staff := domain.StaffPrincipal(domain.PharmacyStaffMember{ID: 2, PharmacyID: 7})
	require.NoError(t, m.Establish("s1", "tok-staff", staff))

	p, err := m.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, p)

	tok, err := m.Token("s1")
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSetCredentialEmptyTokenClears(t *testing.T) {
	backend := &countingBackend{}
	m := testManager(t, backend)

	require.NoError(t, m.Establish("s1", "tok-1", domain.PatientPrincipal(domain.Patient{ID: 1})))
	require.NoError(t, m.SetCredential("s1", ""))

	p, err := m.Resolve(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Zero(t, backend.requests.Load())
}

func TestListenersNotifiedOnLogout(t *testing.T) {
	m := testManager(t, &countingBackend{})

	var gotSession string
	var gotPrincipal *domain.Principal = domain.PatientPrincipal(domain.Patient{})
	m.Subscribe(func(sessionID string, p *domain.Principal) {
		gotSession = sessionID
		gotPrincipal = p
	})

	require.NoError(t, m.Establish("s1", "tok-1", domain.PatientPrincipal(domain.Patient{ID: 1})))
	assert.Equal(t, "s1", gotSession)
	require.NotNil(t, gotPrincipal)

	require.NoError(t, m.Logout("s1"))
	assert.Equal(t, "s1", gotSession)
	assert.Nil(t, gotPrincipal)
}

func TestStorePutOverwrites(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Put(Row{ID: "s1", Token: "a", Kind: "patient"}))
	require.NoError(t, store.Put(Row{ID: "s1", Token: "b", Kind: "pharmacy_staff", Principal: []byte(`{}`)}))

	row, err := store.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "b", row.Token)
	assert.Equal(t, "pharmacy_staff", row.Kind)

	require.NoError(t, store.Delete("s1"))
	row, err = store.Get("s1")
	require.NoError(t, err)
	assert.Nil(t, row)

	// Deleting again is harmless.
	require.NoError(t, store.Delete("s1"))
}
