package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"medtrack/web/internal/apiclient"
	"medtrack/web/internal/billing"
	"medtrack/web/internal/demo"
	"medtrack/web/internal/migrations"
	"medtrack/web/internal/session"
)

// countingTransport records every request reaching the backend, keyed by
// method and path.
type countingTransport struct {
	base  http.RoundTripper
	count atomic.Int64
	calls []string
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.count.Add(1)
	t.calls = append(t.calls, r.Method+" "+r.URL.Path)
	return t.base.RoundTrip(r)
}

func (t *countingTransport) sawCall(methodAndPath string) bool {
	for _, c := range t.calls {
		if c == methodAndPath {
			return true
		}
	}
	return false
}

type testApp struct {
	srv     *httptest.Server
	client  *http.Client
	backend *countingTransport
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	migrations.Run(db)

	backendSrv := httptest.NewServer(demo.New("test_secret").Router())
	t.Cleanup(backendSrv.Close)

	transport := &countingTransport{base: http.DefaultTransport}
	api := apiclient.New(backendSrv.URL, &http.Client{Transport: transport})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	sessions := session.NewManager(session.NewStore(db), api, log)
	h := New(api, sessions, billing.NewCarts(), log)

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		srv:     srv,
		client:  &http.Client{Jar: jar},
		backend: transport,
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := a.client.Get(a.srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	res, err := a.client.PostForm(a.srv.URL+path, form)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func (a *testApp) loginPatient(t *testing.T) {
	t.Helper()
	res, _ := a.post(t, "/login", url.Values{
		"email":    {demo.DemoPatientEmail},
		"password": {demo.DemoPassword},
	})
	require.Equal(t, "/dashboard", res.Request.URL.Path)
}

func (a *testApp) loginStaff(t *testing.T) {
	t.Helper()
	res, _ := a.post(t, "/pharmacy/login", url.Values{
		"email":    {demo.DemoPharmacyEmail},
		"password": {demo.DemoPassword},
	})
	require.Equal(t, "/pharmacy/dashboard", res.Request.URL.Path)
}

func TestPublicPagesRenderWithoutSession(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/", "/about", "/pricing", "/login", "/signup", "/pharmacy/login"} {
		res, body := app.get(t, path)
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Contains(t, body, "MedTrack", path)
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	res, body := app.get(t, "/dashboard")
	assert.Equal(t, "/login", res.Request.URL.Path)
	assert.Contains(t, body, "Sign in")

	res, _ = app.get(t, "/pharmacy/dashboard/billing")
	assert.Equal(t, "/login", res.Request.URL.Path)
}

func TestPatientLoginLandsOnDashboard(t *testing.T) {
	app := newTestApp(t)
	app.loginPatient(t)

	res, body := app.get(t, "/dashboard")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Daria Demo")
	assert.Contains(t, body, "Pending reminders")
}

func TestBadLoginShowsFlashOnLoginPage(t *testing.T) {
	app := newTestApp(t)

	res, body := app.post(t, "/login", url.Values{
		"email":    {demo.DemoPatientEmail},
		"password": {"wrong"},
	})
	assert.Equal(t, "/login", res.Request.URL.Path)
	assert.Contains(t, body, "flash-error")
}

func TestStaffLoginLandsOnPharmacyDashboard(t *testing.T) {
	app := newTestApp(t)
	app.loginStaff(t)

	res, body := app.get(t, "/pharmacy/dashboard")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Demo Pharmacy")
}

func TestStaffSessionSurvivesNewRequestCycle(t *testing.T) {
	app := newTestApp(t)
	app.loginStaff(t)

	// A later request re-resolves the session from its durable row and
	// must still land on the pharmacy side.
	res, _ := app.get(t, "/dashboard")
	assert.Equal(t, "/pharmacy/dashboard", res.Request.URL.Path)
}

func TestPatientCannotReachPharmacySubtree(t *testing.T) {
	app := newTestApp(t)
	app.loginPatient(t)

	res, _ := app.get(t, "/pharmacy/dashboard/billing")
	assert.Equal(t, "/dashboard", res.Request.URL.Path)
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.loginPatient(t)

	res, _ := app.post(t, "/logout", url.Values{})
	assert.Equal(t, "/login", res.Request.URL.Path)

	res, _ = app.get(t, "/dashboard")
	assert.Equal(t, "/login", res.Request.URL.Path)
}

func TestMedicationCreateRefetchesList(t *testing.T) {
	app := newTestApp(t)
	app.loginPatient(t)

	res, body := app.post(t, "/dashboard/medications", url.Values{
		"name":       {"Napa Extra"},
		"dosage":     {"665mg"},
		"frequency":  {"as needed"},
		"start_date": {"2026-08-01"},
	})
	// POST redirects back to the list, which renders the new row.
	assert.Equal(t, "/dashboard/medications", res.Request.URL.Path)
	assert.Contains(t, body, "Napa Extra")
}

func TestBillingAddAndSubmit(t *testing.T) {
	app := newTestApp(t)
	app.loginStaff(t)

	// Find the seeded item on the billing page via search.
	_, body := app.get(t, "/pharmacy/dashboard/billing?query=Napa")
	assert.Contains(t, body, "Napa 500mg")

	// The search result form carries the inventory id; the seeded catalog
	// starts after the patient rows, so read it from the page.
	id := extractInventoryID(t, body)

	res, body := app.post(t, "/pharmacy/dashboard/billing/items", url.Values{
		"inventory_id": {id},
	})
	assert.Equal(t, "/pharmacy/dashboard/billing", res.Request.URL.Path)
	assert.Contains(t, body, "Napa 500mg")
	assert.Contains(t, body, "1.20")

	res, body = app.post(t, "/pharmacy/dashboard/billing/items/"+id+"/quantity", url.Values{
		"quantity": {"3"},
	})
	assert.Contains(t, body, "3.60")

	res, body = app.post(t, "/pharmacy/dashboard/billing/submit", url.Values{
		"customer_name":  {"Rahim Uddin"},
		"payment_method": {"cash"},
		"payment_status": {"paid"},
	})
	assert.Equal(t, "/pharmacy/dashboard/billing", res.Request.URL.Path)
	assert.Contains(t, body, "Rahim Uddin", "the submitted bill shows up in recent bills")
	assert.Contains(t, body, "The bill is empty", "submission resets the draft")
}

func TestEmptyBillSubmitMakesNoNetworkCall(t *testing.T) {
	app := newTestApp(t)
	app.loginStaff(t)

	res, body := app.post(t, "/pharmacy/dashboard/billing/submit", url.Values{
		"customer_name":  {"Rahim Uddin"},
		"payment_method": {"cash"},
		"payment_status": {"paid"},
	})
	assert.Equal(t, "/pharmacy/dashboard/billing", res.Request.URL.Path)
	assert.Contains(t, body, "flash-error")
	assert.False(t, app.backend.sawCall("POST /bills"), "an invalid draft must be rejected locally")
}

func TestOAuthCallbackEstablishesSession(t *testing.T) {
	app := newTestApp(t)

	// The demo backend's OAuth URL points straight back at the callback
	// with a token for the seeded patient.
	res, _ := app.get(t, "/oauth2/google")
	assert.Equal(t, "/dashboard", res.Request.URL.Path)
}

func TestOAuthCallbackWithoutTokenFailsToLogin(t *testing.T) {
	app := newTestApp(t)

	res, body := app.get(t, "/oauth2/callback")
	assert.Equal(t, "/login", res.Request.URL.Path)
	assert.Contains(t, body, "flash-error")
}

func TestUnauthorizedFetchForcesLogout(t *testing.T) {
	// A backend that accepts the login and the validation probe but then
	// rejects the resource fetch, as a revoked token would.
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1","user":{"id":1,"email":"ada@example.com","firstName":"Ada","lastName":"Rahman"}}`))
	})
	mux.HandleFunc("GET /auth/validate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"email":"ada@example.com","firstName":"Ada","lastName":"Rahman"}`))
	})
	mux.HandleFunc("GET /medications", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token revoked"}`))
	})
	backendSrv := httptest.NewServer(mux)
	defer backendSrv.Close()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	migrations.Run(db)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	api := apiclient.New(backendSrv.URL, nil)
	sessions := session.NewManager(session.NewStore(db), api, log)
	srv := httptest.NewServer(New(api, sessions, billing.NewCarts(), log).Router())
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	res, err := client.PostForm(srv.URL+"/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"pw"},
	})
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, "/dashboard", res.Request.URL.Path)

	// The revoked fetch clears the credential and lands on the login page.
	res, err = client.Get(srv.URL + "/dashboard/medications")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "/login", res.Request.URL.Path)
}

// extractInventoryID pulls the first inventory_id hidden field out of a
// rendered billing page.
func extractInventoryID(t *testing.T, body string) string {
	t.Helper()
	const marker = `name="inventory_id" value="`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "billing page is missing the add-to-bill form")
	rest := body[i+len(marker):]
	j := strings.Index(rest, `"`)
	require.Greater(t, j, 0)
	return rest[:j]
}
