package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"medtrack/web/domain"
	"medtrack/web/internal/apiclient"
)

// Listener is notified whenever a session's resolved principal changes.
// A nil principal means the session was logged out or failed validation.
type Listener func(sessionID string, p *domain.Principal)

// Manager resolves bearer credentials into principals. Validation is
// fail-closed: any failure clears the credential silently and the session
// reads as logged out.
type Manager struct {
	store *Store
	api   *apiclient.Client
	log   *logrus.Logger

	mu        sync.Mutex
	listeners []Listener
}

func NewManager(store *Store, api *apiclient.Client, log *logrus.Logger) *Manager {
	return &Manager{store: store, api: api, log: log}
}

// Subscribe registers a listener for principal changes.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(sessionID string, p *domain.Principal) {
	m.mu.Lock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(sessionID, p)
	}
}

// Establish stores the credential and principal produced by a completed
// login or signup. The principal kind is persisted alongside the token so
// a staff session survives a reload without being misread as a patient.
func (m *Manager) Establish(sessionID, token string, p *domain.Principal) error {
	if token == "" || p == nil {
		return errors.New("session: establish requires a token and principal")
	}
	blob, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := m.store.Put(Row{ID: sessionID, Token: token, Kind: string(p.Kind), Principal: blob}); err != nil {
		return err
	}
	m.notify(sessionID, p)
	return nil
}

// SetCredential stores a bare token (OAuth callback path, patient-shaped)
// or, given an empty token, clears the session. With no credential stored
// a later Resolve returns a nil principal without any validation request.
func (m *Manager) SetCredential(sessionID, token string) error {
	if token == "" {
		if err := m.store.Delete(sessionID); err != nil {
			return err
		}
		m.notify(sessionID, nil)
		return nil
	}
	if err := m.store.Put(Row{ID: sessionID, Token: token, Kind: string(domain.KindPatient)}); err != nil {
		return err
	}
	return nil
}

// Token returns the stored bearer credential, or "" when logged out.
func (m *Manager) Token(sessionID string) (string, error) {
	row, err := m.store.Get(sessionID)
	if err != nil || row == nil {
		return "", err
	}
	return row.Token, nil
}

// Resolve validates the stored credential and returns the session's
// principal. No stored credential resolves to nil with no network traffic.
// Validation failures of any kind (transport or rejection) clear the
// credential and resolve to nil; the caller sees a logged-out session, not
// an error.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (*domain.Principal, error) {
	row, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.Token == "" {
		return nil, nil
	}

	patient, err := m.api.Validate(ctx, row.Token)
	if err != nil {
		m.log.WithField("session", sessionID).WithError(err).Debug("credential validation failed, clearing session")
		return nil, m.clear(sessionID)
	}

	if row.Kind == string(domain.KindPharmacyStaff) {
		return m.resolveStaff(ctx, row)
	}

	p := domain.PatientPrincipal(patient)
	return p, nil
}

// resolveStaff re-establishes the staff shape after a reload. The generic
// validation endpoint only returns patient-shaped data, so the cached
// staff blob is used for identity and a MyPharmacy probe confirms the
// credential still carries staff access.
func (m *Manager) resolveStaff(ctx context.Context, row *Row) (*domain.Principal, error) {
	if len(row.Principal) == 0 {
		return nil, m.clear(row.ID)
	}
	var cached domain.Principal
	if err := json.Unmarshal(row.Principal, &cached); err != nil || cached.Staff == nil {
		return nil, m.clear(row.ID)
	}
	if _, err := m.api.MyPharmacy(ctx, row.Token); err != nil {
		m.log.WithField("session", row.ID).WithError(err).Debug("staff probe failed, clearing session")
		return nil, m.clear(row.ID)
	}
	return domain.StaffPrincipal(*cached.Staff), nil
}

// Logout clears the credential and principal.
func (m *Manager) Logout(sessionID string) error {
	return m.clear(sessionID)
}

func (m *Manager) clear(sessionID string) error {
	if err := m.store.Delete(sessionID); err != nil {
		return err
	}
	m.notify(sessionID, nil)
	return nil
}
