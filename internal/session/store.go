// Package session is the single source of truth for "who is logged in".
// Each browser session owns one durable row holding its bearer credential
// and a cached principal blob; the manager validates the credential against
// the backend before any cached identity is trusted.
package session

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Row is the durable state of one browser session.
type Row struct {
	ID        string `db:"id"`
	Token     string `db:"token"`
	Kind      string `db:"kind"`
	Principal []byte `db:"principal"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// Store persists session rows in SQLite.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Get returns the session row or nil when none is stored.
func (s *Store) Get(id string) (*Row, error) {
	var row Row
	err := s.db.Get(&row, `SELECT id, token, kind, principal, created_at, updated_at FROM sessions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Put inserts or replaces the session row.
func (s *Store) Put(row Row) error {
	_, err := s.db.Exec(`INSERT INTO sessions (id, token, kind, principal) VALUES ($1, $2, $3, $4)
        ON CONFLICT(id) DO UPDATE SET token = $2, kind = $3, principal = $4, updated_at = CURRENT_TIMESTAMP`,
		row.ID, row.Token, row.Kind, row.Principal)
	return err
}

// Delete clears the session row wholesale. Deleting a missing row is not
// an error.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	return err
}
