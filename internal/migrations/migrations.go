package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the schema backing durable browser sessions. Each row holds
// the bearer credential for one browser session plus a cached principal
// blob; rows are deleted wholesale on logout or validation failure.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
            id TEXT PRIMARY KEY,
            token TEXT NOT NULL,
            kind TEXT NOT NULL,
            principal BLOB,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
