package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite keeps the audit trail in a SQLite database so runs can be queried
// across days.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database and runs migrations.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	r := &SQLite{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS audit (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			kind      TEXT NOT NULL,
			message   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:30], err)
		}
	}
	return nil
}

func (r *SQLite) Event(msg string)   { r.insert("event", msg) }
func (r *SQLite) Failure(msg string) { r.insert("failure", msg) }

func (r *SQLite) insert(kind, msg string) {
	_, err := r.db.Exec(`INSERT INTO audit (timestamp, kind, message) VALUES (?,?,?)`,
		time.Now().Unix(), kind, msg)
	if err != nil {
		// The audit trail is best effort; the batch keeps going.
		log.Printf("sqlite recorder: %v", err)
	}
}

func (r *SQLite) Close() error { return r.db.Close() }
