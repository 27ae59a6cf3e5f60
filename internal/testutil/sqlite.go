// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/accountstore/internal/migrations"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens a private in-memory SQLite database with the schema
// applied. The database is closed when the test ends.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pooled connection to :memory: would get its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, migrations.SQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
