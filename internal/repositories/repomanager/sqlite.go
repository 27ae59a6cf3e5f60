package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/accountstore/internal/filex"
	"github.com/dmitrijs2005/accountstore/internal/migrations"
	"github.com/dmitrijs2005/accountstore/internal/repositories/sessions"
	"github.com/dmitrijs2005/accountstore/internal/repositories/users"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are appended to every SQLite DSN. synchronous(FULL) makes a
// committed write survive power loss.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"

// SQLiteRepositoryManager vends SQLite-backed repositories. It is meant for
// local use and tests.
type SQLiteRepositoryManager struct {
	db       *sql.DB
	users    *users.SQLiteRepository
	sessions *sessions.SQLRepository
}

func NewSQLiteRepositoryManager(db *sql.DB) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{
		db:       db,
		users:    users.NewSQLiteRepository(db),
		sessions: sessions.NewSQLiteRepository(db),
	}
}

// OpenSQLite opens the database file at path (or ":memory:") with a single
// connection, creating its directory if needed.
func OpenSQLite(path string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?"+sqlitePragmas)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrations.Up(ctx, m.db, migrations.SQLite)
}

func (m *SQLiteRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLiteRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
