package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountstore/internal/common"
	"github.com/dmitrijs2005/accountstore/internal/dbx"
	"github.com/dmitrijs2005/accountstore/internal/models"
)

// SQLRepository implements Repository over dbx.DBTX for PostgreSQL and
// SQLite; the two only differ in placeholder syntax.
type SQLRepository struct {
	db      dbx.DBTX
	queries queries
}

type queries struct {
	upsert string
	get    string
	delete string
}

var postgresQueries = queries{
	upsert: `
		INSERT INTO sessions (user_id, jwt)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET jwt = EXCLUDED.jwt
	`,
	get: `
		SELECT user_id, jwt
		FROM sessions
		WHERE user_id = $1
	`,
	delete: `
		DELETE FROM sessions
		WHERE user_id = $1
	`,
}

var sqliteQueries = queries{
	upsert: `
		INSERT INTO sessions (user_id, jwt)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET jwt = excluded.jwt
	`,
	get: `
		SELECT user_id, jwt
		FROM sessions
		WHERE user_id = ?
	`,
	delete: `
		DELETE FROM sessions
		WHERE user_id = ?
	`,
}

// NewPostgresRepository constructs a repository bound to a PostgreSQL DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, queries: postgresQueries}
}

// NewSQLiteRepository constructs a repository bound to a SQLite DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, queries: sqliteQueries}
}

func (r *SQLRepository) Upsert(ctx context.Context, userID, jwt string) (bool, error) {
	if _, err := r.db.ExecContext(ctx, r.queries.upsert, userID, jwt); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *SQLRepository) GetByUserID(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{}
	if err := r.db.QueryRowContext(ctx, r.queries.get, userID).Scan(&session.UserID, &session.JWT); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

func (r *SQLRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	if _, err := r.db.ExecContext(ctx, r.queries.delete, userID); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
