package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountstore/internal/common"
	"github.com/dmitrijs2005/accountstore/internal/dbx"
	"github.com/dmitrijs2005/accountstore/internal/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores users in a local SQLite database. Durability comes
// from the connection's synchronous=FULL pragma.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}

	prefs, err := encodePreferences(user.Preferences)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO users (id, email, name, password, preferences)
		 VALUES (?, ?, ?, ?, ?)
		 `

	if _, err := r.db.ExecContext(ctx, query, id, user.Email, user.Name, user.Password, prefs); err != nil {
		if isSQLiteUniqueViolation(err) {
			return fmt.Errorf("db error: %w: %v", common.ErrorAlreadyExists, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	return nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, name, password, preferences FROM users
		 WHERE email = ?
		 `

	user := &models.User{}
	var prefs sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.Name, &user.Password, &prefs)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Preferences, err = decodePreferences(prefs); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, email string) (bool, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// MergePreferences applies the updates as an RFC 7396 merge patch with
// json_patch. Values are always strings, so no key is ever removed.
func (r *SQLiteRepository) MergePreferences(ctx context.Context, email string, updates map[string]string) (bool, error) {
	patch, err := encodePreferences(updates)
	if err != nil {
		return false, err
	}
	if patch == nil {
		patch = "{}"
	}

	query :=
		`UPDATE users SET preferences = json_patch(COALESCE(preferences, '{}'), ?)
		 WHERE email = ?
		 `

	res, err := r.db.ExecContext(ctx, query, patch, email)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return false, common.ErrorNotFound
	}

	return true, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
