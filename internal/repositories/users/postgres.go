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
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository stores users in the users table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user in a transaction that waits for synchronous
// standbys to apply the commit before returning.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}

	prefs, err := encodePreferences(user.Preferences)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = 'remote_apply'`); err != nil {
			return err
		}

		query :=
			`INSERT INTO users (id, email, name, password, preferences)
			 VALUES ($1, $2, $3, $4, $5)
			 `
		_, err := tx.ExecContext(ctx, query, id, user.Email, user.Name, user.Password, prefs)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("db error: %w: %s", common.ErrorAlreadyExists, pgErr.Message)
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, name, password, preferences FROM users
		 WHERE email = $1
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

func (r *PostgresRepository) Delete(ctx context.Context, email string) (bool, error) {
	query :=
		`DELETE FROM users
		 WHERE email = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return true, nil
}

// MergePreferences concatenates the update object onto the stored JSONB,
// so the merge happens inside a single UPDATE.
func (r *PostgresRepository) MergePreferences(ctx context.Context, email string, updates map[string]string) (bool, error) {
	patch, err := encodePreferences(updates)
	if err != nil {
		return false, err
	}
	if patch == nil {
		patch = "{}"
	}

	query :=
		`UPDATE users SET preferences = COALESCE(preferences, '{}'::jsonb) || $2::jsonb
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email, patch)
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
