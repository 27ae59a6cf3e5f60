// Package users declares the user store contract and its PostgreSQL, SQLite
// and MongoDB implementations. Users are keyed by email.
package users

import (
	"context"

	"github.com/dmitrijs2005/accountstore/internal/models"
)

// CollectionName is the table/collection holding user records.
const CollectionName = "users"

// Repository persists and retrieves User records.
type Repository interface {
	// Create inserts a new user and returns only once the write is durable
	// (majority acknowledged where the backend supports replication).
	// A duplicate email yields an error wrapping common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail returns common.ErrorNotFound when no user has this email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Delete removes the user with this email, if any. The bool reports
	// whether the store acknowledged the write.
	Delete(ctx context.Context, email string) (bool, error)

	// MergePreferences sets every key of updates in the user's preferences in
	// one atomic write, leaving other keys untouched. It returns
	// common.ErrorNotFound when no user has this email.
	MergePreferences(ctx context.Context, email string, updates map[string]string) (bool, error)
}
