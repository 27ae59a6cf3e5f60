// Package sessions declares the session store contract and its PostgreSQL,
// SQLite and MongoDB implementations. A user has at most one session.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/accountstore/internal/models"
)

// CollectionName is the table/collection holding session records.
const CollectionName = "sessions"

// Repository defines operations for issuing, retrieving and revoking sessions.
type Repository interface {
	// Upsert stores jwt as the session of userID, replacing any previous one.
	// The bool reports whether the store acknowledged the write.
	Upsert(ctx context.Context, userID, jwt string) (bool, error)

	// GetByUserID returns common.ErrorNotFound when the user has no session.
	GetByUserID(ctx context.Context, userID string) (*models.Session, error)

	// DeleteByUserID removes the session of userID. Deleting a missing
	// session is acknowledged like any other delete.
	DeleteByUserID(ctx context.Context, userID string) (bool, error)
}
