// Package repomanager owns the store handle and vends the user and session
// repositories built on it. One implementation exists per storage backend.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/accountstore/internal/repositories/sessions"
	"github.com/dmitrijs2005/accountstore/internal/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Sessions() sessions.Repository

	// RunMigrations brings the schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
