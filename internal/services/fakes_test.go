package services

import (
	"context"

	"github.com/dmitrijs2005/accountstore/internal/models"
	"github.com/dmitrijs2005/accountstore/internal/repositories/sessions"
	"github.com/dmitrijs2005/accountstore/internal/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	createErr error

	getOut *models.User
	getErr error

	deleteOK     bool
	deleteErr    error
	deleteCalled bool

	mergeOK     bool
	mergeErr    error
	mergeCalled bool
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	return f.createErr
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, email string) (bool, error) {
	f.deleteCalled = true
	return f.deleteOK, f.deleteErr
}

func (f *fakeUsersRepo) MergePreferences(ctx context.Context, email string, updates map[string]string) (bool, error) {
	f.mergeCalled = true
	return f.mergeOK, f.mergeErr
}

type fakeSessionsRepo struct {
	upsertOK  bool
	upsertErr error

	getOut *models.Session
	getErr error

	deleteOK  bool
	deleteErr error
}

func (f *fakeSessionsRepo) Upsert(ctx context.Context, userID, jwt string) (bool, error) {
	return f.upsertOK, f.upsertErr
}

func (f *fakeSessionsRepo) GetByUserID(ctx context.Context, userID string) (*models.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeSessionsRepo) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	return f.deleteOK, f.deleteErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) Users() users.Repository             { return m.u }
func (m *fakeRepoManager) Sessions() sessions.Repository       { return m.s }
func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Ping(context.Context) error          { return nil }
func (m *fakeRepoManager) Close(context.Context) error         { return nil }
