// Package services contains the user/session manager: the single entry point
// the API layer calls to create, read and delete users and sessions and to
// merge user preferences.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountstore/internal/common"
	"github.com/dmitrijs2005/accountstore/internal/logging"
	"github.com/dmitrijs2005/accountstore/internal/models"
	"github.com/dmitrijs2005/accountstore/internal/repositories/repomanager"
)

// UserService enforces the rules that span the user and session stores:
// no user is deleted while its session survives, and preference updates
// merge into, rather than replace, the stored preferences.
//
// Creation and preference updates return errors; session issuance, session
// deletion and user deletion report failure as false and log the cause.
type UserService struct {
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewUserService binds the service to a store handle owned by the caller.
func NewUserService(m repomanager.RepositoryManager, l logging.Logger) *UserService {
	return &UserService{
		repos:  m,
		logger: l.With("module", "user_service"),
	}
}

// AddUser inserts user with majority durability. Any rejection, duplicate
// email included, is returned as a *common.UserWriteError carrying the
// user's name and matching common.ErrDuplicateOrWrite.
func (s *UserService) AddUser(ctx context.Context, user *models.User) (bool, error) {
	if user == nil {
		return false, common.InvalidOperationf("user is nil")
	}

	s.logger.Debug(ctx, "addUser", "email", user.Email)

	if err := s.repos.Users().Create(ctx, user); err != nil {
		return false, &common.UserWriteError{Name: user.Name, Err: err}
	}

	return true, nil
}

// CreateUserSession stores jwt as the only session of userID. A failed write
// is logged and reported as false so a login flow can carry on degraded.
func (s *UserService) CreateUserSession(ctx context.Context, userID, jwt string) bool {
	s.logger.Debug(ctx, "createUserSession", "user_id", userID)

	ok, err := s.repos.Sessions().Upsert(ctx, userID, jwt)
	if err != nil {
		s.logger.Error(ctx, "session creation failed", "user_id", userID, "error", err)
		return false
	}

	return ok
}

// GetUser returns nil, nil when no user has this email.
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	s.logger.Debug(ctx, "getUser", "email", email)

	user, err := s.repos.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return user, nil
}

// GetUserSession returns nil, nil when the user has no session.
func (s *UserService) GetUserSession(ctx context.Context, userID string) (*models.Session, error) {
	s.logger.Debug(ctx, "getUserSession", "user_id", userID)

	session, err := s.repos.Sessions().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching session: %w", err)
	}

	return session, nil
}

// DeleteUserSessions removes the session of userID. It reports whether the
// store acknowledged the delete, which is true even if there was nothing to
// delete.
func (s *UserService) DeleteUserSessions(ctx context.Context, userID string) bool {
	s.logger.Debug(ctx, "deleteUserSessions", "user_id", userID)

	ok, err := s.repos.Sessions().DeleteByUserID(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "session deletion failed", "user_id", userID, "error", err)
		return false
	}

	return ok
}

// DeleteUser removes the session keyed by email and then the user itself.
// The user is only touched once the session delete is acknowledged, so a
// failure leaves a user without a session and never a session without a
// user. The two steps are not transactional.
func (s *UserService) DeleteUser(ctx context.Context, email string) bool {
	s.logger.Debug(ctx, "deleteUser", "email", email)

	if !s.DeleteUserSessions(ctx, email) {
		s.logger.Error(ctx, "sessions of user were not deleted, keeping user", "email", email)
		return false
	}

	ok, err := s.repos.Users().Delete(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "user deletion failed", "email", email, "error", err)
		return false
	}

	return ok
}

// UpdateUserPreferences merges updates into the preferences of the user with
// this email: keys in updates are set, all other stored keys are kept.
//
// A nil updates map or an unknown email is an error matching
// common.ErrInvalidOperation, and nothing is written. A rejected write,
// including a key the store cannot hold, matches both
// common.ErrInvalidOperation and common.ErrDuplicateOrWrite.
// The store applies all keys in a single atomic update, so concurrent
// updates of different keys do not overwrite each other.
func (s *UserService) UpdateUserPreferences(ctx context.Context, email string, updates map[string]string) (bool, error) {
	s.logger.Debug(ctx, "updateUserPreferences", "email", email, "keys", len(updates))

	if updates == nil {
		return false, common.InvalidOperationf("user preferences is nil")
	}

	users := s.repos.Users()

	if _, err := users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.InvalidOperationf("user by email %s not found", email)
		}
		return false, fmt.Errorf("error searching user: %w", err)
	}

	if len(updates) == 0 {
		return true, nil
	}

	ok, err := users.MergePreferences(ctx, email, updates)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.InvalidOperationf("user by email %s not found", email)
		}
		return false, fmt.Errorf("%w: %w: preferences of %s were not updated: %w",
			common.ErrInvalidOperation, common.ErrDuplicateOrWrite, email, err)
	}

	return ok, nil
}
