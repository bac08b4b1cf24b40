// Package services contains application services for the PocketFarm client.
// This file defines the session service: the single process-wide authority
// for which user, if any, is currently authenticated.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/repositories/session"
	"github.com/pocketfarm/pocketfarm-cli/internal/common"
	"github.com/pocketfarm/pocketfarm-cli/internal/logging"
)

// sessionKey is the durable storage slot holding the serialized user record.
const sessionKey = "user"

// emailRe accepts local-part "@" domain, where the domain has at least one
// dot and a two-plus letter TLD. Malformed addresses never reach the network.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// SessionService defines the session operations consumed by the CLI.
//
// Contract:
//   - Login/Signup: authenticate against the server and persist the session.
//   - Logout: clear the in-memory and persisted session; no network call.
//   - DeleteAccount: delete the current account server-side, then log out.
//   - UpdateUserProfile: merge fields locally and re-persist; no network call.
//   - LoginError/IsLoading: last failure message and in-flight flag for
//     declarative readers.
//
// IsAuthenticated is true iff CurrentUser is non-nil.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, req api.SignupRequest) (*models.User, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	UpdateUserProfile(ctx context.Context, patch models.UserPatch) error
	CurrentUser() *models.User
	IsAuthenticated() bool
	LoginError() string
	IsLoading() bool
	Close(ctx context.Context) error
}

// sessionService is the concrete SessionService backed by the remote Client
// and the local session repository.
type sessionService struct {
	client api.Client
	repo   session.Repository
	log    logging.Logger

	mu         sync.Mutex
	user       *models.User
	loginError string
	loading    bool
}

// NewSessionService constructs a SessionService and synchronously restores a
// previously persisted session, if one exists, before anything else reads it.
// A corrupt snapshot is discarded with a warning rather than failing startup.
func NewSessionService(ctx context.Context, client api.Client, repo session.Repository, log logging.Logger) (SessionService, error) {
	s := &sessionService{client: client, repo: repo, log: log}

	data, err := repo.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if len(data) > 0 {
		var user models.User
		if err := json.Unmarshal(data, &user); err != nil {
			log.Warn(ctx, "discarding corrupt session snapshot", "error", err)
			_ = repo.Delete(ctx, sessionKey)
		} else {
			s.user = &user
		}
	}

	return s, nil
}

func (s *sessionService) beginAuthCall() {
	s.mu.Lock()
	s.loading = true
	s.loginError = ""
	s.mu.Unlock()
}

func (s *sessionService) endAuthCall() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *sessionService) recordFailure(err error) {
	s.mu.Lock()
	s.loginError = err.Error()
	s.mu.Unlock()
}

// storeUser makes user the current session and persists the snapshot,
// atomically dropping any stale rows from a previous session. The in-memory
// session is updated even if the durable write fails; that failure only
// costs the restore-on-restart path.
func (s *sessionService) storeUser(ctx context.Context, user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		s.log.Error(ctx, "failed to serialize session", "error", err)
		return
	}
	if err := s.repo.Replace(ctx, sessionKey, data); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
	}
}

func (s *sessionService) clearUser(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	return s.repo.Delete(ctx, sessionKey)
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if !emailRe.MatchString(email) {
		s.recordFailure(common.ErrInvalidEmail)
		return nil, common.ErrInvalidEmail
	}

	s.beginAuthCall()
	defer s.endAuthCall()

	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.storeUser(ctx, user)
	s.log.Info(ctx, "logged in", "user_id", user.ID)
	return user, nil
}

func (s *sessionService) Signup(ctx context.Context, req api.SignupRequest) (*models.User, error) {
	if !emailRe.MatchString(req.Email) {
		s.recordFailure(common.ErrInvalidEmail)
		return nil, common.ErrInvalidEmail
	}

	s.beginAuthCall()
	defer s.endAuthCall()

	user, err := s.client.Signup(ctx, req)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.storeUser(ctx, user)
	s.log.Info(ctx, "account created", "user_id", user.ID)
	return user, nil
}

// Logout clears the in-memory session and removes the persisted snapshot.
// Server-side session invalidation, if any, is out of scope for the client.
func (s *sessionService) Logout(ctx context.Context) error {
	return s.clearUser(ctx)
}

func (s *sessionService) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	if user == nil {
		return common.ErrNoUserLoggedIn
	}

	if err := s.client.DeleteAccount(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info(ctx, "account deleted", "user_id", user.ID)
	return s.clearUser(ctx)
}

// UpdateUserProfile merges the given fields into the current user record and
// re-persists it. No-op when anonymous.
func (s *sessionService) UpdateUserProfile(ctx context.Context, patch models.UserPatch) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	updated := *s.user
	patch.Apply(&updated)
	s.mu.Unlock()

	s.storeUser(ctx, &updated)
	return nil
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *sessionService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	if s.user.Location != nil {
		loc := *s.user.Location
		user.Location = &loc
	}
	return &user
}

func (s *sessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *sessionService) LoginError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginError
}

func (s *sessionService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *sessionService) Close(ctx context.Context) error {
	return s.client.Close()
}
