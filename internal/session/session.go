// Package session holds the console's authentication state: the token pair
// and the current admin profile. Every mutation is written through to a Store
// so a session survives restarts and rehydrates before it serves a request.
package session

import (
	"context"
	"sync"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/models"
)

// UserState mirrors the profile fetch lifecycle.
type UserState struct {
	CurrentUser *models.User `json:"currentUser"`
	Loading     bool         `json:"loading"`
	Error       string       `json:"error,omitempty"`
}

// Service is safe for concurrent use. The fetch layer is the only writer of
// the token pair outside of login and logout.
type Service struct {
	mu    sync.RWMutex
	auth  models.Tokens
	user  UserState
	store Store
	log   logger.Logger
}

func New(store Store, log logger.Logger) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Service{
		store: store,
		log:   log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Rehydrate replaces the in-memory state with the persisted snapshot. A
// missing snapshot leaves an empty session. On a store error the session is
// left empty and the error is returned.
func (s *Service) Rehydrate(ctx context.Context) error {
	snap, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth = models.Tokens{}
	s.user = UserState{}
	if err != nil {
		s.log.Warn("Session rehydrate failed, starting empty", map[string]interface{}{"error": err.Error()})
		return apperrors.NewSessionStoreError("rehydrate", err)
	}
	if snap != nil {
		s.auth = snap.Auth
		s.user.CurrentUser = snap.User
	}
	return nil
}

func (s *Service) Tokens() models.Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

func (s *Service) User() UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Service) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.CurrentUser
}

// IsAuthenticated requires both an access token and a loaded profile.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.AccessToken != "" && s.user.CurrentUser != nil
}

// SignInSuccess stores a new token pair.
func (s *Service) SignInSuccess(ctx context.Context, tokens models.Tokens) error {
	s.mu.Lock()
	s.auth = tokens
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(ctx, snap)
}

func (s *Service) ResetAuth(ctx context.Context) error {
	s.mu.Lock()
	s.auth = models.Tokens{}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(ctx, snap)
}

func (s *Service) FetchUserStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Loading = true
	s.user.Error = ""
}

func (s *Service) FetchUserSuccess(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	s.user = UserState{CurrentUser: user}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(ctx, snap)
}

// FetchUserFailure records the error and keeps whatever profile was loaded.
func (s *Service) FetchUserFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Loading = false
	s.user.Error = apperrors.UserMessage(err)
}

func (s *Service) ResetUser(ctx context.Context) error {
	s.mu.Lock()
	s.user = UserState{}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(ctx, snap)
}

// Reset clears both slices with a single store write.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.auth = models.Tokens{}
	s.user = UserState{}
	s.mu.Unlock()
	return s.persist(ctx, models.SessionSnapshot{})
}

// Claims decodes the current access token without verifying it.
func (s *Service) Claims() (*Claims, error) {
	token := s.Tokens().AccessToken
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return ParseClaims(token)
}

func (s *Service) snapshotLocked() models.SessionSnapshot {
	return models.SessionSnapshot{Auth: s.auth, User: s.user.CurrentUser}
}

func (s *Service) persist(ctx context.Context, snap models.SessionSnapshot) error {
	var err error
	if snap.Auth.IsZero() && snap.Auth.RefreshToken == "" && snap.User == nil {
		err = s.store.Clear(ctx)
	} else {
		err = s.store.Save(ctx, snap)
	}
	if err != nil {
		s.log.Error("Session persist failed", map[string]interface{}{"error": err.Error()})
		return apperrors.NewSessionStoreError("persist", err)
	}
	return nil
}
