// Package session holds the authenticated state of the client: the bearer
// token, the signed-in user and their preferences. The state lives in memory
// and is mirrored to the local metadata table under three keys that are
// always cleared together.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/dbx"
	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/dmitrijs2005/devfolio/internal/timex"
	"github.com/golang-jwt/jwt/v5"
)

// RepoFactory binds a metadata repository to a connection or transaction.
type RepoFactory func(db dbx.DBTX) metadata.Repository

// Store is the single source of truth for "is someone logged in". It is safe
// for concurrent use and implements api.Authenticator.
type Store struct {
	db      *sql.DB
	newRepo RepoFactory
	logger  logging.Logger

	mu    sync.RWMutex
	token models.Token
	user  *models.User
	prefs *models.Preferences
}

// NewStore builds a Store over db. Call Load to pick up a previous session.
func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return NewStoreWithRepo(db, func(db dbx.DBTX) metadata.Repository {
		return metadata.NewTable(db)
	}, logger)
}

// NewStoreWithRepo is NewStore with a custom repository binding.
func NewStoreWithRepo(db *sql.DB, newRepo RepoFactory, logger logging.Logger) *Store {
	return &Store{db: db, newRepo: newRepo, logger: logger}
}

// Load reads the persisted keys into memory with a single lookup. A key
// holding malformed JSON is treated as absent.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.newRepo(s.db).Lookup(ctx, common.SessionKeys...)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	token, _ := decodeKey[models.Token](ctx, s, rows, common.StorageKeyToken)
	user, hasUser := decodeKey[models.User](ctx, s, rows, common.StorageKeyUser)
	prefs, hasPrefs := decodeKey[models.Preferences](ctx, s, rows, common.StorageKeyPreferences)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token, s.user, s.prefs = token, nil, nil
	if hasUser {
		s.user = &user
	}
	if hasPrefs {
		s.prefs = &prefs
	}
	return nil
}

func decodeKey[T any](ctx context.Context, s *Store, rows map[string][]byte, key string) (T, bool) {
	v, ok, err := metadata.Decode[T](rows, key)
	if err != nil {
		s.logger.Warn(ctx, "ignoring corrupt session key", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, ok
}

// Save stores token and user, persisting both keys in one transaction. A
// missing expiry is taken from the token's exp claim. Preferences survive
// only when the same user signs in again; otherwise they are dropped in the
// same transaction.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = timex.Of(TokenExpiry(sess.Token))
	}
	token := sess.TokenPart()

	rows := map[string][]byte{}
	if err := metadata.Encode(rows, common.StorageKeyToken, token); err != nil {
		return err
	}
	var user *models.User
	if sess.User != nil {
		u := *sess.User
		user = &u
		if err := metadata.Encode(rows, common.StorageKeyUser, user); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keepPrefs := s.user != nil && user != nil && s.user.ID == user.ID
	var stale []string
	if user == nil {
		stale = append(stale, common.StorageKeyUser)
	}
	if !keepPrefs {
		stale = append(stale, common.StorageKeyPreferences)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := repo.Put(ctx, rows); err != nil {
			return err
		}
		return repo.Delete(ctx, stale...)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.token = token
	s.user = user
	if !keepPrefs {
		s.prefs = nil
	}
	return nil
}

// Current returns a copy of the session, or nil when nobody is signed in.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil && s.token.Token == "" {
		return nil
	}
	out := &models.Session{
		Token:        s.token.Token,
		RefreshToken: s.token.RefreshToken,
		ExpiresAt:    s.token.ExpiresAt,
	}
	if s.user != nil {
		u := *s.user
		out.User = &u
	}
	return out
}

// User returns a copy of the signed-in user.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token.Token
}

// IsAuthenticated reports whether both a user and a token are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token.Token != ""
}

// UpdateUser merges patch into the stored user without contacting the
// backend and persists the result.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.User{}, common.ErrNotAuthenticated
	}

	merged := patch.Apply(*s.user)
	if err := s.persistUser(ctx, merged); err != nil {
		return models.User{}, fmt.Errorf("save user: %w", err)
	}
	s.user = &merged
	return merged, nil
}

// SetUser replaces the stored user, e.g. after a profile refresh.
func (s *Store) SetUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	s.user = &user
	return nil
}

func (s *Store) persistUser(ctx context.Context, user models.User) error {
	return s.put(ctx, common.StorageKeyUser, user)
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	rows := map[string][]byte{}
	if err := metadata.Encode(rows, key, v); err != nil {
		return err
	}
	return s.newRepo(s.db).Put(ctx, rows)
}

// Preferences returns a copy of the stored preferences, or nil.
func (s *Store) Preferences() *models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.prefs == nil {
		return nil
	}
	p := *s.prefs
	return &p
}

func (s *Store) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.put(ctx, common.StorageKeyPreferences, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	s.prefs = &prefs
	return nil
}

// Clear removes all three persisted keys in one transaction and forgets the
// in-memory state. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.newRepo(tx).Delete(ctx, common.SessionKeys...)
	})

	s.token, s.user, s.prefs = models.Token{}, nil, nil

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Invalidate drops the session after the backend rejected the token.
func (s *Store) Invalidate(ctx context.Context) {
	if !s.hasState() {
		return
	}
	s.logger.Info(ctx, "session expired, clearing local state")
	if err := s.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear expired session", "error", err)
	}
}

func (s *Store) hasState() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil || s.token.Token != "" || s.prefs != nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it. The zero
// time is returned for opaque or exp-less tokens.
func TokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
