// Package services contains the application services of the devfolio client.
// This file defines the authentication service: login, register, logout,
// local profile merge and startup validation of a persisted session.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/session"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login/Register: validate the form, call the backend, persist the
//     session and bootstrap preferences. A failed call leaves storage as is.
//   - Logout: tell the backend on a best-effort basis, then always clear.
//   - UpdateUser: merge fields into the stored user without a request.
//   - Initialize: validate a persisted session once at startup.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Register(ctx context.Context, reg models.Registration) (*models.Session, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
	Initialize(ctx context.Context) error
}

type authService struct {
	client *api.Client
	store  *session.Store
	prefs  PreferenceService
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the API client, the
// session store and the preference sync used after sign-in.
func NewAuthService(client *api.Client, store *session.Store, prefs PreferenceService, logger logging.Logger) AuthService {
	return &authService{client: client, store: store, prefs: prefs, logger: logger}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if err := forms.ValidateCredentials(creds); err != nil {
		return nil, err
	}

	sess, err := api.Post[models.Session](ctx, a.client, "/auth/login", creds, api.Anonymous())
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, sess)
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.Session, error) {
	if err := forms.ValidateRegistration(reg); err != nil {
		return nil, err
	}

	sess, err := api.Post[models.Session](ctx, a.client, "/auth/register", reg, api.Anonymous())
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, sess)
}

// establish persists a fresh session and loads preferences. Preference
// failures are logged and never fail the sign-in; the theme then falls back
// to the account's stored preferences or the defaults.
func (a *authService) establish(ctx context.Context, sess models.Session) (*models.Session, error) {
	if !sess.IsAuthenticated() {
		return nil, &api.Error{Message: "Malformed authentication response", Err: common.ErrRequestFailed}
	}

	if err := a.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	if _, err := a.prefs.Get(ctx); err != nil {
		a.logger.Warn(ctx, "preferences not loaded after sign-in", "error", err)
		fallback := models.DefaultPreferences()
		if stored := a.store.Preferences(); stored != nil {
			fallback = *stored
		}
		a.prefs.Apply(fallback)
	}

	a.logger.Info(ctx, "signed in", "user", sess.User.Username)
	return a.store.Current(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	if a.store.AccessToken() != "" {
		if _, err := api.Post[struct{}](ctx, a.client, "/auth/logout", nil); err != nil {
			a.logger.Warn(ctx, "backend logout failed", "error", err)
		}
	}
	return a.store.Clear(ctx)
}

func (a *authService) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	return a.store.UpdateUser(ctx, patch)
}

// Initialize loads the persisted session and validates it with one profile
// request. Any failure clears the persisted state and is returned.
func (a *authService) Initialize(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		return err
	}
	if a.store.AccessToken() == "" {
		return nil
	}

	user, err := api.Get[models.User](ctx, a.client, "/users/profile")
	if err != nil {
		if clearErr := a.store.Clear(ctx); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return err
	}

	if err := a.store.SetUser(ctx, user); err != nil {
		return err
	}

	if _, err := a.prefs.Load(ctx); err != nil {
		a.logger.Warn(ctx, "preferences not loaded at startup", "error", err)
	}
	return nil
}
