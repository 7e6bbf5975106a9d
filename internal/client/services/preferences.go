package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/session"
	"github.com/dmitrijs2005/devfolio/internal/client/theme"
	"github.com/dmitrijs2005/devfolio/internal/common"
)

// MessagePreferencesUnavailable is returned when the backend answers the
// preferences endpoint with 401 or 404.
const MessagePreferencesUnavailable = "Preferences are not available"

// PreferenceService fetches and updates the user's preferences and applies
// their side effects (the theme).
//
// A 401 from the preferences endpoints means "feature unavailable" and keeps
// the session, unlike every other endpoint.
type PreferenceService interface {
	Get(ctx context.Context) (models.Preferences, error)
	Update(ctx context.Context, patch models.PreferencesPatch) (models.Preferences, error)
	Load(ctx context.Context) (models.Preferences, error)
	Apply(prefs models.Preferences)
}

type preferenceService struct {
	client  *api.Client
	store   *session.Store
	applier theme.Applier
}

func NewPreferenceService(client *api.Client, store *session.Store, applier theme.Applier) PreferenceService {
	return &preferenceService{client: client, store: store, applier: applier}
}

func (p *preferenceService) Get(ctx context.Context) (models.Preferences, error) {
	if p.store.AccessToken() == "" {
		return models.Preferences{}, common.ErrNotAuthenticated
	}

	prefs, err := api.Get[models.Preferences](ctx, p.client, "/users/preferences", api.KeepSessionOn401())
	if err != nil {
		return models.Preferences{}, unavailable(err)
	}
	return prefs, p.persist(ctx, prefs)
}

func (p *preferenceService) Update(ctx context.Context, patch models.PreferencesPatch) (models.Preferences, error) {
	if p.store.AccessToken() == "" {
		return models.Preferences{}, common.ErrNotAuthenticated
	}
	if err := forms.ValidatePreferences(patch); err != nil {
		return models.Preferences{}, err
	}

	prefs, err := api.Put[models.Preferences](ctx, p.client, "/users/preferences", patch, api.KeepSessionOn401())
	if err != nil {
		return models.Preferences{}, unavailable(err)
	}
	return prefs, p.persist(ctx, prefs)
}

// Load prefers the stored copy and only goes to the network without one.
func (p *preferenceService) Load(ctx context.Context) (models.Preferences, error) {
	if stored := p.store.Preferences(); stored != nil {
		p.Apply(*stored)
		return *stored, nil
	}
	return p.Get(ctx)
}

func (p *preferenceService) Apply(prefs models.Preferences) {
	if p.applier != nil {
		p.applier.Apply(prefs.Theme)
	}
}

func (p *preferenceService) persist(ctx context.Context, prefs models.Preferences) error {
	if err := p.store.SavePreferences(ctx, prefs); err != nil {
		return err
	}
	p.Apply(prefs)
	return nil
}

func unavailable(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusNotFound {
		return &api.Error{
			StatusCode: apiErr.StatusCode,
			Message:    MessagePreferencesUnavailable,
			Err:        common.ErrFeatureUnavailable,
		}
	}
	return err
}
