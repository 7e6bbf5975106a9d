package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/session"
)

// UserService wraps the /users endpoints. UpdateProfile also records the
// accepted profile in the session store when one is bound.
type UserService interface {
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error)
	ChangePassword(ctx context.Context, in models.ChangePassword) error
	AdminList(ctx context.Context, q models.UserQuery) (models.Page[models.User], error)
	AdminUpdate(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	AdminDelete(ctx context.Context, id string) error
	Create(ctx context.Context, reg models.Registration) (models.User, error)
	AdminSetPreferences(ctx context.Context, id string, prefs models.Preferences) (models.Preferences, error)
}

type userService struct {
	client *api.Client
	store  *session.Store
}

// NewUserService binds the service to client. store may be nil for callers
// without a session, such as the seed tool.
func NewUserService(client *api.Client, store *session.Store) UserService {
	return &userService{client: client, store: store}
}

func UserQueryParams(q models.UserQuery) *api.Query {
	return (&api.Query{}).
		AddInt("page", q.Page).
		AddInt("pageSize", q.PageSize).
		Add("search", q.Search).
		Add("role", string(q.Role)).
		AddBoolPtr("isActive", q.IsActive)
}

func (s *userService) Profile(ctx context.Context) (models.User, error) {
	return api.Get[models.User](ctx, s.client, "/users/profile")
}

func (s *userService) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error) {
	if err := forms.ValidateUserPatch(patch); err != nil {
		return models.User{}, err
	}

	updated, err := api.Put[models.User](ctx, s.client, "/users/profile", patch)
	if err != nil {
		return models.User{}, err
	}
	if s.store == nil {
		return updated, nil
	}
	// an accepted update without a body falls back to a local merge
	if updated.ID == "" {
		return s.store.UpdateUser(ctx, patch)
	}
	if err := s.store.SetUser(ctx, updated); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

func (s *userService) ChangePassword(ctx context.Context, in models.ChangePassword) error {
	if err := forms.ValidateChangePassword(in); err != nil {
		return err
	}
	_, err := api.Post[struct{}](ctx, s.client, "/users/change-password", in)
	return err
}

func (s *userService) AdminList(ctx context.Context, q models.UserQuery) (models.Page[models.User], error) {
	return api.Get[models.Page[models.User]](ctx, s.client, "/users/admin", api.WithQuery(UserQueryParams(q)))
}

func (s *userService) AdminUpdate(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := forms.ValidateUserPatch(patch); err != nil {
		return models.User{}, err
	}
	return api.Put[models.User](ctx, s.client, userPath(id), patch)
}

func (s *userService) AdminDelete(ctx context.Context, id string) error {
	_, err := api.Delete[struct{}](ctx, s.client, userPath(id))
	return err
}

func (s *userService) Create(ctx context.Context, reg models.Registration) (models.User, error) {
	if err := forms.ValidateRegistration(reg); err != nil {
		return models.User{}, err
	}
	return api.Post[models.User](ctx, s.client, "/users", reg)
}

func (s *userService) AdminSetPreferences(ctx context.Context, id string, prefs models.Preferences) (models.Preferences, error) {
	return api.Put[models.Preferences](ctx, s.client, userPath(id)+"/preferences", prefs)
}

func userPath(id string) string {
	return fmt.Sprintf("/users/%s", url.PathEscape(id))
}
