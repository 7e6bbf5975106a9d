package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
)

// RepositoryService wraps the /repositories endpoints.
type RepositoryService interface {
	List(ctx context.Context, q models.CatalogQuery) (models.Page[models.Repository], error)
	Get(ctx context.Context, id int64) (models.Repository, error)
	Create(ctx context.Context, in models.RepositoryInput) (models.Repository, error)
	Update(ctx context.Context, id int64, in models.RepositoryInput) (models.Repository, error)
	Delete(ctx context.Context, id int64) error
	AdminList(ctx context.Context, q models.CatalogQuery) (models.Page[models.Repository], error)
	BulkDelete(ctx context.Context, ids []int64) (models.BulkDeleteResult, error)
}

type repositoryService struct {
	client *api.Client
}

func NewRepositoryService(client *api.Client) RepositoryService {
	return &repositoryService{client: client}
}

func (s *repositoryService) List(ctx context.Context, q models.CatalogQuery) (models.Page[models.Repository], error) {
	return api.Get[models.Page[models.Repository]](ctx, s.client, "/repositories", api.WithQuery(CatalogQueryParams(q)))
}

func (s *repositoryService) Get(ctx context.Context, id int64) (models.Repository, error) {
	return api.Get[models.Repository](ctx, s.client, fmt.Sprintf("/repositories/%d", id))
}

func (s *repositoryService) Create(ctx context.Context, in models.RepositoryInput) (models.Repository, error) {
	if err := forms.ValidateRepository(in); err != nil {
		return models.Repository{}, err
	}
	return api.Post[models.Repository](ctx, s.client, "/repositories", in)
}

func (s *repositoryService) Update(ctx context.Context, id int64, in models.RepositoryInput) (models.Repository, error) {
	if err := forms.ValidateRepository(in); err != nil {
		return models.Repository{}, err
	}
	return api.Put[models.Repository](ctx, s.client, fmt.Sprintf("/repositories/%d", id), in)
}

func (s *repositoryService) Delete(ctx context.Context, id int64) error {
	_, err := api.Delete[struct{}](ctx, s.client, fmt.Sprintf("/repositories/%d", id))
	return err
}

func (s *repositoryService) AdminList(ctx context.Context, q models.CatalogQuery) (models.Page[models.Repository], error) {
	return api.Get[models.Page[models.Repository]](ctx, s.client, "/repositories/admin", api.WithQuery(CatalogQueryParams(q)))
}

// BulkDelete removes ids in one request; the backend reports ids it did not
// find.
func (s *repositoryService) BulkDelete(ctx context.Context, ids []int64) (models.BulkDeleteResult, error) {
	if len(ids) == 0 {
		return models.BulkDeleteResult{}, nil
	}
	body := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}
	return api.Post[models.BulkDeleteResult](ctx, s.client, "/repositories/bulk-delete", body)
}
