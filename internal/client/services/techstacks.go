package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
)

// TechStackService wraps the /techstacks catalog endpoints.
type TechStackService interface {
	List(ctx context.Context, q models.CatalogQuery) (models.Page[models.TechStack], error)
	Get(ctx context.Context, id int64) (models.TechStack, error)
	Create(ctx context.Context, in models.TechStackInput) (models.TechStack, error)
	Update(ctx context.Context, id int64, in models.TechStackInput) (models.TechStack, error)
	Delete(ctx context.Context, id int64) error
	AdminList(ctx context.Context, q models.CatalogQuery) (models.Page[models.TechStack], error)
}

type techStackService struct {
	client *api.Client
}

func NewTechStackService(client *api.Client) TechStackService {
	return &techStackService{client: client}
}

func CatalogQueryParams(q models.CatalogQuery) *api.Query {
	return (&api.Query{}).
		AddInt("page", q.Page).
		AddInt("pageSize", q.PageSize).
		Add("search", q.Search).
		Add("category", q.Category).
		Add("userId", q.UserID)
}

func (s *techStackService) List(ctx context.Context, q models.CatalogQuery) (models.Page[models.TechStack], error) {
	return api.Get[models.Page[models.TechStack]](ctx, s.client, "/techstacks", api.WithQuery(CatalogQueryParams(q)))
}

func (s *techStackService) Get(ctx context.Context, id int64) (models.TechStack, error) {
	return api.Get[models.TechStack](ctx, s.client, fmt.Sprintf("/techstacks/%d", id))
}

func (s *techStackService) Create(ctx context.Context, in models.TechStackInput) (models.TechStack, error) {
	if err := forms.ValidateTechStack(in); err != nil {
		return models.TechStack{}, err
	}
	return api.Post[models.TechStack](ctx, s.client, "/techstacks", in)
}

func (s *techStackService) Update(ctx context.Context, id int64, in models.TechStackInput) (models.TechStack, error) {
	if err := forms.ValidateTechStack(in); err != nil {
		return models.TechStack{}, err
	}
	return api.Put[models.TechStack](ctx, s.client, fmt.Sprintf("/techstacks/%d", id), in)
}

func (s *techStackService) Delete(ctx context.Context, id int64) error {
	_, err := api.Delete[struct{}](ctx, s.client, fmt.Sprintf("/techstacks/%d", id))
	return err
}

func (s *techStackService) AdminList(ctx context.Context, q models.CatalogQuery) (models.Page[models.TechStack], error) {
	return api.Get[models.Page[models.TechStack]](ctx, s.client, "/techstacks/admin", api.WithQuery(CatalogQueryParams(q)))
}
