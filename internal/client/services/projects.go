package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
)

// ProjectService wraps the /projects endpoints.
type ProjectService interface {
	List(ctx context.Context, q models.ProjectQuery) (models.Page[models.Project], error)
	Get(ctx context.Context, id int64) (models.Project, error)
	Create(ctx context.Context, in models.ProjectInput) (models.Project, error)
	Update(ctx context.Context, id int64, in models.ProjectInput) (models.Project, error)
	Delete(ctx context.Context, id int64) error
	AdminList(ctx context.Context, q models.ProjectQuery) (models.Page[models.Project], error)
	Mine(ctx context.Context, q models.ProjectQuery) (models.Page[models.Project], error)
}

type projectService struct {
	client *api.Client
}

func NewProjectService(client *api.Client) ProjectService {
	return &projectService{client: client}
}

// ProjectQueryParams encodes q in the order the backend documents: page,
// pageSize, status, search, techStackId, isFeatured, userId. Unset filters are
// left out.
func ProjectQueryParams(q models.ProjectQuery) *api.Query {
	return (&api.Query{}).
		AddInt("page", q.Page).
		AddInt("pageSize", q.PageSize).
		Add("status", string(q.Status)).
		Add("search", q.Search).
		AddInt64Ptr("techStackId", q.TechStackID).
		AddBoolPtr("isFeatured", q.IsFeatured).
		Add("userId", q.UserID)
}

func (s *projectService) List(ctx context.Context, q models.ProjectQuery) (models.Page[models.Project], error) {
	return api.Get[models.Page[models.Project]](ctx, s.client, "/projects", api.WithQuery(ProjectQueryParams(q)))
}

func (s *projectService) Get(ctx context.Context, id int64) (models.Project, error) {
	return api.Get[models.Project](ctx, s.client, fmt.Sprintf("/projects/%d", id))
}

func (s *projectService) Create(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	if err := forms.ValidateProject(in); err != nil {
		return models.Project{}, err
	}
	return api.Post[models.Project](ctx, s.client, "/projects", in)
}

func (s *projectService) Update(ctx context.Context, id int64, in models.ProjectInput) (models.Project, error) {
	if err := forms.ValidateProject(in); err != nil {
		return models.Project{}, err
	}
	return api.Put[models.Project](ctx, s.client, fmt.Sprintf("/projects/%d", id), in)
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	_, err := api.Delete[struct{}](ctx, s.client, fmt.Sprintf("/projects/%d", id))
	return err
}

func (s *projectService) AdminList(ctx context.Context, q models.ProjectQuery) (models.Page[models.Project], error) {
	return api.Get[models.Page[models.Project]](ctx, s.client, "/projects/admin", api.WithQuery(ProjectQueryParams(q)))
}

func (s *projectService) Mine(ctx context.Context, q models.ProjectQuery) (models.Page[models.Project], error) {
	return api.Get[models.Page[models.Project]](ctx, s.client, "/projects/my", api.WithQuery(ProjectQueryParams(q)))
}
