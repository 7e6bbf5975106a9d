package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/services"
	"github.com/dmitrijs2005/devfolio/internal/common"
)

const catalogPageSize = 50

func (a *App) Stacks(ctx context.Context) error {
	page, err := a.svc.TechStacks.List(ctx, models.CatalogQuery{Page: 1, PageSize: catalogPageSize})
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		a.printf("No tech stacks yet.\n")
		return nil
	}
	writeTable(a.out, stackColumns, page.Items)
	return nil
}

// AddStack creates a tech stack. The backend allows this for admins only.
func (a *App) AddStack(ctx context.Context) error {
	var in models.TechStackInput
	var err error

	if in.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if in.Category, err = a.ask("Category (optional)"); err != nil {
		return err
	}
	if in.Color, err = a.ask("Color (optional)"); err != nil {
		return err
	}
	if in.Description, err = a.ask("Description (optional)"); err != nil {
		return err
	}

	ts, err := a.svc.TechStacks.Create(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created tech stack #%d %q\n", ts.ID, ts.Name)
	return nil
}

// Repos lists repositories; a signed-in user sees their own.
func (a *App) Repos(ctx context.Context) error {
	q := models.CatalogQuery{Page: 1, PageSize: catalogPageSize}
	if u := a.store.User(); u != nil && !u.Role.IsAdmin() {
		q.UserID = u.ID
	}

	page, err := a.svc.Repositories.List(ctx, q)
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		a.printf("No repositories yet.\n")
		return nil
	}
	writeTable(a.out, repoColumns, page.Items)
	return nil
}

// DeleteRepos selects the given ids and deletes them concurrently:
// "delrepos <id...>". Deletes that succeeded stay deleted when others fail,
// and the selection is emptied either way.
func (a *App) DeleteRepos(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: delrepos <id...>")
	}
	seen := make(map[int64]bool, len(args))
	for _, arg := range args {
		id, err := forms.ParseID("id", arg)
		if err != nil {
			a.selection.Clear()
			return err
		}
		if !seen[id] {
			seen[id] = true
			a.selection.Toggle(id)
		}
	}

	ids := a.selection.IDs()
	err := services.BatchDelete(ctx, a.selection, ids, a.svc.Repositories.Delete)
	if err != nil {
		return err
	}
	a.printf("Deleted %d repositories\n", len(ids))
	return nil
}

// Users prints the admin user listing.
func (a *App) Users(ctx context.Context) error {
	if u := a.store.User(); u == nil || !u.Role.IsAdmin() {
		return common.ErrForbidden
	}

	page, err := a.svc.Users.AdminList(ctx, models.UserQuery{Page: 1, PageSize: 20})
	if err != nil {
		return err
	}
	writeTable(a.out, userColumns, page.Items)
	a.printf("%d users\n", page.TotalCount)
	return nil
}
