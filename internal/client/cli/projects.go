package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/timex"
)

// ProjectsPageSize is the grid size used by the projects command.
const ProjectsPageSize = 12

// Projects lists public projects: "projects [page] [status]".
func (a *App) Projects(ctx context.Context, args []string) error {
	q := models.ProjectQuery{Page: 1, PageSize: ProjectsPageSize}

	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 {
				return fmt.Errorf("page must be 1 or greater")
			}
			q.Page = n
			continue
		}
		q.Status = matchStatus(arg)
		if q.Status == "" {
			return fmt.Errorf("unknown status %q", arg)
		}
	}

	page, err := a.svc.Projects.List(ctx, q)
	if err != nil {
		return err
	}
	writeProjects(a.out, projectColumns, page)
	return nil
}

func matchStatus(s string) models.ProjectStatus {
	for _, st := range models.ProjectStatuses {
		if strings.EqualFold(string(st), s) {
			return st
		}
	}
	return ""
}

// Project prints one project: "project <id>".
func (a *App) Project(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: project <id>")
	}
	id, err := forms.ParseID("id", args[0])
	if err != nil {
		return err
	}

	p, err := a.svc.Projects.Get(ctx, id)
	if err != nil {
		return err
	}
	writeRows(a.out, forms.Render(forms.ProjectFields, p))
	return nil
}

// AddProject walks through the editable project fields and creates it.
func (a *App) AddProject(ctx context.Context) error {
	var in models.ProjectInput
	var err error

	if in.Title, err = a.ask("Title"); err != nil {
		return err
	}
	if in.Description, err = a.prompt.Text("Description"); err != nil {
		return err
	}

	status, err := a.ask(fmt.Sprintf("Status (%s)", statusList()))
	if err != nil {
		return err
	}
	in.Status = matchStatus(status)
	if in.Status == "" {
		in.Status = models.ProjectStatus(status)
	}

	if in.StartDate, err = a.askDate("Start date (YYYY-MM-DD, optional)"); err != nil {
		return err
	}
	if in.EndDate, err = a.askDate("End date (YYYY-MM-DD, optional)"); err != nil {
		return err
	}
	if in.GithubURL, err = a.ask("GitHub URL (optional)"); err != nil {
		return err
	}
	if in.DemoURL, err = a.ask("Demo URL (optional)"); err != nil {
		return err
	}

	stack, err := a.ask("Tech stack id (optional)")
	if err != nil {
		return err
	}
	if stack != "" {
		id, err := forms.ParseID("techStackId", stack)
		if err != nil {
			return err
		}
		in.TechStackID = &id
	}

	if in.IsFeatured, err = a.prompt.Confirm("Featured?", false); err != nil {
		return err
	}

	public := true
	if prefs := a.store.Preferences(); prefs != nil {
		public = prefs.ProjectVisibilityDefault != models.VisibilityPrivate
	}
	if in.IsPublic, err = a.prompt.Confirm("Public?", public); err != nil {
		return err
	}

	p, err := a.svc.Projects.Create(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created project #%d %q\n", p.ID, p.Title)
	return nil
}

func (a *App) askDate(prompt string) (*timex.Time, error) {
	s, err := a.ask(prompt)
	if err != nil {
		return nil, err
	}
	t, err := forms.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a date in YYYY-MM-DD form", s)
	}
	return t, nil
}

func statusList() string {
	names := make([]string, len(models.ProjectStatuses))
	for i, s := range models.ProjectStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// DeleteProject removes one project: "delproject <id>".
func (a *App) DeleteProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delproject <id>")
	}
	id, err := forms.ParseID("id", args[0])
	if err != nil {
		return err
	}
	if err := a.svc.Projects.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted project #%d\n", id)
	return nil
}
