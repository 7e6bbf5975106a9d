package cli

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/config"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/storage"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/fakeapi"
	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "ali@asafarim.com"
	adminPassword = "Admin123!"
)

type testApp struct {
	*App
	srv    *fakeapi.Server
	out    *bytes.Buffer
	admin  models.User
	member models.User
}

// newTestApp builds an App against a fake backend. input feeds the prompts.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	srv := fakeapi.New()
	t.Cleanup(srv.Close)

	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.APIURL()

	out := &bytes.Buffer{}
	app := newApp(cfg, db, logging.NewDiscardLogger(), strings.NewReader(input), out)

	return &testApp{
		App:    app,
		srv:    srv,
		out:    out,
		admin:  srv.AddUser(models.User{Username: "ali", Email: adminEmail, Role: models.RoleAdmin}, adminPassword),
		member: srv.AddUser(models.User{Username: "mia", Email: "mia@example.com", FirstName: "Mia"}, "member-pass"),
	}
}

// stubPasswords answers password prompts in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		require.NotEmpty(t, pws, "unexpected password prompt")
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func (ta *testApp) login(t *testing.T, who, password string) {
	t.Helper()
	_, err := ta.svc.Auth.Login(context.Background(), models.Credentials{EmailOrUsername: who, Password: password})
	require.NoError(t, err)
	ta.out.Reset()
}

func TestApp_StatusShowsUserAndTheme(t *testing.T) {
	ta := newTestApp(t, "")
	ta.theme.Apply(models.ThemeDark)
	assert.Equal(t, "("+ta.theme.Style("dark")+")", ta.status())

	ta.login(t, adminEmail, adminPassword)
	assert.Contains(t, ta.status(), "ali ")
	assert.True(t, ta.isLoggedIn())
}

func TestApp_Projects_RendersPage(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, adminEmail, adminPassword)
	ctx := context.Background()

	for _, title := range []string{"Alpha", "Beta"} {
		_, err := ta.svc.Projects.Create(ctx, models.ProjectInput{Title: title, Status: models.ProjectCompleted, IsPublic: true})
		require.NoError(t, err)
	}
	ta.out.Reset()

	require.NoError(t, ta.Projects(ctx, []string{"1", "completed"}))

	out := ta.out.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "Page 1 of 1 (2 projects)")

	req, ok := ta.srv.LastRequest(http.MethodGet, "/api/projects")
	require.True(t, ok)
	assert.Equal(t, "page=1&pageSize=12&status=Completed", req.RawQuery)
}

func TestApp_Projects_BadArgs(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	require.Error(t, ta.Projects(ctx, []string{"0"}))
	require.Error(t, ta.Projects(ctx, []string{"Someday"}))
	assert.Empty(t, ta.srv.Requests())
}

func TestWriteProjects_RecoversFromRenderPanic(t *testing.T) {
	var out bytes.Buffer
	broken := []forms.Field[models.Project]{{
		Key:   "techStackId",
		Label: "Stack",
		Get:   func(p models.Project) string { return strconv.FormatInt(*p.TechStackID, 10) },
	}}
	page := models.Page[models.Project]{Items: []models.Project{{ID: 1, Title: "No stack"}}, Page: 1, TotalPages: 1, TotalCount: 1}

	require.NotPanics(t, func() { writeProjects(&out, broken, page) })
	assert.Contains(t, out.String(), MessageTableUnavailable)
}

func TestWriteProjects_Empty(t *testing.T) {
	var out bytes.Buffer
	writeProjects(&out, projectColumns, models.Page[models.Project]{})
	assert.Equal(t, "No projects found.\n", out.String())
}

func TestApp_ProjectAndDelete(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, adminEmail, adminPassword)
	ctx := context.Background()

	p, err := ta.svc.Projects.Create(ctx, models.ProjectInput{Title: "Portfolio", Status: models.ProjectInProgress, IsPublic: true})
	require.NoError(t, err)
	id := strconv.FormatInt(p.ID, 10)

	require.NoError(t, ta.Project(ctx, []string{id}))
	assert.Contains(t, ta.out.String(), "Portfolio")
	assert.Contains(t, ta.out.String(), "InProgress")

	require.NoError(t, ta.DeleteProject(ctx, []string{id}))
	assert.Empty(t, ta.srv.Projects())

	err = ta.Project(ctx, []string{"abc"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestApp_AddProject_FromPrompts(t *testing.T) {
	input := strings.Join([]string{
		"Devfolio CLI",
		"Terminal client",
		"",
		"completed",
		"2024-01-10",
		"2024-03-01",
		"https://github.com/ali/devfolio",
		"",
		"",
		"y",
		"",
	}, "\n") + "\n"
	ta := newTestApp(t, input)
	ta.login(t, adminEmail, adminPassword)

	require.NoError(t, ta.AddProject(context.Background()))

	projects := ta.srv.Projects()
	require.Len(t, projects, 1)
	got := projects[0]
	assert.Equal(t, "Devfolio CLI", got.Title)
	assert.Equal(t, "Terminal client", got.Description)
	assert.Equal(t, models.ProjectCompleted, got.Status)
	assert.True(t, got.IsFeatured)
	assert.True(t, got.IsPublic)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), got.StartDate.UTC())
	assert.Equal(t, ta.admin.ID, got.UserID)
}

func TestApp_AddProject_ValidationStopsBeforeRequest(t *testing.T) {
	input := strings.Join([]string{
		"",
		"",
		"Completed",
		"2024-05-01",
		"2024-01-01",
		"not a url",
		"",
		"",
		"n",
		"n",
	}, "\n") + "\n"
	ta := newTestApp(t, input)
	ta.login(t, adminEmail, adminPassword)

	err := ta.AddProject(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)

	lines := describeError(err)
	assert.Contains(t, lines, "  title: is required")
	_, called := ta.srv.LastRequest(http.MethodPost, "/api/projects")
	assert.False(t, called)
}

func TestApp_DeleteRepos_PartialFailure(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, adminEmail, adminPassword)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"one", "two"} {
		r, err := ta.svc.Repositories.Create(ctx, models.RepositoryInput{Name: name, URL: "https://github.com/ali/" + name})
		require.NoError(t, err)
		ids = append(ids, strconv.FormatInt(r.ID, 10))
	}

	err := ta.DeleteRepos(ctx, append(ids, "999", ids[0]))
	require.Error(t, err)

	lines := describeError(err)
	assert.Equal(t, "Error: failed to delete 1 of 3 items", lines[0])
	assert.Contains(t, lines[1], "#999")

	assert.Empty(t, ta.srv.Repositories())
	assert.Zero(t, ta.selection.Len())
	assert.True(t, ta.isLoggedIn())
}

func TestApp_DeleteRepos_BadID(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, adminEmail, adminPassword)

	err := ta.DeleteRepos(context.Background(), []string{"1", "x"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, ta.selection.Len())
}

func TestApp_Users_AdminOnly(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	ta.login(t, "mia", "member-pass")
	require.ErrorIs(t, ta.Users(ctx), common.ErrForbidden)

	require.NoError(t, ta.Logout(ctx))
	ta.login(t, adminEmail, adminPassword)
	require.NoError(t, ta.Users(ctx))
	assert.Contains(t, ta.out.String(), "mia@example.com")
	assert.Contains(t, ta.out.String(), "2 users")
}

func TestApp_StacksAndRepos(t *testing.T) {
	ta := newTestApp(t, "Go\nLanguage\n#00ADD8\n\n")
	ctx := context.Background()

	require.NoError(t, ta.Stacks(ctx))
	assert.Contains(t, ta.out.String(), "No tech stacks yet.")

	ta.login(t, adminEmail, adminPassword)
	require.NoError(t, ta.AddStack(ctx))
	ta.out.Reset()

	require.NoError(t, ta.Stacks(ctx))
	assert.Contains(t, ta.out.String(), "Go")
	assert.Contains(t, ta.out.String(), "Language")

	ta.out.Reset()
	require.NoError(t, ta.Repos(ctx))
	assert.Contains(t, ta.out.String(), "No repositories yet.")
}

func TestApp_Run_DemoMode(t *testing.T) {
	lines := capturePrintln(t)

	ta := newTestApp(t, "projects\nexit\n")
	ta.config.DemoMode = true

	require.NoError(t, ta.Run(context.Background()))
	assert.Contains(t, ta.out.String(), DemoBanner)
	assert.Contains(t, *lines, DemoBanner)
	assert.Empty(t, ta.srv.Requests())
}

func TestApp_Run_RejectsStaleSession(t *testing.T) {
	capturePrintln(t)

	ta := newTestApp(t, "exit\n")
	ta.login(t, adminEmail, adminPassword)
	ta.srv.FailOn(http.MethodGet, "/api/users/profile", http.StatusUnauthorized, "Token expired")

	require.NoError(t, ta.Run(context.Background()))
	assert.Contains(t, ta.out.String(), "no longer valid")
	assert.False(t, ta.isLoggedIn())
}
