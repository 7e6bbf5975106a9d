package seed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/fakeapi"
	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(srv *fakeapi.Server) Config {
	cfg := DefaultConfig()
	cfg.APIURL = srv.APIURL()
	cfg.Users = 3
	cfg.TechStacks = 4
	cfg.Repositories = 5
	cfg.Projects = 6
	cfg.Delay = 0
	cfg.Seed = 42
	return cfg
}

func newTestGenerator(t *testing.T, cfg Config, srv *fakeapi.Server) *Generator {
	t.Helper()
	fx, err := LoadFixtures()
	require.NoError(t, err)
	return NewGenerator(cfg, fx, srv.Client(), logging.NewDiscardLogger())
}

func startServer(t *testing.T) *fakeapi.Server {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	cfg := DefaultConfig()
	srv.AddUser(models.User{Username: "ali", Email: cfg.AdminEmail, Role: models.RoleAdmin}, cfg.AdminPassword)
	return srv
}

func TestRun_CreatesEverything(t *testing.T) {
	srv := startServer(t)
	cfg := testConfig(srv)

	sum, err := newTestGenerator(t, cfg, srv).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Users:        Count{Created: 3, Requested: 3},
		TechStacks:   Count{Created: 4, Requested: 4},
		Repositories: Count{Created: 5, Requested: 5},
		Preferences:  Count{Created: 3, Requested: 3},
		Projects:     Count{Created: 6, Requested: 6},
	}, sum)

	users, stacks, repos, projects := srv.Counts()
	assert.Equal(t, 4, users)
	assert.Equal(t, 4, stacks)
	assert.Equal(t, 5, repos)
	assert.Equal(t, 6, projects)

	for _, p := range srv.Projects() {
		assert.Contains(t, p.GithubURL, "https://github.com/")
		assert.NotNil(t, p.TechStackID)
	}
}

func TestRun_UsersGetBioAndLocation(t *testing.T) {
	srv := startServer(t)
	cfg := testConfig(srv)
	cfg.TechStacks, cfg.Repositories, cfg.Projects = 0, 0, 0

	fx, err := LoadFixtures()
	require.NoError(t, err)
	_, err = newTestGenerator(t, cfg, srv).Run(context.Background())
	require.NoError(t, err)

	seeded := 0
	for _, u := range srv.Users() {
		if u.Email == cfg.AdminEmail {
			continue
		}
		seeded++
		assert.Contains(t, fx.Bios, u.Bio)
		assert.Contains(t, fx.Locations, u.Location)
	}
	assert.Equal(t, cfg.Users, seeded)
}

func TestRun_AuthenticationFailure(t *testing.T) {
	srv := startServer(t)
	cfg := testConfig(srv)
	cfg.AdminPassword = "wrong"

	sum, err := newTestGenerator(t, cfg, srv).Run(context.Background())
	require.ErrorIs(t, err, ErrAuthentication)
	assert.Zero(t, sum.Users.Created)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/auth/login", reqs[0].Path)
}

func TestRun_SkipsFailedItems(t *testing.T) {
	srv := startServer(t)
	srv.FailOn(http.MethodPost, "/api/techstacks", http.StatusInternalServerError, "database unavailable")
	cfg := testConfig(srv)

	sum, err := newTestGenerator(t, cfg, srv).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Count{Created: 0, Requested: 4}, sum.TechStacks)
	assert.Equal(t, Count{Created: 6, Requested: 6}, sum.Projects)
	for _, p := range srv.Projects() {
		assert.Nil(t, p.TechStackID)
	}
}

func TestRun_MoreStacksThanFixtures(t *testing.T) {
	srv := startServer(t)
	cfg := testConfig(srv)
	cfg.Users, cfg.Repositories, cfg.Projects = 0, 0, 0

	fx, err := LoadFixtures()
	require.NoError(t, err)
	cfg.TechStacks = len(fx.TechStacks) + 2

	sum, err := newTestGenerator(t, cfg, srv).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.TechStacks, sum.TechStacks.Created)
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := startServer(t)
	cfg := testConfig(srv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := newTestGenerator(t, cfg, srv)
	pauses := 0
	g.sleep = func(ctx context.Context, _ time.Duration) error {
		pauses++
		if pauses == 2 {
			cancel()
		}
		return ctx.Err()
	}

	sum, err := g.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, sum.Users.Created)
	assert.Zero(t, sum.TechStacks.Created)
}

func TestRun_SameSeedSameContent(t *testing.T) {
	titles := func() []string {
		srv := startServer(t)
		_, err := newTestGenerator(t, testConfig(srv), srv).Run(context.Background())
		require.NoError(t, err)

		var out []string
		for _, p := range srv.Projects() {
			out = append(out, p.Title+"|"+string(p.Status))
		}
		return out
	}

	assert.Equal(t, titles(), titles())
}

func TestSleepCtx(t *testing.T) {
	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
	require.ErrorIs(t, sleepCtx(ctx, 0), context.Canceled)
}
