package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/services"
	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/dmitrijs2005/devfolio/internal/timex"
	"github.com/google/uuid"
)

// ErrAuthentication means the admin sign-in failed and nothing was seeded.
var ErrAuthentication = errors.New("seed: admin authentication failed")

// Count compares created items against the requested number.
type Count struct {
	Created   int
	Requested int
}

func (c Count) String() string {
	return fmt.Sprintf("%d/%d", c.Created, c.Requested)
}

// Summary is logged at the end of a run.
type Summary struct {
	Users        Count
	TechStacks   Count
	Repositories Count
	Preferences  Count
	Projects     Count
}

// bearer holds the admin token for the API client.
type bearer struct {
	mu    sync.RWMutex
	token string
}

func (b *bearer) AccessToken() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

func (b *bearer) Invalidate(context.Context) {
	b.set("")
}

func (b *bearer) set(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

type Generator struct {
	cfg      Config
	fixtures *Fixtures
	auth     *bearer
	client   *api.Client
	users    services.UserService
	stacks   services.TechStackService
	repos    services.RepositoryService
	projects services.ProjectService
	rng      *rand.Rand
	logger   logging.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewGenerator prepares a run against cfg.APIURL. httpClient may be nil.
func NewGenerator(cfg Config, fixtures *Fixtures, httpClient *http.Client, logger logging.Logger) *Generator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	auth := &bearer{}
	client := api.NewClient(cfg.APIURL, httpClient, auth, logger)

	// The seed only calls admin endpoints, which never touch a local
	// session store.
	return &Generator{
		cfg:      cfg,
		fixtures: fixtures,
		auth:     auth,
		client:   client,
		users:    services.NewUserService(client, nil),
		stacks:   services.NewTechStackService(client),
		repos:    services.NewRepositoryService(client),
		projects: services.NewProjectService(client),
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		logger:   logger,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run performs the whole seeding sequence. It returns ErrAuthentication when
// the admin cannot sign in and ctx.Err() when cancelled; per-item failures
// only show up in the summary.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	sum := Summary{
		Users:        Count{Requested: g.cfg.Users},
		TechStacks:   Count{Requested: g.cfg.TechStacks},
		Repositories: Count{Requested: g.cfg.Repositories},
		Projects:     Count{Requested: g.cfg.Projects},
	}

	admin, err := g.authenticate(ctx)
	if err != nil {
		return sum, err
	}
	g.logger.Info(ctx, "authenticated", "admin", admin.Email)

	users, err := g.seedUsers(ctx, &sum.Users)
	if err != nil {
		return sum, err
	}
	sum.Preferences.Requested = len(users)
	// Content needs an owner even when every user failed.
	owners := users
	if len(owners) == 0 {
		owners = []models.User{admin}
	}

	stacks, err := g.seedTechStacks(ctx, &sum.TechStacks)
	if err != nil {
		return sum, err
	}
	if err := g.seedRepositories(ctx, owners, stacks, &sum.Repositories); err != nil {
		return sum, err
	}
	if err := g.seedPreferences(ctx, users, &sum.Preferences); err != nil {
		return sum, err
	}
	if err := g.seedProjects(ctx, owners, stacks, &sum.Projects); err != nil {
		return sum, err
	}

	g.logger.Info(ctx, "seeding finished",
		"users", sum.Users.String(),
		"techStacks", sum.TechStacks.String(),
		"repositories", sum.Repositories.String(),
		"preferences", sum.Preferences.String(),
		"projects", sum.Projects.String(),
	)
	return sum, nil
}

func (g *Generator) authenticate(ctx context.Context) (models.User, error) {
	creds := models.Credentials{EmailOrUsername: g.cfg.AdminEmail, Password: g.cfg.AdminPassword}
	sess, err := api.Post[models.Session](ctx, g.client, "/auth/login", creds, api.Anonymous())
	if err != nil {
		g.logger.Error(ctx, "admin login failed", "error", err)
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if sess.Token == "" || sess.User == nil {
		return models.User{}, fmt.Errorf("%w: empty session", ErrAuthentication)
	}
	g.auth.set(sess.Token)
	return *sess.User, nil
}

// pause waits between requests and reports cancellation.
func (g *Generator) pause(ctx context.Context) error {
	return g.sleep(ctx, g.cfg.Delay)
}

func (g *Generator) skip(ctx context.Context, what string, i int, err error) {
	g.logger.Warn(ctx, "skipping "+what, "index", i, "error", err)
}

func (g *Generator) seedUsers(ctx context.Context, count *Count) ([]models.User, error) {
	var out []models.User
	for i := range count.Requested {
		reg := g.registration()
		u, err := g.users.Create(ctx, reg)
		if err != nil {
			g.skip(ctx, "user", i, err)
		} else {
			out = append(out, g.describe(ctx, u, i))
			count.Created++
		}
		if err := g.pause(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (g *Generator) registration() models.Registration {
	first := pick(g.rng, g.fixtures.FirstNames)
	last := pick(g.rng, g.fixtures.LastNames)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	username := strings.ToLower(first+"."+last) + "." + suffix

	return models.Registration{
		Username:        username,
		Email:           username + "@example.com",
		Password:        g.cfg.UserPassword,
		ConfirmPassword: g.cfg.UserPassword,
		FirstName:       first,
		LastName:        last,
		Role:            models.RoleUser,
	}
}

// describe fills bio and location of a created user. A rejected update
// leaves the bare account in place.
func (g *Generator) describe(ctx context.Context, u models.User, i int) models.User {
	patch := models.UserPatch{
		Bio:      models.Ptr(pick(g.rng, g.fixtures.Bios)),
		Location: models.Ptr(pick(g.rng, g.fixtures.Locations)),
	}
	updated, err := g.users.AdminUpdate(ctx, u.ID, patch)
	if err != nil {
		g.skip(ctx, "user profile", i, err)
		return u
	}
	return updated
}

func (g *Generator) seedTechStacks(ctx context.Context, count *Count) ([]models.TechStack, error) {
	var out []models.TechStack
	pool := g.fixtures.TechStacks
	for i := range count.Requested {
		fx := pool[i%len(pool)]
		name := fx.Name
		if i >= len(pool) {
			name = fmt.Sprintf("%s %d", fx.Name, i/len(pool)+1)
		}

		ts, err := g.stacks.Create(ctx, models.TechStackInput{
			Name:        name,
			Category:    fx.Category,
			Color:       fx.Color,
			Description: fx.Category + " used across demo projects",
		})
		if err != nil {
			g.skip(ctx, "tech stack", i, err)
		} else {
			out = append(out, ts)
			count.Created++
		}
		if err := g.pause(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (g *Generator) seedRepositories(ctx context.Context, owners []models.User, stacks []models.TechStack, count *Count) error {
	for i := range count.Requested {
		fx := pick(g.rng, g.fixtures.Repositories)
		owner := pick(g.rng, owners)

		in := models.RepositoryInput{
			Name:        fx.Name,
			Description: "Fork of " + fx.URL,
			URL:         fx.URL,
			Language:    fx.Language,
			Stars:       g.rng.IntN(5000),
			Forks:       g.rng.IntN(800),
			IsPrivate:   g.rng.IntN(5) == 0,
			UserID:      owner.ID,
			TechStackID: g.stackID(stacks),
		}
		if _, err := g.repos.Create(ctx, in); err != nil {
			g.skip(ctx, "repository", i, err)
		} else {
			count.Created++
		}
		if err := g.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) seedPreferences(ctx context.Context, users []models.User, count *Count) error {
	for i, u := range users {
		prefs := models.Preferences{
			Theme:                    pick(g.rng, models.Themes),
			Language:                 pick(g.rng, g.fixtures.Languages),
			Timezone:                 pick(g.rng, g.fixtures.Timezones),
			EmailNotifications:       g.rng.IntN(2) == 0,
			PushNotifications:        g.rng.IntN(2) == 0,
			ProjectVisibilityDefault: pick(g.rng, []models.Visibility{models.VisibilityPublic, models.VisibilityPrivate}),
		}
		if _, err := g.users.AdminSetPreferences(ctx, u.ID, prefs); err != nil {
			g.skip(ctx, "preferences", i, err)
		} else {
			count.Created++
		}
		if err := g.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) seedProjects(ctx context.Context, owners []models.User, stacks []models.TechStack, count *Count) error {
	for i := range count.Requested {
		owner := pick(g.rng, owners)
		repo := pick(g.rng, g.fixtures.Repositories)

		start := time.Now().UTC().AddDate(0, -g.rng.IntN(36)-1, 0).Truncate(24 * time.Hour)
		in := models.ProjectInput{
			Title:       pick(g.rng, g.fixtures.ProjectTitles),
			Description: pick(g.rng, g.fixtures.ProjectDescriptions),
			Status:      pick(g.rng, models.ProjectStatuses),
			StartDate:   timex.Ptr(start),
			GithubURL:   repo.URL,
			IsFeatured:  g.rng.IntN(4) == 0,
			IsPublic:    g.rng.IntN(5) != 0,
			TechStackID: g.stackID(stacks),
			UserID:      owner.ID,
		}
		if in.Status == models.ProjectCompleted {
			end := start.AddDate(0, g.rng.IntN(6)+1, 0)
			in.EndDate = timex.Ptr(end)
		}

		if _, err := g.projects.Create(ctx, in); err != nil {
			g.skip(ctx, "project", i, err)
		} else {
			count.Created++
		}
		if err := g.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) stackID(stacks []models.TechStack) *int64 {
	if len(stacks) == 0 {
		return nil
	}
	id := pick(g.rng, stacks).ID
	return &id
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
