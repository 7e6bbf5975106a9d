package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/config"
	"github.com/dmitrijs2005/devfolio/internal/client/services"
	"github.com/dmitrijs2005/devfolio/internal/client/session"
	"github.com/dmitrijs2005/devfolio/internal/client/storage"
	"github.com/dmitrijs2005/devfolio/internal/client/theme"
	"github.com/dmitrijs2005/devfolio/internal/filex"
	"github.com/dmitrijs2005/devfolio/internal/logging"
)

// Services bundles the API services the REPL commands call.
type Services struct {
	Auth         services.AuthService
	Users        services.UserService
	Preferences  services.PreferenceService
	Projects     services.ProjectService
	TechStacks   services.TechStackService
	Repositories services.RepositoryService
}

type App struct {
	config    *config.Config
	db        *sql.DB
	store     *session.Store
	theme     *theme.Controller
	svc       Services
	selection *services.Selection
	logger    logging.Logger
	reader    *bufio.Reader
	prompt    *prompter
	out       io.Writer
}

// NewApp opens the local database named by c and wires the services
// against the configured API.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	path, err := filex.ResolveDataFile(config.DataDirName, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, path)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", path, "error", err)
		return nil, err
	}

	return newApp(c, db, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, logger logging.Logger, in io.Reader, out io.Writer) *App {
	store := session.NewStore(db, logger)
	controller := theme.NewController(nil)

	client := api.NewClient(c.APIBaseURL, &http.Client{Timeout: c.RequestTimeout}, store, logger)

	prefs := services.NewPreferenceService(client, store, controller)

	reader := bufio.NewReader(in)

	return &App{
		config: c,
		db:     db,
		store:  store,
		theme:  controller,
		svc: Services{
			Auth:         services.NewAuthService(client, store, prefs, logger),
			Users:        services.NewUserService(client, store),
			Preferences:  prefs,
			Projects:     services.NewProjectService(client),
			TechStacks:   services.NewTechStackService(client),
			Repositories: services.NewRepositoryService(client),
		},
		selection: services.NewSelection(),
		logger:    logger,
		reader:    reader,
		prompt:    newPrompter(reader, out),
		out:       out,
	}
}

// Run validates any persisted session and serves the REPL until the user
// quits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	a.printf("Welcome to devfolio CLI (type 'help' for commands)\n")

	if a.isDemo() {
		a.printf("%s\n", DemoBanner)
	} else if err := a.svc.Auth.Initialize(ctx); err != nil {
		a.logger.Warn(ctx, "stored session rejected", "error", err)
		a.printf("Your previous session is no longer valid. Please log in again.\n")
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) isDemo() bool {
	return a.config.DemoMode
}

// status renders the prompt suffix: the signed-in user and the theme.
func (a *App) status() string {
	s := string(a.theme.Selected())
	if u := a.store.User(); u != nil {
		s = u.Username + " " + s
	}
	return "(" + a.theme.Style(s) + ")"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
