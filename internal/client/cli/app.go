package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/socialfeed/internal/client/client"
	"github.com/dmitrijs2005/socialfeed/internal/client/config"
	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/client/nav"
	"github.com/dmitrijs2005/socialfeed/internal/client/services"
	"github.com/dmitrijs2005/socialfeed/internal/client/storage"
	"github.com/dmitrijs2005/socialfeed/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config      *config.Config
	stores      storage.Stores
	api         client.Client
	authService services.AuthService
	postService services.PostService
	nav         *nav.Navigator
	log         logging.Logger

	reader *bufio.Reader
	out    io.Writer

	session *models.Session
	sortBy  models.SortBy
	// posts shown most recently, by id
	posts map[int64]*models.Post
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	stores := storage.OpenStores(ctx, c.StatePath, log)

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithStores(stores),
		client.WithLogger(log),
		client.WithMetrics(client.NewMetrics(prometheus.DefaultRegisterer)),
		client.WithTimeout(c.RequestTimeout),
	)
	if err != nil {
		_ = stores.Close()
		return nil, err
	}

	return &App{
		config:      c,
		stores:      stores,
		api:         api,
		authService: services.NewAuthService(api, stores, log),
		postService: services.NewPostService(api),
		nav:         nav.NewNavigator(nav.NewMemoryHistory("/"), api, stores.Tab, log),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		sortBy:      models.SortByTime,
		posts:       make(map[int64]*models.Post),
	}, nil
}

// Run restores any saved session, shows the current view and blocks in the
// REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.stores.Close(); err != nil {
			a.log.Warn(ctx, "closing stores", "error", err)
		}
	}()

	a.restoreSession(ctx)
	a.nav.Start(ctx)

	printlnFn(styles.Title.Render("Social feed CLI (type 'help' for commands)"))
	if err := a.render(ctx); err != nil {
		printlnFn(renderError(err))
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	a.api.InitToken(ctx)
	s, err := a.authService.CurrentSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "unable to restore session", "error", err)
		return
	}
	a.session = s
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	view := a.nav.ActiveView(a.isLoggedIn())
	if a.session == nil {
		return fmt.Sprintf("(%s:%s)", view, a.nav.AuthMode())
	}
	return fmt.Sprintf("(%s %s)", a.session.Username, view)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
