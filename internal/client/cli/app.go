package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/config"
	"github.com/dmitrijs2005/catalog/internal/client/directory"
	"github.com/dmitrijs2005/catalog/internal/client/imagesource"
	"github.com/dmitrijs2005/catalog/internal/client/screens"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/client/watcher"
	"github.com/dmitrijs2005/catalog/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	api    client.Client
	dir    *directory.Directory

	authService         services.AuthService
	catalogService      services.CatalogService
	profileService      services.ProfileService
	notificationService services.NotificationService

	watcher *watcher.Watcher
	header  *screens.HeaderScreen

	mu      sync.RWMutex
	mode    Mode
	session *session.Session
	route   session.Route

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and wires the API client, services and
// background watcher from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	var opts []imagesource.Option
	if s3c, err := imagesource.NewS3Client(ctx, c.S3()); err != nil {
		log.Warn(ctx, "s3 image source disabled", "error", err)
	} else {
		opts = append(opts, imagesource.WithS3(s3c))
	}
	images := imagesource.New(opts...)

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithImageSource(images),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:              c,
		log:                 log,
		db:                  db,
		api:                 apiClient,
		dir:                 directory.New(),
		authService:         services.NewAuthService(apiClient, db),
		catalogService:      services.NewCatalogService(apiClient, db, log),
		profileService:      services.NewProfileService(apiClient, images),
		notificationService: services.NewNotificationService(apiClient),
		watcher:             watcher.New(log, c.RequestTimeout),
		route:               session.RouteLogin,
		reader:              bufio.NewReader(os.Stdin),
		out:                 os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Valid()
}

func (a *App) currentSession() *session.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *App) navigate(r session.Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route = r
}

// Run probes the server, starts the background jobs, restores a saved
// session if there is one and then blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.watcher.OnChange(func(online bool) {
		if online {
			a.setMode(ModeOnline)
		} else {
			a.setMode(ModeOffline)
		}
	})
	if a.watcher.Probe(ctx, a.authService) {
		a.setMode(ModeOnline)
	} else {
		a.setMode(ModeOffline)
	}
	if err := a.watcher.WatchConnectivity(a.authService, a.config.OnlineCheckInterval); err != nil {
		a.log.Warn(ctx, "connectivity watcher disabled", "error", err)
	}
	a.watcher.Start()

	fmt.Fprintln(a.out, "Welcome to the catalog CLI (type 'help' for commands)")
	if err := a.resume(ctx); err == nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.currentSession().Email)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	a.watcher.Stop()
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "closing database", "error", err)
	}
}
