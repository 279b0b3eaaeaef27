package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/config"
	"github.com/dmitrijs2005/catalog/internal/client/directory"
	"github.com/dmitrijs2005/catalog/internal/client/imagesource"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/client/watcher"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/dmitrijs2005/catalog/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type testEnv struct {
	app *App
	api *fakeapi.Server
	out *bytes.Buffer
	log *recLogger
}

// newTestApp wires an App against a fake API and a temp database. Passwords
// are read from the input lines like any other answer.
func newTestApp(t *testing.T, dbPath string) *testEnv {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	if dbPath == "" {
		dbPath = filepath.Join(t.TempDir(), "catalog.db")
	}
	api := fakeapi.New(t)
	images := imagesource.New()
	c, err := client.NewHTTPClient(api.URL, client.WithImageSource(images))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	db, err := client.InitDatabase(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = api.URL
	cfg.DownloadDir = filepath.Join(t.TempDir(), "downloads")

	log := &recLogger{}
	out := &bytes.Buffer{}
	app := &App{
		config:              cfg,
		log:                 log,
		db:                  db,
		api:                 c,
		dir:                 directory.New(),
		authService:         services.NewAuthService(c, db),
		catalogService:      services.NewCatalogService(c, db, log),
		profileService:      services.NewProfileService(c, images),
		notificationService: services.NewNotificationService(c),
		watcher:             watcher.New(log, time.Second),
		route:               session.RouteLogin,
		reader:              readerFromLines(),
		out:                 out,
	}
	return &testEnv{app: app, api: api, out: out, log: log}
}

func (e *testEnv) input(lines ...string) {
	e.app.reader = readerFromLines(lines...)
}

// recLogger keeps info and warning messages so tests can assert on them.
type recLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recLogger) Debug(context.Context, string, ...any) {}
func (l *recLogger) Error(context.Context, string, ...any) {}
func (l *recLogger) Info(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}
func (l *recLogger) Warn(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *recLogger) With(...any) logging.Logger { return l }

func (l *recLogger) Infos() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.infos...)
}
