package screens

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/directory"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/dmitrijs2005/catalog/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

type env struct {
	api    *fakeapi.Server
	client *client.HTTPClient
	db     *sql.DB
	dir    *directory.Directory
	auth   services.AuthService
	log    *recLogger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	api := fakeapi.New(t)
	c, err := client.NewHTTPClient(api.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &env{
		api:    api,
		client: c,
		db:     db,
		dir:    directory.New(),
		auth:   services.NewAuthService(c, db),
		log:    &recLogger{},
	}
}

func loggedIn(id int) *session.Session {
	return &session.Session{UserID: id, Email: fmt.Sprintf("user%d@x.com", id)}
}

// recLogger keeps warnings so tests can assert on them.
type recLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recLogger) Debug(context.Context, string, ...any) {}
func (l *recLogger) Info(context.Context, string, ...any)  {}
func (l *recLogger) Error(context.Context, string, ...any) {}
func (l *recLogger) Warn(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *recLogger) With(...any) logging.Logger { return l }

func (l *recLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}
