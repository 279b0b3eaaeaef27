package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/screens"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// formView is the read side every form screen exposes after a rejected submit.
type formView interface {
	FieldErrors() screens.FieldErrors
	Alert() string
}

// reportForm prints inline field errors (sorted by field) and the alert.
func (a *App) reportForm(v formView) {
	fe := v.FieldErrors()
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %s: %s\n", k, fe[k])
	}
	if alert := v.Alert(); alert != "" {
		fmt.Fprintf(a.out, "! %s\n", alert)
	}
}

func optionalImage(uri string) *models.Image {
	if uri == "" {
		return nil
	}
	return &models.Image{URI: uri}
}

// Signup prompts for the account fields and creates the user. On success the
// new user is logged in and the catalog is shown.
func (a *App) Signup(ctx context.Context) error {
	scr := screens.NewSignupScreen(a.api, a.dir, a.authService, a.log)
	scr.Mount(ctx)

	var f screens.SignupForm
	for _, p := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &f.FirstName},
		{"Last name", &f.LastName},
		{"Email", &f.Email},
		{"Cellphone (e.g. 11987654321)", &f.Cellphone},
	} {
		v, err := getSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	f.Password = string(password)

	image, err := getSimpleText(a.reader, "Profile image (path or URL, empty to skip)", a.out)
	if err != nil {
		return err
	}
	f.Image = optionalImage(image)

	res, err := scr.Submit(ctx, f)
	if err != nil {
		a.reportForm(scr)
		return err
	}

	fmt.Fprintln(a.out, "Account created!")
	return a.enter(ctx, res)
}

// Login asks for email and password and checks them against the user
// directory. On success the catalog is shown.
func (a *App) Login(ctx context.Context) error {
	scr := screens.NewLoginScreen(a.api, a.dir, a.authService, a.log)
	if err := scr.Mount(ctx); err != nil {
		a.log.Warn(ctx, "user directory not loaded", "error", err)
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := scr.Submit(ctx, screens.LoginForm{Email: email, Password: string(password)})
	if err != nil {
		a.reportForm(scr)
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return a.enter(ctx, res)
}

// enter starts the session returned by a successful login or signup and
// follows the result's route.
func (a *App) enter(ctx context.Context, res screens.Result) error {
	a.startSession(ctx, res.Session)
	a.navigate(res.Next)
	if res.Next == session.RouteCatalog {
		return a.Catalog(ctx)
	}
	return nil
}

// Resume restores the session saved by a previous run and shows the catalog.
func (a *App) Resume(ctx context.Context) error {
	if err := a.resume(ctx); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(a.out, "No saved session, please log in")
		} else {
			fmt.Fprintf(a.out, "! %s\n", err)
		}
		return err
	}
	fmt.Fprintf(a.out, "Welcome back, %s\n", a.currentSession().Email)
	return a.Catalog(ctx)
}

// resume restores the session saved by a previous run.
func (a *App) resume(ctx context.Context) error {
	s, err := a.authService.Resume(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			a.log.Warn(ctx, "saved session ignored", "error", err)
		}
		return err
	}
	a.startSession(ctx, s)
	a.navigate(session.RouteCatalog)
	return nil
}

// startSession installs s, builds the header for it and schedules the badge
// refresh.
func (a *App) startSession(ctx context.Context, s *session.Session) {
	header := screens.NewHeaderScreen(a.profileService, a.notificationService, s, a.log)

	a.mu.Lock()
	a.session = s
	a.header = header
	a.mu.Unlock()

	a.watcher.RefreshBadge(ctx, header)
	if err := a.watcher.WatchBadge(header, a.config.BadgeRefreshInterval); err != nil {
		a.log.Warn(ctx, "badge refresh disabled", "error", err)
	}
}

// Logout forgets the persisted session. The offline catalog is kept unless
// args holds "--purge", which wipes every local record as well.
func (a *App) Logout(ctx context.Context, args []string) error {
	purge := len(args) > 0 && args[0] == "--purge"

	logout := a.authService.Logout
	if purge {
		logout = a.authService.Purge
	}
	if err := logout(ctx); err != nil {
		fmt.Fprintf(a.out, "! %s\n", err)
		return err
	}
	a.watcher.StopBadge()

	a.mu.Lock()
	a.session = nil
	a.header = nil
	a.route = session.RouteLogin
	a.mu.Unlock()

	if purge {
		fmt.Fprintln(a.out, "Logged out, local data removed")
	} else {
		fmt.Fprintln(a.out, "Logged out")
	}
	return nil
}

// getStatus renders the prompt status: "(email online) [3 unread]".
func (a *App) getStatus() string {
	a.mu.RLock()
	s, header, mode := a.session, a.header, a.mode
	a.mu.RUnlock()

	out := ""
	if s.Valid() {
		out = s.Email + " "
	}
	out += string(mode)
	if out != "" {
		out = fmt.Sprintf("(%s)", out)
	}
	if header != nil {
		if n := header.Unread(); n > 0 {
			out += fmt.Sprintf(" [%d unread]", n)
		}
	}
	return out
}
