package screens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/directory"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/client/validate"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginScreen checks credentials against the user directory fetched at
// mount. There is no server-side login in this API.
type LoginScreen struct {
	form
	api      client.Client
	dir      *directory.Directory
	auth     services.AuthService
	validate *validator.Validate
	log      logging.Logger
}

func NewLoginScreen(api client.Client, dir *directory.Directory, auth services.AuthService, log logging.Logger) *LoginScreen {
	return &LoginScreen{api: api, dir: dir, auth: auth, validate: validate.New(), log: log}
}

// Mount refreshes the directory. A failure leaves the screen unable to log
// anyone in until a later Mount or Submit succeeds in loading it.
func (s *LoginScreen) Mount(ctx context.Context) error {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	s.dir.Load(users)
	return nil
}

func (s *LoginScreen) Submit(ctx context.Context, f LoginForm) (Result, error) {
	s.validating()

	missing, err := validate.MissingFields(s.validate, f)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}
	if len(missing) > 0 {
		return Result{}, s.reject(&MissingFieldError{Fields: missing, Message: msgFillAllFields}, nil)
	}

	if s.dir.LoadedAt().IsZero() {
		if err := s.Mount(ctx); err != nil {
			return Result{}, s.reject(err, nil)
		}
	}

	u, ok := s.dir.FindByEmail(f.Email)
	if !ok {
		return Result{}, s.reject(FieldErrors{"email": msgEmailNotFound}, nil)
	}
	if !s.dir.VerifyCredentials(f.Email, f.Password) {
		return Result{}, s.reject(FieldErrors{"password": msgIncorrectPassword}, nil)
	}

	s.set(FormSubmitting)
	sess, err := s.auth.Start(ctx, u.ID, u.Email)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}

	s.set(FormSucceeded)
	s.log.Info(ctx, "logged in", "user_id", u.ID)
	return Result{Next: session.RouteCatalog, Session: sess}, nil
}
