package screens

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/directory"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/client/validate"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/go-playground/validator/v10"
)

type SignupForm struct {
	FirstName string        `form:"first_name" validate:"required"`
	LastName  string        `form:"last_name" validate:"required"`
	Email     string        `form:"email" validate:"catalog_email"`
	Cellphone string        `form:"cellphone" validate:"br_cellphone"`
	Password  string        `form:"password" validate:"required"`
	Image     *models.Image `form:"image"`
}

// Name is what the API stores: "first last".
func (f SignupForm) Name() string {
	return f.FirstName + " " + f.LastName
}

type SignupScreen struct {
	form
	api      client.Client
	dir      *directory.Directory
	auth     services.AuthService
	validate *validator.Validate
	log      logging.Logger
}

func NewSignupScreen(api client.Client, dir *directory.Directory, auth services.AuthService, log logging.Logger) *SignupScreen {
	return &SignupScreen{api: api, dir: dir, auth: auth, validate: validate.New(), log: log}
}

// Mount refreshes the directory used for the already-registered check. A
// failed fetch is logged and signup goes on with whatever snapshot exists;
// the server still has the final word.
func (s *SignupScreen) Mount(ctx context.Context) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.log.Warn(ctx, "user directory not loaded, email pre-check disabled", "error", err)
		return
	}
	s.dir.Load(users)
}

func (s *SignupScreen) Submit(ctx context.Context, f SignupForm) (Result, error) {
	s.validating()

	report, err := validate.Check(s.validate, f)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}
	missing := report.Missing
	if contains(missing, "first_name", "last_name") {
		return Result{}, s.reject(&MissingFieldError{Fields: []string{"first_name", "last_name"}, Message: msgFillName}, nil)
	}

	errs := FieldErrors{}
	switch {
	case report.IsInvalid("email"):
		errs["email"] = msgInvalidEmail
	case s.dir.IsRegistered(f.Email):
		errs["email"] = msgEmailTaken
	}
	if report.IsInvalid("cellphone") {
		errs["cellphone"] = msgInvalidCellphone
	}

	if contains(missing, "password") {
		return Result{}, s.reject(&MissingFieldError{Fields: []string{"password"}, Message: msgCreatePassword}, errs)
	}
	if len(errs) > 0 {
		return Result{}, s.reject(errs, nil)
	}

	s.set(FormSubmitting)
	predicted := s.dir.NextID()
	fields := models.UserFields{
		Name:      f.Name(),
		Email:     f.Email,
		Cellphone: f.Cellphone,
		Password:  f.Password,
	}
	u, err := s.api.CreateUser(ctx, fields, f.Image)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}
	if u.ID != predicted {
		s.log.Warn(ctx, "server assigned a different user id than predicted", "predicted", predicted, "assigned", u.ID)
	}

	sess, err := s.auth.Start(ctx, u.ID, u.Email)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}

	s.set(FormSucceeded)
	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return Result{Next: session.RouteCatalog, Session: sess}, nil
}
