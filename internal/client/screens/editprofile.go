package screens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/directory"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/client/validate"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/go-playground/validator/v10"
)

// EditProfileForm fields are optional; empty means unchanged.
type EditProfileForm struct {
	Name      string        `form:"name"`
	Email     string        `form:"email" validate:"omitempty,catalog_email"`
	Cellphone string        `form:"cellphone" validate:"omitempty,br_cellphone"`
	Image     *models.Image `form:"image"`
}

func (f EditProfileForm) empty() bool {
	return f.Name == "" && f.Email == "" && f.Cellphone == "" && (f.Image == nil || f.Image.URI == "")
}

type EditProfileScreen struct {
	form
	api      client.Client
	dir      *directory.Directory
	session  *session.Session
	validate *validator.Validate
	log      logging.Logger
	current  models.User
}

func NewEditProfileScreen(api client.Client, dir *directory.Directory, s *session.Session, log logging.Logger) *EditProfileScreen {
	return &EditProfileScreen{api: api, dir: dir, session: s, validate: validate.New(), log: log}
}

// Mount loads the current user for prefill and refreshes the directory for
// the email check. Only the user fetch is fatal.
func (s *EditProfileScreen) Mount(ctx context.Context) error {
	if err := session.Require(s.session); err != nil {
		return err
	}

	u, err := s.api.GetUser(ctx, s.session.UserID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()

	if users, err := s.api.ListUsers(ctx); err != nil {
		s.log.Warn(ctx, "user directory not loaded, email pre-check uses the old snapshot", "error", err)
	} else {
		s.dir.Load(users)
	}
	return nil
}

func (s *EditProfileScreen) Current() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *EditProfileScreen) Submit(ctx context.Context, f EditProfileForm) (Result, error) {
	if err := session.Require(s.session); err != nil {
		return Result{}, err
	}
	s.validating()

	report, err := validate.Check(s.validate, f)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}

	errs := FieldErrors{}
	if report.IsInvalid("email") {
		errs["email"] = msgInvalidEmail
	} else if u, ok := s.dir.FindByEmail(f.Email); f.Email != "" && ok && u.ID != s.session.UserID {
		errs["email"] = msgEmailTaken
	}
	if report.IsInvalid("cellphone") {
		errs["cellphone"] = msgInvalidCellphone
	}
	if len(errs) > 0 {
		return Result{}, s.reject(errs, nil)
	}

	if f.empty() {
		s.set(FormSucceeded)
		return Result{Next: session.RouteProfile, Session: s.session}, nil
	}

	image := f.Image
	if image != nil && image.URI == "" {
		image = nil
	}

	s.set(FormSubmitting)
	u, err := s.api.UpdateUser(ctx, s.session.UserID, models.UserFields{
		Name:      f.Name,
		Email:     f.Email,
		Cellphone: f.Cellphone,
	}, image)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	s.session.Email = u.Email

	s.set(FormSucceeded)
	s.log.Info(ctx, "profile updated", "user_id", u.ID)
	return Result{Next: session.RouteProfile, Session: s.session}, nil
}
