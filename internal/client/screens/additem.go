package screens

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/client/validate"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/go-playground/validator/v10"
)

type AddItemForm struct {
	Name        string        `form:"name" validate:"required"`
	Description string        `form:"description" validate:"required"`
	Price       string        `form:"price" validate:"price"`
	Image       *models.Image `form:"image" validate:"required"`
}

type AddItemScreen struct {
	form
	api      client.Client
	session  *session.Session
	validate *validator.Validate
	log      logging.Logger
}

func NewAddItemScreen(api client.Client, s *session.Session, log logging.Logger) *AddItemScreen {
	return &AddItemScreen{api: api, session: s, validate: validate.New(), log: log}
}

func (s *AddItemScreen) Submit(ctx context.Context, f AddItemForm) (Result, error) {
	if err := session.Require(s.session); err != nil {
		return Result{}, err
	}
	s.validating()

	if f.Image != nil && f.Image.URI == "" {
		f.Image = nil
	}
	f.Price = validate.NormalizePrice(f.Price)
	report, err := validate.Check(s.validate, f)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}
	missing := report.Missing
	if contains(missing, "name", "description") {
		return Result{}, s.reject(&MissingFieldError{Fields: []string{"name", "description"}, Message: msgFillItem}, nil)
	}

	errs := FieldErrors{}
	if report.IsInvalid("price") {
		errs["price"] = msgInvalidPrice
	}

	if contains(missing, "image") {
		return Result{}, s.reject(&MissingFieldError{Fields: []string{"image"}, Message: msgAddImage}, errs)
	}
	if len(errs) > 0 {
		return Result{}, s.reject(errs, nil)
	}

	s.set(FormSubmitting)
	fields := models.ProductFields{Name: f.Name, Description: f.Description, Price: f.Price}
	p, err := s.api.CreateProduct(ctx, s.session.UserID, fields, f.Image)
	if err != nil {
		return Result{}, s.reject(err, nil)
	}

	s.set(FormSucceeded)
	s.log.Info(ctx, "item added", "product_id", p.ID)
	return Result{Next: session.RouteCatalog, Session: s.session}, nil
}
