// Package validate holds the form validators of the catalog client.
//
// The format checks (IsValidEmail, IsValidCellphone, IsValidPrice) are pure
// and total: any string in, a bool out. Form structs are checked with
// go-playground/validator: `validate:"required"` for mandatory fields and
// the catalog tags (TagEmail, TagCellphone, TagPrice) for formats.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ws is the whitespace set of the form inputs: RE2's \s only covers ASCII, so
// vertical tab, the Unicode separators (NBSP, em space...) and the BOM are
// listed explicitly.
const ws = `\s\v\p{Z}\x{FEFF}`

var (
	emailRe     = regexp.MustCompile(`^[^` + ws + `@]+@[^` + ws + `@]+\.[^` + ws + `@]+$`)
	cellphoneRe = regexp.MustCompile(`^(\+55)?[` + ws + `-]?\(?\d{2}\)?[` + ws + `-]?\d{4,5}[` + ws + `-]?\d{4}$`)
	priceRe     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// IsValidEmail reports whether s looks like local@domain.tld with no whitespace.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidCellphone accepts Brazilian mobile numbers: optional +55, optional
// parenthesised area code, optional space/dash separators.
func IsValidCellphone(s string) bool {
	return cellphoneRe.MatchString(s)
}

// IsValidPrice accepts a non-negative decimal with at most two fraction digits.
func IsValidPrice(s string) bool {
	return priceRe.MatchString(s)
}

// NormalizePrice trims spaces and turns the first decimal comma into a dot,
// so "10,5" typed on a pt-BR keyboard becomes "10.5".
func NormalizePrice(s string) string {
	return strings.Replace(strings.TrimSpace(s), ",", ".", 1)
}

// Form validation tags registered by New.
const (
	TagEmail     = "catalog_email"
	TagCellphone = "br_cellphone"
	TagPrice     = "price"
)

// New returns a validator with the catalog tags registered. Field names in
// errors come from the `form` struct tag when present.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, TagEmail, IsValidEmail)
	mustRegister(v, TagCellphone, IsValidCellphone)
	mustRegister(v, TagPrice, IsValidPrice)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Report splits the failures of one form by kind. Both lists hold form
// field names in declaration order.
type Report struct {
	// Missing fields failed a "required" rule.
	Missing []string
	// Invalid fields failed one of the catalog format tags.
	Invalid []string
}

// IsInvalid reports whether field broke a format rule.
func (r Report) IsInvalid(field string) bool {
	for _, f := range r.Invalid {
		if f == field {
			return true
		}
	}
	return false
}

// Check validates form and sorts the failures into a Report. An error is
// returned only when form cannot be validated at all.
func Check(v *validator.Validate, form any) (Report, error) {
	var r Report

	err := v.Struct(form)
	if err == nil {
		return r, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return r, err
	}

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			r.Missing = append(r.Missing, fe.Field())
		case TagEmail, TagCellphone, TagPrice:
			r.Invalid = append(r.Invalid, fe.Field())
		}
	}
	return r, nil
}

// MissingFields is Check reduced to the fields left empty.
func MissingFields(v *validator.Validate, form any) ([]string, error) {
	r, err := Check(v, form)
	return r.Missing, err
}
