package screens

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

var (
	ErrNoSession            = session.ErrNoSession
	ErrMissingRequiredField = errors.New("missing required field")
)

// MissingFieldError blocks a submit until the named fields are filled in.
type MissingFieldError struct {
	Fields  []string
	Message string
}

func (e *MissingFieldError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// User-facing messages.
const (
	msgFillAllFields     = "please fill in all fields"
	msgFillName          = "please enter your first and last name"
	msgCreatePassword    = "please create a password"
	msgFillItem          = "please fill in the item name and description"
	msgAddImage          = "please add an item image"
	msgInvalidEmail      = "please enter a valid email"
	msgEmailTaken        = "this email is already registered"
	msgInvalidCellphone  = "please enter a valid cellphone number"
	msgInvalidPrice      = "please enter a valid price (e.g. 10.99)"
	msgEmailNotFound     = "email not registered"
	msgIncorrectPassword = "incorrect password"
	msgUnavailable       = "could not reach the server, check your connection and try again"
)

// AlertText is what a failed request shows: the server's message verbatim,
// a generic text for connectivity problems, the error text otherwise.
func AlertText(err error) string {
	var re *client.RequestError
	switch {
	case errors.As(err, &re):
		return re.Message
	case errors.Is(err, client.ErrUnavailable):
		return msgUnavailable
	default:
		return err.Error()
	}
}
