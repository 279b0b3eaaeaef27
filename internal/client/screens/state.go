package screens

import (
	"sync"

	"github.com/dmitrijs2005/catalog/internal/client/session"
)

type FetchState int

const (
	FetchIdle FetchState = iota
	FetchLoading
	FetchReady
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchLoading:
		return "loading"
	case FetchReady:
		return "ready"
	case FetchFailed:
		return "failed"
	default:
		return "idle"
	}
}

// fetch is the Loading → Ready | Failed holder shared by the fetch screens.
type fetch[T any] struct {
	mu    sync.RWMutex
	state FetchState
	data  T
	err   error
}

func (f *fetch[T]) begin() {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	f.state, f.data, f.err = FetchLoading, zero, nil
}

func (f *fetch[T]) finish(data T, err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		var zero T
		f.state, f.data, f.err = FetchFailed, zero, err
		return err
	}
	f.state, f.data, f.err = FetchReady, data, nil
	return nil
}

func (f *fetch[T]) update(fn func(*T)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.data)
}

func (f *fetch[T]) get() (FetchState, T, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state, f.data, f.err
}

func (f *fetch[T]) State() FetchState {
	s, _, _ := f.get()
	return s
}

// Err is the failure of the last Load, nil unless Failed.
func (f *fetch[T]) Err() error {
	_, _, err := f.get()
	return err
}

// Message is the text a Failed screen shows.
func (f *fetch[T]) Message() string {
	if err := f.Err(); err != nil {
		return AlertText(err)
	}
	return ""
}

type FormState int

const (
	FormEditing FormState = iota
	FormValidating
	FormSubmitting
	FormSucceeded
)

func (s FormState) String() string {
	switch s {
	case FormValidating:
		return "validating"
	case FormSubmitting:
		return "submitting"
	case FormSucceeded:
		return "succeeded"
	default:
		return "editing"
	}
}

// Result tells the caller where to go after a successful submit.
type Result struct {
	Next    session.Route
	Session *session.Session
}

// form tracks the state, field errors and alert of a form screen.
type form struct {
	mu     sync.RWMutex
	state  FormState
	fields FieldErrors
	alert  string
}

func (f *form) set(s FormState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

func (f *form) validating() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state, f.fields, f.alert = FormValidating, nil, ""
}

// reject returns the form to Editing. FieldErrors become inline errors;
// anything else becomes the alert. Inline errors already attached are kept
// when a blocking alert follows them.
func (f *form) reject(err error, inline FieldErrors) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormEditing
	if len(inline) > 0 {
		f.fields = inline
	}
	if fe, ok := err.(FieldErrors); ok {
		f.fields = fe
		return err
	}
	f.alert = AlertText(err)
	return err
}

func (f *form) State() FormState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *form) FieldErrors() FieldErrors {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.fields) == 0 {
		return nil
	}
	out := make(FieldErrors, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Alert is the blocking message of the last rejected submit, if any.
func (f *form) Alert() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.alert
}

func contains(xs []string, want ...string) bool {
	for _, x := range xs {
		for _, w := range want {
			if x == w {
				return true
			}
		}
	}
	return false
}
