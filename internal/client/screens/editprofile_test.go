package screens

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editEnv(t *testing.T) (*env, *EditProfileScreen, *session.Session) {
	t.Helper()
	e := newEnv(t)
	e.api.AddUser(models.User{ID: 1, Name: "Ana", Email: "ana@x.com", Cellphone: "11987654321"})
	e.api.AddUser(models.User{ID: 2, Name: "Bia", Email: "bia@x.com", Cellphone: "11987654322"})
	sess := &session.Session{UserID: 1, Email: "ana@x.com"}
	s := NewEditProfileScreen(e.client, e.dir, sess, e.log)
	require.NoError(t, s.Mount(context.Background()))
	return e, s, sess
}

func TestEditProfile_MountPrefills(t *testing.T) {
	_, s, _ := editEnv(t)
	assert.Equal(t, "Ana", s.Current().Name)
}

func TestEditProfile_RejectsEmailOfAnotherUser(t *testing.T) {
	e, s, _ := editEnv(t)

	_, err := s.Submit(context.Background(), EditProfileForm{Email: "BIA@x.com"})
	require.Error(t, err)
	assert.Equal(t, FieldErrors{"email": msgEmailTaken}, s.FieldErrors())
	assert.Zero(t, e.api.Calls(fakeapi.RouteUpdateUser))
}

func TestEditProfile_FormatErrors(t *testing.T) {
	_, s, _ := editEnv(t)

	_, err := s.Submit(context.Background(), EditProfileForm{Email: "bad", Cellphone: "12"})
	require.Error(t, err)
	assert.Equal(t, FieldErrors{"email": msgInvalidEmail, "cellphone": msgInvalidCellphone}, s.FieldErrors())
}

func TestEditProfile_UpdatesOnlyGivenFields(t *testing.T) {
	e, s, sess := editEnv(t)

	res, err := s.Submit(context.Background(), EditProfileForm{Email: "ANA@x.com", Name: "Ana Lima"})
	require.NoError(t, err)
	assert.Equal(t, session.RouteProfile, res.Next)
	assert.Equal(t, "Ana Lima", s.Current().Name)
	assert.Equal(t, "ANA@x.com", sess.Email)

	last := e.api.Requests()[len(e.api.Requests())-1]
	assert.Equal(t, map[string]string{"name": "Ana Lima", "email": "ANA@x.com"}, last.Form)
}

func TestEditProfile_NothingToUpdate(t *testing.T) {
	e, s, _ := editEnv(t)

	res, err := s.Submit(context.Background(), EditProfileForm{Image: &models.Image{}})
	require.NoError(t, err)
	assert.Equal(t, session.RouteProfile, res.Next)
	assert.Equal(t, FormSucceeded, s.State())
	assert.Zero(t, e.api.Calls(fakeapi.RouteUpdateUser))
}

func TestEditProfile_RequiresSession(t *testing.T) {
	e := newEnv(t)
	s := NewEditProfileScreen(e.client, e.dir, nil, e.log)

	require.ErrorIs(t, s.Mount(context.Background()), ErrNoSession)
	_, err := s.Submit(context.Background(), EditProfileForm{Name: "x"})
	require.ErrorIs(t, err, ErrNoSession)
}
