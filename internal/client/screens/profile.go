package screens

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

type ProfileScreen struct {
	fetch[models.User]
	profile services.ProfileService
	session *session.Session
}

func NewProfileScreen(profile services.ProfileService, s *session.Session) *ProfileScreen {
	return &ProfileScreen{profile: profile, session: s}
}

func (p *ProfileScreen) Load(ctx context.Context) error {
	if err := session.Require(p.session); err != nil {
		return err
	}
	p.begin()
	u, err := p.profile.Get(ctx, p.session.UserID)
	return p.finish(u, err)
}

func (p *ProfileScreen) User() models.User {
	_, u, _ := p.get()
	return u
}

// SaveImage writes the loaded user's profile image into dir.
func (p *ProfileScreen) SaveImage(ctx context.Context, dir string) (string, error) {
	if err := session.Require(p.session); err != nil {
		return "", err
	}
	return p.profile.SaveImage(ctx, p.User(), dir)
}

// Edit is where the profile's edit button leads.
func (p *ProfileScreen) Edit() session.Route {
	return session.RouteEditProfile
}
