package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalog/internal/client/screens"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

// Profile prints the current user and offers to download the profile image
// into the configured download directory.
func (a *App) Profile(ctx context.Context) error {
	scr := screens.NewProfileScreen(a.profileService, a.currentSession())
	a.navigate(session.RouteProfile)

	if err := scr.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "! %s\n", scr.Message())
		return err
	}

	u := scr.User()
	fmt.Fprintf(a.out, "Name: %s\n", u.Name)
	fmt.Fprintf(a.out, "Email: %s\n", u.Email)
	fmt.Fprintf(a.out, "Cellphone: %s\n", u.Cellphone)
	if u.ImageURL() == "" {
		fmt.Fprintln(a.out, "Image: none")
		return nil
	}
	fmt.Fprintf(a.out, "Image: %s\n", u.ImageURL())

	save, err := Confirm(a.reader, "Save the profile image to "+a.config.DownloadDir+"?", a.out)
	if err != nil || !save {
		return err
	}

	path, err := scr.SaveImage(ctx, a.config.DownloadDir)
	if err != nil {
		if errors.Is(err, services.ErrNoProfileImage) {
			fmt.Fprintln(a.out, "No profile image")
			return nil
		}
		fmt.Fprintf(a.out, "! %s\n", screens.AlertText(err))
		return err
	}
	fmt.Fprintf(a.out, "Image saved to: %s\n", path)
	return nil
}

// EditProfile prompts for the fields to change. Empty answers keep the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	s := a.currentSession()
	scr := screens.NewEditProfileScreen(a.api, a.dir, s, a.log)
	a.navigate(session.RouteEditProfile)

	if err := scr.Mount(ctx); err != nil {
		fmt.Fprintf(a.out, "! %s\n", screens.AlertText(err))
		return err
	}
	cur := scr.Current()

	var f screens.EditProfileForm
	var err error

	if f.Name, err = getSimpleText(a.reader, fmt.Sprintf("Name [%s]", cur.Name), a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.reader, fmt.Sprintf("Email [%s]", cur.Email), a.out); err != nil {
		return err
	}
	if f.Cellphone, err = getSimpleText(a.reader, fmt.Sprintf("Cellphone [%s]", cur.Cellphone), a.out); err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "New profile image (path or URL, empty to keep)", a.out)
	if err != nil {
		return err
	}
	f.Image = optionalImage(image)

	oldEmail := s.Email
	res, err := scr.Submit(ctx, f)
	if err != nil {
		a.reportForm(scr)
		return err
	}

	// Persist the new email so resume restores the right identity.
	if res.Session.Email != oldEmail {
		ns, err := a.authService.Start(ctx, res.Session.UserID, res.Session.Email)
		if err != nil {
			a.log.Warn(ctx, "saved session not updated", "error", err)
		} else {
			a.startSession(ctx, ns)
		}
	}

	fmt.Fprintln(a.out, "Profile updated")
	a.navigate(res.Next)
	return a.Profile(ctx)
}
