package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/filex"
	"github.com/google/uuid"
)

var ErrNoProfileImage = errors.New("user has no profile image")

type ProfileService interface {
	Get(ctx context.Context, userID int) (models.User, error)
	// SaveImage downloads the user's profile image into dir and returns the
	// written file path.
	SaveImage(ctx context.Context, u models.User, dir string) (string, error)
}

type profileService struct {
	client client.Client
	images client.ImageSource
}

func NewProfileService(client client.Client, images client.ImageSource) ProfileService {
	return &profileService{client: client, images: images}
}

func (s *profileService) Get(ctx context.Context, userID int) (models.User, error) {
	return s.client.GetUser(ctx, userID)
}

func (s *profileService) SaveImage(ctx context.Context, u models.User, dir string) (string, error) {
	uri := u.ImageURL()
	if uri == "" {
		return "", ErrNoProfileImage
	}

	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	name := models.Image{URI: uri}.FileName()
	if name == "" || name == "." || name == "/" {
		name = uuid.NewString() + ".jpg"
	}
	target := filepath.Join(dir, fmt.Sprintf("user-%d-%s", u.ID, name))

	src, err := s.images.Open(ctx, uri)
	if err != nil {
		return "", fmt.Errorf("fetch profile image: %w", err)
	}
	defer src.Close()

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return target, nil
}
