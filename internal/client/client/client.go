package client

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/models"
)

// Client is the catalog API contract used by the screens and services.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	CreateUser(ctx context.Context, fields models.UserFields, image *models.Image) (models.User, error)
	UpdateUser(ctx context.Context, id int, fields models.UserFields, image *models.Image) (models.User, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
	CreateProduct(ctx context.Context, userID int, fields models.ProductFields, image *models.Image) (models.Product, error)

	ListNotifications(ctx context.Context, userID int) ([]models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int) (models.Notification, error)
	DeleteNotification(ctx context.Context, userID, notificationID int) error
}
