package services

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/models"
)

// NotificationService reads and updates one user's notifications.
// Reads never mutate; marking read is always a separate call.
type NotificationService interface {
	Unread(ctx context.Context, userID int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
	MarkAllRead(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, userID, id int) error
	Delete(ctx context.Context, userID, id int) error
}

type notificationService struct {
	client client.Client
}

func NewNotificationService(client client.Client) NotificationService {
	return &notificationService{client: client}
}

func (s *notificationService) Unread(ctx context.Context, userID int) ([]models.Notification, error) {
	ns, err := s.client.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.Unread(ns), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int) (int, error) {
	ns, err := s.Unread(ctx, userID)
	return len(ns), err
}

// MarkAllRead returns how many notifications the server flipped.
func (s *notificationService) MarkAllRead(ctx context.Context, userID int) (int, error) {
	changed, err := s.client.MarkAllNotificationsRead(ctx, userID)
	return len(changed), err
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id int) error {
	_, err := s.client.MarkNotificationRead(ctx, userID, id)
	return err
}

func (s *notificationService) Delete(ctx context.Context, userID, id int) error {
	return s.client.DeleteNotification(ctx, userID, id)
}
