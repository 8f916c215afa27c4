package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

type NotificationService interface {
	List(ctx context.Context, params url.Values) (*models.Page[models.Notification], error)
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	api API
}

func NewNotificationService(api API) NotificationService {
	return &notificationService{api: api}
}

func (s *notificationService) List(ctx context.Context, params url.Values) (*models.Page[models.Notification], error) {
	return getJSON[models.Page[models.Notification]](ctx, s.api, "/events/notifications/", params)
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return s.api.JSON(ctx, http.MethodPost, "/events/notifications/mark_all_read/", nil, nil)
}
