package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// UserService manages user accounts. Methods taking an id accept 0 for the
// current user.
type UserService interface {
	Me(ctx context.Context) (*models.Profile, error)
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context, params url.Values) (*models.Page[models.Profile], error)
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error)
	UpdatePassword(ctx context.Context, id int64, change models.PasswordChange) error
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	api API
}

func NewUserService(api API) UserService {
	return &userService{api: api}
}

func userPath(id int64) string {
	if id == 0 {
		return "/users/me/"
	}
	return fmt.Sprintf("/users/%d/", id)
}

func (s *userService) Me(ctx context.Context) (*models.Profile, error) {
	return getJSON[models.Profile](ctx, s.api, client.MePath, nil)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	return getJSON[models.Profile](ctx, s.api, userPath(id), nil)
}

func (s *userService) List(ctx context.Context, params url.Values) (*models.Page[models.Profile], error) {
	return getJSON[models.Page[models.Profile]](ctx, s.api, "/users/", params)
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error) {
	return sendJSON[models.Profile](ctx, s.api, http.MethodPatch, userPath(id), upd)
}

func (s *userService) UpdatePassword(ctx context.Context, id int64, change models.PasswordChange) error {
	return s.api.JSON(ctx, http.MethodPost, userPath(id)+"password/", change, nil)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("delete user: id is required")
	}
	return s.api.JSON(ctx, http.MethodDelete, userPath(id), nil, nil)
}
