package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

type FacultyService interface {
	List(ctx context.Context) ([]models.Faculty, error)
	Get(ctx context.Context, id int64) (*models.Faculty, error)
	Create(ctx context.Context, f models.Faculty) (*models.Faculty, error)
	Update(ctx context.Context, id int64, f models.Faculty) (*models.Faculty, error)
	Delete(ctx context.Context, id int64) error
}

type facultyService struct {
	api API
}

func NewFacultyService(api API) FacultyService {
	return &facultyService{api: api}
}

func facultyPath(id int64) string {
	return fmt.Sprintf("/faculties/%d/", id)
}

// List accepts both a plain array and a paginated reply.
func (s *facultyService) List(ctx context.Context) ([]models.Faculty, error) {
	resp, err := s.api.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/faculties/"})
	if err != nil {
		return nil, err
	}

	var list []models.Faculty
	if err := resp.Decode(&list); err == nil {
		return list, nil
	}

	var page models.Page[models.Faculty]
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (s *facultyService) Get(ctx context.Context, id int64) (*models.Faculty, error) {
	return getJSON[models.Faculty](ctx, s.api, facultyPath(id), nil)
}

func (s *facultyService) Create(ctx context.Context, f models.Faculty) (*models.Faculty, error) {
	return sendJSON[models.Faculty](ctx, s.api, http.MethodPost, "/faculties/", facultyBody(f))
}

func (s *facultyService) Update(ctx context.Context, id int64, f models.Faculty) (*models.Faculty, error) {
	return sendJSON[models.Faculty](ctx, s.api, http.MethodPatch, facultyPath(id), facultyBody(f))
}

func (s *facultyService) Delete(ctx context.Context, id int64) error {
	return s.api.JSON(ctx, http.MethodDelete, facultyPath(id), nil, nil)
}

func facultyBody(f models.Faculty) map[string]string {
	body := map[string]string{"name": f.Name}
	if f.Description != "" {
		body["description"] = f.Description
	}
	return body
}
