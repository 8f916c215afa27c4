package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
)

// getJSON fetches path with query and decodes the reply into a new T.
func getJSON[T any](ctx context.Context, api API, path string, query url.Values) (*T, error) {
	resp, err := api.Do(ctx, &client.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := resp.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// sendJSON sends body with method and decodes the reply into a new T.
func sendJSON[T any](ctx context.Context, api API, method, path string, body any) (*T, error) {
	out := new(T)
	if err := api.JSON(ctx, method, path, body, out); err != nil {
		return nil, err
	}
	return out, nil
}
