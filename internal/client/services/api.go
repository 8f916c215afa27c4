package services

import (
	"context"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// API is the part of *client.HTTPClient the services depend on.
type API interface {
	Do(ctx context.Context, req *client.Request) (*client.Response, error)
	JSON(ctx context.Context, method, path string, body, out any) error
}

// SessionAPI additionally lets the session observe expiries detected by the
// client.
type SessionAPI interface {
	API
	OnSessionExpired(fn client.SessionExpiredFunc)
}

// CredentialStore persists the credential record.
type CredentialStore interface {
	Load(ctx context.Context) (*models.Credentials, error)
	Save(ctx context.Context, c *models.Credentials) error
	Clear(ctx context.Context) error
}
