// Package credentials persists the credential record (access token, refresh
// token and profile) in the local metadata store.
//
// The record is one JSON object under common.CredentialsKey. Exactly one
// record exists or none: Save replaces it as a whole, UpdateAccess rewrites
// only the access token inside a transaction, Clear removes it. All methods
// are safe for concurrent use; the last write wins and readers always see the
// latest committed record.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/dbx"
)

var (
	// ErrNoSession is returned when no credential record is stored.
	ErrNoSession = errors.New("no stored session")
	// ErrCorrupt is returned when the stored record cannot be decoded.
	ErrCorrupt = errors.New("stored session is corrupt")
)

type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns a copy of the stored record, ErrNoSession when there is none
// or ErrCorrupt when it cannot be decoded.
func (s *Store) Load(ctx context.Context) (*models.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return load(ctx, metadata.NewSQLiteRepository(s.db))
}

// Save replaces the stored record with c.
func (s *Store) Save(ctx context.Context, c *models.Credentials) error {
	if c == nil {
		return fmt.Errorf("save credentials: %w", common.ErrorIncorrectMetadata)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return save(ctx, metadata.NewSQLiteRepository(s.db), c)
}

// UpdateAccess replaces the access token of the stored record, leaving the
// refresh token and the profile untouched. It returns ErrNoSession when the
// record was removed in the meantime.
func (s *Store) UpdateAccess(ctx context.Context, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		c, err := load(ctx, repo)
		if err != nil {
			return err
		}
		c.Access = access

		return save(ctx, repo, c)
	})
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.CredentialsKey)
}

func load(ctx context.Context, repo metadata.Repository) (*models.Credentials, error) {
	raw, err := repo.Get(ctx, common.CredentialsKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var c models.Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &c, nil
}

func save(ctx context.Context, repo metadata.Repository, c *models.Credentials) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	return repo.Set(ctx, common.CredentialsKey, raw)
}
