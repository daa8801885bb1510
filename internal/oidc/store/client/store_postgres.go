package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/platform/sentinel"
)

// PostgresStore reads registered clients from the clients table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	c := &models.Client{ID: clientID}
	err := s.db.QueryRowContext(ctx,
		`SELECT secret, redirect_uris FROM clients WHERE id = $1`, clientID,
	).Scan(&c.Secret, pq.Array(&c.RedirectURIs))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %q: %w", clientID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	return c, nil
}

// Upsert registers client, replacing secret and redirect URIs on conflict.
func (s *PostgresStore) Upsert(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, secret, redirect_uris)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			secret = EXCLUDED.secret,
			redirect_uris = EXCLUDED.redirect_uris
	`
	if _, err := s.db.ExecContext(ctx, query, client.ID, client.Secret, pq.Array(client.RedirectURIs)); err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}
