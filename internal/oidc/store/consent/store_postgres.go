package consent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"oidcore/pkg/platform/strings"
)

// PostgresStore persists one row per granted (client, subject, scope item).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) IsGiven(ctx context.Context, subject string, scope []string, clientID string) (bool, error) {
	want := strings.DedupeAndTrim(scope)
	if len(want) == 0 {
		return true, nil
	}
	query := `
		SELECT COUNT(DISTINCT scope_item)
		FROM consents
		WHERE client_id = $1 AND subject = $2 AND scope_item = ANY($3)
	`
	var n int
	if err := s.db.QueryRowContext(ctx, query, clientID, subject, pq.Array(want)).Scan(&n); err != nil {
		return false, fmt.Errorf("check consent: %w", err)
	}
	return n == len(want), nil
}

func (s *PostgresStore) Grant(ctx context.Context, subject string, scope []string, clientID string) error {
	query := `
		INSERT INTO consents (client_id, subject, scope_item)
		SELECT $1, $2, item FROM unnest($3::text[]) AS item
		ON CONFLICT (client_id, subject, scope_item) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, clientID, subject, pq.Array(scope)); err != nil {
		return fmt.Errorf("grant consent: %w", err)
	}
	return nil
}

func (s *PostgresStore) Revoke(ctx context.Context, subject string, scope []string, clientID string) error {
	query := `DELETE FROM consents WHERE client_id = $1 AND subject = $2 AND scope_item = ANY($3)`
	if _, err := s.db.ExecContext(ctx, query, clientID, subject, pq.Array(scope)); err != nil {
		return fmt.Errorf("revoke consent: %w", err)
	}
	return nil
}
