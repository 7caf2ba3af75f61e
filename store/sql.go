package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/K1ssSh0t/url-shortener/migrations"
	"github.com/K1ssSh0t/url-shortener/models"
)

// SQLStore persists mappings in a relational database through sqlx.
// Queries use "?" bindvars and are rebound per driver, so the same code
// serves postgres (lib/pq) and sqlite3 (mattn/go-sqlite3).
type SQLStore struct {
	db *sqlx.DB
}

// NewSQL connects with the given driver and DSN and, when autoMigrate is
// set, applies pending schema migrations from the embedded migration set.
func NewSQL(driver, dsn string, autoMigrate bool) (*SQLStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", driver, err)
	}
	if autoMigrate {
		source := migrate.EmbedFileSystemMigrationSource{
			FileSystem: migrations.FS,
			Root:       ".",
		}
		if _, err := migrate.Exec(db.DB, driver, source, migrate.Up); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: migrate %s: %w", driver, err)
		}
	}
	return newSQLStore(db), nil
}

func newSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, m *models.Mapping) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO mappings (short_code, url, clicks, created_at) VALUES (?, ?, ?, ?)"),
		m.ShortCode, m.URL, m.Clicks, m.CreatedAt)
	return err
}

func (s *SQLStore) Find(ctx context.Context, shortCode string) (*models.Mapping, error) {
	var m models.Mapping
	err := s.db.GetContext(ctx, &m,
		s.db.Rebind("SELECT short_code, url, clicks, created_at FROM mappings WHERE short_code = ?"),
		shortCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SQLStore) IncrementClicks(ctx context.Context, shortCode string) error {
	// Zero matched rows is fine: the mapping may have been deleted after
	// the lookup that preceded this call.
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE mappings SET clicks = clicks + 1 WHERE short_code = ?"),
		shortCode)
	return err
}

func (s *SQLStore) UpdateURL(ctx context.Context, shortCode, url string) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE mappings SET url = ? WHERE short_code = ?"),
		url, shortCode)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *SQLStore) Delete(ctx context.Context, shortCode string) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind("DELETE FROM mappings WHERE short_code = ?"),
		shortCode)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
