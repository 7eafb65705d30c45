// Package mysqlkv implements storage.Adapter on a MySQL table with one row
// per key.
package mysqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"checklist/internal/storage"
)

const (
	// Table is the key-value table name.
	Table = "kv_store"

	// QueryTimeout bounds each statement.
	QueryTimeout = 5 * time.Second
)

// Store reads and writes rows of kv_store.
type Store struct {
	db *sql.DB
}

var _ storage.Adapter = (*Store)(nil)

// Open connects to dsn, verifies the connection and creates the table if
// needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)

	pingCtx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, storage.Unavailable("ping", cfg.DBName, err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, storage.Unavailable("migrate", Table, err)
	}
	return s, nil
}

// NewWithDB wraps an existing handle (for testing). The table must exist.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	ddl := `CREATE TABLE IF NOT EXISTS ` + Table + ` (
    k VARCHAR(191) NOT NULL PRIMARY KEY,
    v LONGTEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Read implements storage.Adapter.
func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return "", false, err
	}
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var text string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM `+Table+` WHERE k = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storage.Unavailable("read", key, describe(err))
	}
	return text, true, nil
}

// Write implements storage.Adapter. The upsert is a single statement, so the
// prior value is either fully replaced or left intact.
func (s *Store) Write(ctx context.Context, key, text string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+Table+` (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
		key, text)
	if err != nil {
		return storage.Unavailable("write", key, describe(err))
	}
	return nil
}

// describe adds the server error number to MySQL errors.
func describe(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return fmt.Errorf("mysql error %d: %s", myErr.Number, myErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return err
}
