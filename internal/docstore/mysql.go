package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"metagift-api/internal/logger"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore implements Store on a MySQL table, for deployments that
// already run a MySQL instance.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore connects to MySQL using the given DSN.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS documents (
		name VARCHAR(64) PRIMARY KEY,
		data MEDIUMBLOB NOT NULL,
		updated_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	logger.Info("mysql document store initialized")
	return &MySQLStore{db: db}, nil
}

// Get retrieves a document by name.
func (s *MySQLStore) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", name, err)
	}
	return data, nil
}

// Put fully overwrites a document.
func (s *MySQLStore) Put(ctx context.Context, name string, data []byte) error {
	query := `
		INSERT INTO documents (name, data, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, name, data); err != nil {
		return fmt.Errorf("failed to put document %s: %w", name, err)
	}
	return nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*MySQLStore)(nil)
