package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"taskVault/internal/logger"
)

// SQLiteStore — основное (долговечное) хранилище: одна строка на коллекцию
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("создание каталога хранилища: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("открытие базы: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("миграция схемы: %w", err)
	}

	logger.Info("Storage: Открыто хранилище SQLite")
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, collection string) ([]byte, error) {
	var value []byte

	query := `SELECT value FROM collections WHERE name = ?`
	err := s.db.QueryRowContext(ctx, query, collection).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("чтение коллекции %s: %w", collection, err)
	}

	return value, nil
}

func (s *SQLiteStore) Put(ctx context.Context, collection string, value []byte) error {
	query := `INSERT INTO collections (name, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query, collection, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("запись коллекции %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, collection)
	if err != nil {
		return fmt.Errorf("удаление коллекции %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	logger.Info("Storage: Закрытие хранилища SQLite")
	return s.db.Close()
}
