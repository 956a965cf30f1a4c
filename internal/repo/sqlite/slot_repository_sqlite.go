package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"PassKeeper/internal/repo"

	_ "modernc.org/sqlite"
)

// SlotRepositorySQLite — репозиторий ячеек в локальной БД SQLite.
type SlotRepositorySQLite struct {
	db *sql.DB
}

var _ repo.SlotRepository = (*SlotRepositorySQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД и применяет миграции.
func Open(ctx context.Context, path string) (*SlotRepositorySQLite, error) {
	if path == "" {
		return nil, errors.New("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	r := New(db)
	if err := r.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	_ = os.Chmod(path, 0o600)
	return r, nil
}

// New оборачивает уже открытое соединение (миграции не выполняются).
func New(db *sql.DB) *SlotRepositorySQLite {
	return &SlotRepositorySQLite{db: db}
}

// Migrate гарантирует наличие таблицы slots.
func (r *SlotRepositorySQLite) Migrate(ctx context.Context) error {
	return migrate(ctx, r.db)
}

// Close закрывает соединение с БД.
func (r *SlotRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SlotRepositorySQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := repo.ValidateKey(key); err != nil {
		return nil, false, err
	}
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return value, true, nil
}

// Set перезаписывает ячейку одним UPSERT-запросом.
func (r *SlotRepositorySQLite) Set(ctx context.Context, key string, value []byte) error {
	if err := repo.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (r *SlotRepositorySQLite) Delete(ctx context.Context, key string) error {
	if err := repo.ValidateKey(key); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}
