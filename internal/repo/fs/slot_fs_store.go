package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"PassKeeper/internal/repo"
)

// SlotFSStore — файловое хранилище ячеек: один файл на ячейку в каталоге dir.
type SlotFSStore struct {
	dir string
}

var _ repo.SlotRepository = (*SlotFSStore)(nil)

// NewSlotFSStore создаёт каталог (0700) и возвращает хранилище поверх него.
func NewSlotFSStore(dir string) (*SlotFSStore, error) {
	if dir == "" {
		return nil, errors.New("empty storage dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &SlotFSStore{dir: dir}, nil
}

func (s *SlotFSStore) path(key string) (string, error) {
	if err := repo.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key), nil
}

// Get читает ячейку из файла.
func (s *SlotFSStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return b, true, nil
}

// Set пишет во временный файл и атомарно переименовывает его поверх старого,
// так что читатель видит либо прежнее, либо новое содержимое.
func (s *SlotFSStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		cleanup()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Delete удаляет файл ячейки.
func (s *SlotFSStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Close — no-op.
func (s *SlotFSStore) Close() error { return nil }
