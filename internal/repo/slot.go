package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// SlotRepository — порт доступа к локальному key-value хранилищу.
// Каждая запись (Set) атомарна с точки зрения последующего чтения.
type SlotRepository interface {
	// Get возвращает значение ячейки; ok=false, если ячейка отсутствует.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set перезаписывает ячейку целиком.
	Set(ctx context.Context, key string, value []byte) error
	// Delete удаляет ячейку; отсутствие ячейки не ошибка.
	Delete(ctx context.Context, key string) error
	// Close освобождает ресурсы бэкенда.
	Close() error
}

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey проверяет, что имя ячейки безопасно для всех бэкендов (в том числе как имя файла).
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("slot key is required")
	}
	if !keyRe.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid slot key: %q (allowed: letters, digits, . _ -)", key)
	}
	return nil
}
