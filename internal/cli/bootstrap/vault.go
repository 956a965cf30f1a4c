package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"PassKeeper/internal/config"
	"PassKeeper/internal/repo"
	fsrepo "PassKeeper/internal/repo/fs"
	reposqlite "PassKeeper/internal/repo/sqlite"
	"PassKeeper/internal/service"

	"go.uber.org/zap"
)

// OpenSlotStore открывает хранилище ячеек по драйверу из конфигурации.
// Вызывающий обязан закрыть его через Close.
func OpenSlotStore(ctx context.Context, cfg *config.Config) (repo.SlotRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path := cfg.StoragePath()
	switch cfg.StorageDriver {
	case config.DriverFS:
		s, err := fsrepo.NewSlotFSStore(path)
		if err != nil {
			return nil, fmt.Errorf("open fs store: %w", err)
		}
		return s, nil
	case config.DriverGorm, config.DriverPostgres:
		driver := "sqlite"
		if cfg.StorageDriver == config.DriverPostgres {
			driver = "postgres"
		} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
		db, err := repo.InitDB(driver, path)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.StorageDriver, err)
		}
		return repo.NewGormSlotRepository(db), nil
	default:
		s, err := reposqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	}
}

// OpenSession открывает хранилище и создаёт сессию поверх него.
// cleanup закрывает хранилище и блокирует сессию.
func OpenSession(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*service.Session, func() error, error) {
	slots, err := OpenSlotStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := service.NewSession(ctx, slots,
		service.WithLogger(logger),
		service.WithIterations(cfg.KDFIterations),
	)
	if err != nil {
		_ = slots.Close()
		return nil, nil, err
	}
	cleanup := func() error {
		s.Logout()
		return slots.Close()
	}
	return s, cleanup, nil
}
