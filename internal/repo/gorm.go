package repo

import (
	"context"
	"errors"
	"fmt"

	"PassKeeper/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// InitDB открывает БД через GORM и выполняет миграцию таблицы slots.
// driver: "sqlite" (файл или file::memory:) либо "postgres" (DSN).
func InitDB(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	case "postgres":
		dial = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm driver: %q", driver)
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&model.Slot{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

type gormSlotRepo struct {
	db *gorm.DB
}

// NewGormSlotRepository создаёт реализацию SlotRepository поверх GORM.
func NewGormSlotRepository(db *gorm.DB) SlotRepository {
	return &gormSlotRepo{db: db}
}

func (r *gormSlotRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	var s model.Slot
	err := r.db.WithContext(ctx).Where(&model.Slot{Key: key}).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return s.Value, true, nil
}

// Set делает upsert одной строкой: значение либо старое, либо новое целиком.
func (r *gormSlotRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s := &model.Slot{Key: key, Value: value}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(s)
	if tx.Error != nil {
		return fmt.Errorf("set slot %s: %w", key, tx.Error)
	}
	return nil
}

func (r *gormSlotRepo) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&model.Slot{Key: key}).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (r *gormSlotRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
