package service

import (
	"context"
	"encoding/json"
	"fmt"

	"PassKeeper/internal/model"
	"PassKeeper/internal/repo"

	"go.uber.org/zap"
)

// Имена ячеек локального хранилища.
const (
	SettingsSlot = "password_manager_settings"
	EntriesSlot  = "password_manager_entries"
)

// SettingsStore хранит одноразовую запись настройки мастер-пароля.
type SettingsStore struct {
	slots  repo.SlotRepository
	logger *zap.SugaredLogger
}

// NewSettingsStore создаёт хранилище настроек поверх ячеек.
func NewSettingsStore(slots repo.SlotRepository, logger *zap.SugaredLogger) *SettingsStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SettingsStore{slots: slots, logger: logger}
}

// Save перезаписывает ячейку настроек JSON-представлением.
func (s *SettingsStore) Save(ctx context.Context, settings model.MasterSettings) error {
	b, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.slots.Set(ctx, SettingsSlot, b); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Load возвращает настройки или nil, если хранилище не настроено.
// Повреждённая запись трактуется как «не настроено», а не как ошибка;
// ошибка возвращается только при сбое самого хранилища.
func (s *SettingsStore) Load(ctx context.Context) (*model.MasterSettings, error) {
	b, ok, err := s.slots.Get(ctx, SettingsSlot)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !ok || len(b) == 0 {
		return nil, nil
	}
	var settings model.MasterSettings
	if err := json.Unmarshal(b, &settings); err != nil {
		s.logger.Warnw("settings slot is unreadable, treating vault as not set up", "error", err)
		return nil, nil
	}
	return &settings, nil
}

// IsSetUp сообщает, завершена ли первичная настройка.
func (s *SettingsStore) IsSetUp(ctx context.Context) bool {
	settings, err := s.Load(ctx)
	if err != nil || settings == nil {
		return false
	}
	return settings.IsSetup
}
