package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"PassKeeper/internal/common"
	"PassKeeper/internal/crypto"
	"PassKeeper/internal/model"
	"PassKeeper/internal/repo"
	"PassKeeper/internal/strength"

	"go.uber.org/zap"
)

const (
	// MinPasswordLength — минимальная длина мастер-пароля (в символах).
	MinPasswordLength = 8
	// MinStrengthScore — минимальная оценка стойкости мастер-пароля.
	MinStrengthScore = 4
)

// State — состояние сессии хранилища.
type State int

const (
	StateUninitialized State = iota
	StateLocked
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StrengthFunc оценивает стойкость пароля при настройке.
type StrengthFunc func(password string) strength.Result

// Option настраивает Session.
type Option func(*Session)

// WithLogger задаёт логгер сессии.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) { s.logger = l }
}

// WithStrength подменяет оценщик стойкости пароля.
func WithStrength(f StrengthFunc) Option {
	return func(s *Session) { s.strength = f }
}

// WithIterations задаёт число итераций PBKDF2 для новой настройки.
func WithIterations(n int) Option {
	return func(s *Session) { s.iterations = n }
}

// Session — корень композиции: владеет ключом разблокированной сессии,
// управляет настройкой/входом/выходом и открывает операции над записями.
// Все операции сериализуются одним мьютексом.
type Session struct {
	mu sync.Mutex

	settings *SettingsStore
	records  *RecordStore
	logger   *zap.SugaredLogger
	strength StrengthFunc

	iterations int
	state      State
	key        *crypto.Key
	epoch      uint64
	onLock     []func()
}

// NewSession создаёт сессию; начальное состояние зависит от наличия настроек.
func NewSession(ctx context.Context, slots repo.SlotRepository, opts ...Option) (*Session, error) {
	s := &Session{
		strength:   strength.Evaluate,
		iterations: crypto.MinIterations,
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	s.settings = NewSettingsStore(slots, s.logger)
	s.records = NewRecordStore(slots)

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil && settings.IsSetup {
		s.state = StateLocked
	}
	return s, nil
}

// State возвращает текущее состояние.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Epoch увеличивается при каждом входе и выходе; по нему API отзывает токены.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// OnLock регистрирует обработчик, вызываемый после перехода в Locked.
func (s *Session) OnLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLock = append(s.onLock, fn)
}

// Setup выполняет первичную настройку мастер-пароля и сразу входит.
// Проверки политики выполняются до любой записи в хранилище.
func (s *Session) Setup(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return common.ErrAlreadySetUp
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	if res := s.strength(password); res.Score < MinStrengthScore {
		return fmt.Errorf("%w: %s", common.ErrPasswordTooWeak, strings.Join(res.Feedback, "; "))
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	settings := model.MasterSettings{
		MasterPasswordHash: crypto.HashPassword(password, salt),
		Salt:               salt,
		IsSetup:            true,
		KDFIterations:      max(s.iterations, crypto.MinIterations),
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return err
	}
	s.state = StateLocked
	s.logger.Infow("vault set up", "kdf_iterations", settings.KDFIterations)

	return s.loginLocked(ctx, password)
}

// Login проверяет мастер-пароль по хешу и выводит ключ сессии.
func (s *Session) Login(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginLocked(ctx, password)
}

func (s *Session) loginLocked(ctx context.Context, password string) error {
	if s.state == StateUninitialized {
		return common.ErrNotSetUp
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}
	if settings == nil || !settings.IsSetup {
		return common.ErrNotSetUp
	}
	if !crypto.VerifyPassword(password, settings.Salt, settings.MasterPasswordHash) {
		s.logger.Warnw("login failed: master password mismatch")
		return common.ErrInvalidCredentials
	}
	key, err := crypto.DeriveKey(password, settings.Salt, settings.KDFIterations)
	if err != nil {
		return err
	}
	if s.key != nil {
		s.key.Destroy()
	}
	s.key = key
	s.state = StateUnlocked
	s.epoch++
	s.logger.Infow("vault unlocked")
	return nil
}

// Logout уничтожает ключ и блокирует хранилище. Повторный вызов — no-op.
func (s *Session) Logout() {
	s.mu.Lock()
	if s.state != StateUnlocked {
		s.mu.Unlock()
		return
	}
	s.key.Destroy()
	s.key = nil
	s.state = StateLocked
	s.epoch++
	hooks := append([]func(){}, s.onLock...)
	s.mu.Unlock()

	s.logger.Infow("vault locked")
	for _, fn := range hooks {
		fn()
	}
}

func (s *Session) withKey(fn func(key *crypto.Key) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnlocked || s.key.Destroyed() {
		return common.ErrNotAuthenticated
	}
	return fn(s.key)
}

// ListEntries возвращает все записи.
func (s *Session) ListEntries(ctx context.Context) ([]model.CredentialRecord, error) {
	var res []model.CredentialRecord
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.LoadAll(ctx, key)
		return err
	})
	return res, err
}

// SearchEntries возвращает записи по фильтру.
func (s *Session) SearchEntries(ctx context.Context, f Filter) ([]model.CredentialRecord, error) {
	var res []model.CredentialRecord
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.Search(ctx, key, f)
		return err
	})
	return res, err
}

// Categories возвращает число записей по категориям.
func (s *Session) Categories(ctx context.Context) (map[model.Category]int, error) {
	var res map[model.Category]int
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.Categories(ctx, key)
		return err
	})
	return res, err
}

// GetEntry возвращает запись по ID.
func (s *Session) GetEntry(ctx context.Context, id string) (model.CredentialRecord, error) {
	var res model.CredentialRecord
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.Get(ctx, id, key)
		return err
	})
	return res, err
}

// AddEntry добавляет запись.
func (s *Session) AddEntry(ctx context.Context, rec model.CredentialRecord) (model.CredentialRecord, error) {
	var res model.CredentialRecord
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.Add(ctx, rec, key)
		return err
	})
	return res, err
}

// UpdateEntry обновляет запись.
func (s *Session) UpdateEntry(ctx context.Context, rec model.CredentialRecord) (model.CredentialRecord, error) {
	var res model.CredentialRecord
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.Update(ctx, rec, key)
		return err
	})
	return res, err
}

// DeleteEntry удаляет запись; отсутствующий ID не ошибка.
func (s *Session) DeleteEntry(ctx context.Context, id string) error {
	return s.withKey(func(key *crypto.Key) error {
		return s.records.Delete(ctx, id, key)
	})
}

// Export возвращает открытый JSON-снимок коллекции.
func (s *Session) Export(ctx context.Context) (string, error) {
	var res string
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		res, err = s.records.Export(ctx, key)
		return err
	})
	return res, err
}

// Import заменяет коллекцию содержимым снимка и возвращает число записей.
func (s *Session) Import(ctx context.Context, data string) (int, error) {
	var n int
	err := s.withKey(func(key *crypto.Key) error {
		var err error
		n, err = s.records.Import(ctx, data, key)
		return err
	})
	if err == nil {
		s.logger.Infow("entries imported", "count", n)
	}
	return n, err
}
