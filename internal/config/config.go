package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Драйверы хранилища ячеек.
const (
	DriverSQLite   = "sqlite"
	DriverGorm     = "gorm"
	DriverPostgres = "postgres"
	DriverFS       = "fs"
)

// ErrMissingDSN — выбран драйвер postgres без строки подключения.
var ErrMissingDSN = errors.New("storage driver postgres requires DATABASE_URI (-d)")

// MinKDFIterations повторяет нижнюю границу PBKDF2 из internal/crypto.
const MinKDFIterations = 100_000

type Config struct {
	// Хранилище
	VaultDir      string `env:"VAULT_DIR"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	DatabaseDSN   string `env:"DATABASE_URI"`

	// Криптография и сессия
	KDFIterations  int           `env:"KDF_ITERATIONS" envDefault:"100000"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`
	MasterPassword string        `env:"PK_MASTER_PASSWORD"` // только для скриптов, флага нет

	// Локальный API
	BaseURL    string `env:"BASE_URL"`
	AuthSecret string `env:"AUTH_SECRET"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Version  bool   `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags перекрывают значения из env
	flag.StringVar(&cfg.VaultDir, "vault-dir", cfg.VaultDir, "каталог локального хранилища")
	flag.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "драйвер хранилища: sqlite, gorm, postgres, fs")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres)")
	flag.IntVar(&cfg.KDFIterations, "kdf-iterations", cfg.KDFIterations, "число итераций PBKDF2 при первичной настройке")
	flag.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "автоблокировка после простоя (0 — выключено)")
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "адрес локального API (host:port)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "уровень логирования")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func (c *Config) applyDefaults() {
	if c.VaultDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base, _ = os.UserHomeDir()
		}
		c.VaultDir = filepath.Join(base, "passkeeper")
	}

	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	switch c.StorageDriver {
	case DriverSQLite, DriverGorm, DriverPostgres, DriverFS:
	default:
		c.StorageDriver = DriverSQLite
	}

	if c.KDFIterations < MinKDFIterations {
		c.KDFIterations = MinKDFIterations
	}
	if c.IdleTimeout < 0 {
		c.IdleTimeout = 0
	}

	// BaseURL: только "address:port" (без схемы и пути), иначе loopback по умолчанию
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = "127.0.0.1:8088"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate проверяет сочетания параметров, которые нельзя исправить подстановкой значения по умолчанию.
func (c *Config) Validate() error {
	if c.StorageDriver == DriverPostgres && c.DatabaseDSN == "" {
		return ErrMissingDSN
	}
	return nil
}

// EnsureAuthSecret задаёт случайный секрет подписи JWT, если AUTH_SECRET пуст.
// Возвращает true, если секрет сгенерирован: выданные токены живут до перезапуска процесса.
func (c *Config) EnsureAuthSecret() bool {
	if c.AuthSecret != "" {
		return false
	}
	c.AuthSecret = uuid.NewString()
	return true
}

// StoragePath возвращает путь (или DSN) для выбранного драйвера.
// У sqlite и gorm разные файлы: схемы таблицы slots у них не совпадают.
func (c *Config) StoragePath() string {
	switch c.StorageDriver {
	case DriverGorm:
		return filepath.Join(c.VaultDir, "vault_gorm.db")
	case DriverPostgres:
		return c.DatabaseDSN
	case DriverFS:
		return filepath.Join(c.VaultDir, "slots")
	default:
		return filepath.Join(c.VaultDir, "vault.db")
	}
}
