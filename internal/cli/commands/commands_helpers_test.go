package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"PassKeeper/internal/config"
)

const testMaster = "Str0ng!Pass123"

// withTempConfig переопределяет пользовательские каталоги на время теста
// и возвращает конфиг с хранилищем во временном каталоге.
func withTempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return &config.Config{
		VaultDir:       filepath.Join(dir, "passkeeper"),
		StorageDriver:  config.DriverSQLite,
		KDFIterations:  config.MinKDFIterations,
		MasterPassword: testMaster,
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// withInput подменяет stdin для приглашений
func withInput(t *testing.T, input string) {
	t.Helper()
	old := In
	In = io.Reader(strings.NewReader(input))
	t.Cleanup(func() { In = old })
}
