package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSlotFSStore_SetGetDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vault")
	s, err := NewSlotFSStore(dir)
	if err != nil {
		t.Fatalf("NewSlotFSStore: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "password_manager_entries"); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "password_manager_entries", []byte("blob-1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "password_manager_entries", []byte("blob-2")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	b, ok, err := s.Get(ctx, "password_manager_entries")
	if err != nil || !ok || string(b) != "blob-2" {
		t.Fatalf("Get: %q ok=%v err=%v", b, ok, err)
	}

	// временных файлов после записи не остаётся
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in dir, got %d", len(entries))
	}
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(filepath.Join(dir, "password_manager_entries"))
		if err != nil {
			t.Fatal(err)
		}
		if fi.Mode().Perm() != 0o600 {
			t.Fatalf("want 0600 permissions, got %v", fi.Mode().Perm())
		}
	}

	if err := s.Delete(ctx, "password_manager_entries"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "password_manager_entries"); err != nil {
		t.Fatalf("Delete must be idempotent: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "password_manager_entries"); ok {
		t.Fatalf("slot must be gone after delete")
	}
}

func TestSlotFSStore_Errors(t *testing.T) {
	if _, err := NewSlotFSStore(""); err == nil {
		t.Fatalf("empty dir must fail")
	}
	s, err := NewSlotFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Set(ctx, "../escape", []byte("x")); err == nil {
		t.Fatalf("path traversal key must be rejected")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, _, err := s.Get(cancelled, "k"); err == nil {
		t.Fatalf("cancelled context must fail")
	}
}

// Доп.кейс: каталог хранилища указывает на файл — создание должно упасть
func TestNewSlotFSStore_FailsWhenDirIsFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "not_dir")
	if err := os.WriteFile(bad, []byte("x"), 0o600); err != nil {
		t.Fatalf("prepare tmp file: %v", err)
	}
	if _, err := NewSlotFSStore(filepath.Join(bad, "sub")); err == nil {
		t.Fatalf("expected error when storage dir is under a file")
	}
}
