package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

func TestFileSolutionStore_ReadWrite(t *testing.T) {
	store := NewFileSolutionStore(NewLocalRepoFS())

	path := m.Path(filepath.Join(t.TempDir(), "Zonit.sln"))

	if store.Exists(path) {
		t.Fatalf("Exists() = true before first write")
	}

	if err := store.Write(path, "Global\r\nEndGlobal\r\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !store.Exists(path) {
		t.Fatalf("Exists() = false after write")
	}

	text, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if text != "Global\r\nEndGlobal\r\n" {
		t.Fatalf("Read() = %q, want written content", text)
	}
}

func TestFileSolutionStore_ReadMissing(t *testing.T) {
	store := NewFileSolutionStore(NewLocalRepoFS())

	if _, err := store.Read(m.Path(filepath.Join(t.TempDir(), "missing.sln"))); err == nil {
		t.Fatalf("Read() expected error for missing file")
	}
}

func TestFileSolutionStore_Backup(t *testing.T) {
	store := NewFileSolutionStore(NewLocalRepoFS())

	path := m.Path(filepath.Join(t.TempDir(), "Zonit.sln"))
	if err := store.Write(path, "original"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	backup, err := store.Backup(path)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	if backup != path+".bak" {
		t.Fatalf("Backup() path = %q, want %q", backup, path+".bak")
	}

	content, err := os.ReadFile(string(backup))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(content) != "original" {
		t.Fatalf("Backup() copied %q, want %q", content, "original")
	}
}

func TestFileSolutionStore_BackupMissing(t *testing.T) {
	store := NewFileSolutionStore(NewLocalRepoFS())

	if _, err := store.Backup(m.Path(filepath.Join(t.TempDir(), "missing.sln"))); err == nil {
		t.Fatalf("Backup() expected error for missing file")
	}
}
