package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewStore(path)
	if err == nil {
		t.Fatal("expected fallback error for a missing file")
	}
	if store.Snapshot() != Defaults() {
		t.Fatalf("Snapshot() = %+v, want defaults", store.Snapshot())
	}

	if changed, err := store.Refresh(); err != nil || changed {
		t.Fatalf("Refresh() on untouched file = %v, %v", changed, err)
	}

	edited := Defaults()
	edited.NumDots = 25
	edited.Shape = "Star"
	if err := Save(path, edited); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	changed, err := store.Refresh()
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("Refresh() missed the edit")
	}
	if got := store.Snapshot(); got != edited {
		t.Fatalf("Snapshot() = %+v, want %+v", got, edited)
	}
	if changed, _ := store.Refresh(); changed {
		t.Fatal("second Refresh() reported a change")
	}
}

func TestStoreRefreshKeepsPreviousOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, _ := NewStore(path)

	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Refresh(); err == nil {
		t.Fatal("expected parse error")
	}
	if store.Snapshot() != Defaults() {
		t.Fatal("bad file replaced the settings")
	}
}

func TestStoreUpdateSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, _ := NewStore(path)

	s := Defaults()
	s.MaxSize = 42
	if err := store.Update(s); err != nil {
		t.Fatal(err)
	}
	if store.Snapshot().MaxSize != 42 {
		t.Fatal("Update() did not change the snapshot")
	}
	if changed, err := store.Refresh(); err != nil || changed {
		t.Fatalf("Refresh() after own Update = %v, %v", changed, err)
	}
	onDisk, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if onDisk.MaxSize != 42 {
		t.Fatalf("file MaxSize = %v, want 42", onDisk.MaxSize)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Defaults())
	if changed, err := store.Refresh(); changed || err != nil {
		t.Fatalf("Refresh() = %v, %v", changed, err)
	}
	s := Defaults()
	s.NumDots = 2
	if err := store.Update(s); err != nil {
		t.Fatal(err)
	}
	if store.Snapshot().NumDots != 2 {
		t.Fatal("Update() ignored")
	}
}
