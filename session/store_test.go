package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/askdesk/askdesk-go/access"
	"github.com/askdesk/askdesk-go/consts"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	rec := NewRecord("h.p.s", Profile{Username: "alice", Role: access.RoleAdmin}, time.Now())
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after Save")
	}
	if loaded.Token != rec.Token || loaded.User != rec.User || loaded.LoginTime != rec.LoginTime {
		t.Errorf("loaded record differs: %+v != %+v", loaded, rec)
	}
}

func TestStoreLoadAbsent(t *testing.T) {
	store := NewStore(t.TempDir())
	rec, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected no record, got %+v", rec)
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, consts.SessionFile)

	for _, content := range []string{"{not json", `{"token":""}`, `{"user":{"username":"x"}}`} {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to seed corrupt record: %v", err)
		}

		store := NewStore(dir)
		rec, err := store.Load()
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", content, err)
		}
		if rec != nil {
			t.Errorf("Load(%q) = %+v, want nil", content, rec)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("corrupt record %q was not healed away", content)
		}
	}
}

func TestStoreClearIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Clear()
	store.Clear()

	rec := NewRecord("h.p.s", Profile{Username: "bob", Role: access.RoleViewer}, time.Now())
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Clear()
	if rec, _ := store.Load(); rec != nil {
		t.Errorf("record survived Clear: %+v", rec)
	}
}
