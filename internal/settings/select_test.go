package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSelectPrefersKeyValueBackend(t *testing.T) {
	dir := t.TempDir()
	sel, err := Select(filepath.Join(dir, "settings.db"), filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if sel.Backend != BackendKeyValue {
		t.Fatalf("backend = %q, want %q", sel.Backend, BackendKeyValue)
	}
	if len(sel.Snapshot) != 0 {
		t.Fatalf("fresh snapshot not empty: %v", sel.Snapshot)
	}
	if kv, ok := sel.Store.(*KVStore); ok {
		_ = kv.Close()
	} else {
		t.Fatalf("store is %T, want *KVStore", sel.Store)
	}
}

func TestSelectFallsBackWhenKVUnavailable(t *testing.T) {
	t.Setenv(EnvNoKVStore, "1")
	dir := t.TempDir()
	sel, err := Select(filepath.Join(dir, "settings.db"), filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if sel.Backend != BackendDocument {
		t.Fatalf("backend = %q, want %q", sel.Backend, BackendDocument)
	}
	if _, ok := sel.Store.(*DocumentStore); !ok {
		t.Fatalf("store is %T, want *DocumentStore", sel.Store)
	}
}

func TestSelectedStoreHandlesTheSave(t *testing.T) {
	t.Setenv(EnvNoKVStore, "1")
	dir := t.TempDir()
	docPath := filepath.Join(dir, "settings.json")
	sel, err := Select(filepath.Join(dir, "settings.db"), docPath)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if err := sel.Store.Save("Sam", "red"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	// The save must have landed in the document file, not the kv store.
	if _, err := os.Stat(docPath); err != nil {
		t.Fatalf("document file missing after save: %v", err)
	}
	m, err := NewDocument(docPath).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}
	if m["Sam"] != "red" {
		t.Fatalf("save did not reach document backend: %v", m)
	}
}

func TestSelectPropagatesDocumentErrors(t *testing.T) {
	t.Setenv(EnvNoKVStore, "1")
	dir := t.TempDir()
	docPath := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(docPath, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Select(filepath.Join(dir, "settings.db"), docPath); err == nil {
		t.Fatalf("expected corrupt document error to propagate")
	}
}

func TestSelectSnapshotReflectsExistingData(t *testing.T) {
	dir := t.TempDir()
	kvPath := filepath.Join(dir, "settings.db")
	kv, err := OpenKV(kvPath)
	if err != nil {
		t.Fatalf("OpenKV error: %v", err)
	}
	if err := kv.Save("Ada", "cyan"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	sel, err := Select(kvPath, filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	defer func() {
		if kv, ok := sel.Store.(*KVStore); ok {
			_ = kv.Close()
		}
	}()
	if sel.Snapshot["Ada"] != "cyan" {
		t.Fatalf("snapshot missing persisted record: %v", sel.Snapshot)
	}
}
