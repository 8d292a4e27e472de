package settings

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestKV(t *testing.T) *KVStore {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("OpenKV error: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVLoadAllEmptyOnFreshStore(t *testing.T) {
	kv := openTestKV(t)
	m, err := kv.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("fresh store not empty: %v", m)
	}
}

func TestKVSaveAndLoadRoundTrip(t *testing.T) {
	kv := openTestKV(t)
	if err := kv.Save("Sam", "red"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := kv.Save("Ada", "blue"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	m, err := kv.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}
	if m["Sam"] != "red" || m["Ada"] != "blue" {
		t.Fatalf("round trip mismatch: %v", m)
	}
}

func TestKVSaveOverwritesExistingName(t *testing.T) {
	kv := openTestKV(t)
	if err := kv.Save("Sam", "red"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := kv.Save("Sam", "blue"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	m, err := kv.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}
	if got, want := m["Sam"], "blue"; got != want {
		t.Fatalf("color = %q, want %q", got, want)
	}
	if len(m) != 1 {
		t.Fatalf("overwrite created extra rows: %v", m)
	}
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	kv, err := OpenKV(path)
	if err != nil {
		t.Fatalf("OpenKV error: %v", err)
	}
	if err := kv.Save("Sam", "red"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	kv2, err := OpenKV(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer func() { _ = kv2.Close() }()
	m, err := kv2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll error: %v", err)
	}
	if m["Sam"] != "red" {
		t.Fatalf("record did not survive reopen: %v", m)
	}
}

func TestOpenKVDisabledByEnv(t *testing.T) {
	t.Setenv(EnvNoKVStore, "1")
	_, err := OpenKV(filepath.Join(t.TempDir(), "settings.db"))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestOpenKVEmptyPath(t *testing.T) {
	if _, err := OpenKV("  "); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}
