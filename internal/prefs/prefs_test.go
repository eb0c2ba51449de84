package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", p.PageSize, defaultPageSize)
	}
	if p.ReplicaFilter != defaultReplicaFilter {
		t.Fatalf("ReplicaFilter = %q, want %q", p.ReplicaFilter, defaultReplicaFilter)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "tavu")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("page_size = 25\nreplica_filter = \"user\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.PageSize != 25 {
		t.Fatalf("PageSize = %d, want 25", p.PageSize)
	}
	if p.ReplicaFilter != "user" {
		t.Fatalf("ReplicaFilter = %q, want user", p.ReplicaFilter)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("page_size = -3\nreplica_filter = \"broken\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", p.PageSize, defaultPageSize)
	}
	if p.ReplicaFilter != defaultReplicaFilter {
		t.Fatalf("ReplicaFilter = %q, want %q", p.ReplicaFilter, defaultReplicaFilter)
	}
}

func TestLoad_CorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("page_size = ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", p.PageSize, defaultPageSize)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{PageSize: 15, ReplicaFilter: "system"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
