package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestDefaultsOutAndCacheDir(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "demo"

[[sources]]
path = "a.toml"

[[sources]]
path = "b.toml"
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != "demo" {
		t.Fatalf("name = %q, want demo", m.Project.Name)
	}
	if m.Project.OutDir != "." {
		t.Fatalf("OutDir = %q, want .", m.Project.OutDir)
	}
	if m.Project.CacheDir != ".schemac-cache" {
		t.Fatalf("CacheDir = %q, want .schemac-cache", m.Project.CacheDir)
	}

	paths := m.SourcePaths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 source paths, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "a.toml" || filepath.Base(paths[1]) != "b.toml" {
		t.Fatalf("unexpected source paths: %v", paths)
	}
}

func TestLoadManifestRespectsExplicitDirs(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "demo"
out_dir = "build"
cache_dir = "cache"
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if filepath.Base(m.OutDir()) != "build" {
		t.Fatalf("OutDir() = %q, want .../build", m.OutDir())
	}
	if filepath.Base(m.CacheDir()) != "cache" {
		t.Fatalf("CacheDir() = %q, want .../cache", m.CacheDir())
	}
}

func TestHashFileIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")
	if err := os.WriteFile(path, []byte("kind = \"struct\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	d1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	d2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("HashFile is not deterministic: %x != %x", d1, d2)
	}
}
