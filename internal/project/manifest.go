package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SourceEntry names one declaration-tree fixture file a project translates.
type SourceEntry struct {
	Path string `toml:"path"`
}

// Manifest is a parsed schema.toml project manifest.
type Manifest struct {
	Project struct {
		Name               string `toml:"name"`
		OutDir             string `toml:"out_dir"`
		CacheDir           string `toml:"cache_dir"`
		CompileAnnotations bool   `toml:"compile_annotations"`
	} `toml:"project"`
	Sources []SourceEntry `toml:"sources"`

	// Dir is the directory the manifest was loaded from; Sources' Path
	// fields are resolved relative to it.
	Dir string `toml:"-"`
}

// LoadManifest reads and parses the schema.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("decode manifest %q: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	if m.Project.OutDir == "" {
		m.Project.OutDir = "."
	}
	if m.Project.CacheDir == "" {
		m.Project.CacheDir = ".schemac-cache"
	}
	return &m, nil
}

// SourcePaths returns every source fixture's path, resolved relative to the
// manifest's directory.
func (m *Manifest) SourcePaths() []string {
	paths := make([]string, 0, len(m.Sources))
	for _, s := range m.Sources {
		p := s.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Dir, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// OutDir resolves the manifest's output directory relative to its own
// directory.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Project.OutDir) {
		return m.Project.OutDir
	}
	return filepath.Join(m.Dir, m.Project.OutDir)
}

// CacheDir resolves the manifest's cache directory relative to its own
// directory.
func (m *Manifest) CacheDir() string {
	if filepath.IsAbs(m.Project.CacheDir) {
		return m.Project.CacheDir
	}
	return filepath.Join(m.Dir, m.Project.CacheDir)
}
