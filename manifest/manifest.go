// Package manifest handles kapila.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a kapila.toml project configuration.
type Manifest struct {
	Project Project `toml:"project"`
	Runtime Runtime `toml:"runtime"`
	Output  Output  `toml:"output"`
	Store   Store   `toml:"store"`

	// Dir is the directory containing the kapila.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Runtime configures session limits. Zero values select the machine
// defaults.
type Runtime struct {
	StackCapacity int   `toml:"stack-capacity"`
	MaxHeapBytes  int64 `toml:"max-heap-bytes"`
	MaxCallDepth  int   `toml:"max-call-depth"`
	Strict        bool  `toml:"strict"`
}

// Output configures the boolean print tokens. Empty values select the
// Kannada defaults.
type Output struct {
	TrueToken  string `toml:"true-token"`
	FalseToken string `toml:"false-token"`
}

// Store configures word persistence.
type Store struct {
	Path string `toml:"path"`
}

// Load parses a kapila.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "kapila.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a kapila.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "kapila.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// StorePath returns the configured word store path resolved against the
// manifest directory, or "" when no store is configured.
func (m *Manifest) StorePath() string {
	if m.Store.Path == "" {
		return ""
	}
	if filepath.IsAbs(m.Store.Path) {
		return m.Store.Path
	}
	return filepath.Join(m.Dir, m.Store.Path)
}
