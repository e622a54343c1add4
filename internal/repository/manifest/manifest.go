package manifest

import (
	"maps"
	"slices"
	"time"
)

// defaultMapCapacity is the initial capacity of the file map.
const defaultMapCapacity = 8

// Manifest lists the files of one asset version with their checksums.
type Manifest struct {
	// Version names the cache directory the files are installed into.
	Version string `yaml:"version"`
	// Files maps slash-separated file names to base64-encoded SHA-512 checksums.
	Files map[string]string `yaml:"files"`
	// ActivatedAt is set when the version becomes active.
	ActivatedAt time.Time `yaml:"activated_at,omitempty"`
}

// New returns an empty manifest for version.
func New(version string) *Manifest {
	return &Manifest{
		Version: version,
		Files:   make(map[string]string, defaultMapCapacity),
	}
}

// Names returns the file names in lexical order.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(m.Files))
}

// Has reports whether name belongs to the manifest.
func (m *Manifest) Has(name string) bool {
	if m == nil {
		return false
	}

	_, ok := m.Files[name]

	return ok
}

// Equal reports whether both manifests describe the same files.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}

	return m.Version == other.Version && maps.Equal(m.Files, other.Files)
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}

	cloned := *m
	cloned.Files = maps.Clone(m.Files)

	return &cloned
}
