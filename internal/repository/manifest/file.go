package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/analog-timer/internal/config"
)

// Repository defines persistence operations for the active manifest.
type Repository interface {
	Load(ctx context.Context) (*Manifest, error)
	Save(ctx context.Context, manifest *Manifest) error
}

// FileRepository persists the active manifest to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the YAML manifest file.
	path string
	// mu protects concurrent access to the manifest file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when no manifest has been activated yet.
	ErrNotFound = errors.New("manifest not found")
	// errNoVersion is returned when saving a manifest without a version.
	errNoVersion = errors.New("manifest version is empty")
)

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the manifest file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the manifest from disk.
func (r *FileRepository) Load(_ context.Context) (*Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	var manifest Manifest
	if err = yaml.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("decode manifest file: %w", err)
	}

	if manifest.Version == "" {
		return nil, fmt.Errorf("decode manifest file: %w", errNoVersion)
	}

	if manifest.Files == nil {
		manifest.Files = make(map[string]string)
	}

	return &manifest, nil
}

// Save writes the manifest to disk, creating the parent directory if needed.
func (r *FileRepository) Save(_ context.Context, manifest *Manifest) error {
	if manifest == nil || manifest.Version == "" {
		return errNoVersion
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(r.path), config.DefaultDirPermissions); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest file: %w", err)
	}

	return nil
}
