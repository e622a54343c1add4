package shell

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/logger"
	"github.com/oshokin/analog-timer/internal/repository/manifest"
)

const (
	// ActiveManifestFilename is the active manifest file inside the cache dir.
	ActiveManifestFilename = "active.yaml"

	// assetFileMode is the mode of installed assets.
	assetFileMode os.FileMode = 0o644
)

var (
	errBadVersion = errors.New("version cannot be used as a directory name")
	errNoChecksum = errors.New("no checksum in manifest")
	errMismatch   = errors.New("checksum mismatch")
)

// Cache installs asset versions under a directory and tracks the active one.
type Cache struct {
	// dir holds one subdirectory per installed version.
	dir string
	// repo persists the active manifest.
	repo manifest.Repository

	mu     sync.RWMutex
	active *manifest.Manifest
}

// NewCache creates a cache rooted at dir that records the active manifest in repo.
func NewCache(dir string, repo manifest.Repository) *Cache {
	return &Cache{
		dir:  filepath.Clean(dir),
		repo: repo,
	}
}

// NewFileCache creates a cache rooted at dir with the active manifest stored inside it.
func NewFileCache(dir string) *Cache {
	return NewCache(dir, manifest.NewFileRepository(filepath.Join(dir, ActiveManifestFilename)))
}

// Prepare makes the assets of fsys the active version, installing them only
// when the active manifest differs or the installed files are damaged.
func (c *Cache) Prepare(ctx context.Context, fsys fs.FS, version string) error {
	ctx = logger.WithName(ctx, "shell-cache")

	wanted, err := BuildManifest(fsys, version)
	if err != nil {
		return err
	}

	active, err := c.Load(ctx)
	if err != nil {
		return err
	}

	if active.Equal(wanted) {
		if err = c.verify(active); err == nil {
			logger.DebugKV(ctx, "Shell assets are up to date", "version", version)

			return nil
		}

		logger.WarnKV(ctx, "Installed shell assets are damaged, reinstalling", "version", version, "error", err)
	}

	if err = c.Install(ctx, fsys, wanted); err != nil {
		return err
	}

	return c.Activate(ctx, wanted)
}

// Load reads the active manifest; it returns nil without error when none was activated yet.
func (c *Cache) Load(ctx context.Context) (*manifest.Manifest, error) {
	active, err := c.repo.Load(ctx)

	switch {
	case err == nil:
	case errors.Is(err, manifest.ErrNotFound):
		active = nil
	default:
		return nil, fmt.Errorf("load active manifest: %w", err)
	}

	c.mu.Lock()
	c.active = active
	c.mu.Unlock()

	return active.Clone(), nil
}

// Install writes every file of m from fsys into the version directory,
// verifying each against its manifest checksum.
func (c *Cache) Install(ctx context.Context, fsys fs.FS, m *manifest.Manifest) error {
	versionDir, err := c.versionDir(m.Version)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Installing shell assets", "version", m.Version, "dir", versionDir)

	for _, name := range m.Names() {
		if err = c.installFile(ctx, fsys, m, versionDir, name); err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
	}

	return nil
}

func (c *Cache) installFile(ctx context.Context, fsys fs.FS, m *manifest.Manifest, versionDir, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}

	checksum, err := decodeChecksum(m, name)
	if err != nil {
		return err
	}

	target := filepath.Join(versionDir, filepath.FromSlash(name))

	if err = os.MkdirAll(filepath.Dir(target), config.DefaultDirPermissions); err != nil {
		return err
	}

	// The update replaces an existing file, so a new one starts empty.
	if _, err = os.Stat(target); errors.Is(err, os.ErrNotExist) {
		var file *os.File

		if file, err = os.Create(target); err != nil {
			return err
		}

		if err = file.Close(); err != nil {
			return err
		}
	}

	logger.DebugKV(ctx, "Applying asset", "file", name)

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: assetFileMode,
		Checksum:   checksum,
		Hash:       ChecksumFunction,
	}

	return goupdate.Apply(bytes.NewReader(data), options)
}

// Activate records m as the active manifest and removes every other version.
func (c *Cache) Activate(ctx context.Context, m *manifest.Manifest) error {
	if _, err := c.versionDir(m.Version); err != nil {
		return err
	}

	activated := m.Clone()
	activated.ActivatedAt = time.Now().UTC()

	if err := c.repo.Save(ctx, activated); err != nil {
		return fmt.Errorf("save active manifest: %w", err)
	}

	c.mu.Lock()
	c.active = activated
	c.mu.Unlock()

	logger.InfoKV(ctx, "Shell assets activated", "version", activated.Version)

	return c.purge(ctx, activated.Version)
}

// Lookup returns the installed path of name in the active version.
func (c *Cache) Lookup(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.active == nil || !c.active.Has(name) {
		return "", false
	}

	return filepath.Join(c.dir, c.active.Version, filepath.FromSlash(name)), true
}

// purge removes every version directory except keep.
func (c *Cache) purge(ctx context.Context, keep string) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == keep {
			continue
		}

		logger.InfoKV(ctx, "Removing stale shell assets", "version", entry.Name())

		if err = os.RemoveAll(filepath.Join(c.dir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// verify compares the installed files of m with their checksums.
func (c *Cache) verify(m *manifest.Manifest) error {
	versionDir, err := c.versionDir(m.Version)
	if err != nil {
		return err
	}

	for _, name := range m.Names() {
		data, err := os.ReadFile(filepath.Join(versionDir, filepath.FromSlash(name)))
		if err != nil {
			return err
		}

		want, err := decodeChecksum(m, name)
		if err != nil {
			return err
		}

		got, err := Checksum(data)
		if err != nil {
			return err
		}

		if !bytes.Equal(want, got) {
			return fmt.Errorf("%s: %w", name, errMismatch)
		}
	}

	return nil
}

func (c *Cache) versionDir(version string) (string, error) {
	if version == "" || version == "." || version == ".." || path.Base(version) != version ||
		filepath.Base(version) != version {
		return "", fmt.Errorf("%q: %w", version, errBadVersion)
	}

	return filepath.Join(c.dir, version), nil
}

func decodeChecksum(m *manifest.Manifest, name string) ([]byte, error) {
	encoded, ok := m.Files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errNoChecksum)
	}

	return base64.StdEncoding.DecodeString(encoded)
}
