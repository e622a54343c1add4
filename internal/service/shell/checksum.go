package shell

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"

	"github.com/oshokin/analog-timer/internal/repository/manifest"

	// Ensure SHA512 available for checksum calculation.
	_ "crypto/sha512"
)

// ChecksumFunction is used to calculate asset checksums.
const ChecksumFunction = crypto.SHA512

var errHashUnavailable = errors.New("hash function unavailable")

// BuildManifest lists every regular file of fsys with its base64 checksum.
func BuildManifest(fsys fs.FS, version string) (*manifest.Manifest, error) {
	m := manifest.New(version)

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		checksum, err := Checksum(data)
		if err != nil {
			return err
		}

		m.Files[name] = base64.StdEncoding.EncodeToString(checksum)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build manifest: %w", err)
	}

	return m, nil
}

// Checksum returns the checksum of data using ChecksumFunction.
func Checksum(data []byte) ([]byte, error) {
	if !ChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := ChecksumFunction.New()
	if _, err := hasher.Write(data); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}
