// Package shell serves the offline web shell.
//
// The embedded assets are installed into a versioned directory under the
// cache dir with checksum verification, the installed version is recorded as
// the active manifest and older versions are purged. Requests are answered
// from the active version first; misses go to the configured upstream.
package shell
