// Package manifest describes the web shell asset manifest and persists the
// active one.
//
// The FileRepository stores the manifest of the active asset version as YAML
// next to the cached versions, so the host serves the same version after a
// restart until a newer build activates its own.
package manifest
