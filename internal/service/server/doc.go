// Package server hosts the timer engine together with its surfaces: the
// terminal UI, the gRPC control API and the offline web shell.
package server
