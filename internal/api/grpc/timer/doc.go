// Package timer implements the gRPC transport for the timer engine.
//
// It adapts domain snapshots and commands to the wire messages and maps engine
// errors to gRPC status codes.
package timer
