// Package timer contains the countdown timer domain: the State enum, the
// Session state machine with its single Apply entry point, the HH:MM:SS
// formatter and the limit field helpers used by every input surface.
//
// Session is not safe for concurrent use; the engine owns it from a single
// goroutine.
package timer
