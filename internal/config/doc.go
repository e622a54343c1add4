// Package config defines the timer settings used by both binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the control API and web shell addresses, the driver
// cadences, the alarm phrase, the sound command overrides, the quick-add
// presets and the logging destination.
package config
