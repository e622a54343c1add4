// Package tui renders the timer in the terminal with bubbletea: an analog
// clock face drawn on a character canvas, the digit display, the limit inputs
// and the key bindings that drive the engine.
package tui
