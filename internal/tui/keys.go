package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// presetKeys are bound to the quick-add presets in order.
//
//nolint:gochecknoglobals // Lookup table.
var presetKeys = []string{"+", "m", "3", "4", "5", "6", "7", "8", "9"}

// keyMap lists every binding of the main view.
type keyMap struct {
	Toggle    key.Binding
	Stop      key.Binding
	Reset     key.Binding
	Dismiss   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Blur      key.Binding
	Help      key.Binding
	Quit      key.Binding
	Presets   []preset
}

// preset is a quick-add binding.
type preset struct {
	binding key.Binding
	seconds int
}

func newKeyMap(quickAdd []time.Duration) keyMap {
	keys := keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "dismiss"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "edit limit"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	for i, duration := range quickAdd {
		if i >= len(presetKeys) {
			break
		}

		keys.Presets = append(keys.Presets, preset{
			binding: key.NewBinding(
				key.WithKeys(presetKeys[i]),
				key.WithHelp(presetKeys[i], "add "+presetLabel(duration)),
			),
			seconds: int(duration / time.Second),
		})
	}

	return keys
}

// presetLabel renders 30s as "+30s" and 60s as "+1min".
func presetLabel(duration time.Duration) string {
	seconds := int(duration / time.Second)
	sign := "+"

	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	if seconds%60 == 0 {
		return fmt.Sprintf("%s%dmin", sign, seconds/60)
	}

	return fmt.Sprintf("%s%ds", sign, seconds)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.Toggle, k.Stop, k.Reset}
	for _, p := range k.Presets {
		bindings = append(bindings, p.binding)
	}

	return append(bindings, k.NextField, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	presets := make([]key.Binding, 0, len(k.Presets))
	for _, p := range k.Presets {
		presets = append(presets, p.binding)
	}

	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Reset, k.Dismiss},
		presets,
		{k.NextField, k.PrevField, k.Blur},
		{k.Help, k.Quit},
	}
}
