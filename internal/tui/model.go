package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/analog-timer/internal/domain/timer"
)

const (
	// clockRadius is the face radius in rows.
	clockRadius = 8
	// dispatchTimeout bounds one engine round trip.
	dispatchTimeout = time.Second
	// noFocus means the controls, not an input, receive keys.
	noFocus = -1
)

// Engine is the part of the timer engine the UI drives.
type Engine interface {
	Dispatch(ctx context.Context, cmd timer.Command) (timer.Snapshot, error)
	Subscribe() (<-chan timer.Snapshot, func())
}

// Options configures the UI.
type Options struct {
	// QuickAdd lists the add-time presets.
	QuickAdd []time.Duration
	// Listen and Web are shown in the footer when set.
	Listen string
	Web    string
}

// snapshotMsg carries a snapshot published by the engine.
type snapshotMsg timer.Snapshot

// engineStoppedMsg is sent when the subscription closes.
type engineStoppedMsg struct{}

// Model is the bubbletea model of the timer screen.
type Model struct {
	engine   Engine
	updates  <-chan timer.Snapshot
	snapshot timer.Snapshot

	inputs [3]textinput.Model
	focus  int

	keys keyMap
	help help.Model

	footer string
	err    error
}

// NewModel creates the model; updates is the engine subscription.
func NewModel(engine Engine, updates <-chan timer.Snapshot, opts Options) Model {
	var inputs [3]textinput.Model

	for i, placeholder := range []string{"HH", "MM", "SS"} {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 2
		input.Width = 2
		input.Prompt = ""
		input.SetValue("00")
		inputs[i] = input
	}

	var footer []string
	if opts.Listen != "" {
		footer = append(footer, "control api "+opts.Listen)
	}

	if opts.Web != "" {
		footer = append(footer, "web http://"+opts.Web)
	}

	return Model{
		engine:  engine,
		updates: updates,
		inputs:  inputs,
		focus:   noFocus,
		keys:    newKeyMap(opts.QuickAdd),
		help:    help.New(),
		footer:  strings.Join(footer, "  "),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

// waitForSnapshot blocks on the subscription in a command goroutine.
func waitForSnapshot(updates <-chan timer.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return engineStoppedMsg{}
		}

		return snapshotMsg(snapshot)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.applySnapshot(timer.Snapshot(msg))

		return m, waitForSnapshot(m.updates)
	case engineStoppedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		if m.focus != noFocus {
			return m.updateInput(msg)
		}

		return m.updateControls(msg)
	}

	return m, nil
}

func (m Model) updateControls(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		switch m.snapshot.State {
		case timer.StateRunning:
			m.dispatch(timer.Command{Action: timer.ActionPause})
		case timer.StateIdle, timer.StatePaused:
			m.dispatch(timer.Command{Action: timer.ActionStart})
		case timer.StateFinished:
		}
	case key.Matches(msg, m.keys.Stop):
		m.dispatch(timer.Command{Action: timer.ActionStop})
	case key.Matches(msg, m.keys.Reset):
		m.dispatch(timer.Command{Action: timer.ActionReset})
	case key.Matches(msg, m.keys.Dismiss):
		m.dispatch(timer.Command{Action: timer.ActionAcknowledge})
	case key.Matches(msg, m.keys.NextField):
		return m, m.focusField(0)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusField(len(m.inputs) - 1)
	default:
		for _, p := range m.keys.Presets {
			if key.Matches(msg, p.binding) {
				m.dispatch(timer.Command{Action: timer.ActionAddTime, Delta: p.seconds})

				break
			}
		}
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Blur):
		m.commitLimit()
		m.blur()

		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.commitLimit()

		if m.focus == len(m.inputs)-1 {
			m.blur()

			return m, nil
		}

		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		m.commitLimit()

		if m.focus == 0 {
			m.blur()

			return m, nil
		}

		return m, m.focusField(m.focus - 1)
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		// Only digits reach the field.
		msg.Runes = digitsOnly(msg.Runes)
		if len(msg.Runes) == 0 {
			return m, nil
		}

		// A full field rolls: the newest digit pushes the oldest out.
		input := &m.inputs[m.focus]
		if value := input.Value(); len(value) >= input.CharLimit {
			input.SetValue(value[min(len(msg.Runes), len(value)):])
			input.CursorEnd()
		}
	}

	var cmd tea.Cmd

	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.commitLimit()

	return m, cmd
}

func digitsOnly(runes []rune) []rune {
	digits := make([]rune, 0, len(runes))

	for _, r := range runes {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	return digits
}

// focusField moves the cursor into input i; inputs are only editable while IDLE.
func (m *Model) focusField(i int) tea.Cmd {
	if m.snapshot.State != timer.StateIdle {
		return nil
	}

	m.blur()
	m.focus = i

	return m.inputs[i].Focus()
}

func (m *Model) blur() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}

	m.focus = noFocus
	m.syncInputs()
}

// commitLimit sends the sanitized input values as the new limit.
func (m *Model) commitLimit() {
	fields := m.fields()
	if fields == m.snapshot.Limit {
		return
	}

	m.dispatch(timer.Command{Action: timer.ActionSetLimit, Limit: fields})
}

func (m *Model) fields() timer.Fields {
	return timer.Fields{
		Hours:   timer.ParseField(m.inputs[0].Value(), timer.MaxHourField),
		Minutes: timer.ParseField(m.inputs[1].Value(), timer.MaxMinuteField),
		Seconds: timer.ParseField(m.inputs[2].Value(), timer.MaxSecondField),
	}
}

// dispatch runs cmd synchronously so key presses apply in order.
func (m *Model) dispatch(cmd timer.Command) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	snapshot, err := m.engine.Dispatch(ctx, cmd)
	if err != nil {
		m.err = err

		return
	}

	m.err = nil
	m.applySnapshot(snapshot)
}

func (m *Model) applySnapshot(snapshot timer.Snapshot) {
	m.snapshot = snapshot

	if snapshot.State != timer.StateIdle && m.focus != noFocus {
		m.blur()
	}

	m.syncInputs()
}

// syncInputs shows the session limit in every input except the one being edited.
func (m *Model) syncInputs() {
	limit := m.snapshot.Limit

	values := [3]int{limit.Hours, limit.Minutes, limit.Seconds}
	for i := range m.inputs {
		if i == m.focus {
			continue
		}

		m.inputs[i].SetValue(fmt.Sprintf("%02d", values[i]))
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var face, banner string

	if m.snapshot.State == timer.StateFinished {
		face = RenderSunflower()
		banner = bannerStyle.Render("Timer Complete!")
	} else {
		face = RenderClock(m.snapshot.Shown, clockRadius)
	}

	sections := []string{
		titleStyle.Render("Analog Timer") + " " + stateStyle(m.snapshot.State.String()).Render(m.snapshot.State.String()),
		clockStyle.Render(face),
	}

	if banner != "" {
		sections = append(sections, banner)
	}

	sections = append(sections,
		displayStyle.Render(m.snapshot.Display),
		m.limitView(),
	)

	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}

	if m.footer != "" {
		sections = append(sections, mutedStyle.Render(m.footer))
	}

	sections = append(sections, m.help.View(m.keys))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m Model) limitView() string {
	parts := make([]string, 0, len(m.inputs))

	for i, input := range m.inputs {
		style := inputStyle

		switch {
		case m.snapshot.State != timer.StateIdle:
			style = inputLockedStyle
		case i == m.focus:
			style = inputFocusedStyle
		}

		parts = append(parts, style.Render(input.View()))
	}

	return mutedStyle.Render("limit ") + strings.Join(parts, mutedStyle.Render(":"))
}

// Run shows the UI until the user quits, ctx is done or the engine stops.
func Run(ctx context.Context, engine Engine, opts Options) error {
	updates, cancel := engine.Subscribe()
	defer cancel()

	program := tea.NewProgram(
		NewModel(engine, updates, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	return nil
}
