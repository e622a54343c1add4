package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/analog-timer/internal/domain/timer"
)

var errEngineDown = errors.New("engine down")

// fakeEngine applies commands to a session synchronously.
type fakeEngine struct {
	mu      sync.Mutex
	session *timer.Session
	err     error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{session: timer.NewSession()}
}

func (e *fakeEngine) Dispatch(_ context.Context, cmd timer.Command) (timer.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return timer.Snapshot{}, e.err
	}

	e.session.Apply(cmd)

	return e.session.Snapshot(), nil
}

func (e *fakeEngine) Subscribe() (<-chan timer.Snapshot, func()) {
	ch := make(chan timer.Snapshot, 1)
	ch <- e.session.Snapshot()

	return ch, func() {}
}

func (e *fakeEngine) snapshot() timer.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.session.Snapshot()
}

func newTestModel(t *testing.T, engine *fakeEngine) Model {
	t.Helper()

	updates, cancel := engine.Subscribe()
	t.Cleanup(cancel)

	m := NewModel(engine, updates, Options{QuickAdd: []time.Duration{30 * time.Second, time.Minute}})

	msg := m.Init()()
	require.IsType(t, snapshotMsg{}, msg)

	return update(t, m, msg)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)

	model, ok := next.(Model)
	require.True(t, ok)

	return model
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()

	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}

	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestModel_ToggleStartsAndPauses(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	m = press(t, m, "+", "m")
	require.Equal(t, 90, engine.snapshot().LimitSeconds)
	require.Equal(t, "00:01:30", m.snapshot.Display)

	m = press(t, m, " ")
	require.Equal(t, timer.StateRunning, m.snapshot.State)

	m = press(t, m, " ")
	require.Equal(t, timer.StatePaused, m.snapshot.State)

	m = press(t, m, " ")
	require.Equal(t, timer.StateRunning, m.snapshot.State)

	m = press(t, m, "s")
	require.Equal(t, timer.StateIdle, m.snapshot.State)
	require.Equal(t, 90, m.snapshot.LimitSeconds)

	m = press(t, m, "r")
	require.Zero(t, m.snapshot.LimitSeconds)
}

func TestModel_EditLimit(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	m = press(t, m, "tab")
	require.Equal(t, 0, m.focus)

	// Hours: "00" rolls to "01".
	m = press(t, m, "1")
	require.Equal(t, "01", m.inputs[0].Value())
	require.Equal(t, timer.Fields{Hours: 1}, engine.snapshot().Limit)

	// Minutes: non-digits never show up, the value is clamped.
	m = press(t, m, "tab", "x", " ")
	require.Equal(t, "00", m.inputs[1].Value())

	m = press(t, m, "7", "a", "5")
	require.Equal(t, 1, m.focus)
	require.Equal(t, "75", m.inputs[1].Value())
	require.Equal(t, timer.Fields{Hours: 1, Minutes: 59}, engine.snapshot().Limit)

	m = press(t, m, "esc")
	require.Equal(t, noFocus, m.focus)
	require.Equal(t, "59", m.inputs[1].Value())
	require.Equal(t, "01:59:00", m.snapshot.Display)

	// Wrapping past the last field leaves edit mode.
	m = press(t, m, "shift+tab", "tab")
	require.Equal(t, noFocus, m.focus)
}

func TestDigitsOnly(t *testing.T) {
	t.Parallel()

	require.Equal(t, []rune("42"), digitsOnly([]rune("4a-2 ")))
	require.Empty(t, digitsOnly([]rune("x")))
}

func TestModel_InputsLockedOutsideIdle(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	m = press(t, m, "+", " ", "tab")
	require.Equal(t, timer.StateRunning, m.snapshot.State)
	require.Equal(t, noFocus, m.focus)

	m = press(t, m, "5")
	require.Equal(t, 30, engine.snapshot().Remaining)
}

func TestModel_FocusDroppedWhenEngineStarts(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	m = press(t, m, "+", "tab")
	require.Equal(t, 0, m.focus)

	// Started from another surface.
	_, err := engine.Dispatch(context.Background(), timer.Command{Action: timer.ActionStart})
	require.NoError(t, err)

	m = update(t, m, snapshotMsg(engine.snapshot()))
	require.Equal(t, noFocus, m.focus)
}

func TestModel_FinishedView(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	for _, cmd := range []timer.Command{
		{Action: timer.ActionSetLimit, Limit: timer.FieldsFrom(1)},
		{Action: timer.ActionStart},
		{Action: timer.ActionTick},
	} {
		_, err := engine.Dispatch(context.Background(), cmd)
		require.NoError(t, err)
	}

	m = update(t, m, snapshotMsg(engine.snapshot()))
	require.Equal(t, timer.StateFinished, m.snapshot.State)

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Timer Complete!")
	require.Contains(t, view, "(@@@)")
	require.Contains(t, view, "+00:00:00")

	m = press(t, m, "enter")
	require.Equal(t, timer.StateIdle, m.snapshot.State)
	require.NotContains(t, ansi.Strip(m.View()), "Timer Complete!")
}

func TestModel_DispatchError(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	engine.err = errEngineDown

	m = press(t, m, " ")
	require.ErrorIs(t, m.err, errEngineDown)
	require.Contains(t, ansi.Strip(m.View()), errEngineDown.Error())
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	m := newTestModel(t, engine)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(engineStoppedMsg{})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	updates := make(chan timer.Snapshot)
	close(updates)
	require.IsType(t, engineStoppedMsg{}, waitForSnapshot(updates)())
}
