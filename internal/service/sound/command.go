package sound

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Placeholder marks where the payload goes in command arguments.
// Without it the payload is appended as the last argument.
const Placeholder = "{}"

// ErrNoCommand is returned when none of the candidate programs is installed.
var ErrNoCommand = errors.New("no suitable program found")

// Command is an external program invocation that receives one payload.
type Command struct {
	// Name is the executable name or path.
	Name string
	// Args are the arguments; Placeholder is replaced by the payload.
	Args []string
	// Engine is the process name reported while the program is busy; empty disables the check.
	Engine string
	// quote doubles single quotes in the payload for PowerShell literals.
	quote bool
}

// ParseCommand splits a configured command line into a Command.
// An empty line yields the zero Command, meaning "detect".
func ParseCommand(line string) Command {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}
	}

	return Command{
		Name:   parts[0],
		Args:   parts[1:],
		Engine: executableName(parts[0]),
	}
}

// IsZero reports whether the command is unset.
func (c Command) IsZero() bool {
	return c.Name == ""
}

// String renders the command line with the placeholder left in place.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// build prepares the process for payload.
func (c Command) build(ctx context.Context, payload string) *exec.Cmd {
	if c.quote {
		payload = strings.ReplaceAll(payload, "'", "''")
	}

	args := make([]string, 0, len(c.Args)+1)
	replaced := false

	for _, arg := range c.Args {
		if strings.Contains(arg, Placeholder) {
			arg = strings.ReplaceAll(arg, Placeholder, payload)
			replaced = true
		}

		args = append(args, arg)
	}

	if !replaced {
		args = append(args, payload)
	}

	return exec.CommandContext(ctx, c.Name, args...)
}

// detect returns the first candidate whose executable is on PATH.
func detect(candidates []Command, lookPath func(string) (string, error)) (Command, error) {
	names := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		if _, err := lookPath(candidate.Name); err == nil {
			return candidate, nil
		}

		names = append(names, candidate.Name)
	}

	return Command{}, fmt.Errorf("tried %s on %s: %w", strings.Join(names, ", "), runtime.GOOS, ErrNoCommand)
}

// executableName returns the process name the OS reports for the program.
func executableName(name string) string {
	base := filepath.Base(name)
	if isWindows() && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		base += ".exe"
	}

	return base
}

func isWindows() bool {
	return strings.Contains(strings.ToLower(runtime.GOOS), "windows")
}

// playerCandidates lists the audio players tried in order for the current OS.
func playerCandidates() []Command {
	switch {
	case isWindows():
		return []Command{{
			Name:  "powershell.exe",
			Args:  []string{"-NoProfile", "-Command", "(New-Object Media.SoundPlayer '" + Placeholder + "').PlaySync()"},
			quote: true,
		}}
	case runtime.GOOS == "darwin":
		return []Command{{Name: "afplay"}}
	default:
		return []Command{
			{Name: "paplay"},
			{Name: "aplay", Args: []string{"-q"}},
		}
	}
}

// speechCandidates lists the speech programs tried in order for the current OS.
func speechCandidates() []Command {
	switch {
	case isWindows():
		return []Command{{
			Name: "powershell.exe",
			Args: []string{
				"-NoProfile", "-Command",
				"Add-Type -AssemblyName System.Speech; " +
					"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('" + Placeholder + "')",
			},
			quote: true,
		}}
	case runtime.GOOS == "darwin":
		return []Command{{Name: "say", Engine: "say"}}
	default:
		return []Command{
			{Name: "spd-say", Args: []string{"--wait"}},
			{Name: "espeak-ng", Engine: "espeak-ng"},
			{Name: "espeak", Engine: "espeak"},
		}
	}
}
