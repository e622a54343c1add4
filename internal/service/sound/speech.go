package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/analog-timer/internal/logger"
)

// ErrNoSpeech is returned when no speech program is available.
var ErrNoSpeech = errors.New("no speech engine")

// Speaker speaks phrases through an external speech program.
type Speaker struct {
	command   Command
	lookPath  func(string) (string, error)
	processes func() ([]ps.Process, error)

	mu      sync.Mutex
	current *exec.Cmd
}

// NewSpeaker returns a speaker using speechCommand, or the first detected
// speech program when it is empty.
func NewSpeaker(speechCommand string) *Speaker {
	return &Speaker{
		command:   ParseCommand(speechCommand),
		lookPath:  exec.LookPath,
		processes: ps.Processes,
	}
}

// Speak starts an utterance of phrase and returns immediately.
func (s *Speaker) Speak(ctx context.Context, phrase string) error {
	command, err := s.resolve()
	if err != nil {
		return err
	}

	cmd := command.build(ctx, phrase)
	if err = cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", command.Name, err)
	}

	s.mu.Lock()
	s.current = cmd
	s.mu.Unlock()

	logger.DebugKV(ctx, "Speaking", "program", command.Name, "phrase", phrase)

	go s.wait(cmd)

	return nil
}

// IsSpeaking reports whether an own utterance is in flight or the speech
// engine is busy in another process.
func (s *Speaker) IsSpeaking() bool {
	s.mu.Lock()
	own := s.current != nil
	engine := s.command.Engine
	s.mu.Unlock()

	if own {
		return true
	}

	if engine == "" {
		return false
	}

	return s.engineRunning(engine)
}

// Cancel kills the own utterance if there is one.
func (s *Speaker) Cancel() error {
	s.mu.Lock()
	cmd := s.current
	s.current = nil
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill speech: %w", err)
	}

	return nil
}

func (s *Speaker) wait(cmd *exec.Cmd) {
	_ = cmd.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == cmd {
		s.current = nil
	}
}

func (s *Speaker) resolve() (Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.command.IsZero() {
		return s.command, nil
	}

	command, err := detect(speechCandidates(), s.lookPath)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrNoSpeech, err)
	}

	s.command = command

	return command, nil
}

// engineRunning scans the process table for the speech engine.
func (s *Speaker) engineRunning(engine string) bool {
	processList, err := s.processes()
	if err != nil {
		return false
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == engine {
			return true
		}
	}

	return false
}
