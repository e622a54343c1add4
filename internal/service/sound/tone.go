package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/oshokin/analog-timer/internal/logger"
)

const (
	// SampleRate of the synthesized tone in Hz.
	SampleRate = 22050
	// BitDepth of the synthesized tone.
	BitDepth = 16

	// toneSeconds is the total length of the cue.
	toneSeconds = 1.0
	// noteSpacing is the delay between note onsets in seconds.
	noteSpacing = 0.2
	// noteAttack is when a note reaches peakGain, relative to its onset.
	noteAttack = 0.05
	// noteRelease is when a note is silent again, relative to its onset.
	noteRelease = 0.18
	// peakGain is the loudest point of every note.
	peakGain = 0.3

	toneFilePattern = "analog-timer-alarm-*.wav"
	wavFormatPCM = 1
)

// ErrNoPlayer is returned when no audio player is available.
var ErrNoPlayer = errors.New("no audio player")

// arpeggio holds the C5, E5 and G5 frequencies in Hz.
//
//nolint:gochecknoglobals // Constant table.
var arpeggio = [...]float64{523.25, 659.25, 783.99}

// breakpoint is a point of the piecewise linear gain envelope.
type breakpoint struct {
	at   float64
	gain float64
}

// ToneGenerator plays the alarm arpeggio. The WAV file is rendered once into a
// temporary directory and reused for every Play.
type ToneGenerator struct {
	player   Command
	dir      string
	lookPath func(string) (string, error)

	mu   sync.Mutex
	path string
}

// NewToneGenerator returns a generator using playerCommand, or the first
// detected player when it is empty.
func NewToneGenerator(playerCommand string) *ToneGenerator {
	return &ToneGenerator{
		player:   ParseCommand(playerCommand),
		dir:      os.TempDir(),
		lookPath: exec.LookPath,
	}
}

// Play starts the player on the rendered cue and returns immediately.
func (g *ToneGenerator) Play(ctx context.Context) error {
	player, err := g.resolvePlayer()
	if err != nil {
		return err
	}

	path, err := g.render()
	if err != nil {
		return err
	}

	cmd := player.build(ctx, path)
	if err = cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", player.Name, err)
	}

	logger.DebugKV(ctx, "Playing tone", "player", player.Name, "pid", cmd.Process.Pid)

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Close removes the rendered file.
func (g *ToneGenerator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.path == "" {
		return nil
	}

	err := os.Remove(g.path)
	g.path = ""

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func (g *ToneGenerator) resolvePlayer() (Command, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.player.IsZero() {
		return g.player, nil
	}

	player, err := detect(playerCandidates(), g.lookPath)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrNoPlayer, err)
	}

	g.player = player

	return player, nil
}

func (g *ToneGenerator) render() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.path != "" {
		if _, err := os.Stat(g.path); err == nil {
			return g.path, nil
		}
	}

	// A fresh exclusive name per render; the shared temp dir may hold
	// files or symlinks planted by other users.
	file, err := os.CreateTemp(g.dir, toneFilePattern)
	if err != nil {
		return "", fmt.Errorf("create tone file: %w", err)
	}

	path := file.Name()

	if err = WriteWAV(file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)

		return "", err
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("close tone file: %w", err)
	}

	g.path = path

	return path, nil
}

// WriteWAV encodes the arpeggio as 16-bit mono PCM.
func WriteWAV(w io.WriteSeeker) error {
	encoder := wav.NewEncoder(w, SampleRate, BitDepth, 1, wavFormatPCM)

	buffer := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           Samples(),
		SourceBitDepth: BitDepth,
	}

	if err := encoder.Write(buffer); err != nil {
		return fmt.Errorf("encode tone: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finish tone: %w", err)
	}

	return nil
}

// Samples renders the arpeggio: a single sine oscillator that changes pitch
// at every onset, shaped by a linear attack and release per note.
func Samples() []int {
	var (
		count     = int(toneSeconds * SampleRate)
		data      = make([]int, count)
		points    = envelope()
		amplitude = float64(math.MaxInt16)
		phase     float64
	)

	for i := range count {
		t := float64(i) / SampleRate
		data[i] = int(math.Round(math.Sin(phase) * gainAt(points, t) * amplitude))
		phase += 2 * math.Pi * frequencyAt(t) / SampleRate
	}

	return data
}

// envelope returns the gain breakpoints of the cue.
func envelope() []breakpoint {
	points := make([]breakpoint, 0, 1+2*len(arpeggio))
	points = append(points, breakpoint{})

	for i := range arpeggio {
		onset := float64(i) * noteSpacing
		points = append(points,
			breakpoint{at: onset + noteAttack, gain: peakGain},
			breakpoint{at: onset + noteRelease})
	}

	return points
}

// gainAt interpolates the envelope; it is zero after the last breakpoint.
func gainAt(points []breakpoint, t float64) float64 {
	for i := 1; i < len(points); i++ {
		if t > points[i].at {
			continue
		}

		from, to := points[i-1], points[i]

		return from.gain + (to.gain-from.gain)*(t-from.at)/(to.at-from.at)
	}

	return 0
}

// frequencyAt returns the oscillator frequency; the last note holds until the end.
func frequencyAt(t float64) float64 {
	index := min(int(t/noteSpacing), len(arpeggio)-1)

	return arpeggio[index]
}
