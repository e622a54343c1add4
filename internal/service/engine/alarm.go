package engine

import (
	"context"

	"github.com/oshokin/analog-timer/internal/logger"
)

// Tone plays a short audible cue. Play must not block for the cue's duration.
type Tone interface {
	Play(ctx context.Context) error
}

// Speech speaks a phrase aloud. Speak must not block for the utterance.
type Speech interface {
	Speak(ctx context.Context, phrase string) error
	IsSpeaking() bool
	Cancel() error
}

// alarm issues the finished notification: the tone, then the phrase unless
// speech is still busy with a previous one.
type alarm struct {
	tone   Tone
	speech Speech
	phrase string
}

// ring issues one notification. Capability failures are logged and dropped.
func (a *alarm) ring(ctx context.Context) {
	if err := a.tone.Play(ctx); err != nil {
		logger.DebugKV(ctx, "Tone unavailable", "error", err)
	}

	if a.speech.IsSpeaking() {
		logger.Debug(ctx, "Speech busy, skipping phrase")

		return
	}

	if err := a.speech.Speak(ctx, a.phrase); err != nil {
		logger.DebugKV(ctx, "Speech unavailable", "error", err)
	}
}

// silence cuts an utterance that is still in progress.
func (a *alarm) silence(ctx context.Context) {
	if !a.speech.IsSpeaking() {
		return
	}

	if err := a.speech.Cancel(); err != nil {
		logger.DebugKV(ctx, "Cancel speech failed", "error", err)
	}
}

// nopTone is used when no tone capability is wired.
type nopTone struct{}

func (nopTone) Play(context.Context) error { return nil }

// nopSpeech is used when no speech capability is wired.
type nopSpeech struct{}

func (nopSpeech) Speak(context.Context, string) error { return nil }

func (nopSpeech) IsSpeaking() bool { return false }

func (nopSpeech) Cancel() error { return nil }
