package sound

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseCommand covers empty and multi-word command lines.
func TestParseCommand(t *testing.T) {
	t.Parallel()

	require.True(t, ParseCommand("   ").IsZero())

	c := ParseCommand("mpv --really-quiet {}")
	require.Equal(t, "mpv", c.Name)
	require.Equal(t, []string{"--really-quiet", Placeholder}, c.Args)
	require.Equal(t, "mpv --really-quiet {}", c.String())
}

// TestCommand_Build places the payload at the placeholder or at the end.
func TestCommand_Build(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cmd := Command{Name: "aplay", Args: []string{"-q"}}.build(ctx, "/tmp/a.wav")
	require.Equal(t, []string{"aplay", "-q", "/tmp/a.wav"}, cmd.Args)

	cmd = Command{Name: "play", Args: []string{"--file={}", "-v"}}.build(ctx, "a.wav")
	require.Equal(t, []string{"play", "--file=a.wav", "-v"}, cmd.Args)

	cmd = Command{Name: "powershell.exe", Args: []string{"Speak('{}')"}, quote: true}.build(ctx, "timer's up!")
	require.Equal(t, []string{"powershell.exe", "Speak('timer''s up!')"}, cmd.Args)
}

// TestDetect picks the first installed candidate.
func TestDetect(t *testing.T) {
	t.Parallel()

	candidates := []Command{{Name: "paplay"}, {Name: "aplay"}}

	found, err := detect(candidates, func(name string) (string, error) {
		if name == "aplay" {
			return "/usr/bin/aplay", nil
		}

		return "", exec.ErrNotFound
	})
	require.NoError(t, err)
	require.Equal(t, "aplay", found.Name)

	_, err = detect(candidates, func(string) (string, error) { return "", exec.ErrNotFound })
	require.ErrorIs(t, err, ErrNoCommand)
	require.ErrorContains(t, err, "paplay, aplay")
}
