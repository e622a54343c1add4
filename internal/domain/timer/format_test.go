package timer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFormat checks zero padding and decomposition on known values.
func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:          "00:00:00",
		59:         "00:00:59",
		60:         "00:01:00",
		3661:       "01:01:01",
		MaxSeconds: "99:59:59",
		-5:         "00:00:00",
	}

	for seconds, want := range cases {
		require.Equal(t, want, Format(seconds), "seconds=%d", seconds)
	}
}

// TestFormat_InjectiveAndMonotonic walks the whole range below the ceiling and
// verifies every rendering is unique and lexically increasing.
func TestFormat_InjectiveAndMonotonic(t *testing.T) {
	t.Parallel()

	previous := Format(0)
	for seconds := 1; seconds <= MaxSeconds; seconds++ {
		current := Format(seconds)
		if current <= previous {
			require.Failf(t, "not strictly increasing", "%d: %q <= %q", seconds, current, previous)
		}

		previous = current
	}
}
