package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/analog-timer/internal/config"
	pb "github.com/oshokin/analog-timer/internal/pb/v1"
	"github.com/oshokin/analog-timer/internal/service/common"
	"github.com/oshokin/analog-timer/internal/service/server"
)

// host describes a headless timer started for one test.
type host struct {
	configPath string
	listen     string
	web        string
	cacheDir   string
}

// reservePort returns a free loopback address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startHost runs a headless host with a fast tick until the test ends.
func startHost(t *testing.T) *host {
	t.Helper()

	dir := t.TempDir()
	h := &host{
		configPath: filepath.Join(dir, "settings.yaml"),
		listen:     reservePort(t),
		web:        reservePort(t),
		cacheDir:   filepath.Join(dir, "cache"),
	}

	require.NoError(t, config.Save(h.configPath, &config.Config{
		ListenAddress: h.listen,
		WebAddress:    h.web,
		CacheDir:      h.cacheDir,
		Timeout:       3 * time.Second,
		TickInterval:  20 * time.Millisecond,
		AlarmInterval: 50 * time.Millisecond,
		PlayerCommand: "true",
		SpeechCommand: "true",
		LogLevel:      "debug",
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{
			ConfigPath: h.configPath,
			Headless:   true,
		})
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// Wait until the control API answers.
	c := dial(t, h.listen)
	require.Eventually(t, func() bool {
		_, err := c.GetSnapshot(context.Background(), testActor())
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	return h
}

func dial(t *testing.T, addr string) *common.Client {
	t.Helper()

	c, err := common.Dial(context.Background(), addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func testActor() *pb.SystemActor {
	return &pb.SystemActor{
		Hostname: "test-hostname",
		Username: "test-user",
	}
}
