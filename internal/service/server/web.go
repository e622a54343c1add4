package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/logger"
	"github.com/oshokin/analog-timer/internal/service/shell"
	"github.com/oshokin/analog-timer/internal/version"
)

// serveWeb installs the shell assets into the cache and serves them with the
// JSON API on lis until ctx is canceled.
func serveWeb(ctx context.Context, lis net.Listener, settings *config.Config, engine shell.Engine) error {
	ctx = logger.WithName(ctx, "web-shell")

	cache := shell.NewFileCache(settings.CacheDir)
	if err := cache.Prepare(ctx, shell.Assets(), version.Short()); err != nil {
		_ = lis.Close()

		return fmt.Errorf("prepare shell cache: %w", err)
	}

	handler, err := shell.NewHandler(cache, settings.WebUpstream)
	if err != nil {
		_ = lis.Close()

		return err
	}

	httpServer := &http.Server{
		Handler:           shell.NewRouter(handler, shell.NewAPI(engine)),
		ReadHeaderTimeout: settings.Timeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logger.InfoKV(ctx, "Web shell listening", "web_address", lis.Addr().String(), "version", version.Short())

	done := make(chan struct{})

	go func() {
		defer close(done)

		<-ctx.Done()
		logger.Info(ctx, "Shutting down web shell")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settings.Timeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WarnKV(ctx, "Web shell shutdown failed", "error", err)
		}
	}()

	if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve web shell: %w", err)
	}

	<-done
	logger.Info(ctx, "Web shell stopped")

	return nil
}
