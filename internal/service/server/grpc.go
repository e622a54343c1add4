package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	api "github.com/oshokin/analog-timer/internal/api/grpc/timer"
	"github.com/oshokin/analog-timer/internal/logger"
	pb "github.com/oshokin/analog-timer/internal/pb/v1"
)

// serveGRPC serves the control API on lis until ctx is canceled.
func serveGRPC(ctx context.Context, lis net.Listener, service api.Service) error {
	ctx = logger.WithName(ctx, "control-api")

	grpcServer := grpc.NewServer()
	pb.RegisterTimerServiceServer(grpcServer, api.NewServer(service))

	logger.InfoKV(ctx, "Control API listening", "listen_address", lis.Addr().String())

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		// Open Watch streams return once the engine stops, which lets GracefulStop finish.
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}
