//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/oshokin/analog-timer/internal/config"
	pb "github.com/oshokin/analog-timer/internal/pb/v1"
)

// Client wraps the gRPC TimerService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the timer host.
	conn *grpc.ClientConn
	// api is the TimerService client interface.
	api pb.TimerServiceClient

	// callTimeout is the default timeout for individual unary calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for unary calls. Watch streams are not limited.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when an actor is not provided but is required for the operation.
	errActorRequired = errors.New("actor must be provided")
)

// Dial creates a client for the timer host at address.
// The connection uses insecure transport credentials; the host listens on loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial timer host: %w", err)
	}

	return newClient(conn, opts...), nil
}

// newClient wraps an established connection.
func newClient(conn *grpc.ClientConn, opts ...Option) *Client {
	client := &Client{
		conn:        conn,
		api:         pb.NewTimerServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetSnapshot retrieves the current timer snapshot.
func (c *Client) GetSnapshot(ctx context.Context, actor *pb.SystemActor) (*pb.SnapshotResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetSnapshot(callCtx, &pb.GetSnapshotRequest{RequestingActor: actor})
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return response, nil
}

// Dispatch sends one timer action. seconds is used by "add", limit by "set".
func (c *Client) Dispatch(
	ctx context.Context,
	actor *pb.SystemActor,
	action string,
	seconds int64,
	limit *pb.Limit,
) (*pb.SnapshotResponse, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	request := &pb.DispatchRequest{
		Action:  action,
		Seconds: seconds,
		Limit:   limit,
		Actor:   actor,
	}

	response, err := c.api.Dispatch(callCtx, request)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", action, err)
	}

	return response, nil
}

// Watch calls onSnapshot for the current snapshot and every change until ctx
// is done or the stream fails. A cancelled ctx is not an error.
func (c *Client) Watch(
	ctx context.Context,
	actor *pb.SystemActor,
	onSnapshot func(*pb.SnapshotResponse) error,
) error {
	stream, err := c.api.Watch(ctx, &pb.WatchRequest{RequestingActor: actor})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for {
		response, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("watch: %w", err)
		}

		if err = onSnapshot(response); err != nil {
			return err
		}
	}
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
