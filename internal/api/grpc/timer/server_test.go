package timer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/analog-timer/internal/domain/timer"
	pb "github.com/oshokin/analog-timer/internal/pb/v1"
	"github.com/oshokin/analog-timer/internal/service/engine"
)

// fakeService implements Service over a bare session for unit testing the transport.
type fakeService struct {
	// session is mutated synchronously by Dispatch.
	session *domain.Session
	// err is returned from every call when set.
	err error
	// commands records every dispatched command.
	commands []domain.Command
	// updates is handed out by Subscribe.
	updates chan domain.Snapshot
	// done is returned from Done.
	done chan struct{}
}

func newFakeService() *fakeService {
	return &fakeService{
		session: domain.NewSession(),
		updates: make(chan domain.Snapshot, 1),
		done:    make(chan struct{}),
	}
}

func (f *fakeService) Dispatch(_ context.Context, cmd domain.Command) (domain.Snapshot, error) {
	if f.err != nil {
		return domain.Snapshot{}, f.err
	}

	f.commands = append(f.commands, cmd)
	f.session.Apply(cmd)

	return f.session.Snapshot(), nil
}

func (f *fakeService) Snapshot(context.Context) (domain.Snapshot, error) {
	if f.err != nil {
		return domain.Snapshot{}, f.err
	}

	return f.session.Snapshot(), nil
}

func (f *fakeService) Subscribe() (<-chan domain.Snapshot, func()) {
	return f.updates, func() {}
}

func (f *fakeService) Done() <-chan struct{} { return f.done }

// fakeWatchStream collects sent responses.
type fakeWatchStream struct {
	grpc.ServerStream

	ctx  context.Context //nolint:containedctx // Stream contexts are per call.
	sent chan *pb.SnapshotResponse
}

func (s *fakeWatchStream) Context() context.Context { return s.ctx }

func (s *fakeWatchStream) Send(response *pb.SnapshotResponse) error {
	s.sent <- response

	return nil
}

func testActor() *pb.SystemActor {
	return &pb.SystemActor{
		Hostname: "test-hostname",
		Username: "test-user",
	}
}

// TestServer_Dispatch_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Dispatch_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(newFakeService())

	requests := []*pb.DispatchRequest{
		nil,
		{Action: "start"},
		{Action: "explode", Actor: testActor()},
		{Action: "tick", Actor: testActor()},
		{Action: "set", Actor: testActor()},
	}

	for _, request := range requests {
		_, err := s.Dispatch(context.Background(), request)
		require.Equal(t, codes.InvalidArgument, status.Code(err), "request %+v", request)
	}
}

// TestServer_Dispatch_Commands checks the conversion of every payload.
func TestServer_Dispatch_Commands(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	s := NewServer(service)
	s.now = func() time.Time { return time.Unix(100, 0) }

	response, err := s.Dispatch(context.Background(), &pb.DispatchRequest{
		Action: "set",
		Limit:  &pb.Limit{Minutes: 2, Seconds: 5},
		Actor:  testActor(),
	})
	require.NoError(t, err)
	require.Equal(t, "IDLE", response.GetState())
	require.Equal(t, "00:02:05", response.GetDisplay())
	require.EqualValues(t, 125, response.LimitSeconds)
	require.Equal(t, time.Unix(100, 0), response.Timestamp)

	response, err = s.Dispatch(context.Background(), &pb.DispatchRequest{
		Action:  "add",
		Seconds: -5,
		Actor:   testActor(),
	})
	require.NoError(t, err)
	require.Equal(t, "00:02:00", response.GetDisplay())

	response, err = s.Dispatch(context.Background(), &pb.DispatchRequest{Action: "resume", Actor: testActor()})
	require.NoError(t, err)
	require.Equal(t, "RUNNING", response.GetState())
	require.EqualValues(t, 120, response.Remaining)

	require.Len(t, service.commands, 3)
	require.Equal(t, -5, service.commands[1].Delta)
	require.Equal(t, domain.ActionStart, service.commands[2].Action)
	require.Equal(t, "test-user@test-hostname", service.commands[2].Actor.String())
}

// TestServer_ErrorMapping maps engine failures to status codes.
func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	s := NewServer(service)

	service.err = engine.ErrStopped

	_, err := s.Dispatch(context.Background(), &pb.DispatchRequest{Action: "stop", Actor: testActor()})
	require.Equal(t, codes.Unavailable, status.Code(err))

	_, err = s.GetSnapshot(context.Background(), nil)
	require.Equal(t, codes.Unavailable, status.Code(err))

	service.err = context.DeadlineExceeded

	_, err = s.GetSnapshot(context.Background(), new(pb.GetSnapshotRequest))
	require.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

// TestServer_Watch streams updates until the client leaves and fails once the engine stops.
func TestServer_Watch(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	s := NewServer(service)

	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeWatchStream{ctx: ctx, sent: make(chan *pb.SnapshotResponse, 1)}

	errCh := make(chan error, 1)

	go func() { errCh <- s.Watch(&pb.WatchRequest{RequestingActor: testActor()}, stream) }()

	service.updates <- service.session.Snapshot()
	require.Equal(t, "IDLE", (<-stream.sent).GetState())

	cancel()
	require.NoError(t, <-errCh)

	stream.ctx = context.Background()
	close(service.done)

	err := s.Watch(new(pb.WatchRequest), stream)
	require.Equal(t, codes.Unavailable, status.Code(err))
}
