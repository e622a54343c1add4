package timer

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/analog-timer/internal/domain/timer"
	"github.com/oshokin/analog-timer/internal/logger"
	pb "github.com/oshokin/analog-timer/internal/pb/v1"
	"github.com/oshokin/analog-timer/internal/service/engine"
)

// Service abstracts the engine operations the transport layer depends on.
type Service interface {
	Dispatch(ctx context.Context, cmd domain.Command) (domain.Snapshot, error)
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Subscribe() (<-chan domain.Snapshot, func())
	Done() <-chan struct{}
}

// Server implements the TimerService gRPC API.
type Server struct {
	// service runs the timer.
	service Service
	// now stamps outgoing snapshots.
	now func() time.Time
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
		now:     time.Now,
	}
}

// GetSnapshot returns the current timer snapshot.
func (s *Server) GetSnapshot(ctx context.Context, req *pb.GetSnapshotRequest) (*pb.SnapshotResponse, error) {
	logger.DebugKV(ctx, "Snapshot requested", "actor", toDomainActor(req.GetRequestingActor()).String())

	snapshot, err := s.service.Snapshot(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return toResponse(snapshot, s.now()), nil
}

// Dispatch applies a timer action and returns the resulting snapshot.
func (s *Server) Dispatch(ctx context.Context, req *pb.DispatchRequest) (*pb.SnapshotResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if req.GetActor() == nil {
		return nil, status.Error(codes.InvalidArgument, "actor is required")
	}

	cmd, err := toCommand(req)
	if err != nil {
		return nil, toStatus(err)
	}

	snapshot, err := s.service.Dispatch(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}

	return toResponse(snapshot, s.now()), nil
}

// Watch streams the current snapshot and then every change until the client
// goes away or the engine stops.
func (s *Server) Watch(req *pb.WatchRequest, stream pb.TimerServiceWatchServer) error {
	ctx := stream.Context()

	logger.DebugKV(ctx, "Watch started", "actor", toDomainActor(req.GetRequestingActor()).String())

	updates, cancel := s.service.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.service.Done():
			return status.Error(codes.Unavailable, engine.ErrStopped.Error())
		case snapshot, ok := <-updates:
			if !ok {
				return nil
			}

			if err := stream.Send(toResponse(snapshot, s.now())); err != nil {
				return err
			}
		}
	}
}

var errLimitRequired = errors.New("limit is required for set")

// toCommand converts a dispatch request to a domain command.
func toCommand(req *pb.DispatchRequest) (domain.Command, error) {
	action, err := domain.ParseAction(req.GetAction())
	if err != nil {
		return domain.Command{}, err
	}

	cmd := domain.Command{
		Action: action,
		Actor:  toDomainActor(req.GetActor()),
	}

	switch action {
	case domain.ActionTick:
		return domain.Command{}, engine.ErrTickNotAllowed
	case domain.ActionAddTime:
		cmd.Delta = int(req.GetSeconds())
	case domain.ActionSetLimit:
		limit := req.GetLimit()
		if limit == nil {
			return domain.Command{}, errLimitRequired
		}

		cmd.Limit = domain.Fields{
			Hours:   int(limit.Hours),
			Minutes: int(limit.Minutes),
			Seconds: int(limit.Seconds),
		}
	default:
	}

	return cmd, nil
}

// toStatus maps engine and validation errors to gRPC status errors.
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, engine.ErrTickNotAllowed),
		errors.Is(err, errLimitRequired):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, engine.ErrStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, "unable to apply command")
	}
}

// toDomainActor converts a wire SystemActor to a domain Actor.
func toDomainActor(actor *pb.SystemActor) *domain.Actor {
	if actor == nil {
		return nil
	}

	return &domain.Actor{
		Hostname: actor.GetHostname(),
		Username: actor.GetUsername(),
	}
}

// toResponse converts a domain snapshot to a wire response.
func toResponse(snapshot domain.Snapshot, timestamp time.Time) *pb.SnapshotResponse {
	return &pb.SnapshotResponse{
		State:   snapshot.State.String(),
		Display: snapshot.Display,
		Limit: &pb.Limit{
			Hours:   int32(snapshot.Limit.Hours),   //nolint:gosec // Bounded by the field ceilings.
			Minutes: int32(snapshot.Limit.Minutes), //nolint:gosec // Bounded by the field ceilings.
			Seconds: int32(snapshot.Limit.Seconds), //nolint:gosec // Bounded by the field ceilings.
		},
		LimitSeconds: int64(snapshot.LimitSeconds),
		Remaining:    int64(snapshot.Remaining),
		Elapsed:      int64(snapshot.Elapsed),
		Shown:        int64(snapshot.Shown),
		Timestamp:    timestamp,
	}
}
