package pb

import (
	"context"
	"errors"

	"google.golang.org/grpc"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "analogtimer.v1.TimerService"

	// MethodGetSnapshot is the full GetSnapshot method name.
	MethodGetSnapshot = "/" + ServiceName + "/GetSnapshot"
	// MethodDispatch is the full Dispatch method name.
	MethodDispatch = "/" + ServiceName + "/Dispatch"
	// MethodWatch is the full Watch method name.
	MethodWatch = "/" + ServiceName + "/Watch"
)

var errInvalidRequestType = errors.New("invalid request type")

// TimerServiceServer is the server API for TimerService.
type TimerServiceServer interface {
	GetSnapshot(ctx context.Context, in *GetSnapshotRequest) (*SnapshotResponse, error)
	Dispatch(ctx context.Context, in *DispatchRequest) (*SnapshotResponse, error)
	Watch(in *WatchRequest, stream TimerServiceWatchServer) error
}

// TimerServiceWatchServer is the server side of a Watch stream.
type TimerServiceWatchServer interface {
	Send(response *SnapshotResponse) error
	grpc.ServerStream
}

// TimerServiceClient is the client API for TimerService.
type TimerServiceClient interface {
	GetSnapshot(ctx context.Context, in *GetSnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error)
	Dispatch(ctx context.Context, in *DispatchRequest, opts ...grpc.CallOption) (*SnapshotResponse, error)
	Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (TimerServiceWatchClient, error)
}

// TimerServiceWatchClient is the client side of a Watch stream.
type TimerServiceWatchClient interface {
	Recv() (*SnapshotResponse, error)
	grpc.ClientStream
}

type timerServiceClient struct {
	conn grpc.ClientConnInterface
}

// NewTimerServiceClient returns a client that sends every call with the JSON codec.
//
//nolint:ireturn // Mirrors generated gRPC clients.
func NewTimerServiceClient(conn grpc.ClientConnInterface) TimerServiceClient {
	return &timerServiceClient{conn: conn}
}

func (c *timerServiceClient) GetSnapshot(
	ctx context.Context,
	in *GetSnapshotRequest,
	opts ...grpc.CallOption,
) (*SnapshotResponse, error) {
	out := new(SnapshotResponse)
	if err := c.conn.Invoke(ctx, MethodGetSnapshot, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *timerServiceClient) Dispatch(
	ctx context.Context,
	in *DispatchRequest,
	opts ...grpc.CallOption,
) (*SnapshotResponse, error) {
	out := new(SnapshotResponse)
	if err := c.conn.Invoke(ctx, MethodDispatch, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}

	return out, nil
}

//nolint:ireturn // Mirrors generated gRPC clients.
func (c *timerServiceClient) Watch(
	ctx context.Context,
	in *WatchRequest,
	opts ...grpc.CallOption,
) (TimerServiceWatchClient, error) {
	stream, err := c.conn.NewStream(ctx, &TimerServiceDesc.Streams[0], MethodWatch, withCodec(opts)...)
	if err != nil {
		return nil, err
	}

	if err = stream.SendMsg(in); err != nil {
		return nil, err
	}

	if err = stream.CloseSend(); err != nil {
		return nil, err
	}

	return &timerServiceWatchClient{ClientStream: stream}, nil
}

type timerServiceWatchClient struct {
	grpc.ClientStream
}

func (x *timerServiceWatchClient) Recv() (*SnapshotResponse, error) {
	out := new(SnapshotResponse)
	if err := x.RecvMsg(out); err != nil {
		return nil, err
	}

	return out, nil
}

type timerServiceWatchServer struct {
	grpc.ServerStream
}

func (x *timerServiceWatchServer) Send(response *SnapshotResponse) error {
	return x.SendMsg(response)
}

// RegisterTimerServiceServer registers srv on s.
func RegisterTimerServiceServer(s grpc.ServiceRegistrar, srv TimerServiceServer) {
	s.RegisterService(&TimerServiceDesc, srv)
}

// TimerServiceDesc is the grpc.ServiceDesc for TimerService.
//
//nolint:gochecknoglobals // Service descriptors are package level in generated code too.
var TimerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TimerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSnapshot",
			Handler:    getSnapshotHandler,
		},
		{
			MethodName: "Dispatch",
			Handler:    dispatchHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "analogtimer/v1/timer.proto",
}

func getSnapshotHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetSnapshotRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TimerServiceServer).GetSnapshot(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetSnapshot}
	handler := func(ctx context.Context, req any) (any, error) {
		request, ok := req.(*GetSnapshotRequest)
		if !ok {
			return nil, errInvalidRequestType
		}

		return srv.(TimerServiceServer).GetSnapshot(ctx, request) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	return interceptor(ctx, in, info, handler)
}

func dispatchHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(DispatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TimerServiceServer).Dispatch(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDispatch}
	handler := func(ctx context.Context, req any) (any, error) {
		request, ok := req.(*DispatchRequest)
		if !ok {
			return nil, errInvalidRequestType
		}

		return srv.(TimerServiceServer).Dispatch(ctx, request) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	return interceptor(ctx, in, info, handler)
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	return srv.(TimerServiceServer).Watch(in, &timerServiceWatchServer{ServerStream: stream}) //nolint:forcetypeassert,lll // Guaranteed by HandlerType.
}

// withCodec prepends the JSON content subtype to the call options.
func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
