package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/analog-timer/internal/config"
	domain "github.com/oshokin/analog-timer/internal/domain/timer"
	"github.com/oshokin/analog-timer/internal/logger"
	pb "github.com/oshokin/analog-timer/internal/pb/v1"
	"github.com/oshokin/analog-timer/internal/service/common"
)

const (
	// ActionStatus prints the current snapshot.
	ActionStatus = "status"
	// ActionWatch prints every snapshot until interrupted.
	ActionWatch = "watch"
)

// defaultRetryInterval defines the delay between attempts while waiting for the host.
const defaultRetryInterval = 1 * time.Second

var (
	errArgumentRequired = errors.New("argument required")
	errBadDelta         = errors.New("expected a duration like 30s or a number of seconds")
)

// Options configures a timerctl invocation.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// Address overrides the host address from config when specified.
	Address string

	// Action is status, watch or a timer action name.
	Action string

	// Argument is the duration for "add" and the clock value for "set".
	Argument string

	// Wait keeps retrying while the host is unavailable.
	Wait bool

	// Out receives the printed snapshots, os.Stdout when nil.
	Out io.Writer
}

// Run performs one timerctl action against the timer host.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "timerctl")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	address := cfg.ListenAddress
	if opts.Address != "" {
		address = opts.Address
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, address, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Sending request", "address", address, "action", opts.Action)

	call, err := newCall(client, actor, opts, out)
	if err != nil {
		return err
	}

	return retry(ctx, opts.Wait, call)
}

// newCall validates the action and returns the request to perform.
func newCall(
	client *common.Client,
	actor *pb.SystemActor,
	opts *Options,
	out io.Writer,
) (func(ctx context.Context) error, error) {
	printSnapshot := func(response *pb.SnapshotResponse) error {
		_, err := fmt.Fprintln(out, FormatSnapshot(response))

		return err
	}

	switch opts.Action {
	case ActionStatus:
		return func(ctx context.Context) error {
			response, err := client.GetSnapshot(ctx, actor)
			if err != nil {
				return err
			}

			return printSnapshot(response)
		}, nil
	case ActionWatch:
		return func(ctx context.Context) error {
			return client.Watch(ctx, actor, printSnapshot)
		}, nil
	}

	action, err := domain.ParseAction(opts.Action)
	if err != nil {
		return nil, err
	}

	var (
		seconds int64
		limit   *pb.Limit
	)

	switch action {
	case domain.ActionAddTime:
		if seconds, err = ParseDelta(opts.Argument); err != nil {
			return nil, err
		}
	case domain.ActionSetLimit:
		if limit, err = parseLimit(opts.Argument); err != nil {
			return nil, err
		}
	default:
	}

	return func(ctx context.Context) error {
		response, err := client.Dispatch(ctx, actor, action.String(), seconds, limit)
		if err != nil {
			return err
		}

		return printSnapshot(response)
	}, nil
}

// retry runs call once, or until it stops failing with Unavailable when wait is set.
func retry(ctx context.Context, wait bool, call func(ctx context.Context) error) error {
	attempt := func() (bool, error) {
		err := call(ctx)
		if err == nil {
			return true, nil
		}

		if wait && status.Code(err) == codes.Unavailable {
			logger.DebugKV(ctx, "Timer host unavailable, retrying", "error", err)

			return false, nil
		}

		return false, err
	}

	if done, err := attempt(); err != nil || done {
		return err
	}

	ticker := time.NewTicker(defaultRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			done, err := attempt()
			if err != nil || done {
				return err
			}
		}
	}
}

// ParseDelta converts "30s", "-1m30s" or "90" to seconds.
func ParseDelta(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("add: %w", errArgumentRequired)
	}

	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return seconds, nil
	}

	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, errBadDelta)
	}

	return int64(duration / time.Second), nil
}

// parseLimit converts a clock value to the wire limit.
func parseLimit(raw string) (*pb.Limit, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("set: %w", errArgumentRequired)
	}

	fields, err := domain.ParseClock(raw)
	if err != nil {
		return nil, err
	}

	return &pb.Limit{
		Hours:   int32(fields.Hours),   //nolint:gosec // Clamped by ParseClock.
		Minutes: int32(fields.Minutes), //nolint:gosec // Clamped by ParseClock.
		Seconds: int32(fields.Seconds), //nolint:gosec // Clamped by ParseClock.
	}, nil
}

// FormatSnapshot converts a snapshot response to a readable line.
func FormatSnapshot(response *pb.SnapshotResponse) string {
	if response == nil {
		return "<nil snapshot>"
	}

	timestamp := "<unknown>"
	if !response.Timestamp.IsZero() {
		timestamp = response.Timestamp.Format(time.RFC3339)
	}

	limit := domain.Format(int(response.LimitSeconds))

	return fmt.Sprintf("%-8s %s (limit %s) at %s", response.GetState(), response.GetDisplay(), limit, timestamp)
}
