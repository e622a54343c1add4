package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/domain/timer"
	"github.com/oshokin/analog-timer/internal/logger"
)

var (
	// ErrStopped is returned when the engine loop is not running anymore.
	ErrStopped = errors.New("timer engine stopped")
	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("timer engine already running")
	// ErrTickNotAllowed is returned when a tick is dispatched from outside the tick driver.
	ErrTickNotAllowed = errors.New("tick is driven by the engine")
)

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	TickInterval  time.Duration
	AlarmInterval time.Duration
	Phrase        string
	Scheduler     Scheduler
	Tone          Tone
	Speech        Speech
}

// Engine owns the timer session and its periodic drivers.
type Engine struct {
	session       *timer.Session
	scheduler     Scheduler
	tickInterval  time.Duration
	alarmInterval time.Duration
	alarm         *alarm

	// Owned by the Run goroutine.
	tick Ticker
	ring Ticker

	requests chan request
	done     chan struct{}
	running  atomic.Bool

	mu          sync.Mutex
	last        timer.Snapshot
	subscribers map[int]chan timer.Snapshot
	nextID      int
}

// request is a command or a snapshot query handed to the loop.
type request struct {
	command *timer.Command
	reply   chan timer.Snapshot
}

// New creates an engine with an IDLE session. Call Run to start it.
func New(opts Options) *Engine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = config.DefaultTickInterval
	}

	if opts.AlarmInterval <= 0 {
		opts.AlarmInterval = config.DefaultAlarmInterval
	}

	if opts.Phrase == "" {
		opts.Phrase = config.DefaultPhrase
	}

	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler{}
	}

	if opts.Tone == nil {
		opts.Tone = nopTone{}
	}

	if opts.Speech == nil {
		opts.Speech = nopSpeech{}
	}

	session := timer.NewSession()

	return &Engine{
		session:       session,
		scheduler:     opts.Scheduler,
		tickInterval:  opts.TickInterval,
		alarmInterval: opts.AlarmInterval,
		alarm: &alarm{
			tone:   opts.Tone,
			speech: opts.Speech,
			phrase: opts.Phrase,
		},
		requests:    make(chan request),
		done:        make(chan struct{}),
		last:        session.Snapshot(),
		subscribers: make(map[int]chan timer.Snapshot),
	}
}

// Run processes commands and ticks until ctx is done.
// Every periodic handle is released and speech is cancelled before it returns.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx = logger.WithName(ctx, "engine")

	defer close(e.done)
	defer e.release(ctx)

	logger.Debug(ctx, "Timer engine started")

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Timer engine stopping")

			return nil
		case req := <-e.requests:
			if req.command == nil {
				req.reply <- e.session.Snapshot()

				continue
			}

			req.reply <- e.apply(ctx, *req.command)
		case <-channel(e.tick):
			e.apply(ctx, timer.Command{Action: timer.ActionTick})
		case <-channel(e.ring):
			e.alarm.ring(ctx)
		}
	}
}

// Dispatch applies cmd and returns the snapshot right after the mutation.
// Commands that are invalid for the current state are no-ops and still return a snapshot.
func (e *Engine) Dispatch(ctx context.Context, cmd timer.Command) (timer.Snapshot, error) {
	if cmd.Action == timer.ActionTick {
		return timer.Snapshot{}, ErrTickNotAllowed
	}

	if _, err := timer.ParseAction(cmd.Action.String()); err != nil {
		return timer.Snapshot{}, err
	}

	return e.roundTrip(ctx, &cmd)
}

// Snapshot returns the current view of the session.
func (e *Engine) Snapshot(ctx context.Context) (timer.Snapshot, error) {
	return e.roundTrip(ctx, nil)
}

// Subscribe returns a channel that always holds the latest snapshot, starting with the current one.
// Slow readers skip intermediate snapshots. The cancel function closes the channel.
func (e *Engine) Subscribe() (<-chan timer.Snapshot, func()) {
	ch := make(chan timer.Snapshot, 1)

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subscribers[id] = ch
	ch <- e.last
	e.mu.Unlock()

	var once sync.Once

	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()

			if _, ok := e.subscribers[id]; ok {
				delete(e.subscribers, id)
				close(ch)
			}
		})
	}

	return ch, cancel
}

// Done is closed once Run has returned.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) roundTrip(ctx context.Context, cmd *timer.Command) (timer.Snapshot, error) {
	reply := make(chan timer.Snapshot, 1)

	select {
	case e.requests <- request{command: cmd, reply: reply}:
	case <-e.done:
		return timer.Snapshot{}, ErrStopped
	case <-ctx.Done():
		return timer.Snapshot{}, fmt.Errorf("dispatch: %w", ctx.Err())
	}

	return <-reply, nil
}

func (e *Engine) apply(ctx context.Context, cmd timer.Command) timer.Snapshot {
	transition := e.session.Apply(cmd)

	if transition.Changed() {
		logger.InfoKV(ctx, "Timer state changed",
			"action", cmd.Action.String(),
			"from", transition.From.String(),
			"to", transition.To.String(),
			"actor", cmd.Actor.String())

		e.reconcile(ctx, transition)
	} else if cmd.Action != timer.ActionTick {
		logger.DebugKV(ctx, "Timer command applied",
			"action", cmd.Action.String(),
			"state", transition.To.String(),
			"actor", cmd.Actor.String())
	}

	snapshot := e.session.Snapshot()
	e.publish(snapshot)

	return snapshot
}

// reconcile releases the handles of the state that was left and acquires the
// handles of the state that was entered.
func (e *Engine) reconcile(ctx context.Context, transition timer.Transition) {
	if transition.From.Ringing() {
		e.stopRing(ctx)
	}

	if transition.From.Ticking() && e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}

	if transition.To.Ticking() {
		e.tick = e.scheduler.Every(e.tickInterval)
	}

	if transition.To.Ringing() {
		e.alarm.ring(ctx)
		e.ring = e.scheduler.Every(e.alarmInterval)
	}
}

func (e *Engine) stopRing(ctx context.Context) {
	if e.ring != nil {
		e.ring.Stop()
		e.ring = nil
	}

	e.alarm.silence(ctx)
}

func (e *Engine) release(ctx context.Context) {
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}

	e.stopRing(ctx)
}

func (e *Engine) publish(snapshot timer.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.last = snapshot

	for _, ch := range e.subscribers {
		// Drop the stale value so the latest always fits.
		select {
		case <-ch:
		default:
		}

		ch <- snapshot
	}
}
