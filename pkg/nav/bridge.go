package nav

import (
	"context"
	"log/slog"
	"sync"
)

// Subscriber is a registered interest in address-bar changes. The bridge
// invokes it once per delivered Location, in registration order.
type Subscriber func(Location)

// Observer receives bridge activity callbacks. Used by the middleware
// package to export metrics without the bridge importing a metrics library.
type Observer interface {
	// CommandExecuted is called after each command is applied.
	CommandExecuted(cmd Command)

	// FanOut is called after a Location is delivered, with the number
	// of subscribers that received it.
	FanOut(subscribers int)

	// ListenerState is called when the listener task is spawned (true)
	// or terminated (false).
	ListenerState(active bool)
}

// nopObserver is the default Observer.
type nopObserver struct{}

func (nopObserver) CommandExecuted(Command) {}
func (nopObserver) FanOut(int)              {}
func (nopObserver) ListenerState(bool)      {}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger. Defaults to slog.Default scoped to
// the "bridge" component.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithObserver sets the bridge observer.
func WithObserver(obs Observer) Option {
	return func(b *Bridge) {
		b.observer = obs
	}
}

// Bridge reconciles the declared set of commands and subscriptions for an
// update cycle against the host's History capability and the listener task.
//
// One Reconcile call runs at a time per bridge; callers (in practice the
// program runtime's single event loop) must not overlap cycles. The
// subscriber list is still mutex-guarded because the listener task is a
// separate goroutine that fans out concurrently with application code.
type Bridge struct {
	history  History
	logger   *slog.Logger
	observer Observer

	mu   sync.Mutex
	subs []Subscriber

	// Listener task handle. Both are nil exactly when no subscriptions
	// are registered.
	listenerCancel context.CancelFunc
	listenerDone   chan struct{}
}

// NewBridge creates a bridge over the given History capability.
func NewBridge(h History, opts ...Option) *Bridge {
	b := &Bridge{
		history:  h,
		logger:   slog.Default().With("component", "bridge"),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reconcile applies one update cycle: it installs subs as the current
// subscription list, executes cmds in order, then reconciles the listener
// task lifecycle against the new subscription count.
//
// Jump commands traverse the stack without notifying anyone; the landing
// location arrives later through the host's native event path, and
// notifying here as well would double-fire. PushURL and ReplaceURL notify
// every subscriber synchronously with the resulting Location. Commands are
// executed exhaustively; the capability calls have no error path.
func (b *Bridge) Reconcile(cmds []Command, subs []Subscriber) {
	b.mu.Lock()
	b.subs = subs
	b.mu.Unlock()

	for _, cmd := range cmds {
		switch cmd.Kind {
		case KindJump:
			b.history.Go(cmd.Steps)

		case KindPushURL:
			loc := b.history.PushURL(cmd.URL)
			b.deliver(loc)

		case KindReplaceURL:
			loc := b.history.ReplaceURL(cmd.URL)
			b.deliver(loc)

		default:
			b.logger.Warn("unknown command kind", "kind", cmd.Kind)
			continue
		}
		b.observer.CommandExecuted(cmd)
	}

	if len(subs) == 0 {
		b.stopListener()
	} else {
		b.startListener()
	}
}

// Close terminates the listener task if one is running. The bridge can be
// reused afterwards; the next Reconcile with subscribers respawns it.
func (b *Bridge) Close() {
	b.stopListener()
}

// ListenerActive reports whether the listener task is currently running.
// Between cycles this is true exactly when the subscription count is
// greater than zero.
func (b *Bridge) ListenerActive() bool {
	return b.listenerDone != nil
}

// deliver fans a Location out to every currently registered subscriber,
// in registration order.
func (b *Bridge) deliver(loc Location) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, sub := range subs {
		sub(loc)
	}
	b.observer.FanOut(len(subs))
}

// startListener spawns the listener task if it is not already running.
func (b *Bridge) startListener() {
	if b.listenerDone != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.listenerCancel = cancel
	b.listenerDone = done

	notifs := b.history.Notifications()
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-notifs:
				if !ok {
					return
				}
				// Externally-triggered navigation: capture a
				// fresh snapshot and fan out.
				b.deliver(b.history.Location())
			}
		}
	}()

	b.logger.Debug("listener started")
	b.observer.ListenerState(true)
}

// stopListener terminates the listener task and waits until it has
// exited, so no notification is delivered after this returns.
func (b *Bridge) stopListener() {
	if b.listenerDone == nil {
		return
	}

	b.listenerCancel()
	<-b.listenerDone
	b.listenerCancel = nil
	b.listenerDone = nil

	b.logger.Debug("listener stopped")
	b.observer.ListenerState(false)
}
