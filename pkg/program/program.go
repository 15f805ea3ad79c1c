// Package program wraps an application's init/update/view/subscriptions
// contract around the navigation bridge: every location change,
// whether issued by the application or triggered externally, arrives in
// the application's update function as an ordinary message.
package program

import (
	"context"
	"log/slog"

	"github.com/navio-dev/navio/pkg/nav"
)

// App is an application specification. Init receives the starting
// location so first-render state can depend on the URL. Update returns
// the new model plus navigation commands to execute this cycle. View
// renders the model; its output goes to the configured render sink.
// Subscriptions, optional, declares extra message sources that are
// merged with the standing location subscription.
type App[Model, Msg any] struct {
	Init          func(loc nav.Location) (Model, []nav.Command)
	Update        func(msg Msg, model Model) (Model, []nav.Command)
	View          func(model Model) string
	Subscriptions func() []<-chan Msg
}

// FlagsApp is an application specification whose Init additionally
// receives startup flags, threaded through unchanged.
type FlagsApp[Flags, Model, Msg any] struct {
	Init          func(flags Flags, loc nav.Location) (Model, []nav.Command)
	Update        func(msg Msg, model Model) (Model, []nav.Command)
	View          func(model Model) string
	Subscriptions func() []<-chan Msg
}

// config holds runner settings shared by all instantiations.
type config struct {
	logger     *slog.Logger
	buffer     int
	render     func(string)
	bridgeOpts []nav.Option
}

// Option configures a Runner.
type Option func(*config)

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMessageBuffer sets the message queue size. Default: 256.
func WithMessageBuffer(n int) Option {
	return func(c *config) {
		c.buffer = n
	}
}

// WithRenderer sets the sink that receives each View output. The default
// discards it; a terminal app hands in its draw function, tests hand in
// a channel send.
func WithRenderer(render func(string)) Option {
	return func(c *config) {
		c.render = render
	}
}

// WithBridgeOptions passes options through to the underlying bridge,
// e.g. a metrics observer.
func WithBridgeOptions(opts ...nav.Option) Option {
	return func(c *config) {
		c.bridgeOpts = append(c.bridgeOpts, opts...)
	}
}

// Runner is a runnable application instance produced by Program or
// ProgramWithFlags.
type Runner[Model, Msg any] struct {
	app     App[Model, Msg]
	toMsg   func(nav.Location) Msg
	history nav.History
	bridge  *nav.Bridge
	logger  *slog.Logger
	render  func(string)
	msgs    chan Msg
	done    chan struct{}
}

// Program produces a runnable application. toMsg converts every location
// change into an application message; app supplies the
// init/update/view/subscriptions contract; h is the host platform.
func Program[Model, Msg any](toMsg func(nav.Location) Msg, app App[Model, Msg], h nav.History, opts ...Option) *Runner[Model, Msg] {
	c := config{
		logger: slog.Default().With("component", "program"),
		buffer: 256,
		render: func(string) {},
	}
	for _, opt := range opts {
		opt(&c)
	}

	return &Runner[Model, Msg]{
		app:     app,
		toMsg:   toMsg,
		history: h,
		bridge:  nav.NewBridge(h, c.bridgeOpts...),
		logger:  c.logger,
		render:  c.render,
		msgs:    make(chan Msg, c.buffer),
		done:    make(chan struct{}),
	}
}

// ProgramWithFlags is Program with startup flags threaded through to
// Init unchanged.
func ProgramWithFlags[Flags, Model, Msg any](toMsg func(nav.Location) Msg, app FlagsApp[Flags, Model, Msg], flags Flags, h nav.History, opts ...Option) *Runner[Model, Msg] {
	return Program(toMsg, App[Model, Msg]{
		Init: func(loc nav.Location) (Model, []nav.Command) {
			return app.Init(flags, loc)
		},
		Update:        app.Update,
		View:          app.View,
		Subscriptions: app.Subscriptions,
	}, h, opts...)
}

// Send queues an external message for the application. It never blocks;
// when the queue is full the message is dropped with a warning, matching
// the event-queue behavior of the host transports.
func (r *Runner[Model, Msg]) Send(msg Msg) {
	r.enqueue(msg)
}

// Done is closed when Run has finished shutting down.
func (r *Runner[Model, Msg]) Done() <-chan struct{} {
	return r.done
}

// Run executes the application until ctx is done: capture the starting
// location, run Init, then drain messages one update cycle at a time.
// Each cycle runs to completion (update, render, reconcile) before the
// next message is taken, so cycles never overlap.
func (r *Runner[Model, Msg]) Run(ctx context.Context) error {
	defer close(r.done)
	defer r.bridge.Close()

	// The standing subscription: one per running instance, merged with
	// whatever the application declared.
	sub := nav.Subscriber(func(loc nav.Location) {
		r.enqueue(r.toMsg(loc))
	})
	subs := []nav.Subscriber{sub}

	model, cmds := r.app.Init(r.history.Location())
	r.render(r.app.View(model))
	r.bridge.Reconcile(cmds, subs)

	if r.app.Subscriptions != nil {
		for _, src := range r.app.Subscriptions() {
			go r.forward(ctx, src)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-r.msgs:
			model, cmds = r.app.Update(msg, model)
			r.render(r.app.View(model))
			r.bridge.Reconcile(cmds, subs)
		}
	}
}

// forward drains one declared subscription source into the message queue.
func (r *Runner[Model, Msg]) forward(ctx context.Context, src <-chan Msg) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-src:
			if !ok {
				return
			}
			r.enqueue(msg)
		}
	}
}

func (r *Runner[Model, Msg]) enqueue(msg Msg) {
	select {
	case r.msgs <- msg:
	default:
		r.logger.Warn("message queue full, dropping message")
	}
}
