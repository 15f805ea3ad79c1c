// Package navio provides the public API for the navio history bridge.
//
// navio lets a message-driven Go application change the visible URL of a
// browser tab and react to URL changes without page reloads. Application
// code issues commands (Back, Forward, NewURL, ModifyURL) as ordinary
// effects of its update function, and receives every location change -
// self-initiated or user-initiated - as an ordinary message.
//
// This is the recommended import for most applications:
//
//	import "github.com/navio-dev/navio"
//
// Usage:
//
//	app := navio.App[Model, Msg]{
//	    Init:   func(loc navio.Location) (Model, []navio.Command) { ... },
//	    Update: func(msg Msg, m Model) (Model, []navio.Command) { ... },
//	    View:   func(m Model) string { ... },
//	}
//	runner := navio.Program(LocationChanged, app, host)
//	runner.Run(ctx)
//
// Hosts implement the nav.History capability: history.Memory for tests
// and headless runs, browser.Host for a real tab over WebSocket.
package navio

import (
	"github.com/navio-dev/navio/pkg/nav"
	"github.com/navio-dev/navio/pkg/program"
)

// =============================================================================
// Core types (pkg/nav exposed at the root)
// =============================================================================

// Location is the immutable address-bar snapshot delivered with every
// navigation message.
type Location = nav.Location

// Command is a requested navigation action.
type Command = nav.Command

// History is the host platform capability set.
type History = nav.History

// =============================================================================
// Commands
// =============================================================================

// Back returns a command that moves n steps back in history.
func Back(n int) Command {
	return nav.Back(n)
}

// Forward returns a command that moves n steps forward in history.
func Forward(n int) Command {
	return nav.Forward(n)
}

// NewURL returns a command that pushes a new history entry for url.
func NewURL(url string) Command {
	return nav.NewURL(url)
}

// ModifyURL returns a command that replaces the current history entry
// with url.
func ModifyURL(url string) Command {
	return nav.ModifyURL(url)
}

// =============================================================================
// Programs
// =============================================================================

// App is an application specification: init/update/view plus optional
// extra subscriptions.
type App[Model, Msg any] struct {
	Init          func(loc Location) (Model, []Command)
	Update        func(msg Msg, model Model) (Model, []Command)
	View          func(model Model) string
	Subscriptions func() []<-chan Msg
}

// FlagsApp is an App whose Init also receives startup flags.
type FlagsApp[Flags, Model, Msg any] struct {
	Init          func(flags Flags, loc Location) (Model, []Command)
	Update        func(msg Msg, model Model) (Model, []Command)
	View          func(model Model) string
	Subscriptions func() []<-chan Msg
}

// Program produces a runnable application whose location changes are
// delivered through toMsg.
func Program[Model, Msg any](toMsg func(Location) Msg, app App[Model, Msg], h History, opts ...program.Option) *program.Runner[Model, Msg] {
	return program.Program(toMsg, program.App[Model, Msg]{
		Init:          app.Init,
		Update:        app.Update,
		View:          app.View,
		Subscriptions: app.Subscriptions,
	}, h, opts...)
}

// ProgramWithFlags is Program with startup flags threaded through to
// Init unchanged.
func ProgramWithFlags[Flags, Model, Msg any](toMsg func(Location) Msg, app FlagsApp[Flags, Model, Msg], flags Flags, h History, opts ...program.Option) *program.Runner[Model, Msg] {
	return program.ProgramWithFlags(toMsg, program.FlagsApp[Flags, Model, Msg]{
		Init:          app.Init,
		Update:        app.Update,
		View:          app.View,
		Subscriptions: app.Subscriptions,
	}, flags, h, opts...)
}
