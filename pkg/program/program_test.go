package program_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/navio-dev/navio/pkg/history"
	"github.com/navio-dev/navio/pkg/nav"
	"github.com/navio-dev/navio/pkg/program"
)

// The test application: a tiny page viewer whose model is the current
// pathname plus a visit counter.

type testMsg interface{ isMsg() }

type locationChanged struct{ loc nav.Location }

func (locationChanged) isMsg() {}

type goTo struct{ url string }

func (goTo) isMsg() {}

type goBack struct{ steps int }

func (goBack) isMsg() {}

type testModel struct {
	page   string
	visits int
}

func testApp() program.App[testModel, testMsg] {
	return program.App[testModel, testMsg]{
		Init: func(loc nav.Location) (testModel, []nav.Command) {
			return testModel{page: loc.Pathname}, nil
		},
		Update: func(msg testMsg, model testModel) (testModel, []nav.Command) {
			switch m := msg.(type) {
			case locationChanged:
				model.page = m.loc.Pathname
				model.visits++
				return model, nil
			case goTo:
				return model, []nav.Command{nav.NewURL(m.url)}
			case goBack:
				return model, []nav.Command{nav.Back(m.steps)}
			}
			return model, nil
		},
		View: func(model testModel) string {
			return fmt.Sprintf("page=%s visits=%d", model.page, model.visits)
		},
	}
}

// harness runs a test application and exposes its rendered frames.
type harness struct {
	runner *program.Runner[testModel, testMsg]
	frames chan string
	cancel context.CancelFunc
}

func start(t *testing.T, h nav.History) *harness {
	t.Helper()
	frames := make(chan string, 64)
	runner := program.Program(
		func(loc nav.Location) testMsg { return locationChanged{loc} },
		testApp(),
		h,
		program.WithRenderer(func(view string) { frames <- view }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx)

	t.Cleanup(func() {
		cancel()
		select {
		case <-runner.Done():
		case <-time.After(2 * time.Second):
			t.Error("runner did not shut down")
		}
	})
	return &harness{runner: runner, frames: frames, cancel: cancel}
}

// nextFrame waits for the next rendered view.
func (h *harness) nextFrame(t *testing.T) string {
	t.Helper()
	select {
	case f := <-h.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a render")
		return ""
	}
}

// waitFrame waits for a render satisfying the predicate, skipping others.
func (h *harness) waitFrame(t *testing.T, want string) string {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-h.frames:
			if strings.Contains(f, want) {
				return f
			}
		case <-deadline:
			t.Fatalf("no render containing %q", want)
			return ""
		}
	}
}

func TestInitSeesStartingLocation(t *testing.T) {
	mem := history.MustMemory("https://example.com/dashboard")
	h := start(t, mem)

	if got := h.nextFrame(t); !strings.Contains(got, "page=/dashboard") {
		t.Errorf("first render = %q, want starting pathname", got)
	}
}

func TestCommandFlowsBackAsMessage(t *testing.T) {
	mem := history.MustMemory("https://example.com/")
	h := start(t, mem)
	h.nextFrame(t) // initial render

	h.runner.Send(goTo{"/reports"})

	// The push both moves the platform and loops back through the
	// standing subscription as a location message.
	h.waitFrame(t, "page=/reports visits=1")
	if got := mem.Location().Pathname; got != "/reports" {
		t.Errorf("platform pathname = %q, want /reports", got)
	}
	if got := mem.Len(); got != 2 {
		t.Errorf("platform entries = %d, want 2", got)
	}
}

func TestExternalBackReachesUpdate(t *testing.T) {
	mem := history.MustMemory("https://example.com/")
	h := start(t, mem)
	h.nextFrame(t)

	h.runner.Send(goTo{"/a"})
	h.waitFrame(t, "page=/a")

	// User presses back: the platform moves on its own.
	mem.Go(-1)
	h.waitFrame(t, "page=/ ")
}

func TestBackCommandRoundTrip(t *testing.T) {
	mem := history.MustMemory("https://example.com/")
	h := start(t, mem)
	h.nextFrame(t)

	h.runner.Send(goTo{"/a"})
	h.waitFrame(t, "page=/a")

	h.runner.Send(goBack{1})
	h.waitFrame(t, "page=/ ")
}

func TestProgramWithFlags(t *testing.T) {
	mem := history.MustMemory("https://example.com/inbox")
	frames := make(chan string, 16)

	type flags struct{ user string }

	runner := program.ProgramWithFlags(
		func(loc nav.Location) testMsg { return locationChanged{loc} },
		program.FlagsApp[flags, testModel, testMsg]{
			Init: func(f flags, loc nav.Location) (testModel, []nav.Command) {
				return testModel{page: f.user + ":" + loc.Pathname}, nil
			},
			Update: func(msg testMsg, model testModel) (testModel, []nav.Command) {
				return model, nil
			},
			View: func(model testModel) string { return model.page },
		},
		flags{user: "ada"},
		mem,
		program.WithRenderer(func(view string) { frames <- view }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	select {
	case got := <-frames:
		if got != "ada:/inbox" {
			t.Errorf("first render = %q, want flags and location threaded through", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial render")
	}
}

func TestDeclaredSubscriptionsAreMerged(t *testing.T) {
	mem := history.MustMemory("https://example.com/")
	ticks := make(chan testMsg, 1)
	frames := make(chan string, 16)

	app := testApp()
	app.Subscriptions = func() []<-chan testMsg {
		return []<-chan testMsg{ticks}
	}

	runner := program.Program(
		func(loc nav.Location) testMsg { return locationChanged{loc} },
		app,
		mem,
		program.WithRenderer(func(view string) { frames <- view }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	<-frames // initial render

	ticks <- goTo{"/from-subscription"}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-frames:
			if strings.Contains(f, "page=/from-subscription") {
				return
			}
		case <-deadline:
			t.Fatal("declared subscription message never reached update")
		}
	}
}
