package navio_test

import (
	"context"
	"strings"
	"testing"
	"time"

	navio "github.com/navio-dev/navio"
	"github.com/navio-dev/navio/pkg/history"
	"github.com/navio-dev/navio/pkg/program"
)

type msg struct{ path string }

func TestProgramEndToEnd(t *testing.T) {
	mem := history.MustMemory("https://example.com/home")
	frames := make(chan string, 16)

	app := navio.App[string, msg]{
		Init: func(loc navio.Location) (string, []navio.Command) {
			return loc.Pathname, nil
		},
		Update: func(m msg, model string) (string, []navio.Command) {
			return m.path, nil
		},
		View: func(model string) string {
			return "at " + model
		},
	}

	runner := navio.Program(
		func(loc navio.Location) msg { return msg{path: loc.Pathname} },
		app,
		mem,
		program.WithRenderer(func(view string) { frames <- view }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	select {
	case f := <-frames:
		if !strings.Contains(f, "/home") {
			t.Errorf("first render = %q, want the starting pathname", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial render")
	}
}

func TestCommandConstructorsAtRoot(t *testing.T) {
	if got := navio.Back(1); got.Steps != -1 {
		t.Errorf("Back(1).Steps = %d, want -1", got.Steps)
	}
	if got := navio.Forward(2); got.Steps != 2 {
		t.Errorf("Forward(2).Steps = %d, want 2", got.Steps)
	}
	if got := navio.NewURL("/a"); got.URL != "/a" {
		t.Errorf("NewURL(/a).URL = %q", got.URL)
	}
	if got := navio.ModifyURL("/b"); got.URL != "/b" {
		t.Errorf("ModifyURL(/b).URL = %q", got.URL)
	}
}
