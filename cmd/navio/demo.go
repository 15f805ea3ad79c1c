package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	navio "github.com/navio-dev/navio"
	"github.com/navio-dev/navio/pkg/history"
	"github.com/navio-dev/navio/pkg/program"
)

// demoMsg is the demo application's message type.
type demoMsg interface{ isDemoMsg() }

// locationSeen is delivered through the standing subscription for every
// location change.
type locationSeen struct {
	loc navio.Location
}

func (locationSeen) isDemoMsg() {}

// navigate asks the application to issue navigation commands.
type navigate struct {
	cmds []navio.Command
}

func (navigate) isDemoMsg() {}

// demoModel tracks where the demo application believes it is.
type demoModel struct {
	path   string
	visits int
}

func demoCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted application against the in-memory host",
		Long: `Runs a small application against the in-memory history host and
scripts a navigation session: a few pushes, a replace, and the user
pressing back. Every update cycle's render is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(start)
		},
	}

	cmd.Flags().StringVar(&start, "start", "https://example.com/home", "starting URL")
	return cmd
}

func runDemo(start string) error {
	mem, err := history.NewMemory(start)
	if err != nil {
		return err
	}

	app := navio.App[demoModel, demoMsg]{
		Init: func(loc navio.Location) (demoModel, []navio.Command) {
			return demoModel{path: loc.Pathname}, nil
		},
		Update: func(msg demoMsg, model demoModel) (demoModel, []navio.Command) {
			switch m := msg.(type) {
			case locationSeen:
				model.path = m.loc.Pathname
				model.visits++
				return model, nil
			case navigate:
				return model, m.cmds
			}
			return model, nil
		},
		View: func(model demoModel) string {
			return fmt.Sprintf("current page: %-28s location changes seen: %d", model.path, model.visits)
		},
	}

	runner := navio.Program(
		func(loc navio.Location) demoMsg { return locationSeen{loc: loc} },
		app,
		mem,
		program.WithRenderer(func(view string) { fmt.Println(view) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	// Scripted session. The pauses let each cycle's render land before
	// the next step so the output reads as a story.
	steps := []struct {
		desc string
		run  func()
	}{
		{"application pushes /projects", func() {
			runner.Send(navigate{cmds: []navio.Command{navio.NewURL("/projects")}})
		}},
		{"application pushes /projects/42", func() {
			runner.Send(navigate{cmds: []navio.Command{navio.NewURL("/projects/42")}})
		}},
		{"application cleans the URL in place", func() {
			runner.Send(navigate{cmds: []navio.Command{navio.ModifyURL("/projects/42?tab=files")}})
		}},
		{"user presses back", func() { mem.Go(-1) }},
		{"user presses back again", func() { mem.Go(-1) }},
	}

	for _, step := range steps {
		fmt.Printf("-- %s\n", step.desc)
		step.run()
		time.Sleep(100 * time.Millisecond)
	}

	cancel()
	select {
	case <-runner.Done():
	case <-time.After(time.Second):
	}
	return nil
}
