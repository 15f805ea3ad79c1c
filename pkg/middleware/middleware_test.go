package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/navio-dev/navio/pkg/history"
	"github.com/navio-dev/navio/pkg/nav"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m
}

func TestMetricsObserver(t *testing.T) {
	m := newTestMetrics(t)

	m.CommandExecuted(nav.NewURL("/a"))
	m.CommandExecuted(nav.NewURL("/b"))
	m.CommandExecuted(nav.Back(1))

	if got := testutil.ToFloat64(m.commandsTotal.WithLabelValues("PushURL")); got != 2 {
		t.Errorf("PushURL counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.commandsTotal.WithLabelValues("Jump")); got != 1 {
		t.Errorf("Jump counter = %v, want 1", got)
	}

	m.FanOut(3)
	if got := testutil.ToFloat64(m.subscribers); got != 3 {
		t.Errorf("subscribers gauge = %v, want 3", got)
	}

	m.ListenerState(true)
	if got := testutil.ToFloat64(m.listenerActive); got != 1 {
		t.Errorf("listener gauge = %v, want 1", got)
	}
	m.ListenerState(false)
	if got := testutil.ToFloat64(m.listenerActive); got != 0 {
		t.Errorf("listener gauge = %v, want 0", got)
	}
}

func TestMetricsInstrumentPassesThrough(t *testing.T) {
	m := newTestMetrics(t)
	h := m.Instrument(history.MustMemory("https://example.com/"))

	if got := h.PushURL("/a").Pathname; got != "/a" {
		t.Errorf("PushURL through metrics decorator = %q, want /a", got)
	}
	if got := h.Location().Pathname; got != "/a" {
		t.Errorf("Location through metrics decorator = %q, want /a", got)
	}

	if got := testutil.CollectAndCount(m.opDuration); got == 0 {
		t.Error("operation durations were not recorded")
	}
}

func TestMetricsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(WithRegistry(reg)); err != nil {
		t.Fatalf("first NewMetrics: %v", err)
	}
	if _, err := NewMetrics(WithRegistry(reg)); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestTracePassesThrough(t *testing.T) {
	// The global tracer provider is a no-op in tests; the decorator must
	// still behave exactly like the wrapped History.
	mem := history.MustMemory("https://example.com/")
	h := Trace(mem, WithTracerName("navio-test"))

	if got := h.PushURL("/a").Pathname; got != "/a" {
		t.Errorf("PushURL through trace decorator = %q, want /a", got)
	}
	if got := h.ReplaceURL("/b").Pathname; got != "/b" {
		t.Errorf("ReplaceURL through trace decorator = %q, want /b", got)
	}

	h.Go(-1)
	select {
	case <-h.Notifications():
	default:
		t.Error("Go through trace decorator did not tick notifications")
	}
	if got := h.Location().Pathname; got != "/" {
		t.Errorf("Location after traced Go = %q, want /", got)
	}
}
