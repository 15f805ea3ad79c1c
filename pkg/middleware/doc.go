// Package middleware provides observability wrappers for the navigation
// bridge: Prometheus metrics (as a nav.Observer and a History decorator)
// and OpenTelemetry tracing (as a History decorator).
//
// The core nav package stays free of metrics and tracing imports; these
// wrappers are opt-in.
package middleware
