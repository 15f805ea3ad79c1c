// Package nav is the core of the history bridge: the Location snapshot,
// navigation commands, the narrow History capability the host platform
// must provide, and the Bridge that reconciles each update cycle's
// commands and subscriptions against that capability.
//
// The bridge is deliberately platform-blind. Everything it knows about
// the outside world goes through the History interface, so an in-memory
// stack (pkg/history), a live browser tab (pkg/browser), or a test
// double (pkg/navtest) are interchangeable.
package nav
