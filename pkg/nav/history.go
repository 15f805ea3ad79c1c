package nav

// History is the narrow capability set the bridge needs from the host
// platform: query the address bar, push/replace entries, traverse the
// stack, and hear about externally-triggered navigations.
//
// None of these operations fail within a compatible host. Pushing or
// replacing returns the resulting snapshot synchronously; traversal does
// not (the platform reports the landing location later through
// Notifications, the same way a user-initiated back/forward does).
//
// Implementations: history.Memory (in-process fake stack, also used for
// headless runs) and browser.Host (a real browser tab over WebSocket).
type History interface {
	// Location returns the current address-bar snapshot. Never fails;
	// the platform always has some address-bar state.
	Location() Location

	// PushURL adds a new history entry for url and returns the
	// resulting snapshot.
	PushURL(url string) Location

	// ReplaceURL replaces the current history entry with url and
	// returns the resulting snapshot.
	ReplaceURL(url string) Location

	// Go traverses the existing history stack by n entries (negative =
	// back, positive = forward). No-op when n exceeds the available
	// entries in that direction. The landing location is announced
	// asynchronously via Notifications, never returned here.
	Go(n int)

	// Notifications returns the host's native navigation event stream:
	// one tick per address-bar change caused by something other than a
	// PushURL/ReplaceURL call (user back/forward, Go, a hash edit).
	// Hosts that need a fallback event for older engines merge both
	// event sources into this single stream.
	Notifications() <-chan struct{}
}
