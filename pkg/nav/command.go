package nav

import "fmt"

// CommandKind identifies the type of navigation command.
type CommandKind uint8

const (
	// KindJump traverses the existing history stack by a signed step count.
	KindJump CommandKind = iota + 1
	// KindPushURL adds a new history entry for the given URL.
	KindPushURL
	// KindReplaceURL replaces the current history entry with the given URL.
	KindReplaceURL
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case KindJump:
		return "Jump"
	case KindPushURL:
		return "PushURL"
	case KindReplaceURL:
		return "ReplaceURL"
	default:
		return "Unknown"
	}
}

// Command is a requested, not-yet-applied navigation action issued by
// application code within a single update cycle. Commands are values;
// they take effect only when handed to Bridge.Reconcile.
type Command struct {
	Kind  CommandKind
	Steps int    // Jump only: negative = back, positive = forward
	URL   string // PushURL/ReplaceURL only: opaque, not validated
}

// String returns a human-readable form of the command for logs.
func (c Command) String() string {
	switch c.Kind {
	case KindJump:
		return fmt.Sprintf("Jump(%d)", c.Steps)
	case KindPushURL:
		return fmt.Sprintf("PushURL(%q)", c.URL)
	case KindReplaceURL:
		return fmt.Sprintf("ReplaceURL(%q)", c.URL)
	default:
		return "Command(?)"
	}
}

// Back returns a command that moves n steps back in history.
// n is a positive step count; going past the oldest entry is a no-op.
func Back(n int) Command {
	return Command{Kind: KindJump, Steps: -n}
}

// Forward returns a command that moves n steps forward in history.
// n is a positive step count; going past the newest entry is a no-op.
func Forward(n int) Command {
	return Command{Kind: KindJump, Steps: n}
}

// NewURL returns a command that pushes a new history entry for url.
func NewURL(url string) Command {
	return Command{Kind: KindPushURL, URL: url}
}

// ModifyURL returns a command that replaces the current history entry
// with url, without growing the history stack.
func ModifyURL(url string) Command {
	return Command{Kind: KindReplaceURL, URL: url}
}
