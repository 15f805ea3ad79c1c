package nav

// Location is an immutable snapshot of the host's address-bar state at the
// moment of capture. A new value is produced for every navigation; existing
// values are never mutated, only superseded by the next snapshot.
//
// The fields mirror the platform's location object. All of them are opaque
// strings: navio does not parse, resolve, or validate URLs (that is the job
// of the host platform and of whatever routing library the application
// pairs with this one).
type Location struct {
	Href     string // Full URL as displayed in the address bar
	Host     string // Hostname with port, e.g. "example.com:8080"
	Hostname string // Hostname without port
	Protocol string // Scheme with trailing colon, e.g. "https:"
	Origin   string // Scheme + host, e.g. "https://example.com:8080"
	Port     string // Port as a string, empty when implicit
	Pathname string // Path component, always starts with "/"
	Search   string // Query string including leading "?", empty when absent
	Hash     string // Fragment including leading "#", empty when absent
	Username string // Userinfo name, usually empty
	Password string // Userinfo password, usually empty
}

// String returns the full URL of the snapshot.
func (l Location) String() string {
	return l.Href
}
