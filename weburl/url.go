// Package weburl implements the WHATWG URL parser: a multi-state machine
// that parses a possibly-relative URL string against an optional base URL
// and produces a normalized, serialized Url with byte-offset accessors for
// each component.
package weburl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/curol/network/host"
)

// NoOffset marks an absent component offset.
const NoOffset = -1

// DefaultPorts maps a special scheme to its default port. file has none.
var DefaultPorts = map[string]uint16{
	"ftp":   21,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

var specialSchemes = map[string]bool{
	"ftp":   true,
	"file":  true,
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
}

// IsSpecialScheme reports whether scheme is one of the six special schemes.
func IsSpecialScheme(scheme string) bool {
	return specialSchemes[scheme]
}

// Url is a single growable ASCII buffer (Serialization) plus a set of
// byte offsets that partition it into components, per spec §3.1. Offsets
// are monotonically non-decreasing; NoOffset marks an absent component.
type Url struct {
	serialization string

	schemeEnd     int
	usernameStart int
	passwordStart int // NoOffset if there is no password component
	hostStart     int
	portStart     int // NoOffset if there is no port component
	pathStart     int
	queryStart    int // NoOffset if absent
	fragmentStart int // NoOffset if absent

	scheme        string
	host          host.Host
	hostSet       bool
	port          *uint16
	isSpecial     bool
	hasOpaquePath bool
}

// Serialization returns the full normalized URL string.
func (u *Url) Serialization() string { return u.serialization }

// String implements fmt.Stringer.
func (u *Url) String() string { return u.serialization }

// Scheme returns the lower-cased scheme, without the trailing colon.
func (u *Url) Scheme() string { return u.scheme }

// IsSpecial reports whether the scheme is one of ftp/file/http/https/ws/wss.
func (u *Url) IsSpecial() bool { return u.isSpecial }

// HasOpaquePath reports whether the path is opaque (not '/'-rooted, and
// the scheme is not special).
func (u *Url) HasOpaquePath() bool { return u.hasOpaquePath }

// Username returns the percent-encoded username component (may be empty).
func (u *Url) Username() string {
	if u.usernameStart == NoOffset {
		return ""
	}
	end := u.usernameEnd()
	return u.serialization[u.usernameStart:end]
}

func (u *Url) usernameEnd() int {
	if u.passwordStart != NoOffset {
		return u.passwordStart - 1 // exclude the ':' separator
	}
	if u.hostStart == u.usernameStart {
		return u.usernameStart // no credentials, so no '@' separator
	}
	return u.hostStart - 1 // exclude the '@' separator
}

// Password returns the percent-encoded password component, or "" if absent.
func (u *Url) Password() string {
	if u.passwordStart == NoOffset {
		return ""
	}
	return u.serialization[u.passwordStart : u.hostStart-1] // exclude '@'
}

// HasCredentials reports whether a username or password is present.
func (u *Url) HasCredentials() bool {
	return u.Username() != "" || u.Password() != ""
}

// Host returns the parsed host, or the zero Host (KindEmpty) if absent.
func (u *Url) Host() host.Host { return u.host }

// HostString returns the serialized host component.
func (u *Url) HostString() string {
	if !u.hostSet {
		return ""
	}
	return u.host.String()
}

// Port returns the port and whether one is present. A present port equal
// to the scheme's default is never stored (spec §3.1) so Port never
// returns the default port for u.Scheme().
func (u *Url) Port() (uint16, bool) {
	if u.port == nil {
		return 0, false
	}
	return *u.port, true
}

// Path returns the raw path string (percent-encoded), including the
// leading '/' for hierarchical paths.
func (u *Url) Path() string {
	end := len(u.serialization)
	if u.queryStart != NoOffset {
		end = u.queryStart - 1 // exclude '?'
	} else if u.fragmentStart != NoOffset {
		end = u.fragmentStart - 1 // exclude '#'
	}
	return u.serialization[u.pathStart:end]
}

// PathSegments splits a non-opaque Path on '/' (the leading empty segment
// before the first '/' is dropped).
func (u *Url) PathSegments() []string {
	p := u.Path()
	if u.hasOpaquePath || p == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

// Query reports the query string (without '?') and whether one is present.
func (u *Url) Query() (string, bool) {
	if u.queryStart == NoOffset {
		return "", false
	}
	end := len(u.serialization)
	if u.fragmentStart != NoOffset {
		end = u.fragmentStart - 1
	}
	return u.serialization[u.queryStart:end], true
}

// Fragment reports the fragment string (without '#') and whether one is present.
func (u *Url) Fragment() (string, bool) {
	if u.fragmentStart == NoOffset {
		return "", false
	}
	return u.serialization[u.fragmentStart:], true
}

// Origin returns the tuple origin's ASCII serialization ("scheme://host[:port]")
// for special, non-file schemes, or "" otherwise (an opaque origin).
func (u *Url) Origin() string {
	if !u.isSpecial || u.scheme == "file" {
		return ""
	}
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteString("://")
	b.WriteString(u.HostString())
	if p, ok := u.Port(); ok {
		fmt.Fprintf(&b, ":%d", p)
	}
	return b.String()
}

// defaultPortFor returns the default port for scheme and whether one exists.
func defaultPortFor(scheme string) (uint16, bool) {
	p, ok := DefaultPorts[scheme]
	return p, ok
}

// parsePortString parses a decimal port string, failing on overflow past 65535.
func parsePortString(s string) (uint16, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	if n > 65535 {
		return 0, fmt.Errorf("port %d out of range", n)
	}
	return uint16(n), nil
}
