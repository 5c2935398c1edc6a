package weburl

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/curol/network/cursor"
	"github.com/curol/network/host"
	"github.com/curol/network/internal/telemetry"
	"github.com/curol/network/parseerror"
	"github.com/curol/network/pctencode"
)

var tracer = telemetry.New("weburl")

// peekAhead returns the code point immediately after the cursor's current
// position, without moving the cursor, or cursor.EOF if none remains.
func peekAhead(cur *cursor.Cursor) rune {
	rem := cur.Remaining()
	if rem == "" {
		return cursor.EOF
	}
	_, size := utf8.DecodeRuneInString(rem)
	rem = rem[size:]
	if rem == "" {
		return cursor.EOF
	}
	r, _ := utf8.DecodeRuneInString(rem)
	return r
}

// remainingAfterCurrent returns the input from just past the cursor's
// current code point to the end.
func remainingAfterCurrent(cur *cursor.Cursor) string {
	rem := cur.Remaining()
	if rem == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(rem)
	return rem[size:]
}

// Failure is returned for fatal URL-parse conditions detected by the URL
// state machine itself; a failure to parse the host is returned as the host
// package's error, which wraps host.ErrFailure.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string { return "url parse failure: " + f.Reason }

func fail(format string, args ...any) error {
	return &Failure{Reason: fmt.Sprintf(format, args...)}
}

type stateID int

const (
	stSchemeStart stateID = iota
	stScheme
	stNoScheme
	stSpecialRelativeOrAuthority
	stPathOrAuthority
	stRelative
	stRelativeSlash
	stSpecialAuthoritySlashes
	stSpecialAuthorityIgnoreSlashes
	stAuthority
	stHost
	stPort
	stFile
	stFileSlash
	stFileHost
	stPathStart
	stPath
	stOpaquePath
	stQuery
	stFragment
)

// step is the outcome of processing one character in the current state.
type step struct {
	next      stateID
	reconsume bool // GoBack before moving to next
	restart   bool // reset cursor to position 0 and start over (Scheme->NoScheme fallback)
	done      bool
	err       error
}

type parser struct {
	cur    *cursor.Cursor
	state  stateID
	override *stateID
	base   *Url
	errs   parseerror.Handler

	buffer         strings.Builder
	segBuf         strings.Builder
	atSignSeen     bool
	insideBrackets bool
	passwordSeen   bool

	scheme        string
	isSpecial     bool
	username      strings.Builder
	password      strings.Builder
	hostResult    host.Host
	hostSet       bool
	port          *uint16
	pathSegments  []string
	opaquePath    string
	hasOpaquePath bool
	query         *string
	fragment      *string
}

// Parse parses input against an optional base URL, per spec §6.1.
func Parse(input string, base *Url, errs parseerror.Handler) (*Url, error) {
	return parseWithOverride(input, base, nil, errs)
}

func parseWithOverride(input string, base *Url, override *stateID, errs parseerror.Handler) (*Url, error) {
	if errs == nil {
		errs = parseerror.NopHandler{}
	}
	input = preprocess(input, errs)

	p := &parser{
		cur:      cursor.New(input),
		base:     base,
		errs:     errs,
		override: override,
	}
	if override != nil {
		p.state = *override
	} else {
		p.state = stSchemeStart
	}

	tracer.Tracef("parsing %q with base=%v override=%v", input, base, override)
	if err := p.run(); err != nil {
		tracer.Tracef("parse of %q failed: %v", input, err)
		return nil, err
	}
	return p.finalize()
}

// preprocess trims leading/trailing C0 controls and space, and strips
// internal ASCII tab and newline characters (spec §6.1).
func preprocess(s string, errs parseerror.Handler) string {
	isC0OrSpace := func(r rune) bool { return r <= 0x20 }
	start, end := 0, len(s)
	for start < end {
		r := rune(s[start])
		if !isC0OrSpace(r) {
			break
		}
		errs.Report(parseerror.InvalidUrlUnit)
		start++
	}
	for end > start {
		r := rune(s[end-1])
		if !isC0OrSpace(r) {
			break
		}
		errs.Report(parseerror.InvalidUrlUnit)
		end--
	}
	s = s[start:end]
	if !strings.ContainsAny(s, "\t\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' {
			errs.Report(parseerror.InvalidUrlUnit)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (p *parser) run() error {
	c := p.cur.Next()
	for {
		var res step
		switch p.state {
		case stSchemeStart:
			res = p.stepSchemeStart(c)
		case stScheme:
			res = p.stepScheme(c)
		case stNoScheme:
			res = p.stepNoScheme(c)
		case stSpecialRelativeOrAuthority:
			res = p.stepSpecialRelativeOrAuthority(c)
		case stPathOrAuthority:
			res = p.stepPathOrAuthority(c)
		case stRelative:
			res = p.stepRelative(c)
		case stRelativeSlash:
			res = p.stepRelativeSlash(c)
		case stSpecialAuthoritySlashes:
			res = p.stepSpecialAuthoritySlashes(c)
		case stSpecialAuthorityIgnoreSlashes:
			res = p.stepSpecialAuthorityIgnoreSlashes(c)
		case stAuthority:
			res = p.stepAuthority(c)
		case stHost:
			res = p.stepHost(c)
		case stPort:
			res = p.stepPort(c)
		case stFile:
			res = p.stepFile(c)
		case stFileSlash:
			res = p.stepFileSlash(c)
		case stFileHost:
			res = p.stepFileHost(c)
		case stPathStart:
			res = p.stepPathStart(c)
		case stPath:
			res = p.stepPath(c)
		case stOpaquePath:
			res = p.stepOpaquePath(c)
		case stQuery:
			res = p.stepQuery(c)
		case stFragment:
			res = p.stepFragment(c)
		}
		if res.err != nil {
			return res.err
		}
		if res.done {
			return nil
		}
		p.state = res.next
		if res.restart {
			p.cur.Reset()
			c = p.cur.Next()
			continue
		}
		if res.reconsume {
			p.cur.GoBack()
		}
		if p.cur.State() == cursor.AfterEnd && !res.reconsume {
			return nil
		}
		c = p.cur.Next()
	}
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || (r >= '0' && r <= '9')
}
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}
func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && s[1] == ':'
}

func (p *parser) schemeIsSpecial() bool { return IsSpecialScheme(p.scheme) }

// ---- SchemeStart ----

func (p *parser) stepSchemeStart(c rune) step {
	if isASCIIAlpha(c) {
		p.buffer.WriteRune(toLower(c))
		return step{next: stScheme}
	}
	if p.override == nil {
		return step{next: stNoScheme, reconsume: true}
	}
	return step{err: fail("invalid scheme start character %q", c)}
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// ---- Scheme ----

func (p *parser) stepScheme(c rune) step {
	if isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.' {
		p.buffer.WriteRune(toLower(c))
		return step{next: stScheme}
	}
	if c == ':' {
		p.scheme = p.buffer.String()
		p.buffer.Reset()
		p.isSpecial = p.schemeIsSpecial()

		if p.override != nil {
			// state-override entry points are not exercised by the public
			// Parse API in this core; treat a scheme-only reparse as done.
			return step{done: true}
		}

		if p.scheme == "file" {
			rest := remainingAfterCurrent(p.cur)
			if !strings.HasPrefix(rest, "//") {
				p.errs.Report(parseerror.SpecialSchemeMissingFollowingSolidus)
			}
			return step{next: stFile}
		}
		if p.isSpecial && p.base != nil && p.base.scheme == p.scheme && !p.base.hasOpaquePath {
			return step{next: stSpecialRelativeOrAuthority}
		}
		if p.isSpecial {
			return step{next: stSpecialAuthoritySlashes}
		}
		if strings.HasPrefix(remainingAfterCurrent(p.cur), "/") {
			p.cur.Next() // consume the '/'
			return step{next: stPathOrAuthority}
		}
		p.hasOpaquePath = true
		p.opaquePath = ""
		return step{next: stOpaquePath}
	}
	if p.override == nil {
		p.buffer.Reset()
		return step{next: stNoScheme, restart: true}
	}
	return step{err: fail("invalid scheme character %q", c)}
}

// ---- NoScheme ----

func (p *parser) stepNoScheme(c rune) step {
	if p.base == nil {
		p.errs.Report(parseerror.MissingSchemeNonRelativeUrl)
		return step{err: fail("missing scheme and no base URL")}
	}
	if p.base.hasOpaquePath {
		if c == '#' {
			p.inheritFromBase(true)
			return step{next: stFragment}
		}
		p.errs.Report(parseerror.MissingSchemeNonRelativeUrl)
		return step{err: fail("cannot use relative URL with a base that has an opaque path")}
	}
	if p.base.scheme == "file" {
		return step{next: stFile, reconsume: true}
	}
	return step{next: stRelative, reconsume: true}
}

func (p *parser) inheritFromBase(pathAndQueryOnly bool) {
	p.scheme = p.base.scheme
	p.isSpecial = p.base.isSpecial
	p.hasOpaquePath = p.base.hasOpaquePath
	if p.base.hasOpaquePath {
		p.opaquePath = p.base.Path()
	} else {
		p.pathSegments = append([]string(nil), p.base.PathSegments()...)
	}
	if q, ok := p.base.Query(); ok {
		p.query = &q
	}
	if !pathAndQueryOnly {
		p.username.WriteString(p.base.Username())
		p.password.WriteString(p.base.Password())
		p.hostResult = p.base.host
		p.hostSet = p.base.hostSet
		if port, ok := p.base.Port(); ok {
			pp := port
			p.port = &pp
		}
	}
}

// ---- SpecialRelativeOrAuthority ----

func (p *parser) stepSpecialRelativeOrAuthority(c rune) step {
	if c == '/' && peekAhead(p.cur) == '/' {
		p.cur.Next()
		return step{next: stSpecialAuthorityIgnoreSlashes}
	}
	p.errs.Report(parseerror.SpecialSchemeMissingFollowingSolidus)
	return step{next: stRelative, reconsume: true}
}

// ---- PathOrAuthority ----

func (p *parser) stepPathOrAuthority(c rune) step {
	if c == '/' {
		return step{next: stAuthority}
	}
	return step{next: stPath, reconsume: true}
}

// ---- Relative ----

func (p *parser) stepRelative(c rune) step {
	p.inheritFromBase(false)
	p.isSpecial = p.base.isSpecial
	switch {
	case c == '/':
		p.query = nil
		return step{next: stRelativeSlash}
	case p.isSpecial && c == '\\':
		p.errs.Report(parseerror.InvalidReverseSolidus)
		p.query = nil
		return step{next: stRelativeSlash}
	case c == '?':
		q := ""
		p.query = &q
		return step{next: stQuery}
	case c == '#':
		return step{next: stFragment}
	case c == cursor.EOF:
		return step{done: true}
	default:
		p.query = nil
		p.shortenPath()
		return step{next: stPath, reconsume: true}
	}
}

// ---- RelativeSlash ----

func (p *parser) stepRelativeSlash(c rune) step {
	if p.isSpecial && (c == '/' || c == '\\') {
		if c == '\\' {
			p.errs.Report(parseerror.InvalidReverseSolidus)
		}
		return step{next: stSpecialAuthorityIgnoreSlashes}
	}
	if c == '/' {
		return step{next: stAuthority}
	}
	p.username.Reset()
	p.username.WriteString(p.base.Username())
	p.password.Reset()
	p.password.WriteString(p.base.Password())
	p.hostResult = p.base.host
	p.hostSet = p.base.hostSet
	if port, ok := p.base.Port(); ok {
		pp := port
		p.port = &pp
	}
	p.pathSegments = append([]string(nil), p.base.PathSegments()...)
	p.shortenPath()
	return step{next: stPath, reconsume: true}
}

// ---- SpecialAuthoritySlashes ----

func (p *parser) stepSpecialAuthoritySlashes(c rune) step {
	if c == '/' && peekAhead(p.cur) == '/' {
		p.cur.Next()
		return step{next: stSpecialAuthorityIgnoreSlashes}
	}
	p.errs.Report(parseerror.SpecialSchemeMissingFollowingSolidus)
	return step{next: stSpecialAuthorityIgnoreSlashes, reconsume: true}
}

// ---- SpecialAuthorityIgnoreSlashes ----

func (p *parser) stepSpecialAuthorityIgnoreSlashes(c rune) step {
	if c != '/' && c != '\\' {
		return step{next: stAuthority, reconsume: true}
	}
	return step{next: stSpecialAuthorityIgnoreSlashes}
}

// ---- Authority ----

func (p *parser) stepAuthority(c rune) step {
	if c == '@' {
		if p.atSignSeen {
			p.buffer.WriteString("%40")
		}
		p.atSignSeen = true
		raw := p.buffer.String()
		p.buffer.Reset()
		left, right, hasColon := cutFirst(raw, ':')
		if hasColon {
			p.username.WriteString(pctencode.Encode(left, pctencode.Userinfo))
			p.password.WriteString(pctencode.Encode(right, pctencode.Userinfo))
			p.passwordSeen = true
		} else {
			p.username.WriteString(pctencode.Encode(raw, pctencode.Userinfo))
		}
		return step{next: stAuthority}
	}
	if c == cursor.EOF || c == '/' || c == '?' || c == '#' || (p.isSpecial && c == '\\') {
		if p.atSignSeen && p.buffer.Len() == 0 {
			p.errs.Report(parseerror.InvalidCredentials)
		}
		n := utf8.RuneCountInString(p.buffer.String())
		p.cur.GoBackN(n + 1)
		p.buffer.Reset()
		return step{next: stHost}
	}
	p.buffer.WriteRune(c)
	return step{next: stAuthority}
}

func cutFirst(s string, sep byte) (left, right string, found bool) {
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

// ---- Host / Hostname ----

func (p *parser) stepHost(c rune) step {
	if p.override != nil && p.scheme == "file" {
		return p.stepFileHostCommon(c)
	}
	if c == ':' && !p.insideBrackets {
		if p.buffer.Len() == 0 && p.isSpecial {
			p.errs.Report(parseerror.HostMissing)
			return step{err: fail("empty host not allowed for special scheme")}
		}
		h, err := host.Parse(p.buffer.String(), p.isSpecial)
		if err != nil {
			p.errs.Report(parseerror.HostMissing)
			return step{err: err}
		}
		p.hostResult = h
		p.hostSet = true
		p.buffer.Reset()
		return step{next: stPort}
	}
	if c == cursor.EOF || c == '/' || c == '?' || c == '#' || (p.isSpecial && c == '\\') {
		return p.commitHost()
	}
	switch c {
	case '[':
		p.insideBrackets = true
	case ']':
		p.insideBrackets = false
	}
	p.buffer.WriteRune(c)
	return step{next: stHost}
}

// commitHost parses the accumulated buffer as the host and moves to
// PathStart, reconsuming the terminator character.
func (p *parser) commitHost() step {
	if p.buffer.Len() == 0 && p.isSpecial {
		p.errs.Report(parseerror.HostMissing)
		return step{err: fail("empty host not allowed for special scheme")}
	}
	h, err := host.Parse(p.buffer.String(), p.isSpecial)
	if err != nil {
		p.errs.Report(parseerror.HostMissing)
		return step{err: err}
	}
	p.hostResult = h
	p.hostSet = true
	p.buffer.Reset()
	return step{next: stPathStart, reconsume: true}
}

// ---- Port ----

func (p *parser) stepPort(c rune) step {
	if isASCIIDigit(c) {
		p.buffer.WriteRune(c)
		return step{next: stPort}
	}
	if c == cursor.EOF || c == '/' || c == '?' || c == '#' || (p.isSpecial && c == '\\') {
		if p.buffer.Len() > 0 {
			port, err := parsePortString(p.buffer.String())
			if err != nil {
				p.errs.Report(parseerror.PortOutOfRange)
				return step{err: fail("port out of range")}
			}
			if def, ok := defaultPortFor(p.scheme); !ok || port != def {
				pp := port
				p.port = &pp
			}
			p.buffer.Reset()
		}
		return step{next: stPathStart, reconsume: true}
	}
	p.errs.Report(parseerror.PortInvalid)
	return step{err: fail("invalid port character %q", c)}
}

// ---- File ----

func (p *parser) stepFile(c rune) step {
	p.scheme = "file"
	p.isSpecial = true
	p.hostResult = host.Host{Kind: host.KindEmpty}
	p.hostSet = true

	switch {
	case c == '/' || c == '\\':
		if c == '\\' {
			p.errs.Report(parseerror.InvalidReverseSolidus)
		}
		return step{next: stFileSlash}
	case p.base != nil && p.base.scheme == "file":
		p.hostResult = p.base.host
		p.hostSet = p.base.hostSet
		p.pathSegments = append([]string(nil), p.base.PathSegments()...)
		switch c {
		case '?':
			q := ""
			p.query = &q
			return step{next: stQuery}
		case '#':
			return step{next: stFragment}
		case cursor.EOF:
			return step{done: true}
		default:
			if !isWindowsDriveLetter(string(c) + string(peekAhead(p.cur))) {
				p.shortenPath()
			} else {
				p.errs.Report(parseerror.FileInvalidWindowsDriveLetter)
				p.pathSegments = nil
			}
			return step{next: stPath, reconsume: true}
		}
	default:
		return step{next: stPath, reconsume: true}
	}
}

// ---- FileSlash ----

func (p *parser) stepFileSlash(c rune) step {
	if c == '/' || c == '\\' {
		if c == '\\' {
			p.errs.Report(parseerror.InvalidReverseSolidus)
		}
		return step{next: stFileHost}
	}
	if p.base != nil && p.base.scheme == "file" {
		p.hostResult = p.base.host
		p.hostSet = p.base.hostSet
		// Per spec §9 Open Questions: the condition is "does not start with
		// a drive letter" (not "starts with") -- only then is base's leading
		// drive-letter segment carried over.
		segs := p.base.PathSegments()
		if !isWindowsDriveLetter(string(c)+string(peekAhead(p.cur))) &&
			len(segs) > 0 && isNormalizedWindowsDriveLetter(segs[0]) {
			p.pathSegments = append(p.pathSegments, segs[0])
		}
	}
	return step{next: stPath, reconsume: true}
}

// ---- FileHost ----

func (p *parser) stepFileHost(c rune) step {
	return p.stepFileHostCommon(c)
}

func (p *parser) stepFileHostCommon(c rune) step {
	if c == cursor.EOF || c == '/' || c == '\\' || c == '?' || c == '#' {
		buf := p.buffer.String()
		if isWindowsDriveLetter(buf) {
			p.errs.Report(parseerror.FileInvalidWindowsDriveLetterHost)
			p.buffer.Reset()
			return step{next: stPath, reconsume: true}
		}
		if buf == "" {
			p.hostResult = host.Host{Kind: host.KindEmpty}
			p.hostSet = true
			p.buffer.Reset()
			return step{next: stPathStart, reconsume: true}
		}
		h, err := host.Parse(buf, true)
		if err != nil {
			return step{err: err}
		}
		if h.Kind == host.KindDomain && h.Domain == "localhost" {
			h = host.Host{Kind: host.KindEmpty}
		}
		p.hostResult = h
		p.hostSet = true
		p.buffer.Reset()
		return step{next: stPathStart, reconsume: true}
	}
	p.buffer.WriteRune(c)
	return step{next: stFileHost}
}

// ---- PathStart ----

func (p *parser) stepPathStart(c rune) step {
	if p.isSpecial {
		if c == '\\' {
			p.errs.Report(parseerror.InvalidReverseSolidus)
		}
		return step{next: stPath, reconsume: !(c == '/' || c == '\\')}
	}
	if c == '?' {
		q := ""
		p.query = &q
		return step{next: stQuery}
	}
	if c == '#' {
		return step{next: stFragment}
	}
	if c == cursor.EOF {
		return step{done: true}
	}
	return step{next: stPath, reconsume: c != '/'}
}

// ---- Path ----

func (p *parser) stepPath(c rune) step {
	terminator := c == cursor.EOF || c == '/' || (p.isSpecial && c == '\\') || c == '?' || c == '#'
	if !terminator {
		pctencode.EncodeRune(&p.segBuf, c, pctencode.Path)
		return step{next: stPath}
	}

	if p.isSpecial && c == '\\' {
		p.errs.Report(parseerror.InvalidReverseSolidus)
	}
	seg := p.segBuf.String()
	p.segBuf.Reset()
	slash := c == '/' || (p.isSpecial && c == '\\')

	switch {
	case isDoubleDotSegment(seg):
		p.shortenPath()
		if !slash {
			p.pathSegments = append(p.pathSegments, "")
		}
	case isSingleDotSegment(seg):
		if !slash {
			p.pathSegments = append(p.pathSegments, "")
		}
	default:
		if p.scheme == "file" && len(p.pathSegments) == 0 && isWindowsDriveLetter(seg) {
			seg = seg[:1] + ":"
		}
		p.pathSegments = append(p.pathSegments, seg)
	}

	switch c {
	case '/', '\\':
		return step{next: stPath}
	case '?':
		q := ""
		p.query = &q
		return step{next: stQuery}
	case '#':
		return step{next: stFragment}
	default: // EOF
		return step{done: true}
	}
}

// isSingleDotSegment reports whether s is "." or one of its percent-encoded
// spellings, compared ASCII-case-insensitively (spec §4.4).
func isSingleDotSegment(s string) bool {
	return strings.EqualFold(s, ".") || strings.EqualFold(s, "%2e")
}

// isDoubleDotSegment reports whether s is ".." or one of its percent-encoded
// spellings, compared ASCII-case-insensitively (spec §4.4).
func isDoubleDotSegment(s string) bool {
	switch {
	case strings.EqualFold(s, ".."), strings.EqualFold(s, ".%2e"), strings.EqualFold(s, "%2e."), strings.EqualFold(s, "%2e%2e"):
		return true
	default:
		return false
	}
}

// shortenPath implements spec §4.4's precise shorten-URL-path operation.
func (p *parser) shortenPath() {
	if p.hasOpaquePath {
		return
	}
	if p.scheme == "file" && len(p.pathSegments) == 1 && isNormalizedWindowsDriveLetter(p.pathSegments[0]) {
		return
	}
	if len(p.pathSegments) > 0 {
		p.pathSegments = p.pathSegments[:len(p.pathSegments)-1]
	}
}

// ---- OpaquePath ----

func (p *parser) stepOpaquePath(c rune) step {
	switch c {
	case '?':
		q := ""
		p.query = &q
		return step{next: stQuery}
	case '#':
		return step{next: stFragment}
	case cursor.EOF:
		return step{done: true}
	default:
		var b strings.Builder
		pctencode.EncodeRune(&b, c, pctencode.C0)
		p.opaquePath += b.String()
		return step{next: stOpaquePath}
	}
}

// ---- Query ----

func (p *parser) stepQuery(c rune) step {
	if c == '#' || c == cursor.EOF {
		if c == cursor.EOF {
			return step{done: true}
		}
		return step{next: stFragment}
	}
	set := pctencode.Query
	if p.isSpecial {
		set = pctencode.SpecialQuery
	}
	var b strings.Builder
	pctencode.EncodeRune(&b, c, set)
	*p.query += b.String()
	return step{next: stQuery}
}

// ---- Fragment ----

func (p *parser) stepFragment(c rune) step {
	if c == cursor.EOF {
		return step{done: true}
	}
	if p.fragment == nil {
		f := ""
		p.fragment = &f
	}
	var b strings.Builder
	pctencode.EncodeRune(&b, c, pctencode.Fragment)
	*p.fragment += b.String()
	return step{next: stFragment}
}

// finalize builds the offset-based Url from the parser's structured fields.
func (p *parser) finalize() (*Url, error) {
	u := &Url{
		scheme:        p.scheme,
		isSpecial:     p.isSpecial,
		hasOpaquePath: p.hasOpaquePath,
		host:          p.hostResult,
		hostSet:       p.hostSet,
		port:          p.port,
	}

	var b strings.Builder
	b.WriteString(p.scheme)
	b.WriteByte(':')
	u.schemeEnd = b.Len() - 1

	// An authority ("//...") is present exactly when the state machine ever
	// reached the Host state, i.e. p.hostSet. Opaque-path and bare
	// path-absolute URLs (e.g. "mailto:x", "foo:/path") never visit Host.
	if p.hostSet {
		b.WriteString("//")
		u.usernameStart = b.Len()
		if p.username.Len() > 0 || p.password.Len() > 0 {
			b.WriteString(p.username.String())
			if p.passwordSeen || p.password.Len() > 0 {
				b.WriteByte(':')
				u.passwordStart = b.Len()
				b.WriteString(p.password.String())
			} else {
				u.passwordStart = NoOffset
			}
			b.WriteByte('@')
		} else {
			u.passwordStart = NoOffset
		}
		u.hostStart = b.Len()
		b.WriteString(p.hostResult.String())
		if p.port != nil {
			b.WriteByte(':')
			u.portStart = b.Len()
			fmt.Fprintf(&b, "%d", *p.port)
		} else {
			u.portStart = NoOffset
		}
	} else {
		u.usernameStart = b.Len()
		u.passwordStart = NoOffset
		u.hostStart = b.Len()
		u.portStart = NoOffset
	}

	u.pathStart = b.Len()
	if p.hasOpaquePath {
		b.WriteString(p.opaquePath)
	} else {
		for _, seg := range p.pathSegments {
			b.WriteByte('/')
			b.WriteString(seg)
		}
	}

	if p.query != nil {
		b.WriteByte('?')
		u.queryStart = b.Len()
		b.WriteString(*p.query)
	} else {
		u.queryStart = NoOffset
	}

	if p.fragment != nil {
		b.WriteByte('#')
		u.fragmentStart = b.Len()
		b.WriteString(*p.fragment)
	} else {
		u.fragmentStart = NoOffset
	}

	u.serialization = b.String()
	return u, nil
}
