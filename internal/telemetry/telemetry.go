// Package telemetry provides the structured debug tracer shared by the
// weburl and htmltree parsers. Tracing is off by default and never runs on
// the successful-parse hot path; it exists for diagnosing malformed input
// during development, not for production observability.
package telemetry

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var enabled int32

// Enable turns on tracing for the remainder of the process. Intended for
// CLI flags and tests, not for toggling per request.
func Enable() { atomic.StoreInt32(&enabled, 1) }

// Disable turns tracing back off.
func Disable() { atomic.StoreInt32(&enabled, 0) }

func isEnabled() bool { return atomic.LoadInt32(&enabled) != 0 }

var base = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	return l
}()

// Tracer wraps a logrus.Entry with a component name, so each package logs
// through its own component-scoped entry.
type Tracer struct {
	entry *logrus.Entry
}

// New returns a Tracer scoped to component, e.g. "weburl" or "htmltree".
func New(component string) *Tracer {
	return &Tracer{entry: base.WithField("component", component)}
}

// Trace logs a single tracing event with the given structured fields. It is
// a no-op unless Enable has been called, so callers should not precompute
// expensive field values before checking; pass fields as plain arguments.
func (t *Tracer) Trace(msg string, fields logrus.Fields) {
	if !isEnabled() {
		return
	}
	t.entry.WithFields(fields).Debug(msg)
}

// Tracef is the unstructured convenience form of Trace.
func (t *Tracer) Tracef(format string, args ...any) {
	if !isEnabled() {
		return
	}
	t.entry.Debugf(format, args...)
}
