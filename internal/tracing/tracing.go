// Package tracing is the logging collaborator: a silent-by-default tracer
// the runner uses to log stage boundaries and snapshot swaps.
package tracing

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Tracer writes single-line traces tagged with a per-session id. A nil or
// disabled tracer swallows everything.
type Tracer struct {
	out     io.Writer
	enabled bool
	session string
}

func New(out io.Writer, enabled bool) *Tracer {
	return &Tracer{out: out, enabled: enabled, session: uuid.NewString()[:8]}
}

// Session returns the short session id traces are tagged with.
func (t *Tracer) Session() string {
	if t == nil {
		return ""
	}
	return t.session
}

func (t *Tracer) Enabled() bool { return t != nil && t.enabled }

// Tracef emits one trace line.
func (t *Tracer) Tracef(format string, args ...interface{}) {
	if !t.Enabled() {
		return
	}
	fmt.Fprintf(t.out, "[%s] %s\n", t.session, fmt.Sprintf(format, args...))
}

// Stage traces one pipeline stage boundary with its outcome and duration.
func (t *Tracer) Stage(name string, start time.Time, failed bool) {
	if !t.Enabled() {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	t.Tracef("stage %s %s in %s", name, outcome, time.Since(start).Round(time.Microsecond))
}
