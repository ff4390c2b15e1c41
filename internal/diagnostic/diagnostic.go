// Package diagnostic implements the Error Sink: an accumulator of
// checker diagnostics over a fixed taxonomy of kinds, plus a fluent
// builder in the style of Orizon's diagnostic system.
package diagnostic

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/impala-lang/impala/internal/position"
)

// Kind is the fixed diagnostic taxonomy the checker reports against.
type Kind int

const (
	Undeclared Kind = iota
	DuplicateBinding
	TypeMismatch
	ArityMismatch
	MisplacedTrait
	BoundViolation
	NonReturning
	IllegalType
)

func (k Kind) String() string {
	switch k {
	case Undeclared:
		return "undeclared"
	case DuplicateBinding:
		return "duplicate-binding"
	case TypeMismatch:
		return "type-mismatch"
	case ArityMismatch:
		return "arity-mismatch"
	case MisplacedTrait:
		return "misplaced-trait"
	case BoundViolation:
		return "bound-violation"
	case NonReturning:
		return "non-returning"
	case IllegalType:
		return "illegal-type"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    position.Span
	Notes   []string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.String(), d.Kind, d.Message)
}

// Builder accumulates optional fields onto a Diagnostic before it is
// reported, mirroring the fluent construction style the checker's
// ambient tooling uses elsewhere.
type Builder struct {
	d *Diagnostic
}

// New starts building a diagnostic of the given kind at span.
func New(kind Kind, span position.Span, message string) *Builder {
	return &Builder{d: &Diagnostic{Kind: kind, Span: span, Message: message}}
}

// Note attaches a supplementary note.
func (b *Builder) Note(note string) *Builder {
	b.d.Notes = append(b.d.Notes, note)

	return b
}

// Build returns the finished Diagnostic.
func (b *Builder) Build() *Diagnostic { return b.d }

// Sink accumulates diagnostics across one checker run. The checker
// never stops at the first error: type_error is an absorbing element
// that lets it keep walking, and Sink is where every stop it made
// along the way is recorded.
type Sink struct {
	diags []*Diagnostic
	max   int
}

// NewSink constructs an empty Error Sink with no cap on how many
// diagnostics it will record.
func NewSink() *Sink { return &Sink{} }

// SetMax caps how many diagnostics the sink records; further reports
// are dropped once the cap is reached. 0 (the zero value) means no cap.
func (s *Sink) SetMax(max int) { s.max = max }

// full reports whether the sink has already reached its cap.
func (s *Sink) full() bool { return s.max > 0 && len(s.diags) >= s.max }

// Report records a diagnostic built ad hoc.
func (s *Sink) Report(kind Kind, span position.Span, message string) {
	if s.full() {
		return
	}

	s.diags = append(s.diags, New(kind, span, message).Build())
}

// ReportBuilt records an already-built diagnostic (e.g. one with notes).
func (s *Sink) ReportBuilt(b *Builder) {
	if s.full() {
		return
	}

	s.diags = append(s.diags, b.Build())
}

// Success reports whether no diagnostic was ever recorded.
func (s *Sink) Success() bool { return len(s.diags) == 0 }

// Diagnostics returns every diagnostic recorded, in report order.
func (s *Sink) Diagnostics() []*Diagnostic { return s.diags }

// Err returns nil when the sink is empty, or a multierror aggregating
// every recorded diagnostic otherwise, so callers that want a single
// Go error (e.g. a CLI's exit path) don't have to range over Sink
// themselves.
func (s *Sink) Err() error {
	if s.Success() {
		return nil
	}

	var merr *multierror.Error
	for _, d := range s.diags {
		merr = multierror.Append(merr, d)
	}

	return merr.ErrorOrNil()
}
