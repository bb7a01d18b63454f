// Package primitive implements the Primitive Base lifecycle shared by
// every profiler: options, Fit, Execute, ResetState and phase reporting.
// Concrete algorithms (fd.Base, metric.Verifier) embed Base and layer
// their own Fit/Execute on top of its preludes, the same template-method split
// lvlath's tsp package uses between its public dispatcher (solve.go)
// and per-strategy implementations.
package primitive

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/profila/config"
	"github.com/katalvlaran/profila/relation"
)

// Sentinel errors for Primitive lifecycle violations.
var (
	// ErrNotFitted indicates Execute was called before Fit.
	ErrNotFitted = errors.New("primitive: Execute called before Fit")

	// ErrInvalidDataset indicates Fit received an unusable dataset.
	ErrInvalidDataset = errors.New("primitive: invalid dataset")
)

// RunMetadata stamps a Primitive's lifetime: a correlation RunID assigned
// at construction (so a batch caller driving many Primitive instances
// through the registry can track them without a shared store) and the
// wall-clock bounds of its most recent Fit/Execute.
type RunMetadata struct {
	RunID      uuid.UUID
	FitAt      time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// Primitive is the public contract every profiler in this module
// satisfies.
type Primitive interface {
	SetOption(name string, value interface{}) error
	Fit(stream relation.DatasetStream) error
	Execute() (time.Duration, error)
	ResetState()
	PhaseNames() []string
}

// Base implements the lifecycle bookkeeping common to every Primitive;
// concrete types embed it and call BeginFit, BeginExecute and
// EndExecute from their own Fit and Execute methods.
type Base struct {
	Options *config.Registry
	Phases  []string
	Run     RunMetadata

	relation    *relation.Relation
	fitted      bool
	phaseCursor int

	progress ProgressSink
}

// ProgressSink receives phase-advance notifications; the progress
// package's websocket Streamer is the production implementation, tests
// use nil (no-op).
type ProgressSink interface {
	Advance(phaseIndex int, phaseName string)
}

// NewBase constructs a Base with the given ordered phase names and a
// fresh, empty option Registry.
func NewBase(phases []string) *Base {
	return &Base{
		Options: config.NewRegistry(),
		Phases:  phases,
		Run:     RunMetadata{RunID: uuid.New()},
	}
}

// AttachProgress wires a ProgressSink that receives PhaseNames()[i]
// advance events during Execute.
func (b *Base) AttachProgress(sink ProgressSink) {
	b.progress = sink
}

// SetOption forwards to the option Registry.
func (b *Base) SetOption(name string, value interface{}) error {
	return b.Options.Set(name, value)
}

// PhaseNames returns the ordered phase names for progress reporting.
func (b *Base) PhaseNames() []string {
	return append([]string(nil), b.Phases...)
}

// AdvancePhase moves the phase cursor forward by one and, if a
// ProgressSink is attached, publishes the transition.
func (b *Base) AdvancePhase() {
	if b.phaseCursor < len(b.Phases) {
		if b.progress != nil {
			b.progress.Advance(b.phaseCursor, b.Phases[b.phaseCursor])
		}
		b.phaseCursor++
	}
}

// Relation returns the relation parsed by the most recent Fit, or nil.
func (b *Base) Relation() *relation.Relation {
	return b.relation
}

// Fitted reports whether Fit has successfully completed at least once
// since construction. ResetState does not clear it.
func (b *Base) Fitted() bool {
	return b.fitted
}

// BeginFit parses stream into the shared Typed Column Store and stamps
// RunMetadata. Subclasses call this first from their own Fit.
func (b *Base) BeginFit(stream relation.DatasetStream) error {
	rel, err := relation.Parse(stream)
	if err != nil {
		return err
	}
	b.relation = rel
	b.fitted = true
	b.phaseCursor = 0
	b.Run.FitAt = now()
	return nil
}

// BeginExecute validates the lifecycle precondition that Fit has run.
func (b *Base) BeginExecute() error {
	if !b.fitted {
		return ErrNotFitted
	}
	b.Run.StartedAt = now()
	b.phaseCursor = 0
	return nil
}

// EndExecute stamps FinishedAt and returns the elapsed duration of the
// Execute call that began at the matching BeginExecute.
func (b *Base) EndExecute() time.Duration {
	b.Run.FinishedAt = now()
	return b.Run.FinishedAt.Sub(b.Run.StartedAt)
}

// ResetState clears the phase cursor; the fitted relation is preserved
// so Execute can run again without re-parsing.
func (b *Base) ResetState() {
	b.phaseCursor = 0
}

var now = time.Now
