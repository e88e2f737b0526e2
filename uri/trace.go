package uri

//go:generate go tool mockgen -destination=../internal/testutil/urimock/observer.go -package=urimock . Observer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/gouri/internal/errorutil"
)

// State is a state of the top-level parse.
type State string

const (
	StateStart            State = "start"
	StateScheme           State = "scheme"
	StateAuthorityAndPath State = "authority-and-path"
	StateQuery            State = "query"
	StateFragment         State = "fragment"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Observer is notified about every state the parser enters
// together with the input offset where the state begins.
//
// Every parse starts with [StateStart] and ends with [StateDone] or [StateFailed].
type Observer interface {
	Enter(s State, offset int)
}

// ObserverFunc adapts a function to the [Observer] interface.
type ObserverFunc func(s State, offset int)

func (f ObserverFunc) Enter(s State, offset int) { f(s, offset) }

// Step is a state entered at an input offset.
type Step struct {
	State  State
	Offset int
}

// LogValue implements [slog.LogValuer].
func (s Step) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("state", string(s.State)),
		slog.Int("offset", s.Offset),
	)
}

// ErrIllegalTransition is reported by [Tracer] when the parser enters
// a state that is not reachable from the current one.
const ErrIllegalTransition errorutil.Error = "illegal state transition"

func configureMachine(fsm *stateless.StateMachine) {
	fsm.Configure(StateStart).
		Permit(StateScheme, StateScheme).
		Permit(StateAuthorityAndPath, StateAuthorityAndPath).
		Permit(StateFailed, StateFailed)

	fsm.Configure(StateScheme).
		Permit(StateAuthorityAndPath, StateAuthorityAndPath).
		Permit(StateFailed, StateFailed)

	fsm.Configure(StateAuthorityAndPath).
		Permit(StateQuery, StateQuery).
		Permit(StateFragment, StateFragment).
		Permit(StateDone, StateDone).
		Permit(StateFailed, StateFailed)

	fsm.Configure(StateQuery).
		Permit(StateFragment, StateFragment).
		Permit(StateDone, StateDone).
		Permit(StateFailed, StateFailed)

	fsm.Configure(StateFragment).
		Permit(StateDone, StateDone).
		Permit(StateFailed, StateFailed)

	fsm.Configure(StateDone)
	fsm.Configure(StateFailed)
}

func newMachine() *stateless.StateMachine {
	fsm := stateless.NewStateMachine(StateStart)
	configureMachine(fsm)
	return fsm
}

// StateGraph returns the top-level parse state machine in Graphviz DOT format.
func StateGraph() string { return newMachine().ToGraph() }

// Tracer is an [Observer] that validates the entered states against
// the top-level parse state machine and records them.
//
// Entering [StateStart] begins a new trace, so one Tracer may follow
// several sequential parses. A Tracer is not safe for concurrent use.
type Tracer struct {
	fsm   *stateless.StateMachine
	steps []Step
	err   error
}

// NewTracer creates a new tracer.
func NewTracer() *Tracer {
	return &Tracer{fsm: newMachine()}
}

// Enter implements [Observer].
// After the first illegal transition the trace stops recording until the next [StateStart].
func (t *Tracer) Enter(s State, offset int) {
	if s == StateStart {
		t.Reset()
		t.steps = append(t.steps, Step{s, offset})
		return
	}
	if t.err != nil {
		return
	}
	if err := t.fsm.FireCtx(context.Background(), s); err != nil {
		t.err = errtrace.Wrap(fmt.Errorf("%w: %s -> %s at offset %d: %w", ErrIllegalTransition, t.State(), s, offset, err))
		return
	}
	t.steps = append(t.steps, Step{s, offset})
}

// Reset returns the tracer to [StateStart] and drops the recorded steps.
func (t *Tracer) Reset() {
	t.fsm = newMachine()
	t.steps = t.steps[:0]
	t.err = nil
}

// State returns the current state.
func (t *Tracer) State() State {
	return t.fsm.MustState().(State) //nolint:forcetypeassert
}

// Steps returns the recorded steps.
func (t *Tracer) Steps() []Step { return slices.Clone(t.steps) }

// Err returns the first illegal transition of the current trace.
func (t *Tracer) Err() error { return errtrace.Wrap(t.err) }
