// Package dispatch routes menu selections to feature modules. Every
// selection is checked against a freshly resolved enabled set, so a module
// that is not eligible right now can never be invoked.
package dispatch

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/platform"
)

// State is the dispatcher's position in its turn-taking loop.
type State int

const (
	StateAwaiting State = iota
	StateInvoking
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaiting:
		return "awaiting-selection"
	case StateInvoking:
		return "invoking"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

var (
	// ErrNotAvailable means the selection is unknown or not eligible in the
	// current environment.
	ErrNotAvailable = errors.New("selection not available")
	// ErrTerminated means Select was called after Exit.
	ErrTerminated = errors.New("dispatcher terminated")
)

// SelectionError reports a rejected selection. The dispatcher stays in
// StateAwaiting.
type SelectionError struct {
	ID string
	// Registered is true when the identifier exists but is not eligible.
	Registered  bool
	Suggestions []string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%v: %q", ErrNotAvailable, e.ID)
}

func (e *SelectionError) Unwrap() error { return ErrNotAvailable }

// EnvSource returns the environment to resolve against. It is called once
// per selection.
type EnvSource func() platform.Environment

// Static returns an EnvSource that always yields env.
func Static(env platform.Environment) EnvSource {
	return func() platform.Environment { return env }
}

// Result is the outcome of one invocation.
type Result struct {
	ModuleID string
	Name     string
	Status   feature.Status
	Err      error
	Duration time.Duration
}

// Dispatcher presents the enabled set and invokes selected modules one at a
// time. It is not safe for concurrent use.
type Dispatcher struct {
	reg   *feature.Registry
	env   EnvSource
	log   *zap.Logger
	now   func() time.Time
	state State
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the activity logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a dispatcher over a sealed registry.
func New(reg *feature.Registry, env EnvSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg: reg,
		env: env,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current state.
func (d *Dispatcher) State() State { return d.state }

// Enabled resolves the enabled set against the current environment.
func (d *Dispatcher) Enabled() feature.EnabledSet {
	return feature.Resolve(d.env(), d.reg)
}

// Select re-resolves the enabled set and, if id is in it, invokes the
// module's handler exactly once. Rejected selections return a
// *SelectionError and invoke nothing.
func (d *Dispatcher) Select(id string) (Result, error) {
	if d.state == StateTerminated {
		return Result{ModuleID: id}, ErrTerminated
	}

	set := d.Enabled()
	m, ok := set.Get(id)
	if !ok {
		_, registered := d.reg.Lookup(id)
		serr := &SelectionError{ID: id, Registered: registered, Suggestions: suggest(id, set)}
		d.log.Info("selection rejected",
			zap.String("module", id),
			zap.Bool("registered", registered),
			zap.Stringer("platform", set.Environment().Kind()))
		return Result{ModuleID: id}, serr
	}

	d.state = StateInvoking
	d.log.Info("invoking module", zap.String("module", m.ID))

	start := d.now()
	err := invoke(m)
	res := Result{
		ModuleID: m.ID,
		Name:     m.Name,
		Status:   feature.StatusOf(err),
		Err:      err,
		Duration: d.now().Sub(start),
	}
	d.state = StateAwaiting

	fields := []zap.Field{
		zap.String("module", m.ID),
		zap.Stringer("status", res.Status),
		zap.Duration("duration", res.Duration),
	}
	if res.Status == feature.StatusFailure {
		d.log.Warn("module failed", append(fields, zap.Error(err))...)
	} else {
		d.log.Info("module finished", fields...)
	}
	return res, nil
}

// Exit moves the dispatcher to StateTerminated.
func (d *Dispatcher) Exit() {
	if d.state != StateTerminated {
		d.log.Info("dispatcher exit")
	}
	d.state = StateTerminated
}

// invoke runs the handler, converting a panic into a failure so one broken
// module cannot take the menu down.
func invoke(m feature.Module) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("module %s panicked: %v", m.ID, r)
		}
	}()
	return m.Run()
}
