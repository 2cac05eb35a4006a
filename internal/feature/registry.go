package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID means two modules were registered under one identifier.
	ErrDuplicateID = errors.New("duplicate module identifier")
	// ErrMalformed means a module is missing a required field.
	ErrMalformed = errors.New("malformed module")
	// ErrSealed means Register was called after startup finished.
	ErrSealed = errors.New("registry is sealed")
)

// ConfigError reports a registry configuration problem. These are fatal at
// startup.
type ConfigError struct {
	ModuleID string
	Reason   string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("module %q: %v: %s", e.ModuleID, e.Err, e.Reason)
	}
	return fmt.Sprintf("module %q: %v", e.ModuleID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Registry is an ordered, append-only table of modules. Registration order
// is the menu display order.
type Registry struct {
	modules []Module
	index   map[string]int
	sealed  bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends m. It fails with a *ConfigError on duplicate or
// malformed entries and with ErrSealed once the registry is sealed.
func (r *Registry) Register(m Module) error {
	if r.sealed {
		return &ConfigError{ModuleID: m.ID, Err: ErrSealed}
	}
	if err := m.validate(); err != nil {
		return &ConfigError{ModuleID: m.ID, Reason: err.Error(), Err: ErrMalformed}
	}
	if _, dup := r.index[m.ID]; dup {
		return &ConfigError{ModuleID: m.ID, Err: ErrDuplicateID}
	}
	r.index[m.ID] = len(r.modules)
	r.modules = append(r.modules, m)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level tables whose contents are fixed at compile time.
func (r *Registry) MustRegister(m Module) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// RegisterAll registers each module in order and stops at the first error.
func (r *Registry) RegisterAll(mods ...Module) error {
	for _, m := range mods {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Seal freezes the registry. Later Register calls fail.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool { return r.sealed }

// All returns the registered modules in registration order. The returned
// slice is a copy.
func (r *Registry) All() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Len returns the number of registered modules.
func (r *Registry) Len() int { return len(r.modules) }

// Lookup finds a module by identifier regardless of eligibility. Callers
// that intend to run the module must go through an EnabledSet instead.
func (r *Registry) Lookup(id string) (Module, bool) {
	i, ok := r.index[id]
	if !ok {
		return Module{}, false
	}
	return r.modules[i], true
}

// IDs returns every registered identifier in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.modules))
	for i, m := range r.modules {
		ids[i] = m.ID
	}
	return ids
}
