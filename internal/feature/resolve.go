package feature

import "github.com/zenik/zenik/internal/platform"

// EnabledSet is the subset of a registry usable in one environment. It is a
// derived value: build it with [Resolve] and discard it after use.
type EnabledSet struct {
	env     platform.Environment
	modules []Module
	index   map[string]int
	counts  map[Category]int
}

// Resolve evaluates every module's predicate against env and returns the
// eligible ones in registration order. It has no side effects.
func Resolve(env platform.Environment, reg *Registry) EnabledSet {
	set := EnabledSet{
		env:    env,
		index:  make(map[string]int),
		counts: make(map[Category]int),
	}
	if reg == nil {
		return set
	}
	for _, m := range reg.modules {
		if !m.eligibleIn(env) {
			continue
		}
		set.index[m.ID] = len(set.modules)
		set.modules = append(set.modules, m)
		set.counts[m.Category]++
	}
	return set
}

// Environment returns the environment the set was resolved against.
func (s EnabledSet) Environment() platform.Environment { return s.env }

// Modules returns the enabled modules in registration order.
func (s EnabledSet) Modules() []Module {
	out := make([]Module, len(s.modules))
	copy(out, s.modules)
	return out
}

// Len returns the number of enabled modules.
func (s EnabledSet) Len() int { return len(s.modules) }

// Contains reports whether id is enabled.
func (s EnabledSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Get returns the enabled module with the given identifier.
func (s EnabledSet) Get(id string) (Module, bool) {
	i, ok := s.index[id]
	if !ok {
		return Module{}, false
	}
	return s.modules[i], true
}

// IDs returns the enabled identifiers in registration order.
func (s EnabledSet) IDs() []string {
	ids := make([]string, len(s.modules))
	for i, m := range s.modules {
		ids[i] = m.ID
	}
	return ids
}

// HasCategory reports whether at least one module of c is enabled.
func (s EnabledSet) HasCategory(c Category) bool {
	return s.counts[c] > 0
}

// InCategory returns the enabled modules of c in registration order.
func (s EnabledSet) InCategory(c Category) []Module {
	var out []Module
	for _, m := range s.modules {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// Categories returns the non-empty categories in menu order.
func (s EnabledSet) Categories() []Category {
	var out []Category
	for _, c := range Categories {
		if s.HasCategory(c) {
			out = append(out, c)
		}
	}
	return out
}

// Ordered returns the enabled modules grouped by category in menu order,
// keeping registration order within each category. This is the order the
// menu numbers items in.
func (s EnabledSet) Ordered() []Module {
	out := make([]Module, 0, len(s.modules))
	for _, c := range s.Categories() {
		out = append(out, s.InCategory(c)...)
	}
	return out
}
