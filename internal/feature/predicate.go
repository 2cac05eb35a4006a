package feature

import "github.com/zenik/zenik/internal/platform"

// Predicate decides whether a module may run in an environment. Predicates
// must only look at the Environment they are given.
type Predicate func(platform.Environment) bool

// Always accepts every environment.
func Always(platform.Environment) bool { return true }

// Never rejects every environment.
func Never(platform.Environment) bool { return false }

// Unconstrained accepts environments that are not in constrained mode.
// Unknown hosts are constrained, so they are rejected too.
func Unconstrained(env platform.Environment) bool { return !env.Constrained() }

// RequiresCapability accepts environments that detected every capability in caps.
func RequiresCapability(caps ...platform.Capability) Predicate {
	return func(env platform.Environment) bool {
		for _, c := range caps {
			if !env.Has(c) {
				return false
			}
		}
		return true
	}
}

// RequiresKind accepts environments whose platform kind is one of kinds.
func RequiresKind(kinds ...platform.Kind) Predicate {
	return func(env platform.Environment) bool {
		for _, k := range kinds {
			if env.Kind() == k {
				return true
			}
		}
		return false
	}
}

// All accepts an environment only if every predicate does. All() accepts
// everything.
func All(preds ...Predicate) Predicate {
	return func(env platform.Environment) bool {
		for _, p := range preds {
			if !p(env) {
				return false
			}
		}
		return true
	}
}

// Any accepts an environment if at least one predicate does. Any() rejects
// everything.
func Any(preds ...Predicate) Predicate {
	return func(env platform.Environment) bool {
		for _, p := range preds {
			if p(env) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(env platform.Environment) bool { return !p(env) }
}
