package feature

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenik/zenik/internal/platform"
)

func noop() error { return nil }

// scenarioRegistry is T1 (tools, always eligible) and G1 (gaming, needs a
// game controller).
func scenarioRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Module{ID: "t1", Name: "T1", Category: CategoryTools, Eligible: Always, Run: noop},
		Module{ID: "g1", Name: "G1", Category: CategoryGaming, Eligible: RequiresCapability(platform.CapGameController), Run: noop},
	))
	reg.Seal()
	return reg
}

// allEnvironments enumerates every combination of kind, constrained flag
// and capability subset.
func allEnvironments() []platform.Environment {
	caps := []platform.Capability{platform.CapGPUAccess, platform.CapGameController, platform.CapNativeShell}
	var envs []platform.Environment
	for _, k := range []platform.Kind{platform.KindUnknown, platform.KindDesktop, platform.KindMobileConstrained} {
		for _, constrained := range []bool{false, true} {
			for mask := 0; mask < 1<<len(caps); mask++ {
				var set []platform.Capability
				for i, c := range caps {
					if mask&(1<<i) != 0 {
						set = append(set, c)
					}
				}
				envs = append(envs, platform.NewEnvironment(k, constrained, set...))
			}
		}
	}
	return envs
}

func TestResolve_ScenarioDesktop(t *testing.T) {
	env := platform.NewEnvironment(platform.KindDesktop, false, platform.CapGPUAccess, platform.CapGameController)
	set := Resolve(env, scenarioRegistry(t))

	assert.Equal(t, []string{"t1", "g1"}, set.IDs())
	assert.Equal(t, []Category{CategoryTools, CategoryGaming}, set.Categories())
	assert.True(t, set.HasCategory(CategoryGaming))
	assert.False(t, set.HasCategory(CategorySystem))
}

func TestResolve_ScenarioMobile(t *testing.T) {
	env := platform.NewEnvironment(platform.KindMobileConstrained, true)
	set := Resolve(env, scenarioRegistry(t))

	assert.Equal(t, []string{"t1"}, set.IDs())
	assert.False(t, set.HasCategory(CategoryGaming))
	assert.Equal(t, []Category{CategoryTools}, set.Categories())
	assert.False(t, set.Contains("g1"))
	_, ok := set.Get("g1")
	assert.False(t, ok)
}

func TestResolve_UnknownMatchesMobileForConstrainedPredicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Module{ID: "desk", Name: "Desk", Category: CategoryTools, Eligible: Unconstrained, Run: noop},
		Module{ID: "lite", Name: "Lite", Category: CategorySystem, Eligible: func(e platform.Environment) bool { return e.Constrained() }, Run: noop},
		Module{ID: "any", Name: "Any", Category: CategorySystem, Eligible: Always, Run: noop},
	))

	unknown := Resolve(platform.DetectWith(platform.Signals{GOOS: "linux"}), reg)
	mobile := Resolve(platform.DetectWith(platform.Signals{GOOS: "linux", MobileMarker: true}), reg)

	assert.Equal(t, mobile.IDs(), unknown.IDs())
	assert.Equal(t, []string{"lite", "any"}, unknown.IDs())
}

func TestResolve_Deterministic(t *testing.T) {
	reg := scenarioRegistry(t)
	for _, env := range allEnvironments() {
		a := Resolve(env, reg)
		b := Resolve(env, reg)
		if diff := cmp.Diff(a.IDs(), b.IDs()); diff != "" {
			t.Errorf("Resolve(%v) not deterministic (-first +second):\n%s", env, diff)
		}
	}
}

func TestResolve_NeverContainsIneligible(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Module{ID: "always", Name: "a", Category: CategoryTools, Eligible: Always, Run: noop},
		Module{ID: "never", Name: "n", Category: CategoryTools, Eligible: Never, Run: noop},
		Module{ID: "pad", Name: "p", Category: CategoryGaming, Eligible: RequiresCapability(platform.CapGameController), Run: noop},
		Module{ID: "gpu", Name: "g", Category: CategoryGaming, Eligible: RequiresCapability(platform.CapGPUAccess), Run: noop},
		Module{ID: "desk", Name: "d", Category: CategoryTools, Eligible: RequiresKind(platform.KindDesktop), Run: noop},
		Module{ID: "shell", Name: "s", Category: CategorySystem, Eligible: All(Unconstrained, RequiresCapability(platform.CapNativeShell)), Run: noop},
	))

	for _, env := range allEnvironments() {
		set := Resolve(env, reg)
		for _, m := range reg.All() {
			if !m.Eligible(env) && set.Contains(m.ID) {
				t.Errorf("ineligible module %q enabled in %v", m.ID, env)
			}
			if m.Eligible(env) && !set.Contains(m.ID) {
				t.Errorf("eligible module %q missing in %v", m.ID, env)
			}
		}
	}
}

func TestResolve_ConstrainedExcludesControllerModules(t *testing.T) {
	reg := scenarioRegistry(t)
	for _, s := range []platform.Signals{
		{GOOS: "linux", MobileMarker: true, Shell: true},
		{GOOS: "linux", KernelRelease: "4.20.69-ish"},
		{GOOS: "linux", Shell: true},
	} {
		env := platform.DetectWith(s)
		require.True(t, env.Constrained())
		assert.False(t, Resolve(env, reg).Contains("g1"), "g1 enabled for %v", env)
	}
}

func TestResolve_PreservesRegistrationOrderWithinCategory(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Module{ID: "s1", Name: "s1", Category: CategorySystem, Eligible: Always, Run: noop},
		Module{ID: "t1", Name: "t1", Category: CategoryTools, Eligible: Always, Run: noop},
		Module{ID: "s2", Name: "s2", Category: CategorySystem, Eligible: Always, Run: noop},
		Module{ID: "t2", Name: "t2", Category: CategoryTools, Eligible: Always, Run: noop},
	))
	set := Resolve(platform.NewEnvironment(platform.KindDesktop, false), reg)

	assert.Equal(t, []string{"s1", "t1", "s2", "t2"}, set.IDs())
	ordered := make([]string, 0, 4)
	for _, m := range set.Ordered() {
		ordered = append(ordered, m.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "s1", "s2"}, ordered)
}

func TestResolve_NilRegistry(t *testing.T) {
	set := Resolve(platform.NewEnvironment(platform.KindDesktop, false), nil)
	assert.Zero(t, set.Len())
	assert.Empty(t, set.Categories())
}

func TestPredicates(t *testing.T) {
	desktop := platform.NewEnvironment(platform.KindDesktop, false, platform.CapGPUAccess, platform.CapNativeShell)
	mobile := platform.NewEnvironment(platform.KindMobileConstrained, true, platform.CapNativeShell)

	tests := []struct {
		name    string
		pred    Predicate
		desktop bool
		mobile  bool
	}{
		{"always", Always, true, true},
		{"never", Never, false, false},
		{"unconstrained", Unconstrained, true, false},
		{"gpu", RequiresCapability(platform.CapGPUAccess), true, false},
		{"gpu and shell", RequiresCapability(platform.CapGPUAccess, platform.CapNativeShell), true, false},
		{"shell", RequiresCapability(platform.CapNativeShell), true, true},
		{"mobile kind", RequiresKind(platform.KindMobileConstrained), false, true},
		{"all empty", All(), true, true},
		{"any empty", Any(), false, false},
		{"any", Any(RequiresKind(platform.KindMobileConstrained), RequiresCapability(platform.CapGPUAccess)), true, true},
		{"not unconstrained", Not(Unconstrained), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.desktop, tt.pred(desktop), "desktop")
			assert.Equal(t, tt.mobile, tt.pred(mobile), "mobile")
		})
	}
}
