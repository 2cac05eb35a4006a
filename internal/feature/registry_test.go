package feature

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_PreservesOrder(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, reg.Register(Module{ID: id, Name: id, Category: CategoryTools, Eligible: Always, Run: noop}))
	}
	assert.Equal(t, []string{"c", "a", "b"}, reg.IDs())
	assert.Equal(t, 3, reg.Len())
}

func TestRegister_DuplicateAlwaysFails(t *testing.T) {
	variants := []Module{
		{ID: "dup", Name: "Same", Category: CategoryTools, Eligible: Always, Run: noop},
		{ID: "dup", Name: "Other name", Category: CategoryGaming, Eligible: Never, Run: func() error { return errors.New("x") }},
		{ID: "dup", Name: "System", Description: "d", Category: CategorySystem, Eligible: Unconstrained, Run: noop},
	}

	for i, second := range variants {
		t.Run(fmt.Sprintf("variant%d", i), func(t *testing.T) {
			reg := NewRegistry()
			require.NoError(t, reg.Register(variants[0]))

			err := reg.Register(second)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDuplicateID)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "dup", ce.ModuleID)
			assert.Equal(t, 1, reg.Len(), "duplicate must not shadow the first entry")

			first, ok := reg.Lookup("dup")
			require.True(t, ok)
			assert.Equal(t, variants[0].Name, first.Name)
		})
	}
}

func TestRegister_Malformed(t *testing.T) {
	tests := []struct {
		name string
		mod  Module
	}{
		{"empty id", Module{Name: "x", Category: CategoryTools, Eligible: Always, Run: noop}},
		{"whitespace id", Module{ID: "a b", Name: "x", Category: CategoryTools, Eligible: Always, Run: noop}},
		{"no name", Module{ID: "x", Category: CategoryTools, Eligible: Always, Run: noop}},
		{"zero category", Module{ID: "x", Name: "x", Eligible: Always, Run: noop}},
		{"unknown category", Module{ID: "x", Name: "x", Category: Category(99), Eligible: Always, Run: noop}},
		{"nil predicate", Module{ID: "x", Name: "x", Category: CategoryTools, Run: noop}},
		{"nil handler", Module{ID: "x", Name: "x", Category: CategoryTools, Eligible: Always}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.mod)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Zero(t, reg.Len())
		})
	}
}

func TestRegister_AfterSeal(t *testing.T) {
	reg := NewRegistry()
	reg.Seal()
	assert.True(t, reg.Sealed())

	err := reg.Register(Module{ID: "late", Name: "late", Category: CategoryTools, Eligible: Always, Run: noop})
	assert.ErrorIs(t, err, ErrSealed)
}

func TestRegisterAll_StopsAtFirstError(t *testing.T) {
	reg := NewRegistry()
	err := reg.RegisterAll(
		Module{ID: "a", Name: "a", Category: CategoryTools, Eligible: Always, Run: noop},
		Module{ID: "a", Name: "a", Category: CategoryTools, Eligible: Always, Run: noop},
		Module{ID: "b", Name: "b", Category: CategoryTools, Eligible: Always, Run: noop},
	)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, []string{"a"}, reg.IDs())
}

func TestAll_ReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Module{ID: "a", Name: "a", Category: CategoryTools, Eligible: Always, Run: noop}))

	mods := reg.All()
	mods[0].ID = "mutated"

	_, ok := reg.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, reg.IDs())
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{ModuleID: "x", Reason: "nil handler", Err: ErrMalformed}
	assert.Equal(t, `module "x": malformed module: nil handler`, err.Error())

	err = &ConfigError{ModuleID: "y", Err: ErrDuplicateID}
	assert.Equal(t, `module "y": duplicate module identifier`, err.Error())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusCancelled, StatusOf(fmt.Errorf("prompt: %w", ErrCancelled)))
	assert.Equal(t, StatusFailure, StatusOf(errors.New("boom")))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("gaming")
	require.NoError(t, err)
	assert.Equal(t, CategoryGaming, c)

	_, err = ParseCategory("music")
	assert.Error(t, err)
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Tools", CategoryTools.Title())
	assert.Equal(t, "Gaming", CategoryGaming.Title())
	assert.Equal(t, "System", CategorySystem.Title())
}

func TestMustRegister(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Module{ID: "a", Name: "a", Category: CategoryTools, Eligible: Always, Run: noop})
	assert.Equal(t, []string{"a"}, reg.IDs())

	defer func() {
		r := recover()
		require.NotNil(t, r, "duplicate must panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be the registration error")
		var ce *ConfigError
		assert.ErrorAs(t, err, &ce)
		assert.ErrorIs(t, err, ErrDuplicateID)
		assert.Equal(t, 1, reg.Len())
	}()
	reg.MustRegister(Module{ID: "a", Name: "again", Category: CategoryTools, Eligible: Always, Run: noop})
}
