package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditorState_Defaults(t *testing.T) {
	state := NewEditorState()

	assert.Equal(t, FilterSepiaTone, state.Filter())
	for _, role := range Roles() {
		assert.Equal(t, 0.5, state.RawValue(role), role.String())
	}

	role, ok := state.EnabledRole()
	require.True(t, ok)
	assert.Equal(t, RoleIntensity, role)
	assert.Equal(t, Parameters{RoleIntensity: 0.5}, state.ComputeParameters())
}

func TestSelectFilter_EnablesDeclaredRoleOnly(t *testing.T) {
	for _, descriptor := range Filters() {
		t.Run(descriptor.Name, func(t *testing.T) {
			state := NewEditorState().SelectFilter(descriptor.Kind)
			declared := descriptor.Roles.Roles()

			enabled := 0
			for _, role := range Roles() {
				if state.IsEnabled(role) {
					enabled++
					assert.True(t, descriptor.Roles.Has(role))
				}
			}

			if len(declared) == 0 {
				assert.Zero(t, enabled)
				_, ok := state.EnabledRole()
				assert.False(t, ok)
				return
			}
			assert.Equal(t, 1, enabled)
			assert.True(t, state.IsEnabled(declared[0]))
		})
	}
}

func TestComputeParameters_MatchesDeclaredRoles(t *testing.T) {
	for _, descriptor := range Filters() {
		t.Run(descriptor.Name, func(t *testing.T) {
			params := NewEditorState().SelectFilter(descriptor.Kind).ComputeParameters()

			assert.Len(t, params, len(descriptor.Roles.Roles()))
			for role := range params {
				assert.True(t, descriptor.Roles.Has(role), "undeclared role %s", role)
			}
			for _, role := range descriptor.Roles.Roles() {
				assert.Contains(t, params, role)
			}
		})
	}
}

func TestComputeParameters_ScalingLaw(t *testing.T) {
	raws := []float64{0, 0.1, 0.25, 0.5, 0.75, 1}

	for _, raw := range raws {
		blur := NewEditorState().SelectFilter(FilterGaussianBlur).UpdateSlider(RoleRadius, raw)
		assert.InDelta(t, raw*200, blur.ComputeParameters()[RoleRadius], 1e-9)

		pixel := NewEditorState().SelectFilter(FilterPixellate).UpdateSlider(RoleScale, raw)
		assert.InDelta(t, raw*10, pixel.ComputeParameters()[RoleScale], 1e-9)

		sepia := NewEditorState().UpdateSlider(RoleIntensity, raw)
		assert.Equal(t, raw, sepia.ComputeParameters()[RoleIntensity])
	}
}

func TestScenario_GaussianBlurRadius(t *testing.T) {
	state := NewEditorState().
		SelectFilter(FilterGaussianBlur).
		UpdateSlider(RoleRadius, 0.75)

	assert.Equal(t, Parameters{RoleRadius: 150.0}, state.ComputeParameters())
}

func TestScenario_PixellateScale(t *testing.T) {
	state := NewEditorState().
		SelectFilter(FilterPixellate).
		UpdateSlider(RoleScale, 0.2)

	params := state.ComputeParameters()
	require.Len(t, params, 1)
	assert.InDelta(t, 2.0, params[RoleScale], 1e-9)
}

func TestUpdateSlider_DisabledRoleIsRetained(t *testing.T) {
	state := NewEditorState().UpdateSlider(RoleRadius, 0.3)

	assert.False(t, state.IsEnabled(RoleRadius))
	assert.NotContains(t, state.ComputeParameters(), RoleRadius)
	assert.Equal(t, 0.3, state.RawValue(RoleRadius))

	state = state.SelectFilter(FilterCrystallize)
	assert.True(t, state.IsEnabled(RoleRadius))
	assert.InDelta(t, 60.0, state.ComputeParameters()[RoleRadius], 1e-9)
}

func TestSelectFilter_KeepsRawValues(t *testing.T) {
	state := NewEditorState().
		UpdateSlider(RoleIntensity, 0.9).
		UpdateSlider(RoleScale, 0.1).
		SelectFilter(FilterPhotoEffectInstant).
		SelectFilter(FilterEdges)

	assert.Equal(t, 0.9, state.RawValue(RoleIntensity))
	assert.Equal(t, 0.1, state.RawValue(RoleScale))
	assert.Equal(t, Parameters{RoleIntensity: 0.9}, state.ComputeParameters())
}

func TestUpdateSlider_Clamps(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{1.5, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
		{0.42, 0.42},
	}

	for _, tc := range cases {
		state := NewEditorState().UpdateSlider(RoleIntensity, tc.in)
		assert.Equal(t, tc.want, state.RawValue(RoleIntensity), "input %v", tc.in)
	}
}

func TestUpdateMethods_DoNotMutateReceiver(t *testing.T) {
	original := NewEditorState()
	_ = original.SelectFilter(FilterPixellate)
	_ = original.UpdateSlider(RoleIntensity, 0.9)

	assert.Equal(t, NewEditorState(), original)
}

func TestSelectFilter_IgnoresKindOutsideCatalog(t *testing.T) {
	state := NewEditorState().SelectFilter(FilterKind(99))
	assert.Equal(t, FilterSepiaTone, state.Filter())
}

func TestNewEditorStateWith_ClampsAndDefaults(t *testing.T) {
	state := NewEditorStateWith(FilterKind(-1), 2, -1, 0.3)

	assert.Equal(t, DefaultFilter, state.Filter())
	assert.Equal(t, 1.0, state.RawValue(RoleIntensity))
	assert.Equal(t, 0.0, state.RawValue(RoleRadius))
	assert.Equal(t, 0.3, state.RawValue(RoleScale))
}

func TestComputeParameters_MultiRoleDescriptor(t *testing.T) {
	raw := [roleCount]float64{0.5, 0.5, 0.5}

	params := computeParameters(NewRoleSet(RoleScale, RoleRadius), raw)
	assert.Equal(t, Parameters{RoleRadius: 100, RoleScale: 5}, params)
}

func TestParametersValue(t *testing.T) {
	params := Parameters{RoleRadius: 12}

	assert.Equal(t, 12.0, params.Value(RoleRadius, 1))
	assert.Equal(t, 7.0, params.Value(RoleScale, 7))
}
