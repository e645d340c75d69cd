package models

import "math"

const (
	DefaultFilter   = FilterSepiaTone
	DefaultRawValue = 0.5
)

// Parameters maps each declared role to its engine-facing value
type Parameters map[Role]float64

// Value returns the parameter for role, or fallback when it is absent
func (p Parameters) Value(role Role, fallback float64) float64 {
	if value, ok := p[role]; ok {
		return value
	}
	return fallback
}

// EditorState is the filter/slider state of one editing session.
// Update methods return a new state and never mutate the receiver.
type EditorState struct {
	filter FilterKind
	raw    [roleCount]float64
}

// NewEditorState returns the session start state: Sepia Tone with every slider at 0.5
func NewEditorState() EditorState {
	return NewEditorStateWith(DefaultFilter, DefaultRawValue, DefaultRawValue, DefaultRawValue)
}

// NewEditorStateWith seeds a state from configured defaults. Values are clamped to [0,1].
func NewEditorStateWith(filter FilterKind, intensity, radius, scale float64) EditorState {
	if !filter.Valid() {
		filter = DefaultFilter
	}
	state := EditorState{filter: filter}
	state.raw[RoleIntensity] = clampUnit(intensity)
	state.raw[RoleRadius] = clampUnit(radius)
	state.raw[RoleScale] = clampUnit(scale)
	return state
}

// Filter returns the selected filter
func (s EditorState) Filter() FilterKind {
	return s.filter
}

// RawValue returns the stored slider position for role, enabled or not
func (s EditorState) RawValue(role Role) float64 {
	if !role.valid() {
		return 0
	}
	return s.raw[role]
}

// SelectFilter switches filters. Raw slider values are kept.
func (s EditorState) SelectFilter(kind FilterKind) EditorState {
	if !kind.Valid() {
		return s
	}
	s.filter = kind
	return s
}

// UpdateSlider stores a raw value for role, clamped to [0,1], whether or not the role is enabled
func (s EditorState) UpdateSlider(role Role, value float64) EditorState {
	if !role.valid() {
		return s
	}
	s.raw[role] = clampUnit(value)
	return s
}

// EnabledRole returns the single role whose slider is active for the selected filter
func (s EditorState) EnabledRole() (Role, bool) {
	return s.filter.Descriptor().Roles.Primary()
}

// IsEnabled reports whether the slider for role is active
func (s EditorState) IsEnabled(role Role) bool {
	enabled, ok := s.EnabledRole()
	return ok && enabled == role
}

// ComputeParameters scales the raw values of every role the selected filter declares
func (s EditorState) ComputeParameters() Parameters {
	return computeParameters(s.filter.Descriptor().Roles, s.raw)
}

func computeParameters(roles RoleSet, raw [roleCount]float64) Parameters {
	params := make(Parameters, len(roles.Roles()))
	for _, role := range roles.Roles() {
		params[role] = raw[role] * role.EngineScale()
	}
	return params
}

func clampUnit(value float64) float64 {
	switch {
	case math.IsNaN(value):
		return 0
	case value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
