package models

import (
	"fmt"
	"strings"
)

// FilterKind identifies one of the built-in filters
type FilterKind int

const (
	FilterCrystallize FilterKind = iota
	FilterEdges
	FilterGaussianBlur
	FilterPixellate
	FilterSepiaTone
	FilterUnsharpMask
	FilterVignette
	FilterPointillize
	FilterCircularWrap
	FilterPhotoEffectInstant

	filterCount
)

// Role is a semantic category of filter parameter
type Role int

const (
	RoleIntensity Role = iota
	RoleRadius
	RoleScale

	roleCount
)

// rolePrecedence decides which role drives the UI when a filter declares several
var rolePrecedence = [roleCount]Role{RoleIntensity, RoleRadius, RoleScale}

// roleScales maps the 0..1 slider range onto the engine range of each role
var roleScales = [roleCount]float64{
	RoleIntensity: 1,
	RoleRadius:    200,
	RoleScale:     10,
}

var roleNames = [roleCount]string{
	RoleIntensity: "Intensity",
	RoleRadius:    "Radius",
	RoleScale:     "Scale",
}

// Roles returns every role in precedence order
func Roles() []Role {
	roles := make([]Role, len(rolePrecedence))
	copy(roles, rolePrecedence[:])
	return roles
}

func (r Role) String() string {
	if !r.valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// EngineScale returns the multiplier applied to a raw slider value for this role
func (r Role) EngineScale() float64 {
	if !r.valid() {
		return 0
	}
	return roleScales[r]
}

func (r Role) valid() bool {
	return r >= 0 && r < roleCount
}

// RoleSet is a small bit set of roles
type RoleSet uint8

// NewRoleSet builds a set from the given roles
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		if role.valid() {
			set |= 1 << uint(role)
		}
	}
	return set
}

// Has reports whether the role is in the set
func (s RoleSet) Has(role Role) bool {
	return role.valid() && s&(1<<uint(role)) != 0
}

// Empty reports whether no role is declared
func (s RoleSet) Empty() bool {
	return s == 0
}

// Roles lists the members in precedence order
func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, roleCount)
	for _, role := range rolePrecedence {
		if s.Has(role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Primary returns the highest-precedence declared role.
// The second result is false for an empty set.
func (s RoleSet) Primary() (Role, bool) {
	for _, role := range rolePrecedence {
		if s.Has(role) {
			return role, true
		}
	}
	return 0, false
}

// FilterDescriptor is the static metadata of a filter
type FilterDescriptor struct {
	Kind        FilterKind
	Name        string
	DisplayName string
	Roles       RoleSet
}

var filterCatalog = [filterCount]FilterDescriptor{
	FilterCrystallize:        {Kind: FilterCrystallize, Name: "Crystallize", DisplayName: "Crystallize", Roles: NewRoleSet(RoleRadius)},
	FilterEdges:              {Kind: FilterEdges, Name: "Edges", DisplayName: "Edges", Roles: NewRoleSet(RoleIntensity)},
	FilterGaussianBlur:       {Kind: FilterGaussianBlur, Name: "GaussianBlur", DisplayName: "Gaussian Blur", Roles: NewRoleSet(RoleRadius)},
	FilterPixellate:          {Kind: FilterPixellate, Name: "Pixellate", DisplayName: "Pixellate", Roles: NewRoleSet(RoleScale)},
	FilterSepiaTone:          {Kind: FilterSepiaTone, Name: "SepiaTone", DisplayName: "Sepia Tone", Roles: NewRoleSet(RoleIntensity)},
	FilterUnsharpMask:        {Kind: FilterUnsharpMask, Name: "UnsharpMask", DisplayName: "Unsharp Mask", Roles: NewRoleSet(RoleIntensity)},
	FilterVignette:           {Kind: FilterVignette, Name: "Vignette", DisplayName: "Vignette", Roles: NewRoleSet(RoleIntensity)},
	FilterPointillize:        {Kind: FilterPointillize, Name: "Pointillize", DisplayName: "Pointillize", Roles: NewRoleSet(RoleRadius)},
	FilterCircularWrap:       {Kind: FilterCircularWrap, Name: "CircularWrap", DisplayName: "Circular Wrap", Roles: NewRoleSet(RoleRadius)},
	FilterPhotoEffectInstant: {Kind: FilterPhotoEffectInstant, Name: "PhotoEffectInstant", DisplayName: "Instant", Roles: NewRoleSet()},
}

// Filters returns the catalog in declaration order
func Filters() []FilterDescriptor {
	descriptors := make([]FilterDescriptor, len(filterCatalog))
	copy(descriptors, filterCatalog[:])
	return descriptors
}

// Valid reports whether the kind belongs to the catalog
func (k FilterKind) Valid() bool {
	return k >= 0 && k < filterCount
}

// Descriptor returns the catalog entry for the kind.
// Kinds outside the catalog describe a filter with no roles.
func (k FilterKind) Descriptor() FilterDescriptor {
	if !k.Valid() {
		return FilterDescriptor{Kind: k, Name: k.String(), DisplayName: k.String()}
	}
	return filterCatalog[k]
}

func (k FilterKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
	return filterCatalog[k].Name
}

// ParseFilterKind resolves a filter by name or display name, ignoring case and spaces
func ParseFilterKind(name string) (FilterKind, error) {
	wanted := normalizeFilterName(name)
	for _, descriptor := range filterCatalog {
		if normalizeFilterName(descriptor.Name) == wanted || normalizeFilterName(descriptor.DisplayName) == wanted {
			return descriptor.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

func normalizeFilterName(name string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(name)))
}
