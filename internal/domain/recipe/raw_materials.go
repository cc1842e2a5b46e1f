package recipe

import (
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultBaseResources lists the extracted goods that no recipe is expected to produce.
// They are always resolution leaves.
var DefaultBaseResources = []string{
	"IRON_ORE",
	"COPPER_ORE",
	"LIMESTONE",
	"COAL",
	"CATERIUM_ORE",
	"RAW_QUARTZ",
	"SULFUR",
	"BAUXITE",
	"URANIUM",
	"CRUDE_OIL",
	"WATER",
	"NITROGEN_GAS",
	"SAM_ORE",
}

// RawMaterialPolicy decides which items the resolver stops at
type RawMaterialPolicy interface {
	// IsBaseResource reports membership in the fixed set of non-producible resources
	IsBaseResource(item string) bool

	// IsRawOverride reports whether a refined item should be treated as raw
	// when the caller asks for it
	IsRawOverride(item string) bool
}

// ConfiguredRawPolicy is a RawMaterialPolicy backed by a resource set and
// a list of doublestar patterns matched against item identifiers
type ConfiguredRawPolicy struct {
	baseResources map[string]bool
	patterns      []string
}

// NewConfiguredRawPolicy creates a policy from resource identifiers and override patterns.
// Invalid patterns are rejected up front so matching never fails later.
func NewConfiguredRawPolicy(baseResources []string, overridePatterns []string) (*ConfiguredRawPolicy, error) {
	set := make(map[string]bool, len(baseResources))
	for _, item := range baseResources {
		set[item] = true
	}

	for _, pattern := range overridePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &ErrInvalidPattern{Pattern: pattern}
		}
	}

	patterns := make([]string, len(overridePatterns))
	copy(patterns, overridePatterns)

	return &ConfiguredRawPolicy{
		baseResources: set,
		patterns:      patterns,
	}, nil
}

// DefaultRawPolicy returns the policy with DefaultBaseResources and no overrides
func DefaultRawPolicy() *ConfiguredRawPolicy {
	policy, _ := NewConfiguredRawPolicy(DefaultBaseResources, nil)
	return policy
}

// IsBaseResource reports whether item is in the configured resource set
func (p *ConfiguredRawPolicy) IsBaseResource(item string) bool {
	return p.baseResources[item]
}

// IsRawOverride reports whether item matches any override pattern
func (p *ConfiguredRawPolicy) IsRawOverride(item string) bool {
	for _, pattern := range p.patterns {
		if doublestar.MatchUnvalidated(pattern, item) {
			return true
		}
	}
	return false
}

// IsRawMaterial reports whether item is a resolution leaf for the given index and policy:
// a base resource, an item without recipes, or (when treatAsRaw is set) a raw override.
func IsRawMaterial(item string, index *Index, policy RawMaterialPolicy, treatAsRaw bool) bool {
	if policy != nil && policy.IsBaseResource(item) {
		return true
	}
	if treatAsRaw && policy != nil && policy.IsRawOverride(item) {
		return true
	}
	return !index.HasRecipes(item)
}
