package catalog

import (
	"sort"

	"github.com/returnhub/backend/internal/domain/shared"
)

// Resolver errors
var (
	// ErrVariationUnresolved means the selection is partial: at least one of
	// the product's attributes has no chosen value yet.
	ErrVariationUnresolved = shared.NewDomainError("VARIATION_UNRESOLVED", "Selection does not assign every attribute")
	// ErrVariationNotFound means the selection is complete but matches no
	// existing variation (the option list may have changed since it was read).
	ErrVariationNotFound = shared.NewDomainError("VARIATION_NOT_FOUND", "No variation matches the selected attributes")
)

// Selection maps attribute names to chosen values. It may be partial.
type Selection map[string]string

// AvailableOptions computes the values the named attribute can still take,
// given the selections fixed at positions before it in the product's
// attribute ordering. The variation set is filtered to those consistent with
// the fixed prefix and projected onto the attribute. A contradictory
// selection yields the empty set.
//
// The result is sorted so repeated calls over the same data are identical.
func AvailableOptions(product *Product, variations []ProductVariation, attribute string, selection Selection) []string {
	pos := product.AttributePosition(attribute)
	if pos < 0 {
		return []string{}
	}

	// Selections naming attributes the product no longer exposes are stale
	// and cannot be satisfied by any variation.
	for name := range selection {
		if product.AttributePosition(name) < 0 {
			return []string{}
		}
	}

	fixed := make(Selection)
	for _, attr := range product.Attributes {
		if attr.Position >= pos {
			break
		}
		if value, ok := selection[attr.Name]; ok {
			fixed[attr.Name] = value
		}
	}

	seen := make(map[string]struct{})
	options := make([]string, 0)
	for i := range variations {
		if variations[i].ProductID != product.ID {
			continue
		}
		if !variations[i].Matches(fixed) {
			continue
		}
		value, ok := variations[i].Values[attribute]
		if !ok || value == "" {
			continue
		}
		if _, dup := seen[value]; !dup {
			seen[value] = struct{}{}
			options = append(options, value)
		}
	}

	sort.Strings(options)
	return options
}

// Resolve maps a selection to the unique variation whose assignment equals
// it. For a product without attributes it returns (nil, nil): the item
// resolves to the product's own SKU and no variation is involved.
func Resolve(product *Product, variations []ProductVariation, selection Selection) (*ProductVariation, error) {
	if !product.HasVariations() {
		return nil, nil
	}

	for name := range selection {
		if product.AttributePosition(name) < 0 {
			return nil, ErrVariationNotFound
		}
	}
	for _, attr := range product.Attributes {
		if value, ok := selection[attr.Name]; !ok || value == "" {
			return nil, ErrVariationUnresolved
		}
	}

	for i := range variations {
		if variations[i].ProductID != product.ID {
			continue
		}
		if len(variations[i].Values) == len(product.Attributes) && variations[i].Matches(selection) {
			return &variations[i], nil
		}
	}

	return nil, ErrVariationNotFound
}

// ResetAfter returns a copy of the selection with every choice at a position
// after the changed attribute discarded. The changed attribute itself and
// everything before it are kept; later choices may no longer be legal under
// the new earlier value, so they must be re-derived.
func ResetAfter(product *Product, selection Selection, changed string) Selection {
	pos := product.AttributePosition(changed)
	out := make(Selection)
	if pos < 0 {
		return out
	}
	for _, attr := range product.Attributes {
		if attr.Position > pos {
			continue
		}
		if value, ok := selection[attr.Name]; ok {
			out[attr.Name] = value
		}
	}
	return out
}
