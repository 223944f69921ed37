package departure

import (
	"sort"
	"strings"

	"shipping/internal/pkg/errs"
)

// productTypeSeparator delimits labels in the persisted string form.
const productTypeSeparator = ","

// ErrProductTypesAreRequired is returned when constructing an empty product-type set.
var ErrProductTypesAreRequired = errs.NewValueIsRequiredError("acceptedProductTypes")

// ProductTypeSet is a value object holding the product-type labels a departure
// accepts. Labels are trimmed, duplicates collapse and ordering is canonical,
// so two sets built from differently ordered input compare equal.
//
// The zero value is an empty set and fails validation.
type ProductTypeSet struct {
	labels []string
}

// NewProductTypeSet builds a set from individual labels.
// Blank labels are ignored; at least one non-blank label is required.
func NewProductTypeSet(labels ...string) (ProductTypeSet, error) {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))

	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}

	if len(out) == 0 {
		return ProductTypeSet{}, ErrProductTypesAreRequired
	}

	sort.Strings(out)
	return ProductTypeSet{labels: out}, nil
}

// ParseProductTypeSet builds a set from the delimited string form used in
// persistence ("Frozen, Dry Goods,Frozen" -> {Dry Goods, Frozen}).
func ParseProductTypeSet(s string) (ProductTypeSet, error) {
	return NewProductTypeSet(strings.Split(s, productTypeSeparator)...)
}

// Contains reports whether the set accepts the given label.
// The label is trimmed before comparison; matching is exact otherwise.
func (s ProductTypeSet) Contains(label string) bool {
	label = strings.TrimSpace(label)
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}

// Labels returns a copy of the labels in canonical order.
func (s ProductTypeSet) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// String returns the delimited persistence form of the set.
func (s ProductTypeSet) String() string {
	return strings.Join(s.labels, productTypeSeparator)
}

// IsEqual compares two sets regardless of construction order.
func (s ProductTypeSet) IsEqual(other ProductTypeSet) bool {
	if len(s.labels) != len(other.labels) {
		return false
	}
	for i, l := range s.labels {
		if other.labels[i] != l {
			return false
		}
	}
	return true
}

// Validate returns an error for the empty set.
func (s ProductTypeSet) Validate() error {
	if len(s.labels) == 0 {
		return ErrProductTypesAreRequired
	}
	return nil
}
