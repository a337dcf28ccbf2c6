package types

import "strings"

// NoRelation is the sentinel category meaning no relation exists between an
// ordered pair of arguments. The value matches existing training data.
const NoRelation = "-NONE-"

// invertedSuffix marks a category whose relation holds in the reverse of the
// queried argument order. The two-character value is a wire convention shared
// with existing classifier models and must not change.
const invertedSuffix = "-1"

// Label is a relation category tagged with its direction relative to the
// queried argument order. The string suffix convention exists only at the
// Encode/ParseLabel boundary; everything internal works with the tagged form.
type Label struct {
	Category string
	Inverted bool
}

// Forward returns a label for a relation holding in the queried order.
func Forward(category string) Label {
	return Label{Category: category}
}

// Inverted returns a label for a relation holding in the reverse order.
func Inverted(category string) Label {
	return Label{Category: category, Inverted: true}
}

// NoRelationLabel returns the negative-example label.
func NoRelationLabel() Label {
	return Label{Category: NoRelation}
}

// IsNoRelation reports whether the label is the negative sentinel.
func (l Label) IsNoRelation() bool {
	return l.Category == NoRelation
}

// Encode serializes the label to the wire convention: the category itself for
// forward labels, category plus the inverted suffix otherwise.
func (l Label) Encode() string {
	if l.Inverted {
		return l.Category + invertedSuffix
	}
	return l.Category
}

// ParseLabel decodes a wire category into its tagged form, stripping the
// inverted suffix if present. The sentinel is never considered inverted.
func ParseLabel(encoded string) Label {
	if encoded != NoRelation && strings.HasSuffix(encoded, invertedSuffix) {
		return Label{Category: strings.TrimSuffix(encoded, invertedSuffix), Inverted: true}
	}
	return Label{Category: encoded}
}
