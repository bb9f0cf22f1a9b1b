// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

// ToResponseAttr holds the values of a declaration-level or variant-level
// #[response(...)] occurrence. Repeated occurrences on one declaration are
// folded with MergeFrom before compilation.
type ToResponseAttr struct {
	Description string
	ContentType []string
	Headers     []Header
	Example     *AnyValue
	Examples    []Example
	HasExamples bool

	// ExampleLoc and ExamplesLoc point at the example/examples keys so
	// conflicts detected later can reference the offending key.
	ExampleLoc  Location
	ExamplesLoc Location
}

// MergeFrom folds a later occurrence into the receiver. Every key the later
// occurrence sets replaces the receiver's value; keys it leaves out are kept.
func (a *ToResponseAttr) MergeFrom(other *ToResponseAttr) {
	if len(other.ContentType) > 0 {
		a.ContentType = other.ContentType
	}
	if len(other.Headers) > 0 {
		a.Headers = other.Headers
	}
	if other.Description != "" {
		a.Description = other.Description
	}
	if other.Example != nil {
		a.Example = other.Example
		a.ExampleLoc = other.ExampleLoc
	}
	if other.HasExamples {
		a.Examples = other.Examples
		a.HasExamples = true
		a.ExamplesLoc = other.ExamplesLoc
	}
}

// IntoResponsesAttr is the variant-level occurrence of an IntoResponses
// derive: a ToResponseAttr plus the mandatory status.
type IntoResponsesAttr struct {
	Status StatusToken
	ToResponseAttr
}

// MergeFrom folds a later occurrence into the receiver. Status is mandatory
// on every occurrence, so the later status always wins.
func (a *IntoResponsesAttr) MergeFrom(other *IntoResponsesAttr) {
	a.Status = other.Status
	a.ToResponseAttr.MergeFrom(&other.ToResponseAttr)
}

// CollectToResponse parses and merges every #[response(...)] occurrence of
// one declaration. It returns nil when there are no occurrences.
func CollectToResponse(occs []Occurrence) (*ToResponseAttr, *Error) {
	var merged *ToResponseAttr
	for _, occ := range occs {
		attr, err := ParseToResponse(occ)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = attr
			continue
		}
		merged.MergeFrom(attr)
	}
	return merged, nil
}

// CollectIntoResponses parses and merges every variant-level occurrence.
// It returns nil when there are no occurrences.
func CollectIntoResponses(occs []Occurrence) (*IntoResponsesAttr, *Error) {
	var merged *IntoResponsesAttr
	for _, occ := range occs {
		attr, err := ParseIntoResponses(occ)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = attr
			continue
		}
		merged.MergeFrom(attr)
	}
	return merged, nil
}
