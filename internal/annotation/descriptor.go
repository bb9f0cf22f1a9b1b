// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import "github.com/oxspec/oxspec/pkg/types"

// refIncompatibleMessage is the fixed diagnostic for mixing the `response`
// reference key with value-setting keys, in either order.
const refIncompatibleMessage = "the `response` attribute may only be used in conjunction with the `status` attribute"

// BodyKind discriminates the three forms a response body reference can take.
type BodyKind int

const (
	// BodyByName is a schema reference by name, from body = ref("...").
	BodyByName BodyKind = iota

	// BodyMediaType is a resolved Rust type whose schema is derived by the
	// type-description subsystem.
	BodyMediaType

	// BodyInlineSchema is a schema fragment already generated by the shape
	// classifier, with the underlying type retained for content-type
	// negotiation.
	BodyInlineSchema
)

// BodyType is a tagged reference to a response body schema.
type BodyType struct {
	Kind BodyKind

	// Name is the reference string for BodyByName.
	Name string

	// Type is the referenced Rust type for BodyMediaType, and the
	// underlying type for BodyInlineSchema.
	Type TypeRef

	// Schema is the generated fragment for BodyInlineSchema.
	Schema *types.Schema
}

// ContentVariant is one (content-type, body) pairing within a response.
type ContentVariant struct {
	ContentType string
	Body        BodyType
	Example     *AnyValue
	Examples    []Example
}

// ResponseValue is the inline form of a response body: everything an
// annotation can declare short of referring to another named response.
type ResponseValue struct {
	Description  string
	ResponseType *BodyType
	ContentType  []string
	Headers      []Header
	Example      *AnyValue
	Examples     []Example
	HasExamples  bool
	Content      []ContentVariant
}

// RefBody is the reference form of a response body: it points at another
// named response instead of describing one inline.
type RefBody struct {
	Type TypeRef
}

// Descriptor is the canonical merged representation of one response, ready
// for emission. Its body is exactly one of ResponseValue or RefBody; once one
// kind is established the other can no longer be set.
type Descriptor struct {
	Status StatusToken

	value *ResponseValue
	ref   *RefBody
}

// AsValue returns the descriptor's inline value, establishing an empty one if
// no body kind has been set yet. It fails with the fixed incompatibility
// error when the descriptor already holds a reference.
func (d *Descriptor) AsValue(loc Location) (*ResponseValue, *Error) {
	if d.ref != nil {
		return nil, conflictErrorf(loc, "%s", refIncompatibleMessage)
	}
	if d.value == nil {
		d.value = &ResponseValue{}
	}
	return d.value, nil
}

// SetRef establishes (or replaces) the descriptor's reference body. It fails
// with the fixed incompatibility error when an inline value already exists.
func (d *Descriptor) SetRef(loc Location, ty TypeRef) *Error {
	if d.value != nil {
		return conflictErrorf(loc, "%s", refIncompatibleMessage)
	}
	d.ref = &RefBody{Type: ty}
	return nil
}

// Value returns the inline body, or nil when the descriptor is a reference.
func (d *Descriptor) Value() *ResponseValue {
	return d.value
}

// Ref returns the reference body, or nil when the descriptor is inline.
func (d *Descriptor) Ref() *RefBody {
	return d.ref
}

// normalize gives a descriptor with no body an empty inline value, matching
// the behavior of a bare (status = ...) tuple.
func (d *Descriptor) normalize() {
	if d.value == nil && d.ref == nil {
		d.value = &ResponseValue{}
	}
}
