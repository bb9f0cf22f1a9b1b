// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

// Shape classifies the structure of an annotated declaration. The shape
// decides how the response body and content variants are derived.
type Shape int

const (
	// ShapeUnnamed is a struct with a single unnamed field; the field's
	// type becomes the response body.
	ShapeUnnamed Shape = iota
	// ShapeNamed is a struct with named fields; the declaration itself
	// becomes one inline schema.
	ShapeNamed
	// ShapeUnit is a struct without fields; the response has no body.
	ShapeUnit
	// ShapeEnum is a tagged union; variants with a content-tagged payload
	// become content variants.
	ShapeEnum
)

func (s Shape) String() string {
	switch s {
	case ShapeUnnamed:
		return "unnamed"
	case ShapeNamed:
		return "named"
	case ShapeUnit:
		return "unit"
	case ShapeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Classify derives the shape of a declaration. Unions and structs with more
// than one unnamed field are rejected.
func Classify(decl *Declaration) (Shape, *Error) {
	switch {
	case decl.IsUnion:
		return 0, shapeErrorf(decl.Loc, "union type is not supported")
	case decl.IsEnum:
		return ShapeEnum, nil
	case decl.Named:
		return ShapeNamed, nil
	case len(decl.Fields) == 0:
		return ShapeUnit, nil
	case len(decl.Fields) == 1:
		return ShapeUnnamed, nil
	default:
		return 0, shapeErrorf(decl.Loc, "unsupported: tuple-shaped response body")
	}
}

// variantShape classifies a single union variant by its payload fields.
func variantShape(v *Variant, declLoc Location) (Shape, *Error) {
	switch {
	case v.Named:
		return ShapeNamed, nil
	case len(v.Fields) == 0:
		return ShapeUnit, nil
	case len(v.Fields) == 1:
		return ShapeUnnamed, nil
	default:
		return 0, shapeErrorf(declLoc, "unsupported: tuple-shaped response body")
	}
}
