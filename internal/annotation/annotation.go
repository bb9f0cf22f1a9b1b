// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package annotation compiles utoipa-style response annotations into OpenAPI
// response construction instructions.
//
// The input surface is the argument text of #[response(...)] attributes
// attached to a type declaration, one of its enum variants, or a handler
// function. One compilation pass parses the attribute grammar, classifies the
// shape of the annotated declaration, merges overlapping occurrences, resolves
// the status code, and emits an ordered builder instruction sequence.
package annotation

import "fmt"

// Location identifies where an attribute occurrence (or a token within one)
// came from. Line refers to the source file, Offset to a byte position within
// the occurrence's argument text.
type Location struct {
	File   string
	Line   int
	Offset int
}

func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Offset)
}

// at returns a copy of the location pointing at the given offset.
func (l Location) at(offset int) Location {
	l.Offset = offset
	return l
}

// Occurrence is one textual annotation block as written by the caller,
// before parsing: the argument text of a single #[response(...)] attribute.
type Occurrence struct {
	// Args is the text between the attribute's outer parentheses.
	Args string

	// Loc is the position of the attribute in its source file.
	Loc Location
}

// Field is a struct or enum-variant field relevant to response derivation.
type Field struct {
	// Name is the field name; empty for unnamed fields.
	Name string

	// Type is the field's Rust type as written in source.
	Type string

	// Inline reports whether the field carries a #[to_schema] attribute,
	// opting its schema into inline expansion.
	Inline bool

	// ContentType is the value of a #[content("...")] attribute on a
	// variant payload field; empty when absent.
	ContentType string
}

// Variant is one variant of an annotated enum.
type Variant struct {
	// Name is the variant name.
	Name string

	// Responses are the variant's own #[response(...)] occurrences.
	Responses []Occurrence

	// Fields are the variant's payload fields, in declaration order.
	Fields []Field

	// Named reports whether the payload fields are named (struct variant).
	Named bool
}

// Declaration is the annotated type declaration handed to the compiler.
// It is a source-layout-independent view of a Rust struct or enum.
type Declaration struct {
	// Name is the type name.
	Name string

	// Description is the doc-comment text of the declaration.
	Description string

	// Responses are the declaration-level #[response(...)] occurrences.
	Responses []Occurrence

	// IsEnum reports whether the declaration is an enum.
	IsEnum bool

	// IsUnion reports whether the declaration is a union, which is
	// rejected by the shape classifier.
	IsUnion bool

	// Named reports whether struct fields are named. Ignored for enums.
	Named bool

	// Fields are the struct fields, in declaration order. Empty for enums.
	Fields []Field

	// Variants are the enum variants, in declaration order.
	Variants []Variant

	// Loc is the position of the declaration in its source file.
	Loc Location
}

// AnyValue is a literal example value from an annotation: either a raw JSON
// document (example = json!({...})) or a plain string literal.
type AnyValue struct {
	Value interface{}
}

// Example is one named example from an examples(...) block.
type Example struct {
	Name          string
	Summary       string
	Description   string
	Value         *AnyValue
	ExternalValue string
}

// Header describes one response header declared in a headers(...) block.
// A header without a declared value type defaults to a string schema.
type Header struct {
	Name        string
	ValueType   *TypeRef
	Description string
}

// TypeRef is a parsed reference to a Rust type, with an optional inline
// expansion flag from the inline(...) wrapper.
type TypeRef struct {
	Type   string
	Inline bool
}
