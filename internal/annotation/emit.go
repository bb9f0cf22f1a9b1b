// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import (
	"strings"

	"github.com/oxspec/oxspec/pkg/types"
)

// SchemaResolver describes Rust types as OpenAPI schema fragments. The
// annotation compiler stays independent of how types are mapped; the schema
// package provides the production implementation.
type SchemaResolver interface {
	// TypeSchema returns the schema fragment for a referenced type, fully
	// expanded when the reference is flagged inline.
	TypeSchema(ref TypeRef) *types.Schema

	// StructSchema builds an inline object schema from named fields.
	StructSchema(name string, fields []Field) *types.Schema

	// UnionSchema builds an inline schema covering every variant of a
	// tagged union.
	UnionSchema(name string, variants []Variant) *types.Schema

	// DefaultContentType reports the content type a bare body of the given
	// Rust type negotiates to.
	DefaultContentType(rustType string) string
}

// Op identifies one response-builder method call.
type Op int

const (
	// OpNew starts a response builder.
	OpNew Op = iota
	// OpDescription sets the response description. Always emitted for an
	// inline response, even when the description is empty.
	OpDescription
	// OpContent attaches one content-type/schema pairing.
	OpContent
	// OpHeader attaches one response header.
	OpHeader
	// OpBuild finalizes the response.
	OpBuild
	// OpRefNamed replaces the whole sequence with a reference to another
	// named response.
	OpRefNamed
	// OpRefInline replaces the whole sequence with the inline expansion of
	// another named response.
	OpRefInline
)

func (o Op) String() string {
	switch o {
	case OpNew:
		return "new"
	case OpDescription:
		return "description"
	case OpContent:
		return "content"
	case OpHeader:
		return "header"
	case OpBuild:
		return "build"
	case OpRefNamed:
		return "ref"
	case OpRefInline:
		return "ref_inline"
	default:
		return "unknown"
	}
}

// Instruction is one emitted builder call. Which fields are meaningful
// depends on Op: OpDescription uses Description, OpContent uses ContentType,
// Schema, Example and Examples, OpHeader uses Name, Schema and Description,
// and OpRefNamed/OpRefInline use Name.
type Instruction struct {
	Op          Op
	Description string
	ContentType string
	Schema      *types.Schema
	Example     *AnyValue
	Examples    []Example
	Name        string
}

// Emit lowers one descriptor into its ordered builder call sequence. The
// order is a contract: new, description, primary body content, explicit
// content entries, headers, build. Reference descriptors collapse to a single
// reference instruction.
func Emit(d *Descriptor, res SchemaResolver) []Instruction {
	if ref := d.Ref(); ref != nil {
		op := OpRefNamed
		if ref.Type.Inline {
			op = OpRefInline
		}
		return []Instruction{{Op: op, Name: lastPathSegment(ref.Type.Type)}}
	}

	value := d.Value()
	instructions := []Instruction{
		{Op: OpNew},
		{Op: OpDescription, Description: value.Description},
	}

	// An explicit content list supersedes the direct body entirely.
	if value.ResponseType != nil && len(value.Content) == 0 {
		schema := bodySchema(value.ResponseType, res)
		contentTypes := value.ContentType
		if len(contentTypes) == 0 {
			contentTypes = []string{negotiateContentType(value.ResponseType, res)}
		}
		for _, contentType := range contentTypes {
			instructions = append(instructions, Instruction{
				Op:          OpContent,
				ContentType: contentType,
				Schema:      schema,
				Example:     value.Example,
				Examples:    value.Examples,
			})
		}
	}

	for _, variant := range value.Content {
		body := variant.Body
		instructions = append(instructions, Instruction{
			Op:          OpContent,
			ContentType: variant.ContentType,
			Schema:      bodySchema(&body, res),
			Example:     variant.Example,
			Examples:    variant.Examples,
		})
	}

	for _, header := range value.Headers {
		schema := &types.Schema{Type: "string"}
		if header.ValueType != nil {
			schema = res.TypeSchema(*header.ValueType)
		}
		instructions = append(instructions, Instruction{
			Op:          OpHeader,
			Name:        header.Name,
			Schema:      schema,
			Description: header.Description,
		})
	}

	return append(instructions, Instruction{Op: OpBuild})
}

func bodySchema(body *BodyType, res SchemaResolver) *types.Schema {
	switch body.Kind {
	case BodyByName:
		// The reference string is used verbatim, as written in the
		// annotation.
		return &types.Schema{Ref: body.Name}
	case BodyInlineSchema:
		return body.Schema
	default:
		return res.TypeSchema(body.Type)
	}
}

// negotiateContentType picks the content type for a body without an explicit
// content_type key. References always negotiate to JSON; typed bodies ask
// the type-description subsystem.
func negotiateContentType(body *BodyType, res SchemaResolver) string {
	if body.Kind == BodyByName {
		return "application/json"
	}
	return res.DefaultContentType(body.Type.Type)
}

func lastPathSegment(path string) string {
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		return path[idx+2:]
	}
	return path
}
