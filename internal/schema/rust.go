// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema maps Rust type expressions to OpenAPI schema fragments and
// keeps a registry of named schemas for reference resolution.
package schema

import (
	"strings"

	"github.com/oxspec/oxspec/internal/annotation"
	"github.com/oxspec/oxspec/pkg/types"
)

// Describer converts Rust types and declarations into schema fragments. It
// implements the resolver the annotation compiler expects.
type Describer struct {
	// registry resolves inline(...) references to already-extracted
	// schemas.
	registry *Registry
}

// NewDescriber creates a describer backed by the given registry. A nil
// registry is replaced with an empty one.
func NewDescriber(registry *Registry) *Describer {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Describer{registry: registry}
}

// Registry returns the backing schema registry.
func (d *Describer) Registry() *Registry {
	return d.registry
}

// TypeSchema converts one Rust type expression to a schema. Inline-flagged
// references expand the registered schema when one is known.
func (d *Describer) TypeSchema(ref annotation.TypeRef) *types.Schema {
	return d.typeToSchema(ref.Type, ref.Inline)
}

func (d *Describer) typeToSchema(rustType string, inline bool) *types.Schema {
	rustType = normalizeType(rustType)

	if inner, ok := genericArg(rustType, "Option"); ok {
		schema := d.typeToSchema(inner, inline)
		schema.Nullable = true
		return schema
	}

	if inner, ok := genericArg(rustType, "Vec"); ok {
		// Byte buffers serialize as base64 strings, not arrays.
		if normalizeType(inner) == "u8" {
			return &types.Schema{Type: "string", Format: "byte"}
		}
		return &types.Schema{
			Type:  "array",
			Items: d.typeToSchema(inner, inline),
		}
	}

	for _, mapType := range []string{"HashMap", "BTreeMap"} {
		if inner, ok := genericArg(rustType, mapType); ok {
			// Only the value type matters; JSON object keys are
			// always strings.
			_, value := splitPair(inner)
			return &types.Schema{
				Type:                 "object",
				AdditionalProperties: d.typeToSchema(value, inline),
			}
		}
	}

	if schema := primitiveSchema(rustType); schema != nil {
		return schema
	}

	name := lastSegment(rustType)
	if inline {
		if registered, ok := d.registry.Get(name); ok {
			return registered
		}
	}
	return SchemaRef(name)
}

// StructSchema builds an object schema from named fields. Fields with an
// Option type become nullable and are left out of the required list.
func (d *Describer) StructSchema(name string, fields []annotation.Field) *types.Schema {
	schema := &types.Schema{
		Type:       "object",
		Title:      name,
		Properties: make(map[string]*types.Schema),
	}

	var required []string
	for _, field := range fields {
		schema.Properties[field.Name] = d.typeToSchema(field.Type, field.Inline)
		if _, optional := genericArg(normalizeType(field.Type), "Option"); !optional {
			required = append(required, field.Name)
		}
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// UnionSchema builds a oneOf schema covering every variant of a tagged
// union: unit variants contribute their name as a string constant, payload
// variants contribute their payload schema.
func (d *Describer) UnionSchema(name string, variants []annotation.Variant) *types.Schema {
	schema := &types.Schema{Title: name}

	var stringVariants []interface{}
	for _, variant := range variants {
		switch {
		case variant.Named:
			schema.OneOf = append(schema.OneOf, d.StructSchema(name+"::"+variant.Name, variant.Fields))
		case len(variant.Fields) > 0:
			field := variant.Fields[0]
			schema.OneOf = append(schema.OneOf, d.typeToSchema(field.Type, field.Inline))
		default:
			stringVariants = append(stringVariants, variant.Name)
		}
	}

	if len(stringVariants) > 0 {
		enumSchema := &types.Schema{Type: "string", Enum: stringVariants}
		if len(schema.OneOf) == 0 {
			enumSchema.Title = name
			return enumSchema
		}
		schema.OneOf = append(schema.OneOf, enumSchema)
	}
	return schema
}

// DefaultContentType reports the content type a bare body of the given Rust
// type negotiates to: plain text for string-like types, an octet stream for
// byte buffers, JSON for everything else.
func (d *Describer) DefaultContentType(rustType string) string {
	rustType = normalizeType(rustType)
	if inner, ok := genericArg(rustType, "Option"); ok {
		return d.DefaultContentType(inner)
	}

	switch rustType {
	case "String", "str", "char", "Cow<str>", "Cow<'static, str>":
		return "text/plain"
	case "Vec<u8>", "[u8]", "Bytes":
		return "application/octet-stream"
	}
	if strings.HasPrefix(rustType, "Cow<") && strings.HasSuffix(rustType, "str>") {
		return "text/plain"
	}
	return "application/json"
}

// SchemaRef creates a reference to a schema in components.
func SchemaRef(schemaName string) *types.Schema {
	return &types.Schema{
		Ref: "#/components/schemas/" + schemaName,
	}
}

// primitiveSchema maps Rust scalar types. It returns nil for non-scalars.
func primitiveSchema(rustType string) *types.Schema {
	switch rustType {
	case "String", "str", "char":
		return &types.Schema{Type: "string"}
	case "i8", "i16", "i32", "u8", "u16", "u32", "usize", "isize":
		return &types.Schema{Type: "integer", Format: "int32"}
	case "i64", "i128", "u64", "u128":
		return &types.Schema{Type: "integer", Format: "int64"}
	case "f32", "f64":
		return &types.Schema{Type: "number"}
	case "bool":
		return &types.Schema{Type: "boolean"}
	case "Value":
		// serde_json::Value is an unconstrained document.
		return &types.Schema{}
	default:
		return nil
	}
}

// normalizeType strips reference sigils and lifetimes from a type
// expression: `&'static str` and `str` describe the same schema.
func normalizeType(rustType string) string {
	rustType = strings.TrimSpace(rustType)
	for strings.HasPrefix(rustType, "&") {
		rustType = strings.TrimSpace(rustType[1:])
		if strings.HasPrefix(rustType, "'") {
			if idx := strings.IndexAny(rustType, " \t"); idx >= 0 {
				rustType = strings.TrimSpace(rustType[idx+1:])
			}
		}
	}
	if strings.HasPrefix(rustType, "mut ") {
		rustType = strings.TrimSpace(rustType[4:])
	}
	return rustType
}

// genericArg extracts T from wrapper<T>, matching the wrapper by its final
// path segment so std::option::Option works too.
func genericArg(rustType, wrapper string) (string, bool) {
	open := strings.Index(rustType, "<")
	if open < 0 || !strings.HasSuffix(rustType, ">") {
		return "", false
	}
	if lastSegment(rustType[:open]) != wrapper {
		return "", false
	}
	return strings.TrimSpace(rustType[open+1 : len(rustType)-1]), true
}

// splitPair splits the two top-level generic arguments of a map type.
func splitPair(args string) (string, string) {
	depth := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(args[:i]), strings.TrimSpace(args[i+1:])
			}
		}
	}
	return "", strings.TrimSpace(args)
}

func lastSegment(path string) string {
	path = strings.TrimSpace(path)
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		return path[idx+2:]
	}
	return path
}
