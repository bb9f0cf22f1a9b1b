// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

// CompiledResponse is one finished response: its resolved status (empty for
// declaration-level responses, which carry no status of their own) and the
// ordered builder instruction sequence.
type CompiledResponse struct {
	Status       StatusToken
	Instructions []Instruction
}

// CompileToResponse compiles a declaration annotated for a single reusable
// response. It returns the name the response registers under and the builder
// instructions producing it.
func CompileToResponse(decl *Declaration, res SchemaResolver) (string, []Instruction, *Error) {
	shape, err := Classify(decl)
	if err != nil {
		return "", nil, err
	}

	var body *BodyType
	var content []ContentVariant
	var tagged bool

	switch shape {
	case ShapeUnnamed:
		field := decl.Fields[0]
		body = &BodyType{
			Kind: BodyMediaType,
			Type: TypeRef{Type: field.Type, Inline: field.Inline},
		}
	case ShapeNamed:
		body = &BodyType{
			Kind:   BodyInlineSchema,
			Type:   TypeRef{Type: decl.Name},
			Schema: res.StructSchema(decl.Name, decl.Fields),
		}
	case ShapeUnit:
		// no body
	case ShapeEnum:
		content, err = collectVariantContent(decl)
		if err != nil {
			return "", nil, err
		}
		// A union with more than one tagged variant is referred to by
		// name with discriminated content types; otherwise the whole
		// union becomes a single inline schema.
		tagged = len(content) > 0
		if len(content) <= 1 {
			content = nil
			body = &BodyType{
				Kind:   BodyInlineSchema,
				Type:   TypeRef{Type: decl.Name},
				Schema: res.UnionSchema(decl.Name, decl.Variants),
			}
		}
	}

	attr, err := CollectToResponse(decl.Responses)
	if err != nil {
		return "", nil, err
	}
	value, err := buildResponseValue(attr, decl.Description, body, content, tagged)
	if err != nil {
		return "", nil, err
	}

	d := &Descriptor{value: value}
	return decl.Name, Emit(d, res), nil
}

// collectVariantContent assembles the content variants of a tagged union:
// every variant carrying both a payload field and an explicit content tag
// contributes one entry, in declaration order. Variant-level example and
// examples keys attach to the variant's content entry.
func collectVariantContent(decl *Declaration) ([]ContentVariant, *Error) {
	var content []ContentVariant
	for i := range decl.Variants {
		variant := &decl.Variants[i]
		attr, err := CollectToResponse(variant.Responses)
		if err != nil {
			return nil, err
		}
		if len(variant.Fields) == 0 {
			continue
		}
		field := variant.Fields[0]
		if field.ContentType == "" {
			continue
		}

		entry := ContentVariant{
			ContentType: field.ContentType,
			Body: BodyType{
				Kind: BodyMediaType,
				Type: TypeRef{Type: field.Type, Inline: field.Inline},
			},
		}
		if attr != nil {
			entry.Example = attr.Example
			entry.Examples = attr.Examples
		}
		content = append(content, entry)
	}
	return content, nil
}

// buildResponseValue combines the merged attribute values with the
// shape-derived body. The doc-comment description is the fallback when the
// attribute does not set one. An explicit content list supersedes the direct
// body; tagged marks a union with content-tagged variants, which cannot
// coexist with declaration-level example overrides even when the union
// collapses to a single inline schema.
func buildResponseValue(attr *ToResponseAttr, docDescription string, body *BodyType, content []ContentVariant, tagged bool) (*ResponseValue, *Error) {
	value := &ResponseValue{
		Description: docDescription,
		Content:     content,
	}
	if len(content) == 0 {
		value.ResponseType = body
	}
	if attr == nil {
		return value, nil
	}

	if tagged {
		if attr.Example != nil {
			return nil, variantExampleConflict("example", attr.ExampleLoc)
		}
		if attr.HasExamples {
			return nil, variantExampleConflict("examples", attr.ExamplesLoc)
		}
	}

	if attr.Description != "" {
		value.Description = attr.Description
	}
	value.Headers = attr.Headers
	value.ContentType = attr.ContentType
	value.Example = attr.Example
	value.Examples = attr.Examples
	value.HasExamples = attr.HasExamples
	return value, nil
}

func variantExampleConflict(ident string, loc Location) *Error {
	return conflictErrorf(loc, "enum with `#[content]` attribute in variant cannot have enum level `%s` defined, try defining `%s` on the enum variant", ident, ident)
}

// CompileIntoResponses compiles an enum whose variants each map a status
// code to a response. Every variant must carry at least one occurrence with
// a status; the variant's payload decides its body shape the same way a
// standalone declaration would.
func CompileIntoResponses(decl *Declaration, res SchemaResolver) ([]CompiledResponse, *Error) {
	if decl.IsUnion {
		return nil, shapeErrorf(decl.Loc, "union type is not supported")
	}
	if !decl.IsEnum {
		return compileIntoResponsesStruct(decl, res)
	}

	var responses []CompiledResponse
	for i := range decl.Variants {
		variant := &decl.Variants[i]
		attr, err := CollectIntoResponses(variant.Responses)
		if err != nil {
			return nil, err
		}
		if attr == nil {
			return nil, grammarErrorf(decl.Loc, "missing `#[response(...)]` attribute on variant `%s`, %s", variant.Name, missingStatusMessage)
		}

		body, err := variantBody(decl, variant, res)
		if err != nil {
			return nil, err
		}
		value, err := buildResponseValue(&attr.ToResponseAttr, "", body, nil, false)
		if err != nil {
			return nil, err
		}

		d := &Descriptor{Status: attr.Status, value: value}
		responses = append(responses, CompiledResponse{
			Status:       attr.Status,
			Instructions: Emit(d, res),
		})
	}
	return responses, nil
}

// compileIntoResponsesStruct handles the degenerate single-response form: a
// struct deriving the multi-response trait maps exactly one status to its own
// shape-derived response.
func compileIntoResponsesStruct(decl *Declaration, res SchemaResolver) ([]CompiledResponse, *Error) {
	attr, err := CollectIntoResponses(decl.Responses)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, grammarErrorf(decl.Loc, "%s", missingStatusMessage)
	}

	shape, err := Classify(decl)
	if err != nil {
		return nil, err
	}
	var body *BodyType
	switch shape {
	case ShapeUnnamed:
		field := decl.Fields[0]
		body = &BodyType{
			Kind: BodyMediaType,
			Type: TypeRef{Type: field.Type, Inline: field.Inline},
		}
	case ShapeNamed:
		body = &BodyType{
			Kind:   BodyInlineSchema,
			Type:   TypeRef{Type: decl.Name},
			Schema: res.StructSchema(decl.Name, decl.Fields),
		}
	}

	value, err := buildResponseValue(&attr.ToResponseAttr, decl.Description, body, nil, false)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{Status: attr.Status, value: value}
	return []CompiledResponse{{Status: attr.Status, Instructions: Emit(d, res)}}, nil
}

// variantBody derives the body of one multi-response enum variant.
func variantBody(decl *Declaration, variant *Variant, res SchemaResolver) (*BodyType, *Error) {
	shape, err := variantShape(variant, decl.Loc)
	if err != nil {
		return nil, err
	}
	switch shape {
	case ShapeUnnamed:
		field := variant.Fields[0]
		return &BodyType{
			Kind: BodyMediaType,
			Type: TypeRef{Type: field.Type, Inline: field.Inline},
		}, nil
	case ShapeNamed:
		name := decl.Name + "::" + variant.Name
		return &BodyType{
			Kind:   BodyInlineSchema,
			Type:   TypeRef{Type: decl.Name},
			Schema: res.StructSchema(name, variant.Fields),
		}, nil
	default:
		return nil, nil
	}
}

// OperationResponse is one response of a handler-level #[responses(...)]
// attribute: either an inline tuple compiled to instructions, or a named
// reference to a type that provides its own status-to-response mapping.
type OperationResponse struct {
	// Status is set for tuple elements.
	Status StatusToken

	// Instructions are the builder calls for tuple elements.
	Instructions []Instruction

	// TypeName names a multi-response type whose responses are merged into
	// the operation during document assembly. Empty for tuple elements.
	TypeName string
}

// CompileResponses compiles one handler-level #[responses(...)] occurrence.
// Tuple elements must carry a status; bare type paths are passed through by
// name for later expansion.
func CompileResponses(occ Occurrence, res SchemaResolver) ([]OperationResponse, *Error) {
	elements, err := parseResponsesList(occ)
	if err != nil {
		return nil, err
	}

	responses := make([]OperationResponse, 0, len(elements))
	for _, element := range elements {
		if element.typeName != "" {
			responses = append(responses, OperationResponse{TypeName: element.typeName})
			continue
		}
		if element.tuple.Status == "" {
			return nil, grammarErrorf(element.loc, "%s", missingStatusMessage)
		}
		responses = append(responses, OperationResponse{
			Status:       element.tuple.Status,
			Instructions: Emit(element.tuple, res),
		})
	}
	return responses, nil
}
