// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxspec/oxspec/pkg/types"
)

// stubResolver stands in for the schema package: structured types map to
// object schemas, string-like types negotiate to plain text.
type stubResolver struct{}

func (stubResolver) TypeSchema(ref TypeRef) *types.Schema {
	return &types.Schema{Title: ref.Type}
}

func (stubResolver) StructSchema(name string, fields []Field) *types.Schema {
	return &types.Schema{Type: "object", Title: name}
}

func (stubResolver) UnionSchema(name string, variants []Variant) *types.Schema {
	return &types.Schema{Title: name}
}

func (stubResolver) DefaultContentType(rustType string) string {
	if rustType == "String" || rustType == "str" {
		return "text/plain"
	}
	return "application/json"
}

func ops(instructions []Instruction) []Op {
	result := make([]Op, 0, len(instructions))
	for _, in := range instructions {
		result = append(result, in.Op)
	}
	return result
}

func TestEmit_StructuredBodyOrder(t *testing.T) {
	occ := occurrence(`status = 200, description = "ok", body = User`)
	d, perr := ParseResponseTuple(occ)
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "ok", instructions[1].Description)
	assert.Equal(t, "application/json", instructions[2].ContentType)
	require.NotNil(t, instructions[2].Schema)
	assert.Equal(t, "User", instructions[2].Schema.Title)
}

func TestEmit_UnitShapeNoContent(t *testing.T) {
	occ := occurrence(`status = "4XX", description = "client error"`)
	d, perr := ParseResponseTuple(occ)
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	assert.Equal(t, []Op{OpNew, OpDescription, OpBuild}, ops(instructions))
	assert.Equal(t, "client error", instructions[1].Description)
	assert.Equal(t, StatusToken("4XX"), d.Status)
}

func TestEmit_ContentListSupersedesBody(t *testing.T) {
	occ := occurrence(`status = 200, body = Ignored, content(("text/plain" = Msg), ("application/json" = Msg2))`)
	d, perr := ParseResponseTuple(occ)
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "text/plain", instructions[2].ContentType)
	assert.Equal(t, "Msg", instructions[2].Schema.Title)
	assert.Equal(t, "application/json", instructions[3].ContentType)
	assert.Equal(t, "Msg2", instructions[3].Schema.Title)
}

func TestEmit_StringBodyNegotiatesPlainText(t *testing.T) {
	d, perr := ParseResponseTuple(occurrence(`status = 200, body = String`))
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "text/plain", instructions[2].ContentType)
}

func TestEmit_ExplicitContentTypesFanOut(t *testing.T) {
	d, perr := ParseResponseTuple(occurrence(`status = 200, body = User, content_type = ["application/json", "application/xml"]`))
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "application/json", instructions[2].ContentType)
	assert.Equal(t, "application/xml", instructions[3].ContentType)
}

func TestEmit_RefBodyDefaultsToJSON(t *testing.T) {
	d, perr := ParseResponseTuple(occurrence(`status = 200, body = ref("#/components/schemas/Value")`))
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "application/json", instructions[2].ContentType)
	assert.Equal(t, "#/components/schemas/Value", instructions[2].Schema.Ref)
}

func TestEmit_HeadersAfterContent(t *testing.T) {
	occ := occurrence(`status = 200, body = User, headers(("x-request-id"), ("retry-after" = u64, description = "seconds"))`)
	d, perr := ParseResponseTuple(occ)
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpHeader, OpHeader, OpBuild}, ops(instructions))

	assert.Equal(t, "x-request-id", instructions[3].Name)
	assert.Equal(t, "string", instructions[3].Schema.Type)

	assert.Equal(t, "retry-after", instructions[4].Name)
	assert.Equal(t, "u64", instructions[4].Schema.Title)
	assert.Equal(t, "seconds", instructions[4].Description)
}

func TestEmit_ExamplesAttachToContent(t *testing.T) {
	occ := occurrence(`status = 200, body = User, example = json!({"id": 1}), examples(("full"))`)
	d, perr := ParseResponseTuple(occ)
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	require.NotNil(t, instructions[2].Example)
	require.Len(t, instructions[2].Examples, 1)
	assert.Equal(t, "full", instructions[2].Examples[0].Name)
}

func TestEmit_NamedReference(t *testing.T) {
	d, perr := ParseResponseTuple(occurrence(`status = 404, response = crate::responses::NotFound`))
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Len(t, instructions, 1)
	assert.Equal(t, OpRefNamed, instructions[0].Op)
	assert.Equal(t, "NotFound", instructions[0].Name)
}

func TestEmit_InlineReference(t *testing.T) {
	d, perr := ParseResponseTuple(occurrence(`status = 404, response = inline(NotFound)`))
	require.Nil(t, perr)

	instructions := Emit(d, stubResolver{})

	require.Len(t, instructions, 1)
	assert.Equal(t, OpRefInline, instructions[0].Op)
	assert.Equal(t, "NotFound", instructions[0].Name)
}

func TestCompileToResponse_NamedStruct(t *testing.T) {
	decl := &Declaration{
		Name:        "User",
		Description: "A persisted user.",
		Named:       true,
		Fields:      []Field{{Name: "id", Type: "u64"}, {Name: "name", Type: "String"}},
	}

	name, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)

	assert.Equal(t, "User", name)
	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "A persisted user.", instructions[1].Description)
	assert.Equal(t, "application/json", instructions[2].ContentType)
	assert.Equal(t, "object", instructions[2].Schema.Type)
}

func TestCompileToResponse_UnnamedStringField(t *testing.T) {
	decl := &Declaration{
		Name:   "Greeting",
		Fields: []Field{{Type: "String"}},
	}

	_, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "text/plain", instructions[2].ContentType)
}

func TestCompileToResponse_UnitNoBody(t *testing.T) {
	decl := &Declaration{
		Name:      "Accepted",
		Responses: []Occurrence{occurrence(`description = "queued"`)},
	}

	_, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)

	assert.Equal(t, []Op{OpNew, OpDescription, OpBuild}, ops(instructions))
	assert.Equal(t, "queued", instructions[1].Description)
}

func TestCompileToResponse_AttrDescriptionOverridesDoc(t *testing.T) {
	decl := &Declaration{
		Name:        "Accepted",
		Description: "from the doc comment",
		Responses:   []Occurrence{occurrence(`description = "from the attribute"`)},
	}

	_, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)
	assert.Equal(t, "from the attribute", instructions[1].Description)
}

func TestCompileToResponse_EnumSingleTaggedVariantInlines(t *testing.T) {
	decl := &Declaration{
		Name:   "Outcome",
		IsEnum: true,
		Variants: []Variant{
			{Name: "Plain"},
			{Name: "Tagged", Fields: []Field{{Type: "Payload", ContentType: "application/json"}}},
			{Name: "Untagged", Fields: []Field{{Type: "Other"}}},
		},
	}

	_, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)

	// One tagged variant keeps the whole union as a single inline schema.
	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "Outcome", instructions[2].Schema.Title)
}

func TestCompileToResponse_EnumTwoTaggedVariantsFanOut(t *testing.T) {
	decl := &Declaration{
		Name:   "Outcome",
		IsEnum: true,
		Variants: []Variant{
			{Name: "Json", Fields: []Field{{Type: "Payload", ContentType: "application/json"}}},
			{Name: "Text", Fields: []Field{{Type: "String", ContentType: "text/plain"}}},
		},
	}

	_, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpContent, OpBuild}, ops(instructions))
	assert.Equal(t, "application/json", instructions[2].ContentType)
	assert.Equal(t, "Payload", instructions[2].Schema.Title)
	assert.Equal(t, "text/plain", instructions[3].ContentType)
	assert.Equal(t, "String", instructions[3].Schema.Title)
}

func TestCompileToResponse_VariantExampleAttaches(t *testing.T) {
	decl := &Declaration{
		Name:   "Outcome",
		IsEnum: true,
		Variants: []Variant{
			{
				Name:      "Json",
				Responses: []Occurrence{occurrence(`example = json!({"ok": true})`)},
				Fields:    []Field{{Type: "Payload", ContentType: "application/json"}},
			},
			{Name: "Text", Fields: []Field{{Type: "String", ContentType: "text/plain"}}},
		},
	}

	_, instructions, err := CompileToResponse(decl, stubResolver{})
	require.Nil(t, err)

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpContent, OpBuild}, ops(instructions))
	assert.NotNil(t, instructions[2].Example)
	assert.Nil(t, instructions[3].Example)
}

func TestCompileToResponse_EnumLevelExampleConflictsWithTags(t *testing.T) {
	decl := &Declaration{
		Name:      "Outcome",
		IsEnum:    true,
		Responses: []Occurrence{occurrence(`example = "nope"`)},
		Variants: []Variant{
			{Name: "Json", Fields: []Field{{Type: "Payload", ContentType: "application/json"}}},
		},
	}

	_, _, err := CompileToResponse(decl, stubResolver{})
	require.NotNil(t, err)
	assert.Equal(t, KindConflict, err.Kind)
	assert.Contains(t, err.Message, "cannot have enum level `example` defined")
	assert.Contains(t, err.Message, "try defining `example` on the enum variant")
}

func TestCompileToResponse_UnionRejected(t *testing.T) {
	_, _, err := CompileToResponse(&Declaration{Name: "Raw", IsUnion: true}, stubResolver{})
	require.NotNil(t, err)
	assert.Equal(t, KindShape, err.Kind)
}

func TestCompileIntoResponses_EnumVariants(t *testing.T) {
	decl := &Declaration{
		Name:   "UserResponses",
		IsEnum: true,
		Variants: []Variant{
			{
				Name:      "Found",
				Responses: []Occurrence{occurrence(`status = 200, description = "found"`)},
				Fields:    []Field{{Type: "User"}},
			},
			{
				Name:      "Missing",
				Responses: []Occurrence{occurrence(`status = NOT_FOUND, description = "missing"`)},
			},
		},
	}

	responses, err := CompileIntoResponses(decl, stubResolver{})
	require.Nil(t, err)
	require.Len(t, responses, 2)

	assert.Equal(t, StatusToken("200"), responses[0].Status)
	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(responses[0].Instructions))
	assert.Equal(t, "User", responses[0].Instructions[2].Schema.Title)

	assert.Equal(t, StatusToken("404"), responses[1].Status)
	assert.Equal(t, []Op{OpNew, OpDescription, OpBuild}, ops(responses[1].Instructions))
}

func TestCompileIntoResponses_NamedVariantInlineSchema(t *testing.T) {
	decl := &Declaration{
		Name:   "UserResponses",
		IsEnum: true,
		Variants: []Variant{
			{
				Name:      "Created",
				Responses: []Occurrence{occurrence(`status = 201`)},
				Named:     true,
				Fields:    []Field{{Name: "id", Type: "u64"}},
			},
		},
	}

	responses, err := CompileIntoResponses(decl, stubResolver{})
	require.Nil(t, err)
	require.Len(t, responses, 1)

	require.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(responses[0].Instructions))
	assert.Equal(t, "object", responses[0].Instructions[2].Schema.Type)
	assert.Equal(t, "UserResponses::Created", responses[0].Instructions[2].Schema.Title)
}

func TestCompileIntoResponses_VariantWithoutStatusFails(t *testing.T) {
	decl := &Declaration{
		Name:     "UserResponses",
		IsEnum:   true,
		Variants: []Variant{{Name: "Found"}},
	}

	_, err := CompileIntoResponses(decl, stubResolver{})
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "missing expected `status` attribute")
}

func TestCompileIntoResponses_StructForm(t *testing.T) {
	decl := &Declaration{
		Name:      "Created",
		Named:     true,
		Fields:    []Field{{Name: "id", Type: "u64"}},
		Responses: []Occurrence{occurrence(`status = 201, description = "created"`)},
	}

	responses, err := CompileIntoResponses(decl, stubResolver{})
	require.Nil(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, StatusToken("201"), responses[0].Status)
	assert.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(responses[0].Instructions))
}

func TestCompileResponses_TuplesAndReferences(t *testing.T) {
	occ := occurrence(`(status = 200, description = "ok", body = User), crate::ErrorResponses`)

	responses, err := CompileResponses(occ, stubResolver{})
	require.Nil(t, err)
	require.Len(t, responses, 2)

	assert.Equal(t, StatusToken("200"), responses[0].Status)
	assert.Equal(t, []Op{OpNew, OpDescription, OpContent, OpBuild}, ops(responses[0].Instructions))
	assert.Empty(t, responses[0].TypeName)

	assert.Equal(t, "ErrorResponses", responses[1].TypeName)
	assert.Nil(t, responses[1].Instructions)
}

func TestCompileResponses_TupleWithoutStatusFails(t *testing.T) {
	_, err := CompileResponses(occurrence(`(description = "ok")`), stubResolver{})

	require.NotNil(t, err)
	assert.Equal(t, KindGrammar, err.Kind)
	assert.Contains(t, err.Message, "missing expected `status` attribute")
}
