// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"

	"github.com/oxspec/oxspec/internal/annotation"
	"github.com/oxspec/oxspec/pkg/types"
)

// ResponseBuilder assembles one response document through chained calls.
type ResponseBuilder struct {
	response types.Response
}

// NewResponseBuilder starts an empty response.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// Description sets the response description.
func (b *ResponseBuilder) Description(description string) *ResponseBuilder {
	b.response.Description = description
	return b
}

// Content adds one media type entry.
func (b *ResponseBuilder) Content(contentType string, mediaType types.MediaType) *ResponseBuilder {
	if b.response.Content == nil {
		b.response.Content = make(map[string]types.MediaType)
	}
	b.response.Content[contentType] = mediaType
	return b
}

// Header adds one header entry.
func (b *ResponseBuilder) Header(name string, header types.Header) *ResponseBuilder {
	if b.response.Headers == nil {
		b.response.Headers = make(map[string]types.Header)
	}
	b.response.Headers[name] = header
	return b
}

// Build returns the assembled response.
func (b *ResponseBuilder) Build() types.Response {
	return b.response
}

// ResponseLookup resolves a registered response by name. It backs inline
// reference expansion.
type ResponseLookup func(name string) (types.Response, bool)

// Apply executes a compiled builder instruction sequence and returns the
// resulting response document. Named references become $ref responses;
// inline references are resolved through lookup.
func Apply(instructions []annotation.Instruction, lookup ResponseLookup) (types.Response, error) {
	builder := NewResponseBuilder()

	for _, in := range instructions {
		switch in.Op {
		case annotation.OpRefNamed:
			return types.Response{Ref: "#/components/responses/" + in.Name}, nil

		case annotation.OpRefInline:
			if lookup != nil {
				if response, ok := lookup(in.Name); ok {
					return response, nil
				}
			}
			return types.Response{}, fmt.Errorf("no registered response named %q", in.Name)

		case annotation.OpNew:
			builder = NewResponseBuilder()

		case annotation.OpDescription:
			builder.Description(in.Description)

		case annotation.OpContent:
			builder.Content(in.ContentType, mediaTypeOf(in))

		case annotation.OpHeader:
			header := types.Header{Description: in.Description, Schema: in.Schema}
			builder.Header(in.Name, header)

		case annotation.OpBuild:
			return builder.Build(), nil

		default:
			return types.Response{}, fmt.Errorf("unknown builder instruction %q", in.Op)
		}
	}

	return types.Response{}, fmt.Errorf("instruction sequence ended without build")
}

// mediaTypeOf converts one content instruction to a media type entry.
func mediaTypeOf(in annotation.Instruction) types.MediaType {
	mediaType := types.MediaType{Schema: in.Schema}
	if in.Example != nil {
		mediaType.Example = in.Example.Value
	}
	if len(in.Examples) > 0 {
		mediaType.Examples = make(map[string]types.Example, len(in.Examples))
		for _, example := range in.Examples {
			entry := types.Example{
				Summary:       example.Summary,
				Description:   example.Description,
				ExternalValue: example.ExternalValue,
			}
			if example.Value != nil {
				entry.Value = example.Value.Value
			}
			mediaType.Examples[example.Name] = entry
		}
	}
	return mediaType
}
