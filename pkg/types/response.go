// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// Response represents an OpenAPI response, or a reference to a reusable one.
// When Ref is set, all other fields are left empty.
type Response struct {
	// Ref is a reference to a reusable response ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Description is a brief description of the response
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Headers maps header names to header definitions
	Headers map[string]Header `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Content maps media types to their schemas
	Content map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Header represents an OpenAPI header.
type Header struct {
	// Description is a brief description of the header
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required indicates if the header is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Schema defines the type of the header
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// MediaType represents an OpenAPI media type.
type MediaType struct {
	// Schema defines the structure of the content
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Example is an example of the content
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`

	// Examples maps example names to example objects
	Examples map[string]Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Example represents an OpenAPI example.
type Example struct {
	// Summary is a brief summary of the example
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a detailed description of the example
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Value is the example value
	Value interface{} `json:"value,omitempty" yaml:"value,omitempty"`

	// ExternalValue is a URL pointing to the example
	ExternalValue string `json:"externalValue,omitempty" yaml:"externalValue,omitempty"`
}
