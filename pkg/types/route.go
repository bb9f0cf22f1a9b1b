// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides core data structures for OpenAPI specification generation.
package types

// Route represents an HTTP route resolved from a handler source file.
type Route struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE)
	Method string `json:"method" yaml:"method"`

	// Path is the URL path pattern (e.g., "/users/{id}")
	Path string `json:"path" yaml:"path"`

	// Handler is the module path of the handler function (e.g., "routes::users::_id::get")
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`

	// Summary is a brief description of the route
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a detailed description of the route
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tags are used to group routes in the OpenAPI spec
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// OperationID is a unique identifier for the operation
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	// Parameters are the route parameters (path, query, header, cookie)
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// RequestBody describes the request body for POST/PUT
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`

	// Responses maps status codes and ranges to response definitions
	Responses map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`

	// SourceFile is the file where this route was defined
	SourceFile string `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`

	// SourceLine is the line number where this route was defined
	SourceLine int `json:"sourceLine,omitempty" yaml:"sourceLine,omitempty"`
}

// Parameter represents an OpenAPI parameter.
type Parameter struct {
	// Name is the parameter name
	Name string `json:"name" yaml:"name"`

	// In is the location of the parameter (path, query, header, cookie)
	In string `json:"in" yaml:"in"`

	// Description is a brief description of the parameter
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required indicates if the parameter is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Schema defines the type of the parameter
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Example is an example value for the parameter
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`
}

// RequestBody represents an OpenAPI request body.
type RequestBody struct {
	// Description is a brief description of the request body
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required indicates if the request body is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Content maps media types to their schemas
	Content map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}
