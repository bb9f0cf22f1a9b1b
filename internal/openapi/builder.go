// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi assembles OpenAPI documents from discovered routes,
// schemas, and compiled response instructions.
package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxspec/oxspec/internal/config"
	"github.com/oxspec/oxspec/pkg/types"
)

// Builder constructs OpenAPI documents from routes and schemas.
type Builder struct {
	config *config.Config
}

// NewBuilder creates a new Builder with the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Builder{config: cfg}
}

// Build assembles a complete OpenAPI document.
func (b *Builder) Build(routes []types.Route, schemas map[string]*types.Schema, responses map[string]types.Response) (*types.OpenAPI, error) {
	doc := &types.OpenAPI{
		OpenAPI: b.config.OpenAPI.Version,
		Info:    b.buildInfo(),
		Paths:   make(map[string]types.PathItem),
	}

	if doc.OpenAPI == "" {
		doc.OpenAPI = "3.0.3"
	}

	doc.Servers = b.buildServers()
	doc.Tags = b.buildTags(routes)

	if err := b.buildPaths(doc, routes); err != nil {
		return nil, err
	}

	b.buildComponents(doc, schemas, responses)

	return doc, nil
}

// buildInfo constructs the info section from configuration.
func (b *Builder) buildInfo() types.Info {
	info := types.Info{
		Title:          b.config.OpenAPI.Info.Title,
		Description:    b.config.OpenAPI.Info.Description,
		Version:        b.config.OpenAPI.Info.Version,
		TermsOfService: b.config.OpenAPI.Info.TermsOfService,
	}

	if info.Title == "" {
		info.Title = "API"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}

	contact := b.config.OpenAPI.Info.Contact
	if contact.Name != "" || contact.URL != "" || contact.Email != "" {
		info.Contact = &types.Contact{
			Name:  contact.Name,
			URL:   contact.URL,
			Email: contact.Email,
		}
	}

	license := b.config.OpenAPI.Info.License
	if license.Name != "" {
		info.License = &types.License{
			Name: license.Name,
			URL:  license.URL,
		}
	}

	return info
}

// buildServers constructs the servers section from configuration.
func (b *Builder) buildServers() []types.Server {
	var servers []types.Server
	for _, s := range b.config.OpenAPI.Servers {
		servers = append(servers, types.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return servers
}

// buildTags constructs the tags section. Configured tags come first,
// then any tags referenced by routes that are not configured.
func (b *Builder) buildTags(routes []types.Route) []types.Tag {
	var tags []types.Tag
	seen := make(map[string]bool)

	for _, t := range b.config.OpenAPI.Tags {
		tags = append(tags, types.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
		seen[t.Name] = true
	}

	var extra []string
	for _, route := range routes {
		for _, tag := range route.Tags {
			if !seen[tag] {
				seen[tag] = true
				extra = append(extra, tag)
			}
		}
	}
	sort.Strings(extra)
	for _, tag := range extra {
		tags = append(tags, types.Tag{Name: tag})
	}

	return tags
}

// buildPaths populates the paths section from the route list.
func (b *Builder) buildPaths(doc *types.OpenAPI, routes []types.Route) error {
	for _, route := range routes {
		item := doc.Paths[route.Path]
		op := b.routeToOperation(route)

		switch strings.ToUpper(route.Method) {
		case "GET":
			item.Get = op
		case "PUT":
			item.Put = op
		case "POST":
			item.Post = op
		case "DELETE":
			item.Delete = op
		default:
			return fmt.Errorf("unsupported HTTP method %q for path %s", route.Method, route.Path)
		}

		doc.Paths[route.Path] = item
	}
	return nil
}

// routeToOperation converts a route into an OpenAPI operation.
func (b *Builder) routeToOperation(route types.Route) *types.Operation {
	op := &types.Operation{
		Summary:     route.Summary,
		Description: route.Description,
		OperationID: route.OperationID,
		Tags:        route.Tags,
	}

	if op.OperationID == "" {
		op.OperationID = defaultOperationID(route)
	}

	for _, p := range route.Parameters {
		op.Parameters = append(op.Parameters, p)
	}

	op.RequestBody = route.RequestBody

	if len(route.Responses) > 0 {
		op.Responses = route.Responses
	} else {
		op.Responses = b.buildDefaultResponses()
	}

	return op
}

// buildDefaultResponses produces the configured fallback responses for
// operations that carry no response annotations.
func (b *Builder) buildDefaultResponses() map[string]types.Response {
	codes := b.config.Generation.DefaultResponses
	if len(codes) == 0 {
		codes = []string{"200"}
	}

	responses := make(map[string]types.Response, len(codes))
	for _, code := range codes {
		responses[code] = types.Response{
			Description: defaultResponseDescription(code),
		}
	}
	return responses
}

// buildComponents populates the components section.
func (b *Builder) buildComponents(doc *types.OpenAPI, schemas map[string]*types.Schema, responses map[string]types.Response) {
	if len(schemas) == 0 && len(responses) == 0 {
		return
	}

	doc.Components = &types.Components{}

	if len(schemas) > 0 {
		doc.Components.Schemas = make(map[string]*types.Schema, len(schemas))
		for name, schema := range schemas {
			doc.Components.Schemas[name] = schema
		}
	}

	if len(responses) > 0 {
		doc.Components.Responses = make(map[string]types.Response, len(responses))
		for name, response := range responses {
			doc.Components.Responses[name] = response
		}
	}
}

// defaultOperationID derives an operation ID from the method and path,
// e.g. GET /users/{id} becomes getUsersId.
func defaultOperationID(route types.Route) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(route.Method))

	for _, segment := range strings.Split(route.Path, "/") {
		segment = strings.Trim(segment, "{}")
		if segment == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(segment[:1]))
		sb.WriteString(segment[1:])
	}

	return sb.String()
}

// defaultResponseDescription returns a human-readable description for a
// status code used in default responses.
func defaultResponseDescription(code string) string {
	switch code {
	case "200":
		return "Successful operation"
	case "201":
		return "Created"
	case "204":
		return "No content"
	case "400":
		return "Bad request"
	case "401":
		return "Unauthorized"
	case "403":
		return "Forbidden"
	case "404":
		return "Not found"
	case "500":
		return "Internal server error"
	default:
		return "Response"
	}
}

// SortedPaths returns the document's paths in lexical order.
func SortedPaths(doc *types.OpenAPI) []string {
	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// SortedSchemas returns the component schema names in lexical order.
func SortedSchemas(doc *types.OpenAPI) []string {
	if doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
