// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxspec/oxspec/internal/config"
	"github.com/oxspec/oxspec/pkg/types"
)

func TestNewBuilder(t *testing.T) {
	cfg := config.Default()
	builder := NewBuilder(cfg)

	assert.NotNil(t, builder)
	assert.Equal(t, cfg, builder.config)
}

func TestNewBuilder_NilConfig(t *testing.T) {
	builder := NewBuilder(nil)

	require.NotNil(t, builder)
	assert.NotNil(t, builder.config)
}

func TestBuilder_Build_EmptyRoutesAndSchemas(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Info.Title = "Test API"
	cfg.OpenAPI.Info.Version = "1.0.0"

	builder := NewBuilder(cfg)
	doc, err := builder.Build(nil, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Test API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Empty(t, doc.Paths)
	assert.Nil(t, doc.Components)
}

func TestBuilder_Build_Routes(t *testing.T) {
	builder := NewBuilder(config.Default())

	routes := []types.Route{
		{Method: "GET", Path: "/users", Summary: "List users"},
		{Method: "POST", Path: "/users", Summary: "Create user"},
		{Method: "GET", Path: "/users/{id}"},
	}

	doc, err := builder.Build(routes, nil, nil)
	require.NoError(t, err)

	require.Len(t, doc.Paths, 2)

	users := doc.Paths["/users"]
	require.NotNil(t, users.Get)
	require.NotNil(t, users.Post)
	assert.Equal(t, "List users", users.Get.Summary)
	assert.Equal(t, "Create user", users.Post.Summary)

	byID := doc.Paths["/users/{id}"]
	require.NotNil(t, byID.Get)
	assert.Nil(t, byID.Post)
}

func TestBuilder_Build_UnsupportedMethod(t *testing.T) {
	builder := NewBuilder(config.Default())

	routes := []types.Route{
		{Method: "PATCH", Path: "/users/{id}"},
	}

	_, err := builder.Build(routes, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported HTTP method")
}

func TestBuilder_Build_DefaultOperationID(t *testing.T) {
	builder := NewBuilder(config.Default())

	routes := []types.Route{
		{Method: "GET", Path: "/users/{id}/posts"},
	}

	doc, err := builder.Build(routes, nil, nil)
	require.NoError(t, err)

	op := doc.Paths["/users/{id}/posts"].Get
	require.NotNil(t, op)
	assert.Equal(t, "getUsersIdPosts", op.OperationID)
}

func TestBuilder_Build_ExplicitOperationID(t *testing.T) {
	builder := NewBuilder(config.Default())

	routes := []types.Route{
		{Method: "GET", Path: "/health", OperationID: "healthCheck"},
	}

	doc, err := builder.Build(routes, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "healthCheck", doc.Paths["/health"].Get.OperationID)
}

func TestBuilder_Build_DefaultResponses(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.DefaultResponses = []string{"200", "404"}

	builder := NewBuilder(cfg)
	routes := []types.Route{
		{Method: "GET", Path: "/health"},
	}

	doc, err := builder.Build(routes, nil, nil)
	require.NoError(t, err)

	responses := doc.Paths["/health"].Get.Responses
	require.Len(t, responses, 2)
	assert.Equal(t, "Successful operation", responses["200"].Description)
	assert.Equal(t, "Not found", responses["404"].Description)
}

func TestBuilder_Build_RouteResponsesWin(t *testing.T) {
	builder := NewBuilder(config.Default())

	routes := []types.Route{
		{
			Method: "GET",
			Path:   "/users",
			Responses: map[string]types.Response{
				"200": {Description: "user list"},
			},
		},
	}

	doc, err := builder.Build(routes, nil, nil)
	require.NoError(t, err)

	responses := doc.Paths["/users"].Get.Responses
	require.Len(t, responses, 1)
	assert.Equal(t, "user list", responses["200"].Description)
}

func TestBuilder_Build_Components(t *testing.T) {
	builder := NewBuilder(config.Default())

	schemas := map[string]*types.Schema{
		"User": {Type: "object"},
	}
	responses := map[string]types.Response{
		"NotFound": {Description: "resource missing"},
	}

	doc, err := builder.Build(nil, schemas, responses)
	require.NoError(t, err)

	require.NotNil(t, doc.Components)
	assert.Equal(t, "object", doc.Components.Schemas["User"].Type)
	assert.Equal(t, "resource missing", doc.Components.Responses["NotFound"].Description)
}

func TestBuilder_Build_ServersAndTags(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Servers = []config.ServerConfig{
		{URL: "https://api.example.com", Description: "Production"},
	}
	cfg.OpenAPI.Tags = []config.TagConfig{
		{Name: "users", Description: "User management"},
	}

	builder := NewBuilder(cfg)
	routes := []types.Route{
		{Method: "GET", Path: "/audit", Tags: []string{"audit"}},
	}

	doc, err := builder.Build(routes, nil, nil)
	require.NoError(t, err)

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com", doc.Servers[0].URL)

	require.Len(t, doc.Tags, 2)
	assert.Equal(t, "users", doc.Tags[0].Name)
	assert.Equal(t, "audit", doc.Tags[1].Name)
}

func TestBuilder_Build_ContactAndLicense(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Info.Contact = config.ContactConfig{Name: "Ops", Email: "ops@example.com"}
	cfg.OpenAPI.Info.License = config.LicenseConfig{Name: "MIT"}

	builder := NewBuilder(cfg)
	doc, err := builder.Build(nil, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, doc.Info.Contact)
	assert.Equal(t, "Ops", doc.Info.Contact.Name)
	require.NotNil(t, doc.Info.License)
	assert.Equal(t, "MIT", doc.Info.License.Name)
}

func TestSortedPaths(t *testing.T) {
	doc := &types.OpenAPI{
		Paths: map[string]types.PathItem{
			"/users":      {},
			"/audit":      {},
			"/users/{id}": {},
		},
	}

	assert.Equal(t, []string{"/audit", "/users", "/users/{id}"}, SortedPaths(doc))
}

func TestSortedSchemas(t *testing.T) {
	doc := &types.OpenAPI{
		Components: &types.Components{
			Schemas: map[string]*types.Schema{
				"User":    {},
				"Account": {},
			},
		},
	}

	assert.Equal(t, []string{"Account", "User"}, SortedSchemas(doc))
}

func TestSortedSchemas_NoComponents(t *testing.T) {
	assert.Nil(t, SortedSchemas(&types.OpenAPI{}))
}
