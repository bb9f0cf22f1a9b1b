// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package plugins provides framework plugin infrastructure for route,
// schema, and response extraction.
package plugins

import (
	"github.com/oxspec/oxspec/internal/scanner"
	"github.com/oxspec/oxspec/pkg/types"
)

// FrameworkPlugin defines the interface for framework-specific extraction.
type FrameworkPlugin interface {
	// Name returns the plugin identifier (e.g., "actix").
	Name() string

	// Extensions returns the file extensions this plugin handles (e.g., []string{".rs"}).
	Extensions() []string

	// Detect checks if this framework is used in the project.
	// It typically looks for framework dependencies in the project manifest.
	Detect(projectRoot string) (bool, error)

	// ExtractRoutes parses source files and extracts route definitions,
	// including per-operation responses compiled from annotations.
	ExtractRoutes(files []scanner.SourceFile) ([]types.Route, error)

	// ExtractSchemas parses source files and extracts named schema
	// definitions derived from annotated type declarations.
	ExtractSchemas(files []scanner.SourceFile) (map[string]*types.Schema, error)

	// ExtractResponses parses source files and extracts reusable named
	// response definitions for the components section.
	ExtractResponses(files []scanner.SourceFile) (map[string]types.Response, error)
}

// PluginInfo provides metadata about a plugin.
type PluginInfo struct {
	// Name is the plugin identifier
	Name string

	// Version is the plugin version
	Version string

	// Description describes the plugin's purpose
	Description string

	// SupportedFrameworks lists framework versions supported by this plugin
	SupportedFrameworks []string
}

// InfoProvider is an optional interface plugins can implement to provide metadata.
type InfoProvider interface {
	// Info returns plugin metadata.
	Info() PluginInfo
}

// RouteExtractor is a minimal interface for plugins that only extract routes.
type RouteExtractor interface {
	ExtractRoutes(files []scanner.SourceFile) ([]types.Route, error)
}

// SchemaExtractor is a minimal interface for plugins that only extract schemas.
type SchemaExtractor interface {
	ExtractSchemas(files []scanner.SourceFile) (map[string]*types.Schema, error)
}

// ResponseExtractor is a minimal interface for plugins that only extract
// reusable responses.
type ResponseExtractor interface {
	ExtractResponses(files []scanner.SourceFile) (map[string]types.Response, error)
}
