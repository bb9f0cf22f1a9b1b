// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package routes resolves actix file-based routing: handler modules are
// discovered from the filesystem layout under src/routes, and route paths
// are derived from file paths, with underscore-prefixed segments becoming
// path parameters.
package routes

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// handlerMarkers are the function signatures that mark a module as handling
// an HTTP verb.
var handlerMarkers = []struct {
	method string
	marker string
}{
	{"get", "async fn get"},
	{"post", "async fn post"},
	{"delete", "async fn delete"},
	{"put", "async fn put"},
}

var paramSegment = regexp.MustCompile(`_(.*?)(/|\.rs)`)

// ListHandlerModules walks the routes directory and returns one entry per
// handler function, as "routes::<module path>::<method>". Module-root files
// (mod.rs) never hold handlers and are skipped.
func ListHandlerModules(root string) ([]string, error) {
	files, err := doublestar.Glob(os.DirFS(root), "**/*.rs")
	if err != nil {
		return nil, err
	}

	var modules []string
	for _, file := range files {
		if filepath.Base(file) == "mod.rs" {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(root, file))
		if err != nil {
			return nil, err
		}

		module := "routes" + modulePath(file)
		for _, method := range handlerMethods(string(contents)) {
			modules = append(modules, module+"::"+method)
		}
	}
	return modules, nil
}

// handlerMethods reports which HTTP verbs a module's source handles, in
// fixed verb order.
func handlerMethods(contents string) []string {
	var methods []string
	for _, entry := range handlerMarkers {
		if strings.Contains(contents, entry.marker) {
			methods = append(methods, entry.method)
		}
	}
	return methods
}

// modulePath turns a file path relative to the routes root into a Rust
// module path suffix, e.g. "users/_id.rs" becomes "::users::_id".
func modulePath(file string) string {
	file = strings.TrimSuffix(filepath.ToSlash(file), ".rs")
	parts := strings.Split(file, "/")
	return "::" + strings.Join(parts, "::")
}

// DerivePath rewrites a handler source path into its route path:
// underscore-prefixed segments become brace-delimited path parameters, the
// source-root prefix and the file extension are stripped, and index files
// map to their directory. "src/routes/users/_id.rs" derives "/users/{id}".
func DerivePath(sourcePath string) string {
	path := filepath.ToSlash(sourcePath)
	if idx := strings.Index(path, "src/routes"); idx >= 0 {
		path = path[idx+len("src/routes"):]
	}
	if strings.HasSuffix(path, "/index.rs") {
		path = strings.TrimSuffix(path, "index.rs")
	}

	path = paramSegment.ReplaceAllString(path, "{$1}/")
	path = strings.ReplaceAll(path, ".rs", "")
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}
