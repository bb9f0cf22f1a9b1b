// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package actix provides a plugin for Actix-web applications using
// file-based routing. Route paths derive from the location of handler
// files under src/routes, and operation responses compile from
// utoipa-style #[response(...)] and #[responses(...)] annotations.
package actix

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/oxspec/oxspec/internal/annotation"
	"github.com/oxspec/oxspec/internal/openapi"
	"github.com/oxspec/oxspec/internal/parser"
	"github.com/oxspec/oxspec/internal/plugins"
	"github.com/oxspec/oxspec/internal/routes"
	"github.com/oxspec/oxspec/internal/schema"
	"github.com/oxspec/oxspec/internal/scanner"
	"github.com/oxspec/oxspec/internal/util"
	"github.com/oxspec/oxspec/pkg/types"
)

// handlerMethods maps file-based routing handler names to HTTP methods.
var handlerMethods = map[string]string{
	"get":    "GET",
	"post":   "POST",
	"put":    "PUT",
	"delete": "DELETE",
}

// Plugin implements the FrameworkPlugin interface for Actix-web with
// file-based routing.
type Plugin struct{}

// New creates a new Actix plugin instance.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "actix"
}

// Extensions returns the file extensions this plugin handles.
func (p *Plugin) Extensions() []string {
	return []string{".rs"}
}

// Info returns plugin metadata.
func (p *Plugin) Info() plugins.PluginInfo {
	return plugins.PluginInfo{
		Name:        "actix",
		Version:     "1.0.0",
		Description: "Extracts file-based routes and annotated responses from Actix-web applications",
		SupportedFrameworks: []string{
			"actix-web",
		},
	}
}

// Detect checks if Actix-web is used in the project by examining Cargo.toml.
func (p *Plugin) Detect(projectRoot string) (bool, error) {
	cargoPath := filepath.Join(projectRoot, "Cargo.toml")
	return checkCargoForDependency(cargoPath, "actix-web")
}

// checkCargoForDependency checks if Cargo.toml contains a dependency.
func checkCargoForDependency(path, dep string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, nil
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	depLower := strings.ToLower(dep)
	inDependencies := false

	for sc.Scan() {
		line := strings.ToLower(sc.Text())

		// Track if we're in a dependencies section
		if strings.Contains(line, "[dependencies]") || strings.Contains(line, "[dev-dependencies]") {
			inDependencies = true
			continue
		}
		if strings.HasPrefix(line, "[") && !strings.Contains(line, "dependencies") {
			inDependencies = false
			continue
		}

		if inDependencies && strings.Contains(line, depLower) {
			return true, nil
		}
	}

	return false, nil
}

// ExtractRoutes derives routes from handler files under src/routes and
// compiles their annotated responses. A non-nil error carries annotation
// diagnostics; the returned routes are still usable when it is set.
func (p *Plugin) ExtractRoutes(files []scanner.SourceFile) ([]types.Route, error) {
	a, err := analyze(files)
	if err != nil {
		return nil, err
	}
	return a.routes, a.diagnosticsErr()
}

// ExtractSchemas returns the named schemas of #[derive(ToSchema)] types.
func (p *Plugin) ExtractSchemas(files []scanner.SourceFile) (map[string]*types.Schema, error) {
	a, err := analyze(files)
	if err != nil {
		return nil, err
	}
	return a.registry.All(), a.diagnosticsErr()
}

// ExtractResponses returns the reusable responses of #[derive(ToResponse)]
// types, keyed by type name.
func (p *Plugin) ExtractResponses(files []scanner.SourceFile) (map[string]types.Response, error) {
	a, err := analyze(files)
	if err != nil {
		return nil, err
	}
	return a.responses, a.diagnosticsErr()
}

// analysis is the result of one pass over a project's Rust sources.
type analysis struct {
	registry  *schema.Registry
	describer *schema.Describer

	// responses holds compiled #[derive(ToResponse)] responses by type name.
	responses map[string]types.Response

	// instructions holds the uncompiled builder sequences backing responses,
	// so inline references can resolve lazily in any declaration order.
	instructions map[string][]annotation.Instruction

	// grouped holds compiled #[derive(IntoResponses)] response sets:
	// type name to status token to response.
	grouped map[string]map[string]types.Response

	routes []types.Route

	// diagnostics collects per-annotation compile errors. They do not stop
	// the analysis; callers decide whether they are fatal.
	diagnostics []error
}

// analyze parses every Rust source once and extracts schemas, responses,
// and routes from it.
func analyze(files []scanner.SourceFile) (*analysis, error) {
	registry := schema.NewRegistry()
	a := &analysis{
		registry:     registry,
		describer:    schema.NewDescriber(registry),
		responses:    make(map[string]types.Response),
		instructions: make(map[string][]annotation.Instruction),
		grouped:      make(map[string]map[string]types.Response),
	}

	rustParser := parser.NewRustParser()
	defer rustParser.Close()

	var parsed []*parser.ParsedRustFile
	defer func() {
		for _, pf := range parsed {
			pf.Close()
		}
	}()

	for _, file := range files {
		if file.Language != "rust" {
			continue
		}
		pf, err := rustParser.Parse(file.Path, file.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
		}
		parsed = append(parsed, pf)
	}

	// Named schemas first: response bodies may refer to them via inline().
	for _, pf := range parsed {
		a.collectSchemas(pf)
	}

	for _, pf := range parsed {
		a.collectResponseTypes(pf)
	}

	for _, pf := range parsed {
		a.collectRoutes(pf)
	}

	// Compile every remaining registered response so named references and
	// grouped lookups resolve even when no route file triggered them.
	for name := range a.instructions {
		a.lookup(name)
	}

	return a, nil
}

// diagnosticsErr joins collected annotation diagnostics into one error.
func (a *analysis) diagnosticsErr() error {
	return errors.Join(a.diagnostics...)
}

// collectSchemas registers every #[derive(ToSchema)] type in the registry.
func (a *analysis) collectSchemas(pf *parser.ParsedRustFile) {
	for _, s := range pf.Structs {
		if !parser.HasDerive(s.Attributes, "ToSchema") {
			continue
		}
		fields := make([]annotation.Field, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, toField(f))
		}
		a.registry.Add(s.Name, a.describer.StructSchema(s.Name, fields))
	}

	for _, e := range pf.Enums {
		if !parser.HasDerive(e.Attributes, "ToSchema") {
			continue
		}
		variants := make([]annotation.Variant, 0, len(e.Variants))
		for _, v := range e.Variants {
			variants = append(variants, toVariant(v, pf.Path))
		}
		a.registry.Add(e.Name, a.describer.UnionSchema(e.Name, variants))
	}
}

// collectResponseTypes compiles ToResponse and IntoResponses derives.
func (a *analysis) collectResponseTypes(pf *parser.ParsedRustFile) {
	for _, s := range pf.Structs {
		decl := structDeclaration(s, pf.Path)
		if parser.HasDerive(s.Attributes, "ToResponse") {
			a.compileToResponse(decl)
		}
		if parser.HasDerive(s.Attributes, "IntoResponses") {
			a.compileIntoResponses(decl)
		}
	}

	for _, e := range pf.Enums {
		decl := enumDeclaration(e, pf.Path)
		if parser.HasDerive(e.Attributes, "ToResponse") {
			a.compileToResponse(decl)
		}
		if parser.HasDerive(e.Attributes, "IntoResponses") {
			a.compileIntoResponses(decl)
		}
	}
}

func (a *analysis) compileToResponse(decl *annotation.Declaration) {
	name, instructions, cerr := annotation.CompileToResponse(decl, a.describer)
	if cerr != nil {
		a.diagnostics = append(a.diagnostics, cerr)
		return
	}
	a.instructions[name] = instructions
}

func (a *analysis) compileIntoResponses(decl *annotation.Declaration) {
	compiled, cerr := annotation.CompileIntoResponses(decl, a.describer)
	if cerr != nil {
		a.diagnostics = append(a.diagnostics, cerr)
		return
	}

	group := make(map[string]types.Response, len(compiled))
	for _, cr := range compiled {
		response, err := openapi.Apply(cr.Instructions, a.lookup)
		if err != nil {
			a.diagnostics = append(a.diagnostics, err)
			continue
		}
		group[string(cr.Status)] = response
	}
	a.grouped[decl.Name] = group
}

// lookup resolves a named response, compiling its builder sequence on first
// use. It backs inline references regardless of declaration order.
func (a *analysis) lookup(name string) (types.Response, bool) {
	if response, ok := a.responses[name]; ok {
		return response, true
	}
	instructions, ok := a.instructions[name]
	if !ok {
		return types.Response{}, false
	}
	// Break reference cycles before recursing through Apply.
	delete(a.instructions, name)

	response, err := openapi.Apply(instructions, a.lookup)
	if err != nil {
		a.diagnostics = append(a.diagnostics, err)
		return types.Response{}, false
	}
	a.responses[name] = response
	return response, true
}

// collectRoutes builds routes for handler functions in src/routes files.
func (a *analysis) collectRoutes(pf *parser.ParsedRustFile) {
	if filepath.Base(pf.Path) == "mod.rs" {
		return
	}
	if !strings.Contains(filepath.ToSlash(pf.Path), "src/routes") {
		return
	}
	path := routes.DerivePath(pf.Path)

	for _, fn := range pf.Functions {
		method, ok := handlerMethods[fn.Name]
		if !ok || !fn.IsAsync {
			continue
		}

		route := types.Route{
			Method:      method,
			Path:        path,
			Handler:     fn.Name,
			Summary:     docSummary(fn.Docs),
			Description: fn.Docs,
			OperationID: operationID(method, path),
			Tags:        inferTags(path),
			Parameters:  pathParams(path),
			SourceFile:  pf.Path,
			SourceLine:  fn.Line,
		}

		route.Responses = a.operationResponses(fn, pf.Path)
		a.routes = append(a.routes, route)
	}
}

// operationResponses compiles the #[responses(...)] attributes of a handler
// into its per-status response map.
func (a *analysis) operationResponses(fn parser.RustFunction, file string) map[string]types.Response {
	attrs := parser.AttributesNamed(fn.Attributes, "responses")
	if len(attrs) == 0 {
		return nil
	}

	result := make(map[string]types.Response)
	for _, attr := range attrs {
		occ := annotation.Occurrence{
			Args: attr.Arguments,
			Loc:  annotation.Location{File: file, Line: attr.Line},
		}

		compiled, cerr := annotation.CompileResponses(occ, a.describer)
		if cerr != nil {
			a.diagnostics = append(a.diagnostics, cerr)
			continue
		}

		for _, op := range compiled {
			if op.TypeName != "" {
				a.mergeTypeResponses(result, op.TypeName, occ.Loc)
				continue
			}
			response, err := openapi.Apply(op.Instructions, a.lookup)
			if err != nil {
				a.diagnostics = append(a.diagnostics, err)
				continue
			}
			result[string(op.Status)] = response
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// mergeTypeResponses expands a bare type name inside #[responses(...)]:
// IntoResponses types contribute their full status set, ToResponse types a
// single $ref entry under their declared status-less name.
func (a *analysis) mergeTypeResponses(into map[string]types.Response, typeName string, loc annotation.Location) {
	if group, ok := a.grouped[typeName]; ok {
		for status, response := range group {
			into[status] = response
		}
		return
	}
	a.diagnostics = append(a.diagnostics,
		fmt.Errorf("%s: %q does not derive IntoResponses", loc, typeName))
}

// --- declaration conversion ---

// structDeclaration converts a parsed struct to an annotation declaration.
func structDeclaration(s parser.RustStruct, file string) *annotation.Declaration {
	decl := &annotation.Declaration{
		Name:        s.Name,
		Description: s.Docs,
		Responses:   responseOccurrences(s.Attributes, file),
		Named:       s.Named,
		Loc:         annotation.Location{File: file, Line: s.Line},
	}
	for _, f := range s.Fields {
		decl.Fields = append(decl.Fields, toField(f))
	}
	return decl
}

// enumDeclaration converts a parsed enum to an annotation declaration.
func enumDeclaration(e parser.RustEnum, file string) *annotation.Declaration {
	decl := &annotation.Declaration{
		Name:        e.Name,
		Description: e.Docs,
		Responses:   responseOccurrences(e.Attributes, file),
		IsEnum:      true,
		Loc:         annotation.Location{File: file, Line: e.Line},
	}
	for _, v := range e.Variants {
		decl.Variants = append(decl.Variants, toVariant(v, file))
	}
	return decl
}

// toVariant converts a parsed enum variant.
func toVariant(v parser.RustVariant, file string) annotation.Variant {
	variant := annotation.Variant{
		Name:      v.Name,
		Responses: responseOccurrences(v.Attributes, file),
		Named:     v.Named,
	}
	for _, f := range v.Fields {
		variant.Fields = append(variant.Fields, toField(f))
	}
	return variant
}

// toField converts a parsed field, honoring #[to_schema] and #[content].
func toField(f parser.RustField) annotation.Field {
	field := annotation.Field{
		Name: f.Name,
		Type: f.Type,
	}
	if len(parser.AttributesNamed(f.Attributes, "to_schema")) > 0 {
		field.Inline = true
	}
	if content := parser.AttributesNamed(f.Attributes, "content"); len(content) > 0 {
		field.ContentType = strings.Trim(strings.TrimSpace(content[0].Arguments), `"`)
	}
	return field
}

// responseOccurrences collects #[response(...)] attribute argument blocks.
func responseOccurrences(attrs []parser.RustAttribute, file string) []annotation.Occurrence {
	var occs []annotation.Occurrence
	for _, attr := range parser.AttributesNamed(attrs, "response") {
		occs = append(occs, annotation.Occurrence{
			Args: attr.Arguments,
			Loc:  annotation.Location{File: file, Line: attr.Line},
		})
	}
	return occs
}

// --- route helpers ---

// braceParamRegex matches OpenAPI-style path parameters like {param}.
var braceParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// pathParams extracts path parameters from a route path.
func pathParams(path string) []types.Parameter {
	var params []types.Parameter

	matches := braceParamRegex.FindAllStringSubmatch(path, -1)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}

		params = append(params, types.Parameter{
			Name:     match[1],
			In:       "path",
			Required: true,
			Schema: &types.Schema{
				Type: "string",
			},
		})
	}

	return params
}

// operationID generates a camelCase operation ID from method and path,
// e.g. GET /users/{id} becomes getUsersById.
func operationID(method, path string) string {
	cleanPath := braceParamRegex.ReplaceAllString(path, "by ${1}")
	cleanPath = strings.ReplaceAll(cleanPath, "/", " ")
	cleanPath = strings.ReplaceAll(cleanPath, "_", " ")

	words := append([]string{method}, strings.Fields(cleanPath)...)

	var sb strings.Builder
	titleCaser := cases.Title(language.English)
	for _, word := range words {
		sb.WriteString(titleCaser.String(strings.ToLower(word)))
	}

	return util.ToLowerCamelCase(sb.String())
}

// inferTags infers tags from the route path.
func inferTags(path string) []string {
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	skipPrefixes := map[string]bool{
		"api": true,
		"v1":  true,
		"v2":  true,
		"v3":  true,
	}

	var tagPart string
	for _, part := range parts {
		if part == "" || skipPrefixes[part] || strings.HasPrefix(part, "{") {
			continue
		}
		tagPart = part
		break
	}

	if tagPart == "" {
		return nil
	}

	return []string{tagPart}
}

// docSummary returns the first line of a doc comment.
func docSummary(docs string) string {
	if docs == "" {
		return ""
	}
	if idx := strings.IndexByte(docs, '\n'); idx >= 0 {
		return strings.TrimSpace(docs[:idx])
	}
	return strings.TrimSpace(docs)
}

// Register registers the Actix plugin with the global registry.
func Register() {
	plugins.MustRegister(New())
}

func init() {
	Register()
}
