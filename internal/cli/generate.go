// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxspec/oxspec/internal/config"
	"github.com/oxspec/oxspec/internal/openapi"
	"github.com/oxspec/oxspec/internal/plugins"
	"github.com/oxspec/oxspec/internal/scanner"
	"github.com/oxspec/oxspec/pkg/types"
)

var (
	generateMode    string
	generateDryRun  bool
	generateStrict  bool
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate OpenAPI specification from source code",
	Long: `Generate an OpenAPI specification by analyzing your Rust source code.

The generate command scans your source files, derives routes from handler
files under src/routes, compiles response annotations, and produces an
OpenAPI 3.0/3.1 specification document.

Modes:
  full         Generate complete spec with routes and schemas (default)
  routes-only  Generate only route definitions
  schemas-only Generate only schema and response definitions

Example:
  oxspec generate                           # Generate from current directory
  oxspec generate ./api ./worker            # Generate from specific paths
  oxspec generate --mode routes-only        # Generate routes only
  oxspec generate --strict                  # Fail on annotation errors
  oxspec generate --dry-run                 # Preview without writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", "full", "generation mode: full, routes-only, schemas-only")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing to file")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "treat annotation errors as fatal")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadGenerateConfig(args)
	if err != nil {
		return err
	}

	printVerbose("Configuration:")
	printVerbose("  Framework: %s", cfg.Framework)
	printVerbose("  Mode: %s", cfg.Generation.Mode)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	doc, err := generateDocument(cfg, paths)
	if err != nil {
		return err
	}

	writer := openapi.NewWriter()

	if generateDryRun {
		printInfo("Dry run mode - no files will be written")
		return printDocument(writer, doc, cfg.Format)
	}

	if err := writer.WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		return fmt.Errorf("failed to write spec: %w", err)
	}

	printInfo("Wrote %s (%d paths, %d schemas)", cfg.Output, len(doc.Paths), schemaCount(doc))
	return nil
}

// loadGenerateConfig loads the configuration and applies command-line
// overrides shared by generate, watch, and print.
func loadGenerateConfig(args []string) (*config.Config, []string, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if generateMode != "" {
		cfg.Generation.Mode = generateMode
	}
	if generateStrict {
		cfg.Generation.StrictMode = true
	}
	if len(generateInclude) > 0 {
		cfg.Source.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Source.Exclude = generateExclude
	}
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if framework != "" {
		cfg.Framework = framework
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, paths, nil
}

// generateDocument runs the full extraction pipeline and assembles the
// OpenAPI document.
func generateDocument(cfg *config.Config, paths []string) (*types.OpenAPI, error) {
	projectRoot := "."
	if len(paths) > 0 {
		projectRoot = paths[0]
	}

	sc := scanner.New(scanner.Config{
		BasePath:        projectRoot,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})

	files, err := sc.ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}
	printVerbose("Scanned %d source files", len(files))

	plugin, err := selectPlugin(cfg, projectRoot)
	if err != nil {
		return nil, err
	}
	printVerbose("Using framework plugin: %s", plugin.Name())

	var routes []types.Route
	var schemas map[string]*types.Schema
	var responses map[string]types.Response

	mode := cfg.Generation.Mode
	if mode == "" {
		mode = "full"
	}

	if mode != "schemas-only" {
		routes, err = plugin.ExtractRoutes(files)
		if err := handleDiagnostics(cfg, err); err != nil {
			return nil, err
		}
		printVerbose("Extracted %d routes", len(routes))
	}

	if mode != "routes-only" {
		schemas, err = plugin.ExtractSchemas(files)
		if err := handleDiagnostics(cfg, err); err != nil {
			return nil, err
		}
		responses, err = plugin.ExtractResponses(files)
		if err := handleDiagnostics(cfg, err); err != nil {
			return nil, err
		}
		printVerbose("Extracted %d schemas, %d named responses", len(schemas), len(responses))
	}

	builder := openapi.NewBuilder(cfg)
	doc, err := builder.Build(routes, schemas, responses)
	if err != nil {
		return nil, fmt.Errorf("failed to build spec: %w", err)
	}

	return doc, nil
}

// selectPlugin picks the framework plugin from configuration or detection.
func selectPlugin(cfg *config.Config, projectRoot string) (plugins.FrameworkPlugin, error) {
	if cfg.Framework != "" && cfg.Framework != "auto" {
		plugin := plugins.Get(cfg.Framework)
		if plugin == nil {
			return nil, fmt.Errorf("unknown framework %q, registered: %s",
				cfg.Framework, strings.Join(plugins.List(), ", "))
		}
		return plugin, nil
	}

	plugin, err := plugins.Detect(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("framework detection failed: %w (use --framework to select one)", err)
	}
	return plugin, nil
}

// handleDiagnostics decides whether annotation diagnostics abort the run.
func handleDiagnostics(cfg *config.Config, err error) error {
	if err == nil {
		return nil
	}
	if cfg.Generation.StrictMode {
		return fmt.Errorf("annotation errors:\n%w", err)
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		printError("%s", line)
	}
	return nil
}

// printDocument writes the document to stdout in the requested format.
func printDocument(writer *openapi.Writer, doc *types.OpenAPI, format string) error {
	var out string
	var err error

	switch strings.ToLower(format) {
	case "json":
		out, err = writer.ToJSON(doc)
	default:
		out, err = writer.ToYAML(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode spec: %w", err)
	}

	fmt.Print(out)
	return nil
}

// schemaCount returns the number of component schemas in a document.
func schemaCount(doc *types.OpenAPI) int {
	if doc.Components == nil {
		return 0
	}
	return len(doc.Components.Schemas)
}
