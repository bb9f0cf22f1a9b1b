// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxspec/oxspec/internal/openapi"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI specification to stdout",
	Long: `Print the OpenAPI specification to standard output.

If a file is provided, it will print that file. Otherwise, it will
generate and print the specification from the current source code.

This is useful for piping the output to other tools or for quick inspection.

Example:
  oxspec print                      # Generate and print
  oxspec print openapi.yaml         # Print existing file
  oxspec print -f json              # Print in JSON format
  oxspec print | jq '.paths'        # Pipe to jq for processing`,
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		// Print existing file
		filePath := args[0]
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
		fmt.Print(string(data))
		return nil
	}

	cfg, paths, err := loadGenerateConfig(nil)
	if err != nil {
		return err
	}

	doc, err := generateDocument(cfg, paths)
	if err != nil {
		return err
	}

	return printDocument(openapi.NewWriter(), doc, cfg.Format)
}
