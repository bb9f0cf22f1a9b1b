// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package main is the entry point for the oxspec CLI.
package main

import (
	"fmt"
	"os"

	"github.com/oxspec/oxspec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
