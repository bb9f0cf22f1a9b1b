// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"User", "user"},
		{"GetUsersById", "getUsersById"},
		{"already", "already"},
		{"X", "x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToLowerCamelCase(tt.input))
	}
}
