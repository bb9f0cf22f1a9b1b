// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectToResponse_LaterNonEmptyWins(t *testing.T) {
	attr, err := CollectToResponse([]Occurrence{
		occurrence(`description = "first", content_type = "text/plain"`),
		occurrence(`description = "second"`),
	})
	require.Nil(t, err)

	assert.Equal(t, "second", attr.Description)
	assert.Equal(t, []string{"text/plain"}, attr.ContentType)
}

func TestCollectToResponse_EmptyNeverOverrides(t *testing.T) {
	attr, err := CollectToResponse([]Occurrence{
		occurrence(`description = "kept", headers(("x-id")), example = "one"`),
		occurrence(``),
	})
	require.Nil(t, err)

	assert.Equal(t, "kept", attr.Description)
	require.Len(t, attr.Headers, 1)
	require.NotNil(t, attr.Example)
	assert.Equal(t, "one", attr.Example.Value)
}

func TestCollectToResponse_HeadersReplacedWholesale(t *testing.T) {
	attr, err := CollectToResponse([]Occurrence{
		occurrence(`headers(("x-a"), ("x-b"))`),
		occurrence(`headers(("x-c"))`),
	})
	require.Nil(t, err)

	require.Len(t, attr.Headers, 1)
	assert.Equal(t, "x-c", attr.Headers[0].Name)
}

func TestCollectToResponse_OrderSensitiveOnlyForSetFields(t *testing.T) {
	a := occurrence(`description = "a", content_type = "text/plain", example = "ea"`)
	b := occurrence(`description = "b"`)

	ab, err := CollectToResponse([]Occurrence{a, b})
	require.Nil(t, err)
	ba, err := CollectToResponse([]Occurrence{b, a})
	require.Nil(t, err)

	assert.Equal(t, "b", ab.Description)
	assert.Equal(t, "a", ba.Description)
	assert.Equal(t, ab.ContentType, ba.ContentType)
	assert.Equal(t, ab.Example, ba.Example)
	assert.Equal(t, ab.Headers, ba.Headers)
}

func TestCollectToResponse_NoOccurrences(t *testing.T) {
	attr, err := CollectToResponse(nil)
	require.Nil(t, err)
	assert.Nil(t, attr)
}

func TestCollectIntoResponses_StatusAlwaysReplaced(t *testing.T) {
	attr, err := CollectIntoResponses([]Occurrence{
		occurrence(`status = 200, description = "ok"`),
		occurrence(`status = 201`),
	})
	require.Nil(t, err)

	assert.Equal(t, StatusToken("201"), attr.Status)
	assert.Equal(t, "ok", attr.Description)
}

func TestCollectIntoResponses_ExamplesReplaced(t *testing.T) {
	attr, err := CollectIntoResponses([]Occurrence{
		occurrence(`status = 200, examples(("a"))`),
		occurrence(`status = 200, examples(("b"), ("c"))`),
	})
	require.Nil(t, err)

	require.True(t, attr.HasExamples)
	require.Len(t, attr.Examples, 2)
	assert.Equal(t, "b", attr.Examples[0].Name)
}
