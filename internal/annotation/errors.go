// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import "fmt"

// Kind classifies a compilation error.
type Kind int

const (
	// KindGrammar is an unexpected or missing token in the attribute grammar.
	KindGrammar Kind = iota

	// KindConflict is a use of mutually exclusive constructs together.
	KindConflict

	// KindResolution is a status constant or range that does not match the
	// status registry.
	KindResolution

	// KindShape is an unsupported declaration shape.
	KindShape
)

// String returns the error-kind label used in formatted messages.
func (k Kind) String() string {
	switch k {
	case KindGrammar:
		return "grammar"
	case KindConflict:
		return "conflict"
	case KindResolution:
		return "resolution"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Error is a fatal compilation diagnostic. Every failure in the pipeline is
// reported through this type; the first error encountered aborts the
// declaration's compilation with no partial output.
type Error struct {
	Kind    Kind
	Message string
	Loc     Location
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

func grammarErrorf(loc Location, format string, args ...interface{}) *Error {
	return &Error{Kind: KindGrammar, Message: fmt.Sprintf(format, args...), Loc: loc}
}

func conflictErrorf(loc Location, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Loc: loc}
}

func resolutionErrorf(loc Location, format string, args ...interface{}) *Error {
	return &Error{Kind: KindResolution, Message: fmt.Sprintf(format, args...), Loc: loc}
}

func shapeErrorf(loc Location, format string, args ...interface{}) *Error {
	return &Error{Kind: KindShape, Message: fmt.Sprintf(format, args...), Loc: loc}
}
