// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import (
	"strconv"
	"strings"
	"sync"
)

// StatusToken is the canonical textual form of an HTTP status code or status
// range: a decimal code string such as "404", or one of the fixed range
// tokens ("default", "1XX", "2XX", "3XX", "4XX", "5XX").
type StatusToken string

// validStatusRanges is the fixed set of accepted status range strings.
var validStatusRanges = []string{"default", "1XX", "2XX", "3XX", "4XX", "5XX"}

// statusRegistry is the standard HTTP status registry as (code, symbolic
// name) pairs, matching the constants exposed by http::StatusCode.
var statusRegistry = []struct {
	code int
	name string
}{
	{100, "CONTINUE"},
	{101, "SWITCHING_PROTOCOLS"},
	{102, "PROCESSING"},
	{103, "EARLY_HINTS"},
	{200, "OK"},
	{201, "CREATED"},
	{202, "ACCEPTED"},
	{203, "NON_AUTHORITATIVE_INFORMATION"},
	{204, "NO_CONTENT"},
	{205, "RESET_CONTENT"},
	{206, "PARTIAL_CONTENT"},
	{207, "MULTI_STATUS"},
	{208, "ALREADY_REPORTED"},
	{226, "IM_USED"},
	{300, "MULTIPLE_CHOICES"},
	{301, "MOVED_PERMANENTLY"},
	{302, "FOUND"},
	{303, "SEE_OTHER"},
	{304, "NOT_MODIFIED"},
	{305, "USE_PROXY"},
	{307, "TEMPORARY_REDIRECT"},
	{308, "PERMANENT_REDIRECT"},
	{400, "BAD_REQUEST"},
	{401, "UNAUTHORIZED"},
	{402, "PAYMENT_REQUIRED"},
	{403, "FORBIDDEN"},
	{404, "NOT_FOUND"},
	{405, "METHOD_NOT_ALLOWED"},
	{406, "NOT_ACCEPTABLE"},
	{407, "PROXY_AUTHENTICATION_REQUIRED"},
	{408, "REQUEST_TIMEOUT"},
	{409, "CONFLICT"},
	{410, "GONE"},
	{411, "LENGTH_REQUIRED"},
	{412, "PRECONDITION_FAILED"},
	{413, "PAYLOAD_TOO_LARGE"},
	{414, "URI_TOO_LONG"},
	{415, "UNSUPPORTED_MEDIA_TYPE"},
	{416, "RANGE_NOT_SATISFIABLE"},
	{417, "EXPECTATION_FAILED"},
	{418, "IM_A_TEAPOT"},
	{421, "MISDIRECTED_REQUEST"},
	{422, "UNPROCESSABLE_ENTITY"},
	{423, "LOCKED"},
	{424, "FAILED_DEPENDENCY"},
	{425, "TOO_EARLY"},
	{426, "UPGRADE_REQUIRED"},
	{428, "PRECONDITION_REQUIRED"},
	{429, "TOO_MANY_REQUESTS"},
	{431, "REQUEST_HEADER_FIELDS_TOO_LARGE"},
	{451, "UNAVAILABLE_FOR_LEGAL_REASONS"},
	{500, "INTERNAL_SERVER_ERROR"},
	{501, "NOT_IMPLEMENTED"},
	{502, "BAD_GATEWAY"},
	{503, "SERVICE_UNAVAILABLE"},
	{504, "GATEWAY_TIMEOUT"},
	{505, "HTTP_VERSION_NOT_SUPPORTED"},
	{506, "VARIANT_ALSO_NEGOTIATES"},
	{507, "INSUFFICIENT_STORAGE"},
	{508, "LOOP_DETECTED"},
	{510, "NOT_EXTENDED"},
	{511, "NETWORK_AUTHENTICATION_REQUIRED"},
}

var (
	statusByNameOnce sync.Once
	statusByName     map[string]string
)

// statusCodes returns the symbolic-name lookup table. It is built once on
// first use and never mutated afterwards, so concurrent readers need no
// synchronization.
func statusCodes() map[string]string {
	statusByNameOnce.Do(func() {
		statusByName = make(map[string]string, len(statusRegistry))
		for _, entry := range statusRegistry {
			statusByName[entry.name] = strconv.Itoa(entry.code)
		}
	})
	return statusByName
}

// parseStatus resolves a status literal at the parser's current position into
// a canonical token. Exactly one of the three literal grammars applies,
// dispatched on the kind of the next token; a non-matching token kind is a
// grammar error reported before any literal-specific validation.
func (p *parser) parseStatus() (StatusToken, *Error) {
	tok, err := p.peek()
	if err != nil {
		return "", err
	}

	switch tok.kind {
	case tokenInt:
		return p.parseStatusCodeLiteral()
	case tokenString:
		return p.parseStatusRange()
	case tokenIdent:
		return p.parseStatusConstant()
	default:
		return "", grammarErrorf(p.lex.loc(tok.offset),
			"unexpected %s, expected an integer literal, a status range string, or a status code constant", tok.kind)
	}
}

func (p *parser) parseStatusCodeLiteral() (StatusToken, *Error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	code, parseErr := strconv.ParseUint(tok.text, 10, 16)
	if parseErr != nil {
		return "", grammarErrorf(p.lex.loc(tok.offset), "malformed status code literal %q", tok.text)
	}
	return StatusToken(strconv.FormatUint(code, 10)), nil
}

func (p *parser) parseStatusRange() (StatusToken, *Error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	for _, r := range validStatusRanges {
		if tok.value == r {
			return StatusToken(tok.value), nil
		}
	}
	return "", resolutionErrorf(p.lex.loc(tok.offset),
		"invalid status range %q, expected one of: %s", tok.value, strings.Join(validStatusRanges, ", "))
}

func (p *parser) parseStatusConstant() (StatusToken, *Error) {
	// Consume the identifier path; only the final segment is looked up.
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	last := tok
	for {
		sep, err := p.peek()
		if err != nil {
			return "", err
		}
		if sep.kind != tokenPathSep {
			break
		}
		if _, err := p.next(); err != nil {
			return "", err
		}
		last, err = p.expect(tokenIdent)
		if err != nil {
			return "", err
		}
	}

	if code, ok := statusCodes()[last.text]; ok {
		return StatusToken(code), nil
	}
	return "", resolutionErrorf(p.lex.loc(last.offset),
		"no status code associated with `%s`", last.text)
}
