// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenKind identifies the lexical class of a token in the attribute grammar.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenInt
	tokenString
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenEq
	tokenComma
	tokenPathSep // ::
	tokenBang    // !
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer literal"
	case tokenString:
		return "string literal"
	case tokenLParen:
		return "`(`"
	case tokenRParen:
		return "`)`"
	case tokenLBracket:
		return "`[`"
	case tokenRBracket:
		return "`]`"
	case tokenEq:
		return "`=`"
	case tokenComma:
		return "`,`"
	case tokenPathSep:
		return "`::`"
	case tokenBang:
		return "`!`"
	default:
		return "unknown token"
	}
}

// token is one lexical token. For string literals, value holds the decoded
// text while text holds the raw source form.
type token struct {
	kind   tokenKind
	text   string
	value  string
	offset int
}

// lexer tokenizes one attribute occurrence's argument text.
type lexer struct {
	input string
	pos   int
	base  Location
}

func newLexer(occ Occurrence) *lexer {
	return &lexer{input: occ.Args, base: occ.Loc}
}

// loc returns the source location of the given byte offset.
func (l *lexer) loc(offset int) Location {
	return l.base.at(offset)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// next scans and returns the next token.
func (l *lexer) next() (token, *Error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, offset: start}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokenLParen, text: "(", offset: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenRParen, text: ")", offset: start}, nil
	case c == '[':
		l.pos++
		return token{kind: tokenLBracket, text: "[", offset: start}, nil
	case c == ']':
		l.pos++
		return token{kind: tokenRBracket, text: "]", offset: start}, nil
	case c == '=':
		l.pos++
		return token{kind: tokenEq, text: "=", offset: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokenComma, text: ",", offset: start}, nil
	case c == '!':
		l.pos++
		return token{kind: tokenBang, text: "!", offset: start}, nil
	case c == ':':
		if strings.HasPrefix(l.input[l.pos:], "::") {
			l.pos += 2
			return token{kind: tokenPathSep, text: "::", offset: start}, nil
		}
		return token{}, grammarErrorf(l.loc(start), "unexpected character `:`")
	case c == '"':
		return l.scanString(start)
	case c >= '0' && c <= '9':
		return l.scanInt(start)
	case isIdentStart(rune(c)):
		return l.scanIdent(start)
	default:
		return token{}, grammarErrorf(l.loc(start), "unexpected character %q", string(c))
	}
}

func (l *lexer) scanString(start int) (token, *Error) {
	var sb strings.Builder
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokenString, text: l.input[start:l.pos], value: sb.String(), offset: start}, nil
		case '\\':
			if l.pos+1 >= len(l.input) {
				return token{}, grammarErrorf(l.loc(start), "unterminated string literal")
			}
			l.pos++
			switch l.input[l.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				sb.WriteByte(l.input[l.pos])
			}
			l.pos++
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, grammarErrorf(l.loc(start), "unterminated string literal")
}

func (l *lexer) scanInt(start int) (token, *Error) {
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
	}
	// An integer immediately followed by an identifier character is a
	// malformed literal, not two tokens.
	if l.pos < len(l.input) && isIdentStart(rune(l.input[l.pos])) {
		end := l.pos
		for end < len(l.input) && isIdentPart(rune(l.input[end])) {
			end++
		}
		return token{}, grammarErrorf(l.loc(start), "malformed integer literal %q", l.input[start:end])
	}
	return token{kind: tokenInt, text: l.input[start:l.pos], offset: start}, nil
}

func (l *lexer) scanIdent(start int) (token, *Error) {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	return token{kind: tokenIdent, text: l.input[start:l.pos], offset: start}, nil
}

// scanType consumes a raw Rust type expression starting at the current
// position. The expression ends before a top-level `,`, `)` or `]`; nesting
// inside (), [] and <> is respected so generics like Vec<(A, B)> survive.
func (l *lexer) scanType() (string, int, *Error) {
	l.skipSpace()
	start := l.pos
	depth := 0
	for l.pos < len(l.input) {
		switch c := l.input[l.pos]; c {
		case '(', '[', '<':
			depth++
		case ')', ']':
			if depth == 0 {
				return l.typeText(start)
			}
			depth--
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return l.typeText(start)
			}
		case '"':
			if _, err := l.scanString(l.pos); err != nil {
				return "", start, err
			}
			continue
		}
		l.pos++
	}
	return l.typeText(start)
}

func (l *lexer) typeText(start int) (string, int, *Error) {
	text := strings.TrimSpace(l.input[start:l.pos])
	if text == "" {
		return "", start, grammarErrorf(l.loc(start), "expected a type such as String")
	}
	return text, start, nil
}

// scanRawGroup consumes a balanced parenthesized group and returns the text
// between the outer parentheses. Used for json!(...) example payloads.
func (l *lexer) scanRawGroup() (string, *Error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) || l.input[l.pos] != '(' {
		return "", grammarErrorf(l.loc(start), "expected `(`")
	}
	l.pos++
	depth := 1
	inner := l.pos
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				text := l.input[inner:l.pos]
				l.pos++
				return text, nil
			}
		case '"':
			if _, err := l.scanString(l.pos); err != nil {
				return "", err
			}
			continue
		}
		l.pos++
	}
	return "", grammarErrorf(l.loc(start), "unbalanced `(` in attribute")
}

// scanGroupRemainder consumes the rest of a parenthesized group whose
// opening `(` has already been read, returning the text before the matching
// `)` and consuming it.
func (l *lexer) scanGroupRemainder() (string, *Error) {
	start := l.pos
	depth := 1
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				text := l.input[start:l.pos]
				l.pos++
				return text, nil
			}
		case '"':
			if _, err := l.scanString(l.pos); err != nil {
				return "", err
			}
			continue
		}
		l.pos++
	}
	return "", grammarErrorf(l.loc(start), "unbalanced `(` in attribute")
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
