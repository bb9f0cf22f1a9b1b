// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package annotation

import "encoding/json"

const (
	// expectedTupleKeys lists the keys accepted by an operation-level
	// response tuple.
	expectedTupleKeys = "status, description, body, content_type, headers, example, examples, content, response"

	// expectedDeriveKeys lists the keys accepted by a declaration-level or
	// variant-level #[response(...)] occurrence.
	expectedDeriveKeys = "description, content_type, headers, example, examples"

	missingStatusMessage = "missing expected `status` attribute"
)

// parser reads the token stream of one attribute occurrence with one token
// of lookahead.
type parser struct {
	lex *lexer
	buf token
	has bool
}

func newParser(occ Occurrence) *parser {
	return &parser{lex: newLexer(occ)}
}

func (p *parser) peek() (token, *Error) {
	if !p.has {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.buf = tok
		p.has = true
	}
	return p.buf, nil
}

func (p *parser) next() (token, *Error) {
	tok, err := p.peek()
	if err != nil {
		return token{}, err
	}
	p.has = false
	return tok, nil
}

func (p *parser) expect(kind tokenKind) (token, *Error) {
	tok, err := p.next()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, grammarErrorf(p.lex.loc(tok.offset), "unexpected %s, expected %s", tok.kind, kind)
	}
	return tok, nil
}

// rewind un-consumes input from the given token onward, so a raw type scan
// can start where the token began.
func (p *parser) rewind(tok token) {
	p.lex.pos = tok.offset
	p.has = false
}

// sep consumes the separator after a list element. It reports whether more
// elements may follow; a trailing separator before the closing delimiter is
// accepted.
func (p *parser) sep(closing tokenKind) (bool, *Error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	switch tok.kind {
	case closing:
		return false, nil
	case tokenComma:
		if _, err := p.next(); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, grammarErrorf(p.lex.loc(tok.offset), "unexpected %s, expected %s or %s", tok.kind, tokenComma, closing)
	}
}

// atEnd reports whether the next token is the given closing delimiter or,
// for tokenEOF, the end of input.
func (p *parser) atEnd(closing tokenKind) (bool, *Error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok.kind == closing, nil
}

// ParseToResponse parses one declaration-level #[response(...)] occurrence.
func ParseToResponse(occ Occurrence) (*ToResponseAttr, *Error) {
	p := newParser(occ)
	attr := &ToResponseAttr{}
	for {
		done, err := p.atEnd(tokenEOF)
		if err != nil {
			return nil, err
		}
		if done {
			return attr, nil
		}
		if err := p.parseDeriveKey(attr); err != nil {
			return nil, err
		}
		more, err := p.sep(tokenEOF)
		if err != nil {
			return nil, err
		}
		if !more {
			return attr, nil
		}
	}
}

// ParseIntoResponses parses one variant-level #[response(...)] occurrence.
// The status key is mandatory and must come first.
func ParseIntoResponses(occ Occurrence) (*IntoResponsesAttr, *Error) {
	p := newParser(occ)

	ident, err := p.next()
	if err != nil {
		return nil, err
	}
	if ident.kind != tokenIdent || ident.text != "status" {
		return nil, grammarErrorf(p.lex.loc(ident.offset), "%s", missingStatusMessage)
	}
	if _, err := p.expect(tokenEq); err != nil {
		return nil, err
	}
	status, err := p.parseStatus()
	if err != nil {
		return nil, err
	}

	attr := &IntoResponsesAttr{Status: status}
	for {
		more, err := p.sep(tokenEOF)
		if err != nil {
			return nil, err
		}
		if !more {
			return attr, nil
		}
		done, err := p.atEnd(tokenEOF)
		if err != nil {
			return nil, err
		}
		if done {
			return attr, nil
		}
		if err := p.parseDeriveKey(&attr.ToResponseAttr); err != nil {
			return nil, err
		}
	}
}

// parseDeriveKey parses one key of the derive occurrence grammar into attr.
func (p *parser) parseDeriveKey(attr *ToResponseAttr) *Error {
	ident, err := p.next()
	if err != nil {
		return err
	}
	if ident.kind != tokenIdent {
		return grammarErrorf(p.lex.loc(ident.offset), "unexpected %s, expected any of: %s", ident.kind, expectedDeriveKeys)
	}

	switch ident.text {
	case "description":
		attr.Description, err = p.parseDescription()
	case "content_type":
		attr.ContentType, err = p.parseContentTypes()
	case "headers":
		attr.Headers, err = p.parseHeaders()
	case "example":
		var value *AnyValue
		value, err = p.parseExampleValue()
		if err == nil {
			attr.Example = value
			attr.ExampleLoc = p.lex.loc(ident.offset)
		}
	case "examples":
		var list []Example
		list, err = p.parseExamples()
		if err == nil {
			attr.Examples = list
			attr.HasExamples = true
			attr.ExamplesLoc = p.lex.loc(ident.offset)
		}
	default:
		return grammarErrorf(p.lex.loc(ident.offset), "unexpected attribute: %s, expected any of: %s", ident.text, expectedDeriveKeys)
	}
	return err
}

// ParseResponseTuple parses one operation-level response tuple, e.g.
// (status = 200, description = "ok", body = User).
func ParseResponseTuple(occ Occurrence) (*Descriptor, *Error) {
	p := newParser(occ)
	d := &Descriptor{}

	for {
		done, err := p.atEnd(tokenEOF)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}

		ident, err := p.next()
		if err != nil {
			return nil, err
		}
		if ident.kind != tokenIdent {
			return nil, grammarErrorf(p.lex.loc(ident.offset), "unexpected %s, expected any of: %s", ident.kind, expectedTupleKeys)
		}
		loc := p.lex.loc(ident.offset)

		switch ident.text {
		case "status":
			if _, err := p.expect(tokenEq); err != nil {
				return nil, err
			}
			d.Status, err = p.parseStatus()
			if err != nil {
				return nil, err
			}
		case "description":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			value.Description, err = p.parseDescription()
			if err != nil {
				return nil, err
			}
		case "body":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			if _, err := p.expect(tokenEq); err != nil {
				return nil, err
			}
			body, berr := p.parseBodyType()
			if berr != nil {
				return nil, berr
			}
			value.ResponseType = &body
		case "content_type":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			value.ContentType, err = p.parseContentTypes()
			if err != nil {
				return nil, err
			}
		case "headers":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			value.Headers, err = p.parseHeaders()
			if err != nil {
				return nil, err
			}
		case "example":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			value.Example, err = p.parseExampleValue()
			if err != nil {
				return nil, err
			}
		case "examples":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			value.Examples, err = p.parseExamples()
			if err != nil {
				return nil, err
			}
			value.HasExamples = true
		case "content":
			value, verr := d.AsValue(loc)
			if verr != nil {
				return nil, verr
			}
			value.Content, err = p.parseContentList()
			if err != nil {
				return nil, err
			}
		case "response":
			if _, err := p.expect(tokenEq); err != nil {
				return nil, err
			}
			ty, terr := p.parseTypeRef()
			if terr != nil {
				return nil, terr
			}
			if rerr := d.SetRef(loc, ty); rerr != nil {
				return nil, rerr
			}
		default:
			return nil, grammarErrorf(loc, "unexpected attribute: %s, expected any of: %s", ident.text, expectedTupleKeys)
		}

		more, err := p.sep(tokenEOF)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	d.normalize()
	return d, nil
}

// responsesElement is one element of a handler-level #[responses(...)]
// attribute: either a parenthesized response tuple or a path referencing a
// type that derives IntoResponses.
type responsesElement struct {
	tuple    *Descriptor
	typeName string
	loc      Location
}

// parseResponsesList parses the elements of a #[responses(...)] attribute.
func parseResponsesList(occ Occurrence) ([]responsesElement, *Error) {
	p := newParser(occ)
	var elements []responsesElement

	for {
		done, err := p.atEnd(tokenEOF)
		if err != nil {
			return nil, err
		}
		if done {
			return elements, nil
		}

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		loc := p.lex.loc(tok.offset)

		switch tok.kind {
		case tokenLParen:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			inner, ierr := p.lex.scanGroupRemainder()
			if ierr != nil {
				return nil, ierr
			}
			tuple, terr := ParseResponseTuple(Occurrence{Args: inner, Loc: p.lex.loc(tok.offset + 1)})
			if terr != nil {
				return nil, terr
			}
			elements = append(elements, responsesElement{tuple: tuple, loc: loc})
		case tokenIdent:
			name, nerr := p.parsePathTail()
			if nerr != nil {
				return nil, nerr
			}
			elements = append(elements, responsesElement{typeName: name, loc: loc})
		default:
			return nil, grammarErrorf(loc, "unexpected %s, expected a parenthesized response tuple or a type path", tok.kind)
		}

		more, err := p.sep(tokenEOF)
		if err != nil {
			return nil, err
		}
		if !more {
			return elements, nil
		}
	}
}

// parsePathTail consumes an identifier path and returns its final segment.
func (p *parser) parsePathTail() (string, *Error) {
	last, err := p.expect(tokenIdent)
	if err != nil {
		return "", err
	}
	for {
		sep, err := p.peek()
		if err != nil {
			return "", err
		}
		if sep.kind != tokenPathSep {
			return last.text, nil
		}
		if _, err := p.next(); err != nil {
			return "", err
		}
		last, err = p.expect(tokenIdent)
		if err != nil {
			return "", err
		}
	}
}

// parseDescription parses `= "..."`.
func (p *parser) parseDescription() (string, *Error) {
	if _, err := p.expect(tokenEq); err != nil {
		return "", err
	}
	tok, err := p.expect(tokenString)
	if err != nil {
		return "", err
	}
	return tok.value, nil
}

// parseContentTypes parses `= "ct"` or `= ["ct", "ct", ...]`.
func (p *parser) parseContentTypes() ([]string, *Error) {
	if _, err := p.expect(tokenEq); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenString:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return []string{tok.value}, nil
	case tokenLBracket:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		var list []string
		for {
			done, err := p.atEnd(tokenRBracket)
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
			item, err := p.expect(tokenString)
			if err != nil {
				return nil, err
			}
			list = append(list, item.value)
			more, err := p.sep(tokenRBracket)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
		if _, err := p.expect(tokenRBracket); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, grammarErrorf(p.lex.loc(tok.offset), "unexpected %s, expected string literal or `[`", tok.kind)
	}
}

// parseHeaders parses a headers block: a parenthesized list of header
// entries, each of the form ("name"), ("name" = Type), optionally followed
// by `description = "..."`. A leading `=` before the block is accepted.
func (p *parser) parseHeaders() ([]Header, *Error) {
	if err := p.eatOptionalEq(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	var headers []Header
	for {
		done, err := p.atEnd(tokenRParen)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		header, err := p.parseHeaderEntry()
		if err != nil {
			return nil, err
		}
		headers = append(headers, header)
		more, err := p.sep(tokenRParen)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return headers, nil
}

func (p *parser) parseHeaderEntry() (Header, *Error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return Header{}, err
	}
	name, err := p.expect(tokenString)
	if err != nil {
		return Header{}, err
	}
	header := Header{Name: name.value}

	tok, err := p.peek()
	if err != nil {
		return Header{}, err
	}
	if tok.kind == tokenEq {
		if _, err := p.next(); err != nil {
			return Header{}, err
		}
		ty, terr := p.parseTypeRef()
		if terr != nil {
			return Header{}, terr
		}
		header.ValueType = &ty
	}

	tok, err = p.peek()
	if err != nil {
		return Header{}, err
	}
	if tok.kind == tokenComma {
		if _, err := p.next(); err != nil {
			return Header{}, err
		}
	}

	tok, err = p.peek()
	if err != nil {
		return Header{}, err
	}
	if tok.kind == tokenIdent {
		if tok.text != "description" {
			return Header{}, grammarErrorf(p.lex.loc(tok.offset), "unexpected attribute: %s, expected: description", tok.text)
		}
		if _, err := p.next(); err != nil {
			return Header{}, err
		}
		header.Description, err = p.parseDescription()
		if err != nil {
			return Header{}, err
		}
	}

	if _, err := p.expect(tokenRParen); err != nil {
		return Header{}, err
	}
	return header, nil
}

// parseExampleValue parses `= <json-or-string-literal>`.
func (p *parser) parseExampleValue() (*AnyValue, *Error) {
	if _, err := p.expect(tokenEq); err != nil {
		return nil, err
	}
	return p.parseAnyValue()
}

// parseAnyValue parses a string literal or a json!(...) payload.
func (p *parser) parseAnyValue() (*AnyValue, *Error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.kind == tokenString:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &AnyValue{Value: tok.value}, nil
	case tok.kind == tokenIdent && tok.text == "json":
		if _, err := p.next(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenBang); err != nil {
			return nil, err
		}
		raw, rerr := p.lex.scanRawGroup()
		if rerr != nil {
			return nil, rerr
		}
		var value interface{}
		if uerr := json.Unmarshal([]byte(raw), &value); uerr != nil {
			return nil, grammarErrorf(p.lex.loc(tok.offset), "invalid json!(...) payload: %v", uerr)
		}
		return &AnyValue{Value: value}, nil
	default:
		return nil, grammarErrorf(p.lex.loc(tok.offset), "unexpected %s, expected string literal or json!(...)", tok.kind)
	}
}

// parseExamples parses an examples block: a parenthesized list of named
// examples, each ("name") or ("name" = (summary = "...", value = json!(...),
// description = "...", external_value = "...")).
func (p *parser) parseExamples() ([]Example, *Error) {
	if err := p.eatOptionalEq(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	var examples []Example
	for {
		done, err := p.atEnd(tokenRParen)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		example, err := p.parseNamedExample()
		if err != nil {
			return nil, err
		}
		examples = append(examples, example)
		more, err := p.sep(tokenRParen)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return examples, nil
}

func (p *parser) parseNamedExample() (Example, *Error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return Example{}, err
	}
	name, err := p.expect(tokenString)
	if err != nil {
		return Example{}, err
	}
	example := Example{Name: name.value}

	tok, err := p.peek()
	if err != nil {
		return Example{}, err
	}
	if tok.kind == tokenEq {
		if _, err := p.next(); err != nil {
			return Example{}, err
		}
		if _, err := p.expect(tokenLParen); err != nil {
			return Example{}, err
		}
		if err := p.parseExampleAttrs(&example); err != nil {
			return Example{}, err
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return Example{}, err
		}
	}

	if _, err := p.expect(tokenRParen); err != nil {
		return Example{}, err
	}
	return example, nil
}

func (p *parser) parseExampleAttrs(example *Example) *Error {
	for {
		done, err := p.atEnd(tokenRParen)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		ident, err := p.expect(tokenIdent)
		if err != nil {
			return err
		}
		switch ident.text {
		case "summary":
			example.Summary, err = p.parseDescription()
		case "description":
			example.Description, err = p.parseDescription()
		case "external_value":
			example.ExternalValue, err = p.parseDescription()
		case "value":
			example.Value, err = p.parseExampleValue()
		default:
			return grammarErrorf(p.lex.loc(ident.offset), "unexpected attribute: %s, expected any of: summary, description, value, external_value", ident.text)
		}
		if err != nil {
			return err
		}

		more, err := p.sep(tokenRParen)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// parseContentList parses an explicit content block: a parenthesized list of
// ("content-type" = Type [, example = ...] [, examples(...)]) entries.
func (p *parser) parseContentList() ([]ContentVariant, *Error) {
	if err := p.eatOptionalEq(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	var variants []ContentVariant
	for {
		done, err := p.atEnd(tokenRParen)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		variant, err := p.parseContentEntry()
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
		more, err := p.sep(tokenRParen)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return variants, nil
}

func (p *parser) parseContentEntry() (ContentVariant, *Error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return ContentVariant{}, err
	}
	contentType, err := p.expect(tokenString)
	if err != nil {
		return ContentVariant{}, err
	}
	if _, err := p.expect(tokenEq); err != nil {
		return ContentVariant{}, err
	}
	body, berr := p.parseBodyType()
	if berr != nil {
		return ContentVariant{}, berr
	}
	variant := ContentVariant{ContentType: contentType.value, Body: body}

	for {
		tok, err := p.peek()
		if err != nil {
			return ContentVariant{}, err
		}
		if tok.kind == tokenComma {
			if _, err := p.next(); err != nil {
				return ContentVariant{}, err
			}
			continue
		}
		if tok.kind == tokenRParen {
			break
		}

		ident, err := p.expect(tokenIdent)
		if err != nil {
			return ContentVariant{}, err
		}
		switch ident.text {
		case "example":
			variant.Example, err = p.parseExampleValue()
		case "examples":
			variant.Examples, err = p.parseExamples()
		default:
			return ContentVariant{}, grammarErrorf(p.lex.loc(ident.offset), "unexpected attribute: %s, expected one of: example, examples", ident.text)
		}
		if err != nil {
			return ContentVariant{}, err
		}
	}

	if _, err := p.expect(tokenRParen); err != nil {
		return ContentVariant{}, err
	}
	return variant, nil
}

// parseBodyType parses a body reference: ref("..."), inline(Type), or a
// bare type expression.
func (p *parser) parseBodyType() (BodyType, *Error) {
	tok, err := p.peek()
	if err != nil {
		return BodyType{}, err
	}

	if tok.kind == tokenIdent && tok.text == "ref" {
		ident, err := p.next()
		if err != nil {
			return BodyType{}, err
		}
		open, err := p.peek()
		if err != nil {
			return BodyType{}, err
		}
		if open.kind == tokenLParen {
			if _, err := p.next(); err != nil {
				return BodyType{}, err
			}
			name, err := p.expect(tokenString)
			if err != nil {
				return BodyType{}, err
			}
			if _, err := p.expect(tokenRParen); err != nil {
				return BodyType{}, err
			}
			return BodyType{Kind: BodyByName, Name: name.value}, nil
		}
		p.rewind(ident)
	}

	ty, terr := p.parseTypeRef()
	if terr != nil {
		return BodyType{}, terr
	}
	return BodyType{Kind: BodyMediaType, Type: ty}, nil
}

// parseTypeRef parses inline(Type) or a bare type expression.
func (p *parser) parseTypeRef() (TypeRef, *Error) {
	tok, err := p.peek()
	if err != nil {
		return TypeRef{}, err
	}

	if tok.kind == tokenIdent && tok.text == "inline" {
		ident, err := p.next()
		if err != nil {
			return TypeRef{}, err
		}
		open, err := p.peek()
		if err != nil {
			return TypeRef{}, err
		}
		if open.kind == tokenLParen {
			if _, err := p.next(); err != nil {
				return TypeRef{}, err
			}
			text, _, serr := p.lex.scanType()
			if serr != nil {
				return TypeRef{}, serr
			}
			if _, err := p.expect(tokenRParen); err != nil {
				return TypeRef{}, err
			}
			return TypeRef{Type: text, Inline: true}, nil
		}
		p.rewind(ident)
	}

	if p.has {
		p.rewind(p.buf)
	}
	text, _, serr := p.lex.scanType()
	if serr != nil {
		return TypeRef{}, serr
	}
	return TypeRef{Type: text}, nil
}

// eatOptionalEq consumes a `=` when one precedes a parenthesized block.
func (p *parser) eatOptionalEq() *Error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.kind == tokenEq {
		_, err := p.next()
		return err
	}
	return nil
}
