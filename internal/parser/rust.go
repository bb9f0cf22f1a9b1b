// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser extracts the declarations oxspec cares about from Rust
// source files using tree-sitter.
package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// RustParser parses Rust source into declaration summaries.
type RustParser struct {
	parser *sitter.Parser
}

// NewRustParser creates a new Rust parser.
func NewRustParser() *RustParser {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return &RustParser{
		parser: parser,
	}
}

// ParsedRustFile represents a parsed Rust source file.
type ParsedRustFile struct {
	// Path is the file path
	Path string

	// Content is the original source content
	Content []byte

	// Tree is the tree-sitter parse tree
	Tree *sitter.Tree

	// RootNode is the root node of the AST
	RootNode *sitter.Node

	// Functions contains extracted function definitions
	Functions []RustFunction

	// Structs contains extracted struct definitions
	Structs []RustStruct

	// Enums contains extracted enum definitions
	Enums []RustEnum

	// Uses contains use statements
	Uses []RustUse
}

// RustFunction represents a function definition.
type RustFunction struct {
	// Name is the function name
	Name string

	// Docs is the leading doc-comment text
	Docs string

	// Attributes are the function attributes
	Attributes []RustAttribute

	// ReturnType is the return type if present
	ReturnType string

	// IsAsync indicates if the function is async
	IsAsync bool

	// IsPublic indicates if the function is public
	IsPublic bool

	// Line is the source line number
	Line int

	// Node is the tree-sitter node
	Node *sitter.Node
}

// RustAttribute represents an attribute on a declaration, variant or field.
type RustAttribute struct {
	// Name is the attribute name (e.g., "derive", "response")
	Name string

	// Arguments is the text between the attribute's outer parentheses
	Arguments string

	// Raw is the raw attribute text
	Raw string

	// Line is the source line number
	Line int

	// Node is the tree-sitter node
	Node *sitter.Node
}

// RustStruct represents a struct definition.
type RustStruct struct {
	// Name is the struct name
	Name string

	// Docs is the leading doc-comment text
	Docs string

	// Attributes are the struct attributes
	Attributes []RustAttribute

	// Fields are the struct fields; unnamed fields have an empty Name
	Fields []RustField

	// Named indicates whether the struct has named fields
	Named bool

	// IsPublic indicates if the struct is public
	IsPublic bool

	// Line is the source line number
	Line int

	// Node is the tree-sitter node
	Node *sitter.Node
}

// RustField represents a field of a struct or enum variant.
type RustField struct {
	// Name is the field name; empty for tuple fields
	Name string

	// Type is the type annotation
	Type string

	// Attributes are field attributes (like #[to_schema] or #[content("...")])
	Attributes []RustAttribute

	// IsPublic indicates if the field is public
	IsPublic bool
}

// RustEnum represents an enum definition.
type RustEnum struct {
	// Name is the enum name
	Name string

	// Docs is the leading doc-comment text
	Docs string

	// Attributes are the enum attributes
	Attributes []RustAttribute

	// Variants are the enum variants, in declaration order
	Variants []RustVariant

	// IsPublic indicates if the enum is public
	IsPublic bool

	// Line is the source line number
	Line int

	// Node is the tree-sitter node
	Node *sitter.Node
}

// RustVariant represents one enum variant.
type RustVariant struct {
	// Name is the variant name
	Name string

	// Attributes are the variant attributes
	Attributes []RustAttribute

	// Fields are the variant's payload fields
	Fields []RustField

	// Named indicates whether the payload fields are named
	Named bool

	// Line is the source line number
	Line int
}

// RustUse represents a use statement.
type RustUse struct {
	// Path is the full use path
	Path string

	// Alias is the alias if present
	Alias string

	// Line is the source line number
	Line int
}

// ParseSource parses Rust source code from a string.
func (p *RustParser) ParseSource(filename string, source string) (*ParsedRustFile, error) {
	return p.Parse(filename, []byte(source))
}

// Parse parses Rust source code from bytes.
func (p *RustParser) Parse(filename string, content []byte) (*ParsedRustFile, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Rust: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("failed to get root node")
	}

	pf := &ParsedRustFile{
		Path:      filename,
		Content:   content,
		Tree:      tree,
		RootNode:  rootNode,
		Functions: []RustFunction{},
		Structs:   []RustStruct{},
		Enums:     []RustEnum{},
		Uses:      []RustUse{},
	}

	pf.Uses = p.ExtractUses(rootNode, content)
	pf.Functions = p.ExtractFunctions(rootNode, content)
	pf.Structs = p.ExtractStructs(rootNode, content)
	pf.Enums = p.ExtractEnums(rootNode, content)

	return pf, nil
}

// ParseFile parses a Rust source file from disk.
func (p *RustParser) ParseFile(path string) (*ParsedRustFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return p.Parse(path, content)
}

// ExtractUses extracts all use statements from the AST.
func (p *RustParser) ExtractUses(rootNode *sitter.Node, content []byte) []RustUse {
	var uses []RustUse

	p.walkNodes(rootNode, func(node *sitter.Node) bool {
		if node.Type() == "use_declaration" {
			use := p.parseUseDeclaration(node, content)
			if use != nil {
				uses = append(uses, *use)
			}
		}
		return true
	})

	return uses
}

// parseUseDeclaration parses a use declaration.
func (p *RustParser) parseUseDeclaration(node *sitter.Node, content []byte) *RustUse {
	use := &RustUse{
		Line: int(node.StartPoint().Row) + 1,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "use_wildcard", "use_list", "scoped_identifier", "identifier", "scoped_use_list":
			use.Path = child.Content(content)
		case "use_as_clause":
			// Handle use X as Y
			for j := 0; j < int(child.ChildCount()); j++ {
				subChild := child.Child(j)
				if subChild.Type() == "identifier" || subChild.Type() == "scoped_identifier" {
					if use.Path == "" {
						use.Path = subChild.Content(content)
					} else {
						use.Alias = subChild.Content(content)
					}
				}
			}
		}
	}

	return use
}

// ExtractFunctions extracts all function definitions from the AST.
func (p *RustParser) ExtractFunctions(rootNode *sitter.Node, content []byte) []RustFunction {
	var functions []RustFunction

	p.walkNodes(rootNode, func(node *sitter.Node) bool {
		if node.Type() == "function_item" {
			fn := p.parseFunction(node, content)
			if fn != nil {
				functions = append(functions, *fn)
			}
			return false // Don't recurse into function items
		}
		return true
	})

	return functions
}

// parseFunction parses a function definition.
func (p *RustParser) parseFunction(node *sitter.Node, content []byte) *RustFunction {
	fn := &RustFunction{
		Line:       int(node.StartPoint().Row) + 1,
		Attributes: []RustAttribute{},
		Node:       node,
	}
	fn.Attributes, fn.Docs = p.leadingTrivia(node, content)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "visibility_modifier":
			if strings.HasPrefix(child.Content(content), "pub") {
				fn.IsPublic = true
			}
		case "function_modifiers":
			if strings.Contains(child.Content(content), "async") {
				fn.IsAsync = true
			}
		case "identifier":
			if fn.Name == "" {
				fn.Name = child.Content(content)
			}
		case "type_identifier", "generic_type", "reference_type", "scoped_type_identifier", "abstract_type":
			fn.ReturnType = child.Content(content)
		}
	}

	if fn.Name == "" {
		return nil
	}

	return fn
}

// leadingTrivia collects the attributes and doc comments preceding a
// declaration, walking backwards over its siblings.
func (p *RustParser) leadingTrivia(node *sitter.Node, content []byte) ([]RustAttribute, string) {
	var attrs []RustAttribute
	var docLines []string

	current := node.PrevSibling()
	for current != nil {
		switch current.Type() {
		case "attribute_item":
			attr := p.parseAttribute(current, content)
			if attr != nil {
				attrs = append([]RustAttribute{*attr}, attrs...)
			}
		case "line_comment":
			text := current.Content(content)
			if !strings.HasPrefix(text, "///") {
				return attrs, joinDocLines(docLines)
			}
			line := strings.TrimPrefix(strings.TrimPrefix(text, "///"), " ")
			docLines = append([]string{strings.TrimRight(line, "\r\n")}, docLines...)
		default:
			return attrs, joinDocLines(docLines)
		}
		current = current.PrevSibling()
	}

	return attrs, joinDocLines(docLines)
}

func joinDocLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// parseAttribute parses an attribute node.
func (p *RustParser) parseAttribute(node *sitter.Node, content []byte) *RustAttribute {
	attr := &RustAttribute{
		Line: int(node.StartPoint().Row) + 1,
		Raw:  node.Content(content),
		Node: node,
	}

	p.walkNodes(node, func(n *sitter.Node) bool {
		if n.Type() == "attribute" {
			p.parseAttributeInner(n, content, attr)
			return false
		}
		return true
	})

	return attr
}

// parseAttributeInner parses the inner content of an attribute.
func (p *RustParser) parseAttributeInner(node *sitter.Node, content []byte, attr *RustAttribute) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "scoped_identifier":
			if attr.Name == "" {
				attr.Name = child.Content(content)
			}
		case "token_tree":
			// Arguments in parentheses
			args := child.Content(content)
			args = strings.TrimPrefix(args, "(")
			args = strings.TrimSuffix(args, ")")
			attr.Arguments = args
		}
	}
}

// ExtractStructs extracts all struct definitions from the AST.
func (p *RustParser) ExtractStructs(rootNode *sitter.Node, content []byte) []RustStruct {
	var structs []RustStruct

	p.walkNodes(rootNode, func(node *sitter.Node) bool {
		if node.Type() == "struct_item" {
			s := p.parseStruct(node, content)
			if s != nil {
				structs = append(structs, *s)
			}
			return false
		}
		return true
	})

	return structs
}

// parseStruct parses a struct definition.
func (p *RustParser) parseStruct(node *sitter.Node, content []byte) *RustStruct {
	s := &RustStruct{
		Line:   int(node.StartPoint().Row) + 1,
		Fields: []RustField{},
		Node:   node,
	}
	s.Attributes, s.Docs = p.leadingTrivia(node, content)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "visibility_modifier":
			if strings.HasPrefix(child.Content(content), "pub") {
				s.IsPublic = true
			}
		case "type_identifier":
			if s.Name == "" {
				s.Name = child.Content(content)
			}
		case "field_declaration_list":
			s.Named = true
			s.Fields = p.parseNamedFields(child, content)
		case "ordered_field_declaration_list":
			s.Fields = p.parseOrderedFields(child, content)
		}
	}

	if s.Name == "" {
		return nil
	}

	return s
}

// parseNamedFields parses a braced field list.
func (p *RustParser) parseNamedFields(node *sitter.Node, content []byte) []RustField {
	var fields []RustField

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "field_declaration" {
			field := p.parseField(child, content)
			if field != nil {
				fields = append(fields, *field)
			}
		}
	}

	return fields
}

// parseOrderedFields parses a parenthesized tuple field list. Attributes
// appear as siblings of the type nodes inside the list.
func (p *RustParser) parseOrderedFields(node *sitter.Node, content []byte) []RustField {
	var fields []RustField
	var pending []RustAttribute

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "attribute_item":
			attr := p.parseAttribute(child, content)
			if attr != nil {
				pending = append(pending, *attr)
			}
		case "visibility_modifier", "(", ")", ",", "line_comment", "block_comment":
			// not a type
		default:
			fields = append(fields, RustField{
				Type:       child.Content(content),
				Attributes: pending,
			})
			pending = nil
		}
	}

	return fields
}

// parseField parses a single named field.
func (p *RustParser) parseField(node *sitter.Node, content []byte) *RustField {
	field := &RustField{}
	field.Attributes, _ = p.leadingTrivia(node, content)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "visibility_modifier":
			if strings.HasPrefix(child.Content(content), "pub") {
				field.IsPublic = true
			}
		case "field_identifier":
			field.Name = child.Content(content)
		default:
			// Type nodes
			if strings.Contains(child.Type(), "type") || child.Type() == "generic_type" {
				field.Type = child.Content(content)
			}
		}
	}

	if field.Name == "" {
		return nil
	}

	return field
}

// ExtractEnums extracts all enum definitions from the AST.
func (p *RustParser) ExtractEnums(rootNode *sitter.Node, content []byte) []RustEnum {
	var enums []RustEnum

	p.walkNodes(rootNode, func(node *sitter.Node) bool {
		if node.Type() == "enum_item" {
			e := p.parseEnum(node, content)
			if e != nil {
				enums = append(enums, *e)
			}
			return false
		}
		return true
	})

	return enums
}

// parseEnum parses an enum definition.
func (p *RustParser) parseEnum(node *sitter.Node, content []byte) *RustEnum {
	e := &RustEnum{
		Line:     int(node.StartPoint().Row) + 1,
		Variants: []RustVariant{},
		Node:     node,
	}
	e.Attributes, e.Docs = p.leadingTrivia(node, content)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "visibility_modifier":
			if strings.HasPrefix(child.Content(content), "pub") {
				e.IsPublic = true
			}
		case "type_identifier":
			if e.Name == "" {
				e.Name = child.Content(content)
			}
		case "enum_variant_list":
			e.Variants = p.parseVariants(child, content)
		}
	}

	if e.Name == "" {
		return nil
	}

	return e
}

// parseVariants parses the variant list of an enum.
func (p *RustParser) parseVariants(node *sitter.Node, content []byte) []RustVariant {
	var variants []RustVariant

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "enum_variant" {
			variants = append(variants, p.parseVariant(child, content))
		}
	}

	return variants
}

// parseVariant parses a single enum variant.
func (p *RustParser) parseVariant(node *sitter.Node, content []byte) RustVariant {
	variant := RustVariant{
		Line: int(node.StartPoint().Row) + 1,
	}
	variant.Attributes, _ = p.leadingTrivia(node, content)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if variant.Name == "" {
				variant.Name = child.Content(content)
			}
		case "field_declaration_list":
			variant.Named = true
			variant.Fields = p.parseNamedFields(child, content)
		case "ordered_field_declaration_list":
			variant.Fields = p.parseOrderedFields(child, content)
		}
	}

	return variant
}

// walkNodes walks all nodes in the tree, calling fn for each node.
// If fn returns false, it stops recursing into that node's children.
func (p *RustParser) walkNodes(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !fn(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walkNodes(node.Child(i), fn)
	}
}

// Close cleans up parser resources.
func (p *RustParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Close cleans up the parsed file resources.
func (pf *ParsedRustFile) Close() {
	if pf.Tree != nil {
		pf.Tree.Close()
	}
}

// HasUse checks if the file has a specific use statement.
func (pf *ParsedRustFile) HasUse(path string) bool {
	for _, use := range pf.Uses {
		if strings.Contains(use.Path, path) {
			return true
		}
	}
	return false
}

// HasDerive reports whether a derive attribute lists the given trait.
func HasDerive(attrs []RustAttribute, trait string) bool {
	for _, attr := range attrs {
		if attr.Name != "derive" {
			continue
		}
		for _, arg := range strings.Split(attr.Arguments, ",") {
			if strings.TrimSpace(arg) == trait {
				return true
			}
		}
	}
	return false
}

// AttributesNamed returns every attribute with the given name, in order.
func AttributesNamed(attrs []RustAttribute, name string) []RustAttribute {
	var matched []RustAttribute
	for _, attr := range attrs {
		if attr.Name == name {
			matched = append(matched, attr)
		}
	}
	return matched
}
