//go:build cgo

package source

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
)

// Parser extracts import statements with tree-sitter. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	parser         *sitter.Parser
	stylesheetExts []string
}

// NewParser creates a parser; nil stylesheetExts selects DefaultStylesheetExtensions
func NewParser(stylesheetExts []string) *Parser {
	if stylesheetExts == nil {
		stylesheetExts = DefaultStylesheetExtensions
	}
	return &Parser{
		parser:         sitter.NewParser(),
		stylesheetExts: stylesheetExts,
	}
}

func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: language %q", errors.ErrUnsupportedFile, lang)
	}
}

// Parse returns the first run of consecutive top-level import statements.
// A comment, any other statement, or an import form that cannot be rendered
// back faithfully (require clauses, attributes, inner comments) ends the run.
func (p *Parser) Parse(ctx context.Context, src []byte, lang Language) (*File, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrParse, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.ErrParse
	}

	file := &File{}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() != "import_statement" {
			if len(file.Statements) > 0 {
				break
			}
			continue
		}

		stmt, semicolon, ok := p.statement(node, src)
		if !ok {
			break
		}
		if len(file.Statements) == 0 {
			file.Start = stmt.Span.Start
			file.Semicolons = semicolon
			file.Quote = src[int(node.ChildByFieldName("source").StartByte())]
		}
		file.End = stmt.Span.End
		file.Statements = append(file.Statements, stmt)
	}
	return file, nil
}

func (p *Parser) statement(node *sitter.Node, src []byte) (*imports.Statement, bool, bool) {
	if len(findNodes(node, "comment")) > 0 {
		return nil, false, false
	}

	stmt := &imports.Statement{
		Span: imports.Span{Start: int(node.StartByte()), End: int(node.EndByte())},
	}
	semicolon := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type":
			stmt.TypeOnly = true
		case "import_clause":
			clause(child, src, stmt)
		case "string":
			stmt.ModuleReference = unquote(child.Content(src))
		case ";":
			semicolon = true
		case "import_require_clause", "import_attribute", "typeof":
			return nil, false, false
		}
	}
	if node.ChildByFieldName("source") == nil {
		return nil, false, false
	}
	stmt.IsStylesheet = IsStylesheetReference(stmt.ModuleReference, p.stylesheetExts)
	return stmt, semicolon, true
}

func clause(node *sitter.Node, src []byte, stmt *imports.Statement) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			stmt.DefaultMember = &imports.Member{LocalName: child.Content(src)}
		case "namespace_import":
			if ids := findNodes(child, "identifier"); len(ids) > 0 {
				stmt.NamespaceMember = &imports.Member{LocalName: ids[0].Content(src)}
			}
		case "named_imports":
			for _, spec := range findNodes(child, "import_specifier") {
				stmt.NamedMembers = append(stmt.NamedMembers, specifier(spec, src))
			}
		}
	}
}

func specifier(node *sitter.Node, src []byte) imports.Member {
	var m imports.Member
	name := node.ChildByFieldName("name")
	alias := node.ChildByFieldName("alias")
	if alias != nil {
		m.LocalName = alias.Content(src)
		m.ExportedName = name.Content(src)
	} else if name != nil {
		m.LocalName = name.Content(src)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "type" {
			m.TypeOnly = true
		}
	}
	return m
}

func unquote(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}

// findNodes collects every descendant of root (root included) with the given type
func findNodes(root *sitter.Node, nodeType string) []*sitter.Node {
	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Type() == nodeType {
			result = append(result, node)
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return result
}
