//go:build !cgo

package source

import (
	"context"

	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
)

// Parser is unavailable without cgo: tree-sitter grammars are C code.
type Parser struct{}

func NewParser(stylesheetExts []string) *Parser {
	return &Parser{}
}

func (p *Parser) Parse(ctx context.Context, src []byte, lang Language) (*File, error) {
	return nil, errors.ErrParserUnavailable
}
