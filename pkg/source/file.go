// Package source turns JavaScript and TypeScript files into import statements
// and renders laid-out statements back into source text.
package source

import (
	"path/filepath"
	"strings"

	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
)

// Language identifies the grammar used to parse a file
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// DefaultExtensions are the file extensions processed when none are configured
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".mts", ".cts", ".tsx"}

// DefaultStylesheetExtensions mark module references that import styles, not code
var DefaultStylesheetExtensions = []string{".css", ".scss", ".sass", ".less", ".styl", ".pcss"}

// LanguageFromPath picks the grammar from a file extension
func LanguageFromPath(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	}
	return "", false
}

// File is the leading run of import statements of one source file
type File struct {
	Statements []*imports.Statement
	Start      int  // byte offset where the run starts
	End        int  // byte offset just past the run
	Quote      byte // quote character of the first module reference
	Semicolons bool // whether the first statement ends with a semicolon
}

// RenderOptions returns options that reproduce the file's quoting and semicolons
func (f *File) RenderOptions() RenderOptions {
	return RenderOptions{Quote: f.Quote, Semicolons: f.Semicolons}
}

// IsStylesheetReference reports whether the module reference ends with one of
// the given extensions, ignoring any query string or fragment
func IsStylesheetReference(ref string, exts []string) bool {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	ext := strings.ToLower(filepath.Ext(ref))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
