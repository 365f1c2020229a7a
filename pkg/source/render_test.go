package source

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
)

func TestRenderStatement(t *testing.T) {
	tests := []struct {
		name string
		stmt imports.Statement
		opts RenderOptions
		want string
	}{
		{
			name: "side effect",
			stmt: imports.Statement{ModuleReference: "foo"},
			opts: RenderOptions{Semicolons: true},
			want: `import "foo";`,
		},
		{
			name: "default with single quotes",
			stmt: imports.Statement{ModuleReference: "bar", DefaultMember: &imports.Member{LocalName: "Bar"}},
			opts: RenderOptions{Quote: '\''},
			want: `import Bar from 'bar'`,
		},
		{
			name: "default and namespace",
			stmt: imports.Statement{
				ModuleReference: "./baz",
				DefaultMember:   &imports.Member{LocalName: "foo"},
				NamespaceMember: &imports.Member{LocalName: "bar"},
			},
			opts: RenderOptions{Quote: '"', Semicolons: true},
			want: `import foo, * as bar from "./baz";`,
		},
		{
			name: "default and named with alias",
			stmt: imports.Statement{
				ModuleReference: "react",
				DefaultMember:   &imports.Member{LocalName: "React"},
				NamedMembers: []imports.Member{
					{LocalName: "useState"},
					{LocalName: "effect", ExportedName: "useEffect"},
				},
			},
			opts: RenderOptions{Semicolons: true},
			want: `import React, {useState, useEffect as effect} from "react";`,
		},
		{
			name: "type only",
			stmt: imports.Statement{
				ModuleReference: "./types",
				TypeOnly:        true,
				NamedMembers:    []imports.Member{{LocalName: "A"}, {LocalName: "B", TypeOnly: true}},
			},
			want: `import type {A, type B} from "./types"`,
		},
		{
			name: "exported name equal to local name",
			stmt: imports.Statement{ModuleReference: "x", NamedMembers: []imports.Member{{LocalName: "a", ExportedName: "a"}}},
			want: `import {a} from "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.want, RenderStatement(&tt.stmt, tt.opts))
		})
	}
}

func TestRenderStatement_QuotesInReference(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		quote byte
		want  string
	}{
		{"plain", "a", '\'', `import 'a'`},
		{"single quote in reference", "it's", '\'', `import "it's"`},
		{"double quote in reference", `say"hi`, '"', `import 'say"hi'`},
		{"escaped quote stays", `it\'s`, '\'', `import 'it\'s'`},
		{"both quotes", `it's "x"`, '\'', `import 'it\'s "x"'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			stmt := &imports.Statement{ModuleReference: tt.ref}
			req.Equal(tt.want, RenderStatement(stmt, RenderOptions{Quote: tt.quote}))
		})
	}
}

func TestRender(t *testing.T) {
	req := require.New(t)
	segments := []imports.Segment{
		imports.StatementSegment(&imports.Statement{ModuleReference: "foo"}),
		imports.BlankSegment(),
		imports.StatementSegment(&imports.Statement{ModuleReference: "bar", DefaultMember: &imports.Member{LocalName: "Bar"}}),
	}
	got := Render(segments, RenderOptions{Semicolons: true})
	req.Equal("import \"foo\";\n\nimport Bar from \"bar\";", got)
	req.Empty(Render(nil, RenderOptions{}))
}

func TestSplice(t *testing.T) {
	req := require.New(t)
	src := []byte("// header\nimport b from \"b\";\nimport a from \"a\";\n\nfoo();\n")
	file := &File{
		Statements: []*imports.Statement{{ModuleReference: "b"}, {ModuleReference: "a"}},
		Start:      10,
		End:        47,
	}
	out := Splice(src, file, "import a from \"a\";\nimport b from \"b\";")
	req.Equal("// header\nimport a from \"a\";\nimport b from \"b\";\n\nfoo();\n", string(out))

	dropped := Splice(src, file, "")
	req.Equal("// header\n\nfoo();\n", string(dropped))

	req.Equal(src, Splice(src, &File{}, "ignored"))
	req.Equal(src, Splice(src, nil, "ignored"))
}

func TestLanguageFromPath(t *testing.T) {
	tests := []struct {
		path string
		lang Language
		ok   bool
	}{
		{"a.js", LangJavaScript, true},
		{"dir/a.JSX", LangJavaScript, true},
		{"a.mjs", LangJavaScript, true},
		{"a.ts", LangTypeScript, true},
		{"a.cts", LangTypeScript, true},
		{"a.tsx", LangTSX, true},
		{"a.go", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := require.New(t)
			lang, ok := LanguageFromPath(tt.path)
			req.Equal(tt.ok, ok)
			req.Equal(tt.lang, lang)
		})
	}
}

func TestIsStylesheetReference(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"./a.scss", true},
		{"./a.CSS", true},
		{"bootstrap/dist/css/bootstrap.min.css", true},
		{"./a.less?inline", true},
		{"./a.css#hash", true},
		{"./a.js", false},
		{"react", false},
		{"./styles", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			require.Equal(t, tt.want, IsStylesheetReference(tt.ref, DefaultStylesheetExtensions))
		})
	}
}
