//go:build cgo

package formatter

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/siyuan-infoblox/go-import-sort/pkg/engine"
	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
	"github.com/siyuan-infoblox/go-import-sort/pkg/style"
)

const unsortedSource = `import {useState} from 'react'
import './setup'
import axios from 'axios'

const x = 1
`

const sortedSource = `import './setup'

import axios from 'axios'
import {useState} from 'react'

const x = 1
`

func TestFormatter_FormatSource(t *testing.T) {
	tests := []struct {
		name        string
		config      FormatterConfig
		path        string
		src         string
		want        string
		wantChanged bool
	}{
		{
			name:        "styles-last",
			path:        "app.js",
			src:         unsortedSource,
			want:        sortedSource,
			wantChanged: true,
		},
		{
			name: "already sorted",
			path: "app.js",
			src:  sortedSource,
			want: sortedSource,
		},
		{
			name: "no imports",
			path: "app.ts",
			src:  "export const a = 1;\n",
			want: "export const a = 1;\n",
		},
		{
			name: "module style keeps semicolons and double quotes",
			config: FormatterConfig{
				Definition: style.ModuleDefinition(),
			},
			path:        "index.ts",
			src:         "import {b, a} from \"./local\";\nimport fs from \"node:fs\";\nimport \"zone.js\";\n\nrun();\n",
			want:        "import \"zone.js\";\n\nimport fs from \"node:fs\";\n\nimport {a, b} from \"./local\";\n\nrun();\n",
			wantChanged: true,
		},
		{
			name:        "quote override",
			config:      FormatterConfig{Quote: '"'},
			path:        "app.jsx",
			src:         sortedSource,
			want:        "import \"./setup\"\n\nimport axios from \"axios\"\nimport {useState} from \"react\"\n\nconst x = 1\n",
			wantChanged: true,
		},
		{
			name: "reference holding the file quote keeps its own quotes",
			path: "app.js",
			src:  "import a from 'a'\nimport x from \"it's\"\n",
			want: "import a from 'a'\nimport x from \"it's\"\n",
		},
		{
			name:        "header comment is kept",
			path:        "app.tsx",
			src:         "// Copyright\nimport b from 'b'\nimport a from 'a'\n",
			want:        "// Copyright\nimport a from 'a'\nimport b from 'b'\n",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			g, _ := newTestFormatter(t, tt.config)

			out, changed, err := g.FormatSource(context.Background(), tt.path, []byte(tt.src))
			req.NoError(err)
			req.Equal(tt.want, string(out))
			req.Equal(tt.wantChanged, changed)

			// a second pass changes nothing
			again, changed, err := g.FormatSource(context.Background(), tt.path, out)
			req.NoError(err)
			req.False(changed)
			req.Equal(string(out), string(again))
		})
	}
}

func TestFormatter_FormatSource_Errors(t *testing.T) {
	req := require.New(t)

	g, _ := newTestFormatter(t, FormatterConfig{})
	_, _, err := g.FormatSource(context.Background(), "broken.js", []byte("import { from 'x';\n"))
	req.ErrorIs(err, errors.ErrParse)
	req.Contains(err.Error(), errors.ErrMsgFailedToParseFile)

	strict, _ := newTestFormatter(t, FormatterConfig{
		Definition: style.Definition{style.BucketRule{Match: style.IsRelativeModule}},
		Unmatched:  engine.UnmatchedError,
	})
	_, _, err = strict.FormatSource(context.Background(), "app.js", []byte(unsortedSource))
	req.ErrorIs(err, errors.ErrUnmatched)
	req.Contains(err.Error(), errors.ErrMsgFailedToLayout)
}

func TestFormatter_FormatSource_DropUnmatched(t *testing.T) {
	req := require.New(t)
	g, _ := newTestFormatter(t, FormatterConfig{
		Definition: style.Definition{style.BucketRule{Match: style.IsRelativeModule}},
		Unmatched:  engine.UnmatchedDrop,
	})
	out, changed, err := g.FormatSource(context.Background(), "app.js", []byte(unsortedSource))
	req.NoError(err)
	req.True(changed)
	req.Equal("import './setup'\n\nconst x = 1\n", string(out))
}

func TestFormatter_ProcessFile(t *testing.T) {
	tests := []struct {
		name     string
		config   FormatterConfig
		wantOut  string
		wantFile string
		wantErr  error
	}{
		{
			name:     "stdout",
			wantOut:  sortedSource,
			wantFile: unsortedSource,
		},
		{
			name:     "in place",
			config:   FormatterConfig{InPlace: true},
			wantFile: sortedSource,
		},
		{
			name:     "check",
			config:   FormatterConfig{Check: true},
			wantOut:  "Would reformat: /src/app.js\n",
			wantFile: unsortedSource,
			wantErr:  errors.ErrNeedsFormatting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			fs := afero.NewMemMapFs()
			req.NoError(afero.WriteFile(fs, "/src/app.js", []byte(unsortedSource), 0640))

			tt.config.Fs = fs
			g, out := newTestFormatter(t, tt.config)
			err := g.ProcessPath(context.Background(), "/src/app.js")
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
			} else {
				req.NoError(err)
			}
			req.Equal(tt.wantOut, out.String())

			content, err := afero.ReadFile(fs, "/src/app.js")
			req.NoError(err)
			req.Equal(tt.wantFile, string(content))

			info, err := fs.Stat("/src/app.js")
			req.NoError(err)
			req.Equal("-rw-r-----", info.Mode().Perm().String())
		})
	}
}

func writeProject(t *testing.T) afero.Fs {
	t.Helper()
	req := require.New(t)
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/proj/src/app.js":                unsortedSource,
		"/proj/src/sorted.ts":             sortedSource,
		"/proj/src/components/Button.tsx": "import b from 'b';\nimport a from 'a';\n",
		"/proj/node_modules/dep/index.js": unsortedSource,
		"/proj/.cache/tmp.js":             unsortedSource,
		"/proj/README.md":                 "# proj\n",
	}
	for path, content := range files {
		req.NoError(afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func TestFormatter_ProcessPath_InPlace(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	req := require.New(t)
	fs := writeProject(t)

	g, out := newTestFormatter(t, FormatterConfig{Fs: fs, InPlace: true, Workers: 2})
	req.NoError(g.ProcessPath(context.Background(), "/proj"))

	got, err := afero.ReadFile(fs, "/proj/src/app.js")
	req.NoError(err)
	req.Equal(sortedSource, string(got))

	got, err = afero.ReadFile(fs, "/proj/src/components/Button.tsx")
	req.NoError(err)
	req.Equal("import a from 'a';\nimport b from 'b';\n", string(got))

	for _, skipped := range []string{"/proj/node_modules/dep/index.js", "/proj/.cache/tmp.js"} {
		got, err = afero.ReadFile(fs, skipped)
		req.NoError(err)
		req.Equal(unsortedSource, string(got), skipped)
	}

	req.Contains(out.String(), "Found 3 source files in directory: /proj")
	req.Contains(out.String(), "Processed: /proj/src/app.js")
	req.NotContains(out.String(), "Processed: /proj/src/sorted.ts")
	req.Contains(out.String(), "Processed 3 files successfully")
}

func TestFormatter_ProcessPath_Check(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	req := require.New(t)
	fs := writeProject(t)

	g, out := newTestFormatter(t, FormatterConfig{Fs: fs, Check: true})
	err := g.ProcessPath(context.Background(), "/proj")
	req.ErrorIs(err, errors.ErrNeedsFormatting)
	req.Contains(err.Error(), "2 files need formatting")

	req.Contains(out.String(), "Would reformat: /proj/src/app.js")
	req.Contains(out.String(), "Would reformat: /proj/src/components/Button.tsx")
	req.NotContains(out.String(), "sorted.ts")
	req.NotContains(out.String(), "Warning")

	got, err := afero.ReadFile(fs, "/proj/src/app.js")
	req.NoError(err)
	req.Equal(unsortedSource, string(got))
}

func TestFormatter_ProcessFiles_Errors(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	req := require.New(t)
	fs := writeProject(t)
	req.NoError(afero.WriteFile(fs, "/proj/src/broken.js", []byte("import { from 'x';\n"), 0644))

	g, out := newTestFormatter(t, FormatterConfig{Fs: fs, InPlace: true, Workers: 1})
	err := g.ProcessFiles(context.Background(), []string{
		"/proj/src/app.js",
		"/proj/src/broken.js",
		"/proj/src/missing.js",
	})
	req.Error(err)
	req.False(stderrors.Is(err, errors.ErrNeedsFormatting))
	req.Equal("2 files failed to process", err.Error())
	req.Contains(out.String(), "Error processing /proj/src/broken.js")
	req.Contains(out.String(), "Error processing /proj/src/missing.js")
	req.Contains(out.String(), "Processed 1 files successfully, 2 files had errors")

	// the good file is still rewritten
	got, err := afero.ReadFile(fs, "/proj/src/app.js")
	req.NoError(err)
	req.Equal(sortedSource, string(got))
}

func TestFormatter_ProcessFiles_Canceled(t *testing.T) {
	req := require.New(t)
	fs := writeProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, _ := newTestFormatter(t, FormatterConfig{Fs: fs, InPlace: true})
	err := g.ProcessFiles(ctx, []string{"/proj/src/app.js"})
	req.Error(err)

	got, err := afero.ReadFile(fs, "/proj/src/app.js")
	req.NoError(err)
	req.Equal(unsortedSource, string(got))
}
