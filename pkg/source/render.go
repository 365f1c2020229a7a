package source

import (
	"strings"

	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
)

type RenderOptions struct {
	Quote      byte // '"' or '\''; zero means '"'
	Semicolons bool
}

func (o RenderOptions) quote() byte {
	if o.Quote == '\'' {
		return '\''
	}
	return '"'
}

// quoteReference wraps a module reference in quotes. The preferred quote gives
// way to the other one when the reference holds an unescaped preferred quote;
// when it holds both, the preferred quote is escaped.
func quoteReference(ref string, preferred byte) string {
	q := preferred
	if hasUnescaped(ref, q) {
		other := byte('"')
		if q == '"' {
			other = '\''
		}
		if !hasUnescaped(ref, other) {
			q = other
		} else {
			ref = escapeQuote(ref, q)
		}
	}
	return string(q) + ref + string(q)
}

func hasUnescaped(ref string, q byte) bool {
	for i := 0; i < len(ref); i++ {
		switch ref[i] {
		case '\\':
			i++
		case q:
			return true
		}
	}
	return false
}

func escapeQuote(ref string, q byte) string {
	var b strings.Builder
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c == '\\' && i+1 < len(ref):
			b.WriteByte(c)
			i++
			b.WriteByte(ref[i])
			continue
		case c == q:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// RenderStatement prints one import declaration. Default, namespace and named
// members always appear in that order.
func RenderStatement(s *imports.Statement, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString("import ")
	if s.TypeOnly {
		b.WriteString("type ")
	}

	var clause []string
	if s.DefaultMember != nil {
		clause = append(clause, s.DefaultMember.LocalName)
	}
	if s.NamespaceMember != nil {
		clause = append(clause, "* as "+s.NamespaceMember.LocalName)
	}
	if len(s.NamedMembers) > 0 {
		names := make([]string, 0, len(s.NamedMembers))
		for _, m := range s.NamedMembers {
			names = append(names, renderMember(m))
		}
		clause = append(clause, "{"+strings.Join(names, ", ")+"}")
	}
	if len(clause) > 0 {
		b.WriteString(strings.Join(clause, ", "))
		b.WriteString(" from ")
	}

	b.WriteString(quoteReference(s.ModuleReference, opts.quote()))
	if opts.Semicolons {
		b.WriteString(";")
	}
	return b.String()
}

func renderMember(m imports.Member) string {
	var prefix string
	if m.TypeOnly {
		prefix = "type "
	}
	if m.ExportedName == "" || m.ExportedName == m.LocalName {
		return prefix + m.LocalName
	}
	return prefix + m.ExportedName + " as " + m.LocalName
}

// Render prints a layout one statement per line; blank segments become empty lines
func Render(segments []imports.Segment, opts RenderOptions) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.IsBlank() {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, RenderStatement(seg.Statement, opts))
	}
	return strings.Join(lines, "\n")
}

// Splice replaces the import run of file inside src with rendered. An empty
// rendering also removes the line break that ended the run.
func Splice(src []byte, file *File, rendered string) []byte {
	if file == nil || len(file.Statements) == 0 {
		return src
	}
	end := file.End
	if rendered == "" && end < len(src) && src[end] == '\n' {
		end++
	}
	out := make([]byte, 0, len(src)-(end-file.Start)+len(rendered))
	out = append(out, src[:file.Start]...)
	out = append(out, rendered...)
	out = append(out, src[end:]...)
	return out
}
