package style

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
)

// StringComparator returns a negative number, zero or a positive number
// when a sorts before, equal to or after b
type StringComparator func(a, b string) int

// StatementComparator orders import statements within a bucket
type StatementComparator func(a, b *imports.Statement) int

// MemberComparator orders the named members of a statement
type MemberComparator func(a, b imports.Member) int

// Unicode orders strings by code point; a proper prefix sorts first.
// Byte order of valid UTF-8 is code point order.
func Unicode(a, b string) int {
	return strings.Compare(a, b)
}

// Naturally orders strings by English collation, falling back to Unicode
// order on ties so the result stays a total order
func Naturally() StringComparator {
	var mu sync.Mutex
	c := collate.New(language.English)
	return func(a, b string) int {
		mu.Lock()
		r := c.CompareString(a, b)
		mu.Unlock()
		if r != 0 {
			return r
		}
		return Unicode(a, b)
	}
}

// MemberOrder compares statements by the local name of their representative
// member. Statements without one use the empty string as key.
func MemberOrder(c StringComparator) StatementComparator {
	return func(a, b *imports.Statement) int {
		return c(representativeName(a), representativeName(b))
	}
}

// ModuleName compares statements by module reference
func ModuleName(c StringComparator) StatementComparator {
	return func(a, b *imports.Statement) int {
		return c(a.ModuleReference, b.ModuleReference)
	}
}

// Name compares members by local name
func Name(c StringComparator) MemberComparator {
	return func(a, b imports.Member) int {
		return c(a.LocalName, b.LocalName)
	}
}

func representativeName(s *imports.Statement) string {
	m, ok := s.Representative()
	if !ok {
		return ""
	}
	return m.LocalName
}
