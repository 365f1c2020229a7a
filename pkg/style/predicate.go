package style

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
	"github.com/siyuan-infoblox/go-import-sort/pkg/std"
)

// Predicate decides whether an import statement belongs to a bucket
type Predicate func(*imports.Statement) bool

// NamePredicate decides on a single member name
type NamePredicate func(string) bool

func HasNoMember(s *imports.Statement) bool {
	return s.HasNoMember()
}

func HasMember(s *imports.Statement) bool {
	return !s.HasNoMember()
}

func HasDefaultMember(s *imports.Statement) bool {
	return s.HasDefault()
}

func HasNamespaceMember(s *imports.Statement) bool {
	return s.HasNamespace()
}

func HasNamedMembers(s *imports.Statement) bool {
	return s.HasNamed()
}

func HasOnlyDefaultMember(s *imports.Statement) bool {
	return s.HasDefault() && !s.HasNamespace() && !s.HasNamed()
}

func HasOnlyNamespaceMember(s *imports.Statement) bool {
	return s.HasNamespace() && !s.HasDefault() && !s.HasNamed()
}

func HasOnlyNamedMembers(s *imports.Statement) bool {
	return s.HasNamed() && !s.HasDefault() && !s.HasNamespace()
}

// IsRelativeModule matches ".", "..", and references starting with "./" or "../"
func IsRelativeModule(s *imports.Statement) bool {
	ref := s.ModuleReference
	return ref == "." || ref == ".." || strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../")
}

// IsAbsoluteModule is the complement of IsRelativeModule
func IsAbsoluteModule(s *imports.Statement) bool {
	return !IsRelativeModule(s)
}

func IsStylesheet(s *imports.Statement) bool {
	return s.IsStylesheet
}

// IsNodeModule matches Node.js builtins such as "fs" or "node:path"
func IsNodeModule(s *imports.Statement) bool {
	return std.IsStandardPackage(s.ModuleReference)
}

// IsScopedModule matches npm scoped packages ("@scope/name")
func IsScopedModule(s *imports.Statement) bool {
	return strings.HasPrefix(s.ModuleReference, "@")
}

func firstRune(name string) (rune, bool) {
	if name == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r, r != utf8.RuneError
}

func StartsWithUpperCase(name string) bool {
	r, ok := firstRune(name)
	return ok && unicode.IsUpper(r)
}

func StartsWithLowerCase(name string) bool {
	r, ok := firstRune(name)
	return ok && unicode.IsLower(r)
}

// StartsWithAlphanumeric matches names starting with an ASCII letter or digit.
// Every other first rune, including caseless letters such as 漢 and non-ASCII
// cased letters, fails it, so not(member(StartsWithAlphanumeric)) together with
// the two case predicates covers every identifier.
func StartsWithAlphanumeric(name string) bool {
	r, ok := firstRune(name)
	return ok && r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Member lifts a name predicate to the statement's representative member.
// Statements without one never match.
func Member(p NamePredicate) Predicate {
	if p == nil {
		panic("style.Member: nil name predicate")
	}
	return func(s *imports.Statement) bool {
		m, ok := s.Representative()
		if !ok {
			return false
		}
		return p(m.LocalName)
	}
}

// And matches when every predicate matches; with no predicates it matches everything
func And(preds ...Predicate) Predicate {
	mustNotBeNil("And", preds)
	return func(s *imports.Statement) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches; with no predicates it matches nothing
func Or(preds ...Predicate) Predicate {
	mustNotBeNil("Or", preds)
	return func(s *imports.Statement) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	mustNotBeNil("Not", []Predicate{p})
	return func(s *imports.Statement) bool {
		return !p(s)
	}
}

// mustNotBeNil panics when a combinator is built from a nil predicate, so a
// broken rule fails where it is written instead of during Layout
func mustNotBeNil(op string, preds []Predicate) {
	for i, p := range preds {
		if p == nil {
			panic(fmt.Sprintf("style.%s: nil predicate at position %d", op, i))
		}
	}
}
