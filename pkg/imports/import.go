package imports

import "strings"

// Member represents one binding introduced by an import statement
type Member struct {
	LocalName    string // identifier bound in the importing scope
	ExportedName string // original name before renaming, empty if not renamed
	TypeOnly     bool   // TypeScript inline `type` modifier
}

// Exported returns the name the member has in the imported module
func (m Member) Exported() string {
	if m.ExportedName == "" {
		return m.LocalName
	}
	return m.ExportedName
}

// Span is source position metadata for the emitter, opaque to the engine
type Span struct {
	Start int // byte offset of the statement start
	End   int // byte offset just past the statement end
}

// Statement represents a single import declaration
type Statement struct {
	ModuleReference string
	DefaultMember   *Member
	NamespaceMember *Member
	NamedMembers    []Member
	IsStylesheet    bool
	TypeOnly        bool // `import type ...`
	Span            Span
}

func (s *Statement) HasNoMember() bool {
	return s.DefaultMember == nil && s.NamespaceMember == nil && len(s.NamedMembers) == 0
}

func (s *Statement) HasDefault() bool {
	return s.DefaultMember != nil
}

func (s *Statement) HasNamespace() bool {
	return s.NamespaceMember != nil
}

func (s *Statement) HasNamed() bool {
	return len(s.NamedMembers) > 0
}

// Representative returns the member used for name-based predicates and sort keys:
// the default member, else the namespace member, else the named member whose local
// name is least in code-point order. The last choice does not depend on the order
// the named members were written in.
func (s *Statement) Representative() (Member, bool) {
	switch {
	case s.DefaultMember != nil:
		return *s.DefaultMember, true
	case s.NamespaceMember != nil:
		return *s.NamespaceMember, true
	case len(s.NamedMembers) > 0:
		least := s.NamedMembers[0]
		for _, m := range s.NamedMembers[1:] {
			if strings.Compare(m.LocalName, least.LocalName) < 0 {
				least = m
			}
		}
		return least, true
	}
	return Member{}, false
}

// Clone returns a deep copy of the statement
func (s *Statement) Clone() *Statement {
	c := *s
	if s.DefaultMember != nil {
		m := *s.DefaultMember
		c.DefaultMember = &m
	}
	if s.NamespaceMember != nil {
		m := *s.NamespaceMember
		c.NamespaceMember = &m
	}
	if s.NamedMembers != nil {
		c.NamedMembers = make([]Member, len(s.NamedMembers))
		copy(c.NamedMembers, s.NamedMembers)
	}
	return &c
}

// SegmentKind distinguishes the entries of a layout
type SegmentKind int

const (
	SegmentStatement SegmentKind = iota
	SegmentBlank
)

// Segment is one entry of the engine output: a statement or a blank line
type Segment struct {
	Kind      SegmentKind
	Statement *Statement
}

func StatementSegment(s *Statement) Segment {
	return Segment{Kind: SegmentStatement, Statement: s}
}

func BlankSegment() Segment {
	return Segment{Kind: SegmentBlank}
}

// IsBlank reports whether the segment is a blank-line marker
func (s Segment) IsBlank() bool {
	return s.Kind == SegmentBlank
}
