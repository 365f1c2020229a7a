package style

const (
	StylesLast = "styles-last"
	ModuleSort = "module"
)

// StylesLastDefinition groups side-effect imports first, then bindings from
// packages, then bindings from relative paths, then stylesheets. Binding groups
// are split by member shape and by the case of the representative member name,
// with "_"-style names ahead of cased ones.
func StylesLastDefinition() Definition {
	byName := sorting{MemberOrder(Unicode), nil}
	byNameAndMembers := sorting{MemberOrder(Unicode), Name(Unicode)}

	def := Definition{
		// import "foo"
		BucketRule{Match: And(HasNoMember, IsAbsoluteModule)},
		Separator{},

		// import "./foo"
		BucketRule{Match: And(HasNoMember, IsRelativeModule)},
		Separator{},
	}
	def = append(def, bindingRules(IsAbsoluteModule, byName, byNameAndMembers)...)
	def = append(def, Separator{})
	def = append(def, bindingRules(IsRelativeModule, byName, byNameAndMembers)...)
	def = append(def,
		Separator{},

		// import * as styles from "./x.scss"
		BucketRule{Match: IsStylesheet, Sort: MemberOrder(Unicode), SortNamedMembers: Name(Unicode)},
		Separator{},
	)
	return def
}

// sorting pairs the two optional orderings of a bucket rule
type sorting struct {
	Statements StatementComparator
	Members    MemberComparator
}

// bindingRules emits, for one module kind, the rules for each member shape:
// namespace only, default plus namespace, default only, default plus named,
// named only. Each shape gets three buckets: non-alphanumeric, upper case and
// lower case representative names.
func bindingRules(module Predicate, byName, byNameAndMembers sorting) []Entry {
	shapes := []struct {
		match Predicate
		sort  sorting
	}{
		{HasOnlyNamespaceMember, byName},
		{And(HasDefaultMember, HasNamespaceMember), byName},
		{HasOnlyDefaultMember, byName},
		{And(HasDefaultMember, HasNamedMembers), byNameAndMembers},
		{HasOnlyNamedMembers, byNameAndMembers},
	}
	names := []Predicate{
		Not(Member(StartsWithAlphanumeric)),
		Member(StartsWithUpperCase),
		Member(StartsWithLowerCase),
	}

	var entries []Entry
	for _, shape := range shapes {
		for _, name := range names {
			entries = append(entries, BucketRule{
				Match:            And(shape.match, module, name, Not(IsStylesheet)),
				Sort:             shape.sort.Statements,
				SortNamedMembers: shape.sort.Members,
			})
		}
	}
	return entries
}

// ModuleDefinition sorts by module reference: side-effect imports, Node
// builtins, packages, relative paths and stylesheets, each group alphabetical
func ModuleDefinition() Definition {
	byModule := ModuleName(Unicode)
	byMember := Name(Unicode)
	return Definition{
		BucketRule{Match: And(HasNoMember, Not(IsStylesheet)), Sort: byModule},
		Separator{},
		BucketRule{Match: And(IsNodeModule, Not(IsStylesheet)), Sort: byModule, SortNamedMembers: byMember},
		Separator{},
		BucketRule{Match: And(IsAbsoluteModule, Not(IsStylesheet)), Sort: byModule, SortNamedMembers: byMember},
		Separator{},
		BucketRule{Match: And(IsRelativeModule, Not(IsStylesheet)), Sort: byModule, SortNamedMembers: byMember},
		Separator{},
		BucketRule{Match: IsStylesheet, Sort: byModule, SortNamedMembers: byMember},
	}
}
