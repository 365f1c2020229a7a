package style

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
)

// Keys are matched case-insensitively: viper lowercases every map key it loads.
var statementPredicates = map[string]Predicate{
	"hasnomember":            HasNoMember,
	"hasmember":              HasMember,
	"hasdefaultmember":       HasDefaultMember,
	"hasnamespacemember":     HasNamespaceMember,
	"hasnamedmembers":        HasNamedMembers,
	"hasonlydefaultmember":   HasOnlyDefaultMember,
	"hasonlynamespacemember": HasOnlyNamespaceMember,
	"hasonlynamedmembers":    HasOnlyNamedMembers,
	"isabsolutemodule":       IsAbsoluteModule,
	"isrelativemodule":       IsRelativeModule,
	"isstylesheet":           IsStylesheet,
	"isnodemodule":           IsNodeModule,
	"isscopedmodule":         IsScopedModule,
}

var namePredicates = map[string]NamePredicate{
	"startswithuppercase":    StartsWithUpperCase,
	"startswithlowercase":    StartsWithLowerCase,
	"startswithalphanumeric": StartsWithAlphanumeric,
}

func stringComparator(name string) (StringComparator, bool) {
	switch strings.ToLower(name) {
	case "unicode":
		return Unicode, true
	case "naturally":
		return Naturally(), true
	}
	return nil, false
}

// ParseYAML decodes a style definition written as a YAML sequence of entries:
//
//	- match: {and: [hasNoMember, isAbsoluteModule]}
//	- separator: true
//	- match: {and: [hasOnlyDefaultMember, {member: startsWithUpperCase}]}
//	  sort: {member: unicode}
//	  sortNamedMembers: {name: unicode}
func ParseYAML(data []byte) (Definition, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidStyle, err)
	}
	return Decode(raw)
}

// Decode builds a definition from generic data as produced by yaml.v3 or viper
func Decode(raw any) (Definition, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, invalid("style must be a list of entries, got %T", raw)
	}
	def := make(Definition, 0, len(list))
	for i, item := range list {
		e, err := decodeEntry(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		def = append(def, e)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func decodeEntry(raw any) (Entry, error) {
	m, err := asMap(raw)
	if err != nil {
		return nil, err
	}

	if sep, ok := m["separator"]; ok {
		if len(m) != 1 {
			return nil, invalid("separator cannot carry other keys")
		}
		if b, ok := sep.(bool); !ok || !b {
			return nil, invalid("separator must be true")
		}
		return Separator{}, nil
	}

	var rule BucketRule
	for _, key := range sortedKeys(m) {
		v := m[key]
		switch key {
		case "match":
			rule.Match, err = decodePredicate(v)
		case "sort":
			rule.Sort, err = decodeStatementComparator(v)
		case "sortnamedmembers":
			rule.SortNamedMembers, err = decodeMemberComparator(v)
		default:
			err = invalid("unknown key %q", key)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	if rule.Match == nil {
		return nil, invalid("entry is neither a separator nor has a match")
	}
	return rule, nil
}

func decodePredicate(raw any) (Predicate, error) {
	if name, ok := raw.(string); ok {
		if p, ok := statementPredicates[strings.ToLower(name)]; ok {
			return p, nil
		}
		if _, ok := namePredicates[strings.ToLower(name)]; ok {
			return nil, invalid("%q applies to names, wrap it in member", name)
		}
		return nil, invalid("unknown predicate %q", name)
	}

	op, arg, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	switch op {
	case "and", "or":
		items, ok := arg.([]any)
		if !ok {
			return nil, invalid("%s expects a list, got %T", op, arg)
		}
		preds := make([]Predicate, 0, len(items))
		for i, item := range items {
			p, err := decodePredicate(item)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", op, i, err)
			}
			preds = append(preds, p)
		}
		if op == "and" {
			return And(preds...), nil
		}
		return Or(preds...), nil
	case "not":
		p, err := decodePredicate(arg)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return Not(p), nil
	case "member":
		p, err := decodeNamePredicate(arg)
		if err != nil {
			return nil, fmt.Errorf("member: %w", err)
		}
		return Member(p), nil
	}
	return nil, invalid("unknown predicate operator %q", op)
}

func decodeNamePredicate(raw any) (NamePredicate, error) {
	if name, ok := raw.(string); ok {
		if p, ok := namePredicates[strings.ToLower(name)]; ok {
			return p, nil
		}
		return nil, invalid("unknown name predicate %q", name)
	}
	op, arg, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	if op != "not" {
		return nil, invalid("unknown name predicate operator %q", op)
	}
	p, err := decodeNamePredicate(arg)
	if err != nil {
		return nil, fmt.Errorf("not: %w", err)
	}
	return func(name string) bool { return !p(name) }, nil
}

func decodeStatementComparator(raw any) (StatementComparator, error) {
	op, arg, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	c, err := decodeStringComparator(arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	switch op {
	case "member":
		return MemberOrder(c), nil
	case "modulename":
		return ModuleName(c), nil
	}
	return nil, invalid("unknown statement sort %q", op)
}

func decodeMemberComparator(raw any) (MemberComparator, error) {
	op, arg, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	if op != "name" {
		return nil, invalid("unknown member sort %q", op)
	}
	c, err := decodeStringComparator(arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return Name(c), nil
}

func decodeStringComparator(raw any) (StringComparator, error) {
	name, ok := raw.(string)
	if !ok {
		return nil, invalid("comparator must be a name, got %T", raw)
	}
	c, ok := stringComparator(name)
	if !ok {
		return nil, invalid("unknown comparator %q", name)
	}
	return c, nil
}

func singleKey(raw any) (string, any, error) {
	m, err := asMap(raw)
	if err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, invalid("expected exactly one key, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, nil
}

// asMap normalises both map shapes yaml and viper hand out, lowercasing keys
func asMap(raw any) (map[string]any, error) {
	out := make(map[string]any)
	switch m := raw.(type) {
	case map[string]any:
		for k, v := range m {
			out[strings.ToLower(k)] = v
		}
	case map[any]any:
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, invalid("non-string key %v", k)
			}
			out[strings.ToLower(ks)] = v
		}
	default:
		return nil, invalid("expected a mapping, got %T", raw)
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidStyle, fmt.Sprintf(format, args...))
}
