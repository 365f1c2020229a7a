package style

import (
	"fmt"

	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
)

// Entry is one element of a style definition: a BucketRule or a Separator
type Entry interface {
	entry()
}

// BucketRule collects the statements matched by Match. Sort orders the bucket,
// SortNamedMembers orders the named members of each statement in it; both optional.
type BucketRule struct {
	Match            Predicate
	Sort             StatementComparator
	SortNamedMembers MemberComparator
}

// Separator requests a blank line between the non-empty buckets around it
type Separator struct{}

func (BucketRule) entry() {}
func (Separator) entry()  {}

// Definition is an ordered list of rule entries. Statements go to the first
// bucket whose rule matches them.
type Definition []Entry

// Validate reports structural problems before any statement is classified
func (d Definition) Validate() error {
	for i, e := range d {
		switch e := e.(type) {
		case BucketRule:
			if e.Match == nil {
				return fmt.Errorf("%w: entry %d: rule has no match predicate", errors.ErrInvalidStyle, i)
			}
		case *BucketRule:
			if e == nil || e.Match == nil {
				return fmt.Errorf("%w: entry %d: rule has no match predicate", errors.ErrInvalidStyle, i)
			}
		case Separator, *Separator:
		case nil:
			return fmt.Errorf("%w: entry %d: neither a rule nor a separator", errors.ErrInvalidStyle, i)
		default:
			return fmt.Errorf("%w: entry %d: unknown entry type %T", errors.ErrInvalidStyle, i, e)
		}
	}
	return nil
}

// AsRule unwraps an entry that is a bucket rule
func AsRule(e Entry) (BucketRule, bool) {
	switch e := e.(type) {
	case BucketRule:
		return e, true
	case *BucketRule:
		if e != nil {
			return *e, true
		}
	}
	return BucketRule{}, false
}

// IsSeparator reports whether the entry is a layout separator
func IsSeparator(e Entry) bool {
	switch e.(type) {
	case Separator, *Separator:
		return true
	}
	return false
}

// Buckets returns the number of bucket rules in the definition
func (d Definition) Buckets() int {
	n := 0
	for _, e := range d {
		if _, ok := AsRule(e); ok {
			n++
		}
	}
	return n
}
