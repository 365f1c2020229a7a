// Package engine assigns import statements to the buckets of a style definition,
// sorts each bucket and lays the buckets out with blank-line separators.
package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
	"github.com/siyuan-infoblox/go-import-sort/pkg/imports"
	"github.com/siyuan-infoblox/go-import-sort/pkg/style"
)

// UnmatchedPolicy decides what happens to statements no rule matches
type UnmatchedPolicy int

const (
	// UnmatchedFirst emits unmatched statements, in file order, ahead of every bucket
	UnmatchedFirst UnmatchedPolicy = iota
	// UnmatchedLast emits them after every bucket
	UnmatchedLast
	// UnmatchedDrop leaves them out of the layout
	UnmatchedDrop
	// UnmatchedError fails the run
	UnmatchedError
)

var policyNames = map[UnmatchedPolicy]string{
	UnmatchedFirst: "first",
	UnmatchedLast:  "last",
	UnmatchedDrop:  "drop",
	UnmatchedError: "error",
}

func (p UnmatchedPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("UnmatchedPolicy(%d)", int(p))
}

// ParseUnmatchedPolicy accepts first, last, drop or error; empty means first
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	if s == "" {
		return UnmatchedFirst, nil
	}
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w %q: must be one of first, last, drop, error", errors.ErrUnknownPolicy, s)
}

type Options struct {
	Unmatched UnmatchedPolicy
}

// Engine lays out import statements for one style definition. It holds no
// per-run state and may be shared between goroutines.
type Engine struct {
	rules []style.BucketRule
	// separatorBefore[i] is set when a separator entry sits between bucket i-1
	// and bucket i
	separatorBefore []bool
	opts            Options
}

// New validates the definition and prepares an engine for it
func New(def style.Definition, opts Options) (*Engine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if _, ok := policyNames[opts.Unmatched]; !ok {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnknownPolicy, opts.Unmatched)
	}

	e := &Engine{opts: opts}
	pending := false
	for _, entry := range def {
		if style.IsSeparator(entry) {
			pending = true
			continue
		}
		rule, _ := style.AsRule(entry)
		e.rules = append(e.rules, rule)
		e.separatorBefore = append(e.separatorBefore, pending)
		pending = false
	}
	return e, nil
}

// Layout is a convenience wrapper around New and Engine.Layout
func Layout(def style.Definition, stmts []*imports.Statement, opts Options) ([]imports.Segment, error) {
	e, err := New(def, opts)
	if err != nil {
		return nil, err
	}
	return e.Layout(stmts)
}

// Layout classifies the statements of one file, sorts every bucket and returns
// the statements in bucket order with blank segments where separators apply.
// Input statements are not modified; the output holds copies.
func (e *Engine) Layout(stmts []*imports.Statement) (segments []imports.Segment, err error) {
	defer func() {
		if r := recover(); r != nil {
			segments = nil
			err = fmt.Errorf("%w: %v", errors.ErrPredicatePanic, r)
		}
	}()

	buckets, unmatched, err := e.classify(stmts)
	if err != nil {
		return nil, err
	}
	for i, rule := range e.rules {
		sortBucket(buckets[i], rule)
	}
	return e.emit(buckets, unmatched), nil
}

func (e *Engine) classify(stmts []*imports.Statement) ([][]*imports.Statement, []*imports.Statement, error) {
	buckets := make([][]*imports.Statement, len(e.rules))
	var unmatched []*imports.Statement

next:
	for _, s := range stmts {
		c := s.Clone()
		for i, rule := range e.rules {
			if rule.Match(c) {
				buckets[i] = append(buckets[i], c)
				continue next
			}
		}
		if e.opts.Unmatched == UnmatchedError {
			return nil, nil, fmt.Errorf("%w: %q", errors.ErrUnmatched, s.ModuleReference)
		}
		unmatched = append(unmatched, c)
	}
	return buckets, unmatched, nil
}

// sortBucket orders named members before statements so the statement sort key,
// which may depend on the least named member, sees the final member order
func sortBucket(bucket []*imports.Statement, rule style.BucketRule) {
	if rule.SortNamedMembers != nil {
		for _, s := range bucket {
			slices.SortStableFunc(s.NamedMembers, rule.SortNamedMembers)
		}
	}
	if rule.Sort != nil {
		slices.SortStableFunc(bucket, rule.Sort)
	}
}

func (e *Engine) emit(buckets [][]*imports.Statement, unmatched []*imports.Statement) []imports.Segment {
	var out []imports.Segment
	pending := false

	place := func(group []*imports.Statement, separated bool) {
		if len(group) == 0 {
			pending = pending || separated
			return
		}
		if (pending || separated) && len(out) > 0 {
			out = append(out, imports.BlankSegment())
		}
		pending = false
		for _, s := range group {
			out = append(out, imports.StatementSegment(s))
		}
	}

	if e.opts.Unmatched == UnmatchedFirst {
		place(unmatched, false)
		// implicit separator between the unmatched group and the first bucket
		pending = len(unmatched) > 0
	}
	for i, b := range buckets {
		place(b, e.separatorBefore[i])
	}
	if e.opts.Unmatched == UnmatchedLast {
		place(unmatched, true)
	}
	return out
}
