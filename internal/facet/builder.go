// Package facet compiles one facet's tokens into filter clauses.
//
// The work runs as an ordered pipeline of named stages so that the special cases
// (sentinel, group expansion, label resolution) apply in a fixed, testable order:
//
//	sentinel -> group_expansion -> resolve -> resolved_sentinel -> combine
package facet

import (
	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
)

// Stage names a pipeline step.
type Stage string

// Pipeline stages in execution order.
const (
	StageSentinel         Stage = "sentinel"
	StageGroupExpansion   Stage = "group_expansion"
	StageResolve          Stage = "resolve"
	StageResolvedSentinel Stage = "resolved_sentinel"
	StageCombine          Stage = "combine"
)

// Report describes what the pipeline did with one facet's tokens.
type Report struct {
	// Requested is true when the client sent at least one token.
	Requested bool
	// Applied is true when the facet contributes at least one clause.
	Applied bool
	// SentinelHits counts dropped "not important" tokens.
	SentinelHits int
	// PassThrough counts tokens that matched neither a label nor a key.
	PassThrough int
	// Expanded lists group keys replaced by their members.
	Expanded []string
	// IgnoredGroups lists group keys dropped because ordinary tokens were mixed in.
	IgnoredGroups []string
}

// Outcome is the compiled facet.
type Outcome struct {
	Clauses []filter.Clause
	Report  Report
}

// value is a token travelling through the pipeline.
type value struct {
	raw string
	key string
}

type state struct {
	attr    choice.Attribute
	values  []value
	members []string
	out     Outcome
}

type stage struct {
	name Stage
	run  func(*state)
}

// Builder runs the facet pipeline. It is stateless and safe for concurrent use.
type Builder struct {
	stages []stage
}

// NewBuilder creates a Builder with the standard stage order.
func NewBuilder() *Builder {
	return &Builder{stages: []stage{
		{StageSentinel, dropSentinels},
		{StageGroupExpansion, expandGroups},
		{StageResolve, resolve},
		{StageResolvedSentinel, dropResolvedSentinels},
		{StageCombine, combine},
	}}
}

// Stages returns the stage names in execution order.
func (b *Builder) Stages() []Stage {
	out := make([]Stage, len(b.stages))
	for i, s := range b.stages {
		out[i] = s.name
	}
	return out
}

// Build compiles tokens for attr. No tokens, or only sentinels, yields no clauses:
// the facet is not applied. Build never fails; unusable tokens degrade to literal matches.
func (b *Builder) Build(attr choice.Attribute, tokens []string) Outcome {
	st := &state{attr: attr, values: make([]value, 0, len(tokens))}
	for _, t := range tokens {
		st.values = append(st.values, value{raw: t, key: t})
	}
	st.out.Report.Requested = len(tokens) > 0

	for _, s := range b.stages {
		s.run(st)
	}

	st.out.Report.Applied = len(st.out.Clauses) > 0
	return st.out
}

func dropSentinels(st *state) {
	kept := st.values[:0]
	for _, v := range st.values {
		if choice.IsSentinel(v.raw) {
			st.out.Report.SentinelHits++
			continue
		}
		kept = append(kept, v)
	}
	st.values = kept
}

// expandGroups replaces group tokens with their members when they are the only tokens.
// Mixed with ordinary tokens, groups are dropped and the ordinary tokens apply alone.
func expandGroups(st *state) {
	if len(st.attr.Groups()) == 0 || len(st.values) == 0 {
		return
	}
	var groups []choice.Group
	ordinary := st.values[:0:0]
	for _, v := range st.values {
		if g, ok := st.attr.Group(v.raw); ok {
			groups = append(groups, g)
			continue
		}
		ordinary = append(ordinary, v)
	}
	if len(groups) == 0 {
		return
	}
	if len(ordinary) > 0 {
		for _, g := range groups {
			st.out.Report.IgnoredGroups = append(st.out.Report.IgnoredGroups, g.Key)
		}
		st.values = ordinary
		return
	}

	seen := make(map[string]struct{})
	for _, g := range groups {
		st.out.Report.Expanded = append(st.out.Report.Expanded, g.Key)
		for _, m := range g.Members {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			st.members = append(st.members, m)
		}
	}
	st.values = nil
}

func resolve(st *state) {
	for i, v := range st.values {
		r := st.attr.Resolve(v.raw)
		st.values[i].key = r.Value
		if r.Source == choice.SourcePassThrough {
			st.out.Report.PassThrough++
		}
	}
}

// dropResolvedSentinels catches sentinels sent by label, e.g. "Не важно".
func dropResolvedSentinels(st *state) {
	kept := st.values[:0]
	for _, v := range st.values {
		if v.key == choice.NotImportant {
			st.out.Report.SentinelHits++
			continue
		}
		kept = append(kept, v)
	}
	st.values = kept
}

func combine(st *state) {
	if len(st.members) > 0 {
		st.out.Clauses = appendClause(st.out.Clauses, memberConditions(st.attr, st.members))
		return
	}
	if len(st.values) == 0 {
		return
	}
	switch st.attr.Combinator() {
	case choice.CombineAnd:
		st.out.Clauses = combineAnd(st.attr, st.values)
	case choice.CombineHeuristic:
		st.out.Clauses = appendClause(nil, heuristicConditions(st.attr, st.values))
	case choice.CombineText:
		st.out.Clauses = appendClause(nil, textConditions(st.attr, st.values))
	default:
		st.out.Clauses = appendClause(nil, orConditions(st.attr, st.values))
	}
}

func appendClause(dst []filter.Clause, conds []filter.Condition) []filter.Clause {
	if len(conds) == 0 {
		return dst
	}
	c, err := filter.NewClause(conds...)
	if err != nil {
		// Oversized clauses keep the first MaxConditionsPerClause conditions.
		c, _ = filter.NewClause(conds[:filter.MaxConditionsPerClause]...)
	}
	return append(dst, c)
}
