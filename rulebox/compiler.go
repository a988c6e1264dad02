package rulebox

import "regexp"

// rule is the compiled, executable form of one catalog entry: a label and
// three clauses of already-compiled matchers. Clause slices are nil when
// the corresponding JSON key was absent or empty — both are vacuously true
// (spec §3, §9) and the evaluator treats a nil slice and an empty slice
// identically since both have len() == 0.
type rule struct {
	label string
	and   []*regexp.Regexp
	not   []*regexp.Regexp
	or    []*regexp.Regexp
}

// compile turns a structurally-valid, uncompiled document into a Catalog.
// Each PatternSpec is compiled independently (spec §4.2); the first flag or
// regex failure aborts construction entirely — no partial catalog is ever
// returned (spec §7, fail-fast and atomic).
func compile(doc []ruleJSON) (*Catalog, error) {
	rules := make([]rule, len(doc))
	for i, entry := range doc {
		and, err := compileClause(i, ClauseAnd, entry.Rule.And)
		if err != nil {
			return nil, err
		}
		not, err := compileClause(i, ClauseNot, entry.Rule.Not)
		if err != nil {
			return nil, err
		}
		or, err := compileClause(i, ClauseOr, entry.Rule.Or)
		if err != nil {
			return nil, err
		}
		rules[i] = rule{label: *entry.Label, and: and, not: not, or: or}
	}
	return &Catalog{rules: rules}, nil
}

func compileClause(ruleIdx int, clause ClauseKind, specs []patternSpecJSON) ([]*regexp.Regexp, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, len(specs))
	for j, spec := range specs {
		if err := validateFlags(spec.Flags); err != nil {
			uf := err.(*UnknownFlagError)
			uf.RuleIndex = ruleIdx
			uf.Clause = clause
			uf.PatternIdx = j
			return nil, uf
		}
		src := compilePattern(*spec.Pattern, spec.Flags)
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, &RegexSyntaxError{
				RuleIndex:  ruleIdx,
				Clause:     clause,
				PatternIdx: j,
				Pattern:    *spec.Pattern,
				Underlying: err,
			}
		}
		compiled[j] = re
	}
	return compiled, nil
}
