package rulebox

// AssignLabels evaluates input against the catalog and returns the ordered
// list of labels whose rule fired, in catalog declaration order. It never
// fails, never mutates the catalog, and is pure and idempotent: the same
// input against the same catalog always yields the same result.
func (c *Catalog) AssignLabels(input string) []string {
	var labels []string
	for i := range c.rules {
		if c.rules[i].fires(input) {
			labels = append(labels, c.rules[i].label)
		}
	}
	return labels
}

// fires decides whether a single rule's predicate is satisfied by input,
// evaluating and_patterns, then not_patterns, then or_patterns — an order
// chosen to reject as early as possible (spec §4.3 permits any order, since
// the three clauses commute in outcome). A clause list that is empty or nil
// is vacuously satisfied and does not participate in the decision.
func (r *rule) fires(input string) bool {
	for _, re := range r.and {
		if !re.MatchString(input) {
			return false
		}
	}
	for _, re := range r.not {
		if re.MatchString(input) {
			return false
		}
	}
	if len(r.or) > 0 {
		matched := false
		for _, re := range r.or {
			if re.MatchString(input) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
