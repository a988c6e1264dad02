package rulebox

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// patternSpecJSON is the on-wire shape of a PatternSpec (spec §4.1).
type patternSpecJSON struct {
	Pattern *string  `json:"pattern"`
	Flags   []string `json:"flags"`
}

// predicateJSON is the on-wire shape of a Rule's predicate. Each clause is
// independently optional; an absent field decodes to a nil slice, which
// evaluator.go treats identically to an explicit empty array (spec's
// vacuous-clause policy, §9).
type predicateJSON struct {
	Or  []patternSpecJSON `json:"or_patterns"`
	And []patternSpecJSON `json:"and_patterns"`
	Not []patternSpecJSON `json:"not_patterns"`
}

// ruleJSON is the on-wire shape of one rule entry. Unknown top-level keys
// inside a rule object are ignored by encoding/json's default behavior,
// satisfying the forward-compatibility requirement in spec §4.1 without any
// extra bookkeeping.
type ruleJSON struct {
	Label *string       `json:"label"`
	Rule  predicateJSON `json:"rule"`
}

// decodeDocument parses a rules document into its structurally-validated,
// uncompiled form. It never touches the regex engine or flag enumeration —
// those are the compiler's job (compiler.go) — so the only errors it can
// produce are JsonSyntax and SchemaViolation.
func decodeDocument(data []byte) ([]ruleJSON, error) {
	var raw []ruleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, classifyDecodeError(data, err)
	}

	for i := range raw {
		if raw[i].Label == nil {
			return nil, &SchemaViolationError{RuleIndex: i, Field: "label", detail: "missing required field"}
		}
		if *raw[i].Label == "" {
			return nil, &SchemaViolationError{RuleIndex: i, Field: "label", detail: "must be non-empty"}
		}
		if err := validatePatternList(i, ClauseOr, raw[i].Rule.Or); err != nil {
			return nil, err
		}
		if err := validatePatternList(i, ClauseAnd, raw[i].Rule.And); err != nil {
			return nil, err
		}
		if err := validatePatternList(i, ClauseNot, raw[i].Rule.Not); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func validatePatternList(ruleIdx int, clause ClauseKind, specs []patternSpecJSON) error {
	for j, spec := range specs {
		if spec.Pattern == nil {
			return &SchemaViolationError{
				RuleIndex: ruleIdx,
				Field:     fmt.Sprintf("%s[%d].pattern", clause, j),
				detail:    "missing required field",
			}
		}
	}
	return nil
}

// classifyDecodeError turns a raw encoding/json error into the taxonomy
// spec §7 requires: a genuine syntax error (malformed JSON text) becomes a
// JSONSyntaxError carrying a byte offset and, when derivable, a line/column
// pair; a type mismatch (wrong shape, e.g. top level isn't an array, or a
// field has the wrong JSON type) becomes a SchemaViolationError.
func classifyDecodeError(data []byte, err error) error {
	switch e := err.(type) {
	case *json.SyntaxError:
		line, col := offsetToLineCol(data, e.Offset)
		return &JSONSyntaxError{Offset: e.Offset, Line: line, Column: col, detail: e.Error()}
	case *json.UnmarshalTypeError:
		field := e.Field
		if field == "" {
			field = "<root>"
		}
		return &SchemaViolationError{RuleIndex: -1, Field: field, detail: e.Error()}
	default:
		// EOF and similar decoding failures are still JSON-shaped problems.
		return &JSONSyntaxError{detail: err.Error()}
	}
}

func offsetToLineCol(data []byte, offset int64) (line, col int) {
	if offset <= 0 || offset > int64(len(data)) {
		return 0, 0
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	if idx := bytes.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = len(prefix) - idx
	} else {
		col = len(prefix) + 1
	}
	return line, col
}
