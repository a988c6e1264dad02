package rulebox

import (
	"errors"
	"fmt"
)

// Sentinel errors for the construction-time failure taxonomy (spec §7).
// All construction errors wrap one of these via errors.Is/errors.As so
// callers can branch on failure class without string matching.
var (
	// ErrIoFailure indicates the rules path could not be read: missing file,
	// permission denied, or non-UTF-8 bytes.
	ErrIoFailure = errors.New("rulebox: io failure")

	// ErrJsonSyntax indicates the input is not parseable JSON.
	ErrJsonSyntax = errors.New("rulebox: json syntax error")

	// ErrSchemaViolation indicates a required field is missing or has the
	// wrong type.
	ErrSchemaViolation = errors.New("rulebox: schema violation")

	// ErrUnknownFlag indicates a flag token outside {i,m,s,x,U}.
	ErrUnknownFlag = errors.New("rulebox: unknown flag")

	// ErrRegexSyntax indicates a PatternSpec did not compile.
	ErrRegexSyntax = errors.New("rulebox: regex syntax error")
)

// ClauseKind names one of the three predicate clause lists a PatternSpec
// belongs to, for error reporting and nothing else.
type ClauseKind string

const (
	ClauseOr  ClauseKind = "or_patterns"
	ClauseAnd ClauseKind = "and_patterns"
	ClauseNot ClauseKind = "not_patterns"
)

// JSONSyntaxError wraps ErrJsonSyntax with a byte offset and, when the
// source is available, a 1-indexed line/column pair.
type JSONSyntaxError struct {
	Offset int64
	Line   int
	Column int
	detail string
}

func (e *JSONSyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rulebox: json syntax error at line %d, column %d: %s", e.Line, e.Column, e.detail)
	}
	return fmt.Sprintf("rulebox: json syntax error at byte offset %d: %s", e.Offset, e.detail)
}

func (e *JSONSyntaxError) Unwrap() error { return ErrJsonSyntax }

// SchemaViolationError names the rule index and field that failed
// validation.
type SchemaViolationError struct {
	RuleIndex int
	Field     string
	detail    string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("rulebox: schema violation in rule %d, field %q: %s", e.RuleIndex, e.Field, e.detail)
}

func (e *SchemaViolationError) Unwrap() error { return ErrSchemaViolation }

// UnknownFlagError names the offending flag token and where it appeared.
type UnknownFlagError struct {
	RuleIndex  int
	Clause     ClauseKind
	PatternIdx int
	Flag       string
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("rulebox: unknown flag %q in rule %d, clause %s, pattern %d", e.Flag, e.RuleIndex, e.Clause, e.PatternIdx)
}

func (e *UnknownFlagError) Unwrap() error { return ErrUnknownFlag }

// RegexSyntaxError carries everything needed to find the offending pattern:
// which rule, which clause, which position within the clause, the pattern
// text itself, and the underlying engine's diagnostic.
type RegexSyntaxError struct {
	RuleIndex  int
	Clause     ClauseKind
	PatternIdx int
	Pattern    string
	Underlying error
}

func (e *RegexSyntaxError) Error() string {
	return fmt.Sprintf("rulebox: regex syntax error in rule %d, clause %s, pattern %d (%q): %v",
		e.RuleIndex, e.Clause, e.PatternIdx, e.Pattern, e.Underlying)
}

func (e *RegexSyntaxError) Unwrap() error { return ErrRegexSyntax }

// IoFailureError wraps the filesystem error that prevented reading the
// rules path.
type IoFailureError struct {
	Path       string
	Underlying error
}

func (e *IoFailureError) Error() string {
	return fmt.Sprintf("rulebox: cannot read rules file %q: %v", e.Path, e.Underlying)
}

func (e *IoFailureError) Unwrap() error { return ErrIoFailure }
