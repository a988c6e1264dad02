package rulebox

import "strings"

// recognizedFlags is the closed enumeration from spec §3: case-insensitive,
// multi-line, dot-matches-newline, extended/whitespace-ignore, and
// swap-greediness. Any flag token outside this set is a construction-time
// ErrUnknownFlag, not a silently ignored one (spec §9, Open Questions).
var recognizedFlags = map[string]bool{
	"i": true,
	"m": true,
	"s": true,
	"x": true,
	"U": true,
}

// validateFlags rejects any flag token outside recognizedFlags.
func validateFlags(flags []string) error {
	for _, f := range flags {
		if !recognizedFlags[f] {
			return &UnknownFlagError{Flag: f}
		}
	}
	return nil
}

// compilePattern turns a pattern source and flag set into the source text
// Go's regexp package should actually compile, applying the flags enumerated
// in spec §3.
//
// i, m, s, and U map directly onto Go's inline regexp flags and are
// prepended as a single "(?flags)" group. x has no native equivalent in
// Go's RE2-based engine, so it is applied as a source transform: unescaped
// whitespace and "#"-to-end-of-line comments outside character classes are
// stripped before compilation, mirroring Perl/PCRE extended mode.
func compilePattern(pattern string, flags []string) string {
	var goFlags strings.Builder
	extended := false
	for _, f := range flags {
		switch f {
		case "x":
			extended = true
		default:
			goFlags.WriteString(f)
		}
	}

	src := pattern
	if extended {
		src = stripExtendedWhitespace(src)
	}
	if goFlags.Len() == 0 {
		return src
	}
	return "(?" + goFlags.String() + ")" + src
}

// stripExtendedWhitespace removes unescaped whitespace and "#" line
// comments from a pattern, as Perl/PCRE's /x modifier does. Whitespace and
// comments inside a "[...]" character class are left untouched, since they
// are literal there.
func stripExtendedWhitespace(pattern string) string {
	var out strings.Builder
	inClass := false
	escaped := false

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if escaped {
			out.WriteRune(r)
			escaped = false
			continue
		}

		switch {
		case r == '\\':
			out.WriteRune(r)
			escaped = true
		case inClass:
			out.WriteRune(r)
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
			out.WriteRune(r)
		case r == '#':
			for i+1 < len(runes) && runes[i+1] != '\n' {
				i++
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			// dropped
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
