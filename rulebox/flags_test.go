package rulebox

import "testing"

func TestValidateFlags(t *testing.T) {
	if err := validateFlags([]string{"i", "m", "s", "x", "U"}); err != nil {
		t.Errorf("validateFlags(all recognized) error: %v", err)
	}
	if err := validateFlags(nil); err != nil {
		t.Errorf("validateFlags(nil) error: %v", err)
	}
	err := validateFlags([]string{"z"})
	if err == nil {
		t.Fatal("validateFlags([z]) error = nil, want UnknownFlagError")
	}
	uf, ok := err.(*UnknownFlagError)
	if !ok || uf.Flag != "z" {
		t.Errorf("err = %v, want UnknownFlagError{Flag: z}", err)
	}
}

func TestCompilePattern_CaseInsensitive(t *testing.T) {
	src := compilePattern("hello", []string{"i"})
	if src != "(?i)hello" {
		t.Errorf("compilePattern() = %q, want (?i)hello", src)
	}
}

func TestCompilePattern_NoFlags(t *testing.T) {
	src := compilePattern("hello", nil)
	if src != "hello" {
		t.Errorf("compilePattern() = %q, want hello", src)
	}
}

func TestStripExtendedWhitespace(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"drops plain whitespace", "a b  c\td", "abcd"},
		{"drops line comment", "abc # comment\ndef", "abcdef"},
		{"keeps whitespace in class", "[a b]", "[a b]"},
		{"keeps escaped whitespace", `a\ b`, `a\ b`},
		{"keeps escaped hash", `a\#b`, `a\#b`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripExtendedWhitespace(tc.in); got != tc.want {
				t.Errorf("stripExtendedWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompilePattern_ExtendedMode(t *testing.T) {
	cat, err := FromJSON(`[{"label":"l","rule":{"or_patterns":[
		{"pattern":"foo \\d+  # trailing comment\n bar","flags":["x"]}
	]}}]`)
	if err != nil {
		t.Fatalf("FromJSON() error: %v", err)
	}
	if got := cat.AssignLabels("foo123bar"); len(got) != 1 {
		t.Errorf("AssignLabels(foo123bar) = %v, want [l]", got)
	}
}
