// Package retix compiles a small regular-expression surface language into a
// deterministic automaton and runs leftmost-match search over it.
//
// Compilation pipeline: parser builds a Thompson NFA-with-epsilon from the
// pattern text, epsilon elimination folds every epsilon-closure into its
// member states, and subset construction determinizes the result into a
// DFA. Search then walks the DFA once per leftmost-match attempt, advancing
// the attempt's start position on failure rather than backtracking within
// an attempt.
//
// Syntax supports literals, `.`, character classes (`[...]`, `[^...]`),
// `\d`/`\w`/`\s` class escapes, alternation (`|`), grouping (`(...)`),
// the quantifiers `?`, `*`, `+`, `{m}`, `{m,n}`, `{m,}`, `{,n}` in both
// greedy and lazy (`?`-suffixed) form, and the anchors `^`/`$`.
//
// Basic usage:
//
//	re, err := retix.Compile(`cat|dog`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.Match([]byte("my dog barks")) {
//	    fmt.Println("matched")
//	}
//
// Limitations: no capture groups, no case-insensitive or multiline flags,
// no Unicode character classes beyond raw byte ranges.
package retix

import (
	"github.com/retix/retix/internal/epsilon"
	"github.com/retix/retix/internal/literalscan"
	"github.com/retix/retix/internal/matcher"
	"github.com/retix/retix/internal/parser"
	"github.com/retix/retix/internal/subset"
)

// Regex is a compiled pattern ready for matching. A *Regex is safe for
// concurrent use by multiple goroutines: compilation produces an
// immutable DFA (and, where applicable, an immutable literal scanner),
// and MatchFirst only reads it.
type Regex struct {
	pattern string
	dfa     *subset.DFA
	scanner *literalscan.Scanner
}

// Compile compiles pattern using DefaultConfig. It returns an error
// describing the first syntax problem encountered, never a partially
// built Regex.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles pattern and panics if it fails. Intended for
// patterns known to be valid at compile time, such as package-level
// variables.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("retix: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern under an explicit configuration.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	a, err := parser.Parse([]byte(pattern), cfg.MaxCountedRepeat)
	if err != nil {
		return nil, err
	}

	re := &Regex{
		pattern: pattern,
		dfa:     subset.Build(epsilon.Eliminate(a)),
	}

	if cfg.EnableLiteralScan {
		if literals, _, _, ok := literalscan.Detect([]byte(pattern)); ok {
			if scanner, ok := literalscan.New(literals); ok {
				re.scanner = scanner
			}
		}
	}

	return re, nil
}

// MatchFirst reports the leftmost match of the pattern in input. ok is
// false if no match starts anywhere in input.
//
// When a literal scanner is present it only accelerates restart-anchor
// advance: matcher.MatchFirst remains the sole source of the reported
// match and still runs the DFA over every attempt.
func (r *Regex) MatchFirst(input []byte) (ok bool, pos, length int) {
	var seek func(anchor int) (int, bool)
	if r.scanner != nil {
		seek = func(anchor int) (int, bool) {
			return r.scanner.Seek(input, anchor)
		}
	}
	return matcher.MatchFirst(r.dfa, input, seek)
}

// Match reports whether input contains any match of the pattern.
func (r *Regex) Match(input []byte) bool {
	ok, _, _ := r.MatchFirst(input)
	return ok
}

// FindIndex returns a two-element slice [start, end) describing the
// leftmost match in input, or nil if no match is found.
func (r *Regex) FindIndex(input []byte) []int {
	ok, pos, length := r.MatchFirst(input)
	if !ok {
		return nil
	}
	return []int{pos, pos + length}
}

// String returns the source pattern text the Regex was compiled from.
func (r *Regex) String() string {
	return r.pattern
}
