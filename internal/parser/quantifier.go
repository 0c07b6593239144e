package parser

import "github.com/retix/retix/internal/automaton"

// applyQuantifier looks at the byte(s) immediately following an atom/group
// fragment and, if they form a quantifier (`?`, `*`, `+`, `{m,n}` and their
// lazy `?`-suffixed variants), rewrites frag in place and returns it;
// otherwise frag is returned untouched. Exactly one
// quantifier may apply to a given fragment: a second quantifier character
// immediately following is rejected as an invalid byte, since there is no
// atom left to quantify.
func (p *parser) applyQuantifier(frag *automaton.Automaton) (*automaton.Automaton, error) {
	if p.pos >= len(p.input) {
		return frag, nil
	}

	switch p.input[p.pos] {
	case '?':
		p.pos++
		automaton.Optional(frag)
		return p.finishQuantifier(frag)

	case '*':
		p.pos++
		automaton.Repeat(frag)
		return p.finishQuantifier(frag)

	case '+':
		p.pos++
		tail := automaton.DeepCopy(frag)
		automaton.Repeat(tail)
		automaton.Chain(frag, tail)
		return p.finishQuantifier(frag)

	case '{':
		return p.applyCountedRepeat(frag)

	default:
		return frag, nil
	}
}

// finishQuantifier consumes a trailing '?' (lazy marker) if present and
// tags frag's accepting states with the resulting behaviour, then rejects
// a further quantifier character immediately after (there is no atom left
// to bind it to).
func (p *parser) finishQuantifier(frag *automaton.Automaton) (*automaton.Automaton, error) {
	lazy := false
	if p.pos < len(p.input) && p.input[p.pos] == '?' {
		lazy = true
		p.pos++
	}
	if lazy {
		automaton.MakeLazy(frag)
	} else {
		automaton.MakeGreedy(frag)
	}
	if p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '*', '+', '?':
			return nil, p.errorf(ErrInvalidByte)
		}
	}
	return frag, nil
}

// applyCountedRepeat parses `{m}`, `{m,n}`, `{m,}`, or `{,n}` starting at
// the opening brace and unrolls frag into m..n sequential copies per spec
// §4.2: a missing bound defaults to the other bound (so `{m,}` behaves as
// `{m,m}` and `{,n}` as `{n,n}`), and n is capped by p.maxCountedRepeat.
func (p *parser) applyCountedRepeat(frag *automaton.Automaton) (*automaton.Automaton, error) {
	start := p.pos
	p.pos++ // consume '{'

	mStr, haveM := p.scanDigits()
	haveComma := false
	if p.pos < len(p.input) && p.input[p.pos] == ',' {
		haveComma = true
		p.pos++
	}
	nStr, haveN := p.scanDigits()

	if p.pos >= len(p.input) || p.input[p.pos] != '}' {
		p.pos = start
		return nil, p.errorf(ErrNonNumericCount)
	}
	p.pos++ // consume '}'

	if !haveM && !haveN {
		p.pos = start
		return nil, p.errorf(ErrNonNumericCount)
	}

	m, n := 0, 0
	switch {
	case haveM && haveN:
		m = atoiOrCap(mStr)
		n = atoiOrCap(nStr)
	case haveM && !haveComma:
		m = atoiOrCap(mStr)
		n = m
	case haveM && haveComma && !haveN:
		m = atoiOrCap(mStr)
		n = m
	case !haveM && haveComma && haveN:
		n = atoiOrCap(nStr)
		m = n
	}

	if n < 1 {
		p.pos = start
		return nil, p.errorf(ErrInvalidCountBounds)
	}
	if n < m {
		p.pos = start
		return nil, p.errorf(ErrInvalidCountBounds)
	}
	if n > p.maxCountedRepeat {
		p.pos = start
		return nil, p.errorf(ErrCountTooLarge)
	}

	out := unrollCounted(frag, m, n)
	return p.finishQuantifier(out)
}

// unrollCounted builds m mandatory copies of frag chained in sequence,
// followed by n-m optional copies (each individually marked Optional so
// the bypass epsilon cascades through the subsequent Chain calls exactly
// as a hand-written `(frag(frag(frag)?)?)?` would), and marks the whole
// result Optional if m == 0. The caller guarantees n >= 1.
func unrollCounted(frag *automaton.Automaton, m, n int) *automaton.Automaton {
	orig := automaton.DeepCopy(frag)
	var out *automaton.Automaton
	for i := 0; i < n; i++ {
		var frag2 *automaton.Automaton
		if i == 0 {
			frag2 = frag
		} else {
			frag2 = automaton.DeepCopy(orig)
		}
		if i >= m {
			automaton.Optional(frag2)
		}
		if out == nil {
			out = frag2
		} else {
			automaton.Chain(out, frag2)
		}
	}
	if m == 0 {
		automaton.Optional(out)
	}
	return out
}

// scanDigits consumes a (possibly empty) run of ASCII digits at p.pos and
// reports whether at least one digit was present.
func (p *parser) scanDigits() (string, bool) {
	begin := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == begin {
		return "", false
	}
	return string(p.input[begin:p.pos]), true
}

// atoiOrCap converts a digit string to an int, saturating at a value well
// above any sane maxCountedRepeat rather than overflowing. The caller
// compares the result against maxCountedRepeat immediately afterward.
func atoiOrCap(s string) int {
	const cap = 1 << 30
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
		if n > cap {
			return cap
		}
	}
	return n
}
