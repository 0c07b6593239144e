package parser

import "github.com/retix/retix/internal/automaton"

// classEscapes are the escape letters recognized inside `[...]` and as
// standalone atoms, each expanding to a fixed byte set (the functions
// below). Bytes not listed here may still appear backslash-escaped as
// themselves.
var classEscapes = map[byte]func() []byte{
	'd': digitBytes,
	'w': wordBytes,
	's': spaceBytes,
}

func digitBytes() []byte {
	out := make([]byte, 0, 10)
	for b := byte('0'); b <= '9'; b++ {
		out = append(out, b)
	}
	return out
}

func wordBytes() []byte {
	out := make([]byte, 0, 63)
	for b := byte('a'); b <= 'z'; b++ {
		out = append(out, b)
	}
	for b := byte('A'); b <= 'Z'; b++ {
		out = append(out, b)
	}
	out = append(out, digitBytes()...)
	out = append(out, '_')
	return out
}

func spaceBytes() []byte {
	return []byte{' ', '\t', '\n', '\r', '\f', '\v'}
}

// byteCategory classifies b into one of the three categorical runs a class
// range endpoint may belong to; ok is false for anything else (punctuation,
// control bytes, and so on).
func byteCategory(b byte) (category byte, ok bool) {
	switch {
	case b >= '0' && b <= '9':
		return 'd', true
	case b >= 'a' && b <= 'z':
		return 'l', true
	case b >= 'A' && b <= 'Z':
		return 'u', true
	default:
		return 0, false
	}
}

// rangeCategory reports the categorical run of each of a range's two
// endpoints. A range is only valid when both endpoints belong to the same
// run (both digits, both lowercase, or both uppercase); ok is false if
// either endpoint falls outside all three runs.
func rangeCategory(c, d byte) (cCategory, dCategory byte, ok bool) {
	cCategory, cOk := byteCategory(c)
	dCategory, dOk := byteCategory(d)
	return cCategory, dCategory, cOk && dOk
}

// parseClass parses a `[...]`/`[^...]` character class starting at the
// opening `[` and returns a single-transition-set fragment built via
// automaton.NewSymbolSet. Ranges (`a-z`), class-escapes (`\d`, `\w`, `\s`),
// a literal `]` as the class's first member, and negation are all handled
// here.
func (p *parser) parseClass() (*automaton.Automaton, error) {
	start := p.pos
	p.pos++ // consume '['

	negate := false
	if p.pos < len(p.input) && p.input[p.pos] == '^' {
		negate = true
		p.pos++
	}

	var members [256]bool
	first := true
	for {
		if p.pos >= len(p.input) {
			p.pos = start
			return nil, p.errorf(ErrUnclosedClass)
		}
		c := p.input[p.pos]
		if c == ']' && !first {
			p.pos++
			break
		}
		first = false

		if c == '\\' {
			p.pos++
			if p.pos >= len(p.input) {
				p.pos = start
				return nil, p.errorf(ErrInvalidEscape)
			}
			e := p.input[p.pos]
			if expand, ok := classEscapes[e]; ok {
				for _, b := range expand() {
					members[b] = true
				}
				p.pos++
				continue
			}
			if !isMetaByte(e) && e != ']' {
				p.pos = start
				return nil, p.errorf(ErrInvalidEscape)
			}
			c = e
			p.pos++
		} else {
			p.pos++
		}

		// Possible range: c '-' d, where d is not the closing ']'.
		if p.pos+1 < len(p.input) && p.input[p.pos] == '-' && p.input[p.pos+1] != ']' {
			p.pos++ // consume '-'
			d := p.input[p.pos]
			if d == '\\' {
				p.pos++
				if p.pos >= len(p.input) {
					p.pos = start
					return nil, p.errorf(ErrInvalidEscape)
				}
				d = p.input[p.pos]
			}
			p.pos++
			if d < c {
				p.pos = start
				return nil, p.errorf(ErrInvalidClassRange)
			}
			if cc, dc, ok := rangeCategory(c, d); !ok || cc != dc {
				p.pos = start
				return nil, p.errorf(ErrInvalidClassRange)
			}
			for b := int(c); b <= int(d); b++ {
				members[b] = true
			}
			continue
		}

		members[c] = true
	}

	members[automaton.LineStart] = false
	members[automaton.LineEnd] = false

	var symbols []byte
	if negate {
		symbols = make([]byte, 0, 256)
		for b := 0; b < 256; b++ {
			if !members[b] {
				symbols = append(symbols, byte(b))
			}
		}
	} else {
		symbols = make([]byte, 0, 32)
		for b := 0; b < 256; b++ {
			if members[b] {
				symbols = append(symbols, byte(b))
			}
		}
	}

	if len(symbols) == 0 {
		p.pos = start
		return nil, p.errorf(ErrEmptyClass)
	}

	return automaton.NewSymbolSet(symbols), nil
}
