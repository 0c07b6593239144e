// Package parser scans a surface regex pattern and emits an NFA-with-epsilon
// via the composition primitives in internal/automaton. It is a single
// left-to-right scan over a frame stack: one frame
// per open group (including the implicit outermost frame), each holding the
// fragment sequence assembled so far and a pending-alternation flag.
package parser

import "github.com/retix/retix/internal/automaton"

// metaBytes is the set of bytes that require a backslash to appear
// literally (see the escape table below).
const metaBytes = "-^$()[]{}\\*+?.|"

func isMetaByte(c byte) bool {
	for i := 0; i < len(metaBytes); i++ {
		if metaBytes[i] == c {
			return true
		}
	}
	return false
}

// frame is one nesting level's bookkeeping: the fragment sequence
// assembled so far at this level, and whether the next fragment must be
// alternated with that sequence rather than concatenated onto it.
type frame struct {
	seq        *automaton.Automaton
	pendingAlt bool
}

type parser struct {
	input            []byte
	pos              int
	frames           []*frame
	maxCountedRepeat int
}

// insert adds frag to the current frame: concatenated onto the frame's
// sequence so far, unless the frame's pending-alternation flag is set (in
// which case frag is alternated with the sequence and the flag is
// cleared), matching the parser's insertion rule exactly.
func (p *parser) insert(frag *automaton.Automaton) {
	f := p.frames[len(p.frames)-1]
	switch {
	case f.seq == nil:
		f.seq = frag
	case f.pendingAlt:
		f.seq = automaton.Alternative(f.seq, frag)
		f.pendingAlt = false
	default:
		automaton.Chain(f.seq, frag)
	}
}

func (p *parser) push() {
	p.frames = append(p.frames, &frame{})
}

// pop removes and returns the current frame, chaining is already done
// incrementally by insert: what remains is just the accumulated sequence.
func (p *parser) pop() *frame {
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return f
}

// Parse compiles pattern (terminated by NUL or newline, both treated as
// end-of-pattern; a caller passing a plain Go string slice
// with neither is also accepted (the scan simply stops at len(pattern))
// into an NFA-with-epsilon, or reports the first syntax error encountered.
// maxCountedRepeat caps n in `{m,n}` unrolling ("implementations
// may cap n").
func Parse(pattern []byte, maxCountedRepeat int) (*automaton.Automaton, error) {
	if end := scanTerminator(pattern); end >= 0 {
		pattern = pattern[:end]
	}

	p := &parser{input: pattern, maxCountedRepeat: maxCountedRepeat}
	p.push() // implicit outermost frame

	anchoredStart := false
	if len(pattern) > 0 && pattern[0] == '^' {
		anchoredStart = true
		p.pos = 1
	}
	anchoredEnd := false

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '|':
			p.pos++
			f := p.frames[len(p.frames)-1]
			if f.seq == nil || f.pendingAlt {
				return nil, p.errorf(ErrUnmatchedAlternation)
			}
			f.pendingAlt = true

		case '(':
			p.pos++
			p.push()

		case ')':
			p.pos++
			if len(p.frames) == 1 {
				return nil, p.errorf(ErrUnmatchedGroupClose)
			}
			f := p.pop()
			if f.pendingAlt {
				return nil, p.errorf(ErrUnmatchedAlternation)
			}
			if f.seq == nil {
				return nil, p.errorf(ErrEmptyGroup)
			}
			frag, err := p.applyQuantifier(f.seq)
			if err != nil {
				return nil, err
			}
			p.insert(frag)

		case '$':
			if p.pos != len(p.input)-1 {
				return nil, p.errorf(ErrMisplacedAnchor)
			}
			anchoredEnd = true
			p.pos++

		case '^':
			// A leading '^' was already consumed before the loop; any '^'
			// reached here is past position 0 of the whole pattern,
			// including inside an alternation branch or a group: both
			// rejected.
			return nil, p.errorf(ErrMisplacedAnchor)

		default:
			frag, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			frag, err = p.applyQuantifier(frag)
			if err != nil {
				return nil, err
			}
			p.insert(frag)
		}
	}

	if len(p.frames) != 1 {
		return nil, p.errorf(ErrUnclosedGroup)
	}
	top := p.pop()
	if top.pendingAlt {
		return nil, p.errorf(ErrUnmatchedAlternation)
	}
	body := top.seq
	if body == nil {
		body = automaton.NewEmpty()
	}

	return wrapAnchors(body, anchoredStart, anchoredEnd), nil
}

// wrapAnchors chains a LineStart fragment onto the front of body and a
// LineEnd fragment onto the back, mandatory if the corresponding anchor was
// written explicitly and optional otherwise, so the matcher can consume
// both sentinels uniformly regardless of whether the
// pattern actually anchors.
func wrapAnchors(body *automaton.Automaton, anchoredStart, anchoredEnd bool) *automaton.Automaton {
	head := automaton.NewSingleSymbol(automaton.LineStart)
	if !anchoredStart {
		automaton.Optional(head)
	}
	automaton.Chain(head, body)

	tail := automaton.NewSingleSymbol(automaton.LineEnd)
	if !anchoredEnd {
		automaton.Optional(tail)
	}
	automaton.Chain(head, tail)

	head.LineStartAnchored = anchoredStart
	head.LineEndAnchored = anchoredEnd
	return head
}

// scanTerminator returns the index of the first NUL or newline byte in
// pattern, or -1 if neither appears.
func scanTerminator(pattern []byte) int {
	for i, b := range pattern {
		if b == 0 || b == '\n' {
			return i
		}
	}
	return -1
}

// parseAtom scans one non-structural construct: a literal byte, an escape,
// `.`, or a character class. Quantifiers and anchors are handled by the
// caller (Parse's main loop and applyQuantifier), never here.
func (p *parser) parseAtom() (*automaton.Automaton, error) {
	c := p.input[p.pos]
	switch c {
	case '.':
		p.pos++
		return automaton.NewSymbolSet(dotAlphabet()), nil

	case '[':
		return p.parseClass()

	case '\\':
		p.pos++
		if p.pos >= len(p.input) {
			return nil, p.errorf(ErrInvalidEscape)
		}
		e := p.input[p.pos]
		if expand, ok := classEscapes[e]; ok {
			p.pos++
			return automaton.NewSymbolSet(expand()), nil
		}
		if !isMetaByte(e) {
			return nil, p.errorf(ErrInvalidEscape)
		}
		p.pos++
		return automaton.NewSingleSymbol(e), nil

	case '*', '+', '?', '{':
		// These introduce a quantifier and therefore always require a
		// preceding atom; reaching parseAtom means there wasn't one.
		return nil, p.errorf(ErrInvalidByte)

	default:
		p.pos++
		return automaton.NewSingleSymbol(c), nil
	}
}

// dotAlphabet returns every byte except the two anchor sentinels: the
// fixed "all symbols" alphabet used for `.` and inverted classes (
// implementations may choose which bytes belong to this alphabet, so long
// as the sentinels are excluded).
func dotAlphabet() []byte {
	out := make([]byte, 0, 254)
	for b := 0; b < 256; b++ {
		bb := byte(b)
		if bb == automaton.LineStart || bb == automaton.LineEnd {
			continue
		}
		out = append(out, bb)
	}
	return out
}
