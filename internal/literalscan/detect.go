package literalscan

// metaBytes mirrors internal/parser's escape table: a backslash followed by
// one of these yields that byte literally; anything else disqualifies the
// pattern from the literal-alternation bypass, since it signals a construct
// (class, dot, group, quantifier) this scanner doesn't model.
const metaBytes = "-^$()[]{}\\*+?.|"

func isMetaByte(c byte) bool {
	for i := 0; i < len(metaBytes); i++ {
		if metaBytes[i] == c {
			return true
		}
	}
	return false
}

// Detect reports whether pattern is a top-level alternation of plain
// literal runs (no groups, classes, `.`, or quantifiers anywhere) plus
// the literal alternatives themselves and whether `^`/`$` anchor the whole
// pattern. A single literal with no `|` at all also qualifies (alternatives
// of length 1).
func Detect(pattern []byte) (literals [][]byte, anchoredStart, anchoredEnd bool, ok bool) {
	pos := 0
	if len(pattern) > 0 && pattern[0] == '^' {
		anchoredStart = true
		pos = 1
	}
	end := len(pattern)
	if end > pos && pattern[end-1] == '$' {
		anchoredEnd = true
		end--
	}
	if pos >= end {
		return nil, false, false, false
	}

	var cur []byte
	for pos < end {
		c := pattern[pos]
		switch c {
		case '|':
			if len(cur) == 0 {
				return nil, false, false, false
			}
			literals = append(literals, cur)
			cur = nil
			pos++

		case '\\':
			pos++
			if pos >= end || !isMetaByte(pattern[pos]) {
				return nil, false, false, false
			}
			cur = append(cur, pattern[pos])
			pos++

		case '^', '$', '(', ')', '[', ']', '{', '}', '*', '+', '?', '.':
			return nil, false, false, false

		default:
			cur = append(cur, c)
			pos++
		}
	}
	if len(cur) == 0 {
		return nil, false, false, false
	}
	literals = append(literals, cur)
	return literals, anchoredStart, anchoredEnd, true
}
