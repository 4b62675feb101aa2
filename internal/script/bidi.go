package script

import (
	"golang.org/x/text/unicode/bidi"
)

// kind is the reduced bidi class used by Visual.
type kind uint8

const (
	kindNeutral kind = iota
	kindL
	kindR
	kindEN
	kindAN
)

var mirrored = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'«': '»', '»': '«',
}

// Visual reorders one line of logical-order text into the left-to-right
// sequence in which its runes are drawn, for a paragraph with the given base
// direction. Numbers and embedded Latin runs keep their reading order inside
// right-to-left text. Lines are expected to be shaped and already wrapped.
func Visual(line string, base Direction) string {
	rs := []rune(line)
	if len(rs) == 0 {
		return line
	}
	kinds := classify(rs)
	if base == LTR && !hasKind(kinds, kindR, kindAN) {
		return line
	}

	sos := kindL
	baseLevel := 0
	if base == RTL {
		sos = kindR
		baseLevel = 1
	}

	resolveNumbers(kinds, sos)
	resolveNeutrals(kinds, sos)

	levels := make([]int, len(rs))
	maxLevel := 0
	for i, k := range kinds {
		lvl := baseLevel
		switch {
		case baseLevel == 0 && k == kindR:
			lvl = 1
		case baseLevel == 0 && (k == kindEN || k == kindAN):
			lvl = 2
		case baseLevel == 1 && (k == kindL || k == kindEN || k == kindAN):
			lvl = 2
		}
		levels[i] = lvl
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	out := make([]rune, len(rs))
	copy(out, rs)
	for i, r := range out {
		if levels[i]%2 == 1 {
			if m, ok := mirrored[r]; ok {
				out[i] = m
			}
		}
	}

	for lvl := maxLevel; lvl >= 1; lvl-- {
		for i := 0; i < len(out); {
			if levels[i] < lvl {
				i++
				continue
			}
			j := i
			for j < len(out) && levels[j] >= lvl {
				j++
			}
			reverse(out[i:j])
			reverseInts(levels[i:j])
			i = j
		}
	}
	return string(out)
}

// HasRTL reports whether s contains any right-to-left rune.
func HasRTL(s string) bool {
	return hasKind(classify([]rune(s)), kindR, kindAN)
}

func classify(rs []rune) []kind {
	kinds := make([]kind, len(rs))
	for i, r := range rs {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			kinds[i] = kindL
		case bidi.R, bidi.AL:
			kinds[i] = kindR
		case bidi.EN:
			kinds[i] = kindEN
		case bidi.AN:
			kinds[i] = kindAN
		case bidi.NSM:
			if i > 0 {
				kinds[i] = kinds[i-1]
			}
		default:
			kinds[i] = kindNeutral
		}
	}

	// Separators and terminators glued to digits belong to the number.
	for i := range rs {
		if kinds[i] != kindNeutral {
			continue
		}
		p, _ := bidi.LookupRune(rs[i])
		switch p.Class() {
		case bidi.CS, bidi.ES:
			if i > 0 && i+1 < len(rs) && kinds[i-1] == kindEN && isDigitKind(rs[i+1]) {
				kinds[i] = kindEN
			}
		case bidi.ET:
			if (i > 0 && kinds[i-1] == kindEN) || (i+1 < len(rs) && isDigitKind(rs[i+1])) {
				kinds[i] = kindEN
			}
		}
	}
	return kinds
}

func isDigitKind(r rune) bool {
	p, _ := bidi.LookupRune(r)
	return p.Class() == bidi.EN
}

// resolveNumbers turns European numbers preceded by Latin text into Latin.
func resolveNumbers(kinds []kind, sos kind) {
	last := sos
	for i, k := range kinds {
		switch k {
		case kindL, kindR:
			last = k
		case kindEN:
			if last == kindL {
				kinds[i] = kindL
			}
		}
	}
}

// resolveNeutrals gives each neutral run the direction of its surroundings
// when both sides agree, and the paragraph direction otherwise.
func resolveNeutrals(kinds []kind, sos kind) {
	strong := func(k kind) kind {
		if k == kindL {
			return kindL
		}
		return kindR
	}
	for i := 0; i < len(kinds); {
		if kinds[i] != kindNeutral {
			i++
			continue
		}
		j := i
		for j < len(kinds) && kinds[j] == kindNeutral {
			j++
		}
		before := sos
		if i > 0 {
			before = strong(kinds[i-1])
		}
		after := sos
		if j < len(kinds) {
			after = strong(kinds[j])
		}
		resolved := sos
		if before == after {
			resolved = before
		}
		for k := i; k < j; k++ {
			kinds[k] = resolved
		}
		i = j
	}
}

func hasKind(kinds []kind, want ...kind) bool {
	for _, k := range kinds {
		for _, w := range want {
			if k == w {
				return true
			}
		}
	}
	return false
}

func reverse(rs []rune) {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
}

func reverseInts(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
