package match

import "strings"

// Highlight wraps the runes of s at positions with open and close.
// Each position is wrapped on its own. When substring is set the
// positions are treated as one contiguous span and wrapped once.
// Positions must be ascending; out of range positions are ignored.
func Highlight(s string, positions []int, substring bool, open, close string) string {
	if len(positions) == 0 {
		return s
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(positions)*(len(open)+len(close)))

	if substring {
		start, end := positions[0], positions[len(positions)-1]+1
		if start < 0 || end > len(runes) || start >= end {
			return s
		}
		b.WriteString(string(runes[:start]))
		b.WriteString(open)
		b.WriteString(string(runes[start:end]))
		b.WriteString(close)
		b.WriteString(string(runes[end:]))
		return b.String()
	}

	next := 0
	for i, r := range runes {
		if next < len(positions) && positions[next] == i {
			b.WriteString(open)
			b.WriteRune(r)
			b.WriteString(close)
			next++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Segments splits s into alternating unmatched and matched runs, used by
// renderers that style matched text themselves. The first segment is
// always unmatched and may be empty.
func Segments(s string, positions []int) []string {
	runes := []rune(s)
	matched := make([]bool, len(runes))
	for _, p := range positions {
		if p >= 0 && p < len(runes) {
			matched[p] = true
		}
	}

	segs := []string{}
	state := false
	start := 0
	for i := range runes {
		if matched[i] != state {
			segs = append(segs, string(runes[start:i]))
			start = i
			state = matched[i]
		}
	}
	segs = append(segs, string(runes[start:]))
	return segs
}
