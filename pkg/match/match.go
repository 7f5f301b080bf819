/*
Package match implements the subsequence scorer used to rank symbol names.

A query matches a candidate when every query rune appears in the candidate in
order, compared case-insensitively. Matching is a single left-to-right scan that
keeps a pending "best letter" for the most recently consumed query rune, so a
later and better-placed occurrence of the same letter can replace an earlier
one before it is committed.

Scoring rewards letters that follow another matched letter, a separator or a
lower-to-upper case transition, penalizes the distance of the first match from
the start of the candidate, and subtracts a point for every scanned letter that
ends up unused.

A query that occurs verbatim (case-sensitive) inside the candidate skips the scan
entirely and scores SubstringBonus per rune, doubled when the candidate is the
query itself.

	r := match.Match("strings.to_lower", "tolo")
	if r.Matched {
		fmt.Println(r.Score, r.Positions)
	}

Positions are rune indices into the candidate in ascending order.
*/
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is the outcome of matching one candidate against one query.
type Result struct {
	Matched   bool
	Score     int
	Positions []int
	// Substring is set when the exact-substring shortcut produced the result.
	Substring bool
}

// Matcher scores candidates with a fixed set of weights.
// The zero value is not usable, use New or Default.
type Matcher struct {
	w Weights
}

var defaultMatcher = New(DefaultWeights())

// New returns a Matcher using w.
func New(w Weights) *Matcher {
	return &Matcher{w: w}
}

// Default returns the package-level Matcher with DefaultWeights.
func Default() *Matcher {
	return defaultMatcher
}

// Weights returns the weights used by m.
func (m *Matcher) Weights() Weights {
	return m.w
}

// Match scores candidate against query with the default weights.
func Match(candidate, query string) Result {
	return defaultMatcher.Match(candidate, query)
}

// Match scores candidate against query.
func (m *Matcher) Match(candidate, query string) Result {
	if query == "" {
		return Result{Matched: true}
	}
	if candidate == "" {
		return Result{}
	}
	if idx := strings.Index(candidate, query); idx >= 0 {
		return m.substring(candidate, query, idx)
	}
	return m.scan([]rune(candidate), []rune(query))
}

func (m *Matcher) substring(candidate, query string, byteIdx int) Result {
	n := utf8.RuneCountInString(query)
	start := utf8.RuneCountInString(candidate[:byteIdx])

	score := n * m.w.SubstringBonus
	if utf8.RuneCountInString(candidate) == n {
		score *= 2
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = start + i
	}
	return Result{Matched: true, Score: score, Positions: positions, Substring: true}
}

// scan is the general single-pass matcher.
func (m *Matcher) scan(str, pattern []rune) Result {
	w := m.w
	positions := make([]int, 0, len(pattern))

	score := 0
	patternIdx := 0
	prevMatched := false
	prevLower := false
	prevSeparator := true
	seenDot := false

	hasBest := false
	var bestLower rune
	bestIdx := 0
	bestScore := 0

	for strIdx, ch := range str {
		lower := unicode.ToLower(ch)
		upper := unicode.ToUpper(ch)

		hasPattern := patternIdx < len(pattern)
		var patternLower rune
		if hasPattern {
			patternLower = unicode.ToLower(pattern[patternIdx])
		}

		nextMatch := hasPattern && patternLower == lower
		rematch := hasBest && bestLower == lower
		advanced := nextMatch && hasBest
		patternRepeat := hasBest && hasPattern && bestLower == patternLower

		if advanced || patternRepeat {
			score += bestScore
			positions = append(positions, bestIdx)
			hasBest = false
			bestScore = 0
		}

		if nextMatch || rematch {
			newScore := 0
			if patternIdx == 0 {
				score += max(strIdx*w.LeadingLetterPenalty, w.MaxLeadingLetterPenalty)
			}
			if prevMatched {
				newScore += w.AdjacencyBonus
			}
			if prevSeparator {
				newScore += w.SeparatorBonus
			}
			if prevLower && ch == upper && lower != upper {
				newScore += w.CamelBonus
			}
			if nextMatch {
				patternIdx++
			}
			if newScore >= bestScore {
				if hasBest {
					score += w.UnmatchedLetterPenalty
				}
				hasBest = true
				bestLower = lower
				bestIdx = strIdx
				bestScore = newScore
				if seenDot {
					bestScore += w.SeenDotBonus
				}
			}
			prevMatched = true
		} else {
			score += w.UnmatchedLetterPenalty
			prevMatched = false
		}

		prevLower = ch == lower && lower != upper
		prevSeparator = isSeparator(ch)
		if ch == '.' {
			seenDot = true
		}
	}

	if hasBest {
		score += bestScore
		positions = append(positions, bestIdx)
	}

	if patternIdx != len(pattern) {
		return Result{Score: score}
	}
	return Result{Matched: true, Score: score, Positions: positions}
}

func isSeparator(r rune) bool {
	return r == '_' || r == ' ' || r == '.'
}
